package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tourney/config"
	"github.com/Dosada05/tourney/db"
	"github.com/Dosada05/tourney/handlers"
	"github.com/Dosada05/tourney/middleware"
	"github.com/Dosada05/tourney/realtime"
	"github.com/Dosada05/tourney/repositories"
	api "github.com/Dosada05/tourney/routes"
	"github.com/Dosada05/tourney/services"
	"github.com/Dosada05/tourney/storage"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("store", cfg.StoreBackend),
		slog.Bool("auth", cfg.AuthEnabled()),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var r2Client *s3.Client
	if cfg.R2Enabled() {
		client, err := storage.NewCloudflareR2Client(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return err
		}
		r2Client = client
		logger.Info("Cloudflare R2 client initialized", slog.String("bucket", cfg.R2BucketName))
	}

	rows, closeStore, err := openRowStore(ctx, cfg, r2Client, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	wsHub := realtime.NewHub(logger)

	opts := []services.TournamentServiceOption{
		services.WithBroadcaster(wsHub),
		services.WithDefaultRoundRobinShuffle(cfg.RoundRobinShuffle),
	}
	if r2Client != nil && cfg.R2PublicBaseURL != "" {
		uploader, err := storage.NewCloudflareR2Uploader(r2Client, cfg.R2BucketName, cfg.R2PublicBaseURL)
		if err != nil {
			return err
		}
		opts = append(opts, services.WithUploader(uploader))
		logger.Info("schedule publishing enabled", slog.String("base_url", cfg.R2PublicBaseURL))
	}

	tournamentService := services.NewTournamentService(repositories.NewTournamentRepository(rows), logger, opts...)
	authService, err := services.NewAuthService(cfg.AdminPassword, cfg.JWTSecretKey, logger)
	if err != nil {
		return err
	}
	importer := services.NewRegistrationImporter(cfg.ImportCacheTTL, logger)
	logger.Info("services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Import:     handlers.NewImportHandler(importer),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	}, api.Options{
		Logger:         logger,
		AuthService:    authService,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wsHub.Run(gCtx)
		logger.Info("WebSocket hub stopped")
		return nil
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// openRowStore connects the configured backend and returns a function that
// releases it.
func openRowStore(ctx context.Context, cfg *config.Config, r2Client *s3.Client, logger *slog.Logger) (repositories.RowStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx, dbConn); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		logger.Info("database connection established")
		return repositories.NewPostgresRowStore(dbConn), dbConn.Close, nil

	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
		}
		coll := client.Database(cfg.MongoDatabase).Collection("tournament_rows")
		if err := repositories.EnsureMongoIndexes(connectCtx, coll); err != nil {
			client.Disconnect(context.Background())
			return nil, nil, err
		}
		logger.Info("mongo connection established", slog.String("database", cfg.MongoDatabase))
		return repositories.NewMongoRowStore(coll), func() error { return client.Disconnect(context.Background()) }, nil

	case config.BackendS3:
		if r2Client == nil {
			return nil, nil, errors.New("s3 store requires an R2 client")
		}
		logger.Info("using R2 row store", slog.String("bucket", cfg.R2BucketName), slog.Bool("gzip", cfg.StoreGzip))
		return storage.NewR2RowStore(r2Client, cfg.R2BucketName, cfg.StoreGzip), noop, nil
	}

	logger.Info("using in-memory store; tournaments are lost on restart")
	return repositories.NewMemoryRowStore(), noop, nil
}
