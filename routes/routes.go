package routes

import (
	"io"
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/tourney/docs"
	"github.com/Dosada05/tourney/handlers"
	"github.com/Dosada05/tourney/middleware"
	"github.com/Dosada05/tourney/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Import     *handlers.ImportHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	Logger         *slog.Logger
	AuthService    services.AuthService
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
}

func healthz(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := io.WriteString(w, "ok\n"); err != nil {
			logger.ErrorContext(r.Context(), "failed to write health response", slog.Any("error", err))
		}
	}
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireOrganizer := middleware.RequireOrganizer(opts.AuthService)
	limit := func(next http.Handler) http.Handler { return next }
	if opts.RateLimiter != nil {
		limit = opts.RateLimiter.Limit
	}

	router.Get("/healthz", healthz(logger))
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Post("/auth/login", h.Auth.Login)
	router.With(limit).Post("/brackets/preview", h.Tournament.PreviewHandler)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListHandler)
		r.Get("/{name}", h.Tournament.GetHandler)
		r.Get("/{name}/text", h.Tournament.TextHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireOrganizer)

			r.With(limit).Post("/", h.Tournament.CreateHandler)
			r.Delete("/{name}", h.Tournament.DeleteHandler)
			r.Post("/{name}/publish", h.Tournament.PublishHandler)
		})
	})

	router.With(requireOrganizer).Post("/imports/registrations", h.Import.ImportRegistrations)
	router.Get("/ws/tournaments/{name}", h.WebSocket.ServeWs)
}
