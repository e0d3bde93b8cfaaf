package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tourney/handlers"
	"github.com/Dosada05/tourney/middleware"
	"github.com/Dosada05/tourney/realtime"
	"github.com/Dosada05/tourney/repositories"
	"github.com/Dosada05/tourney/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, adminPassword string) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hub := realtime.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	repo := repositories.NewTournamentRepository(repositories.NewMemoryRowStore())
	svc := services.NewTournamentService(repo, logger, services.WithBroadcaster(hub))
	auth, err := services.NewAuthService(adminPassword, "secret", logger)
	require.NoError(t, err)

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:       handlers.NewAuthHandler(auth),
		Tournament: handlers.NewTournamentHandler(svc),
		Import:     handlers.NewImportHandler(services.NewRegistrationImporter(time.Minute, logger)),
		WebSocket:  handlers.NewWebSocketHandler(hub, []string{"*"}, logger),
	}, Options{
		Logger:         logger,
		AuthService:    auth,
		RateLimiter:    middleware.NewRateLimiter(1, 3),
		AllowedOrigins: []string{"*"},
	})
	return router
}

func serve(router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(newRouter(t, ""), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestSwaggerDoc(t *testing.T) {
	rec := serve(newRouter(t, ""), http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/brackets/preview")
	assert.Contains(t, paths, "/tournaments/{name}")
}

func TestOrganiserRoutesOpenWithoutPassword(t *testing.T) {
	router := newRouter(t, "")
	rec := serve(router, http.MethodPost, "/tournaments", `{"name":"Cup","format":"round_robin","team_count":4}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestOrganiserRoutesRequireToken(t *testing.T) {
	router := newRouter(t, "hunter2")
	body := `{"name":"Cup","format":"round_robin","team_count":4}`

	rec := serve(router, http.MethodPost, "/tournaments", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = serve(router, http.MethodPost, "/imports/registrations", `{"urls":["http://x"]}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(router, http.MethodPost, "/auth/login", `{"password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	rec = serve(router, http.MethodPost, "/tournaments", body, env.Token)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/tournaments/Cup", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodDelete, "/tournaments/Cup", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = serve(router, http.MethodDelete, "/tournaments/Cup", "", env.Token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPreviewIsRateLimited(t *testing.T) {
	router := newRouter(t, "")
	body := `{"format":"single_elimination","team_count":4}`

	for i := 0; i < 3; i++ {
		rec := serve(router, http.MethodPost, "/brackets/preview", body, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := serve(router, http.MethodPost, "/brackets/preview", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = serve(router, http.MethodGet, "/tournaments", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestHealthzLogsWriteFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	healthz(logger)(failingWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Contains(t, buf.String(), "failed to write health response")
	assert.Contains(t, buf.String(), "broken pipe")
}
