package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tourney/brackets"
	"github.com/Dosada05/tourney/models"
	"github.com/Dosada05/tourney/realtime"
	"github.com/Dosada05/tourney/repositories"
	"github.com/Dosada05/tourney/services"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubImporter struct {
	names []string
	err   error
	got   []string
}

func (s *stubImporter) Import(ctx context.Context, urls ...string) ([]string, error) {
	s.got = urls
	return s.names, s.err
}

type testServer struct {
	router   chi.Router
	svc      *services.TournamentService
	hub      *realtime.Hub
	importer *stubImporter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hub := realtime.NewHub(discard)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	repo := repositories.NewTournamentRepository(repositories.NewMemoryRowStore())
	svc := services.NewTournamentService(repo, discard, services.WithBroadcaster(hub))
	auth, err := services.NewAuthService("hunter2", "secret", discard)
	require.NoError(t, err)
	importer := &stubImporter{}

	th := NewTournamentHandler(svc)
	ah := NewAuthHandler(auth)
	ih := NewImportHandler(importer)
	wh := NewWebSocketHandler(hub, []string{"*"}, discard)

	r := chi.NewRouter()
	r.Post("/auth/login", ah.Login)
	r.Post("/brackets/preview", th.PreviewHandler)
	r.Get("/tournaments", th.ListHandler)
	r.Post("/tournaments", th.CreateHandler)
	r.Get("/tournaments/{name}", th.GetHandler)
	r.Get("/tournaments/{name}/text", th.TextHandler)
	r.Delete("/tournaments/{name}", th.DeleteHandler)
	r.Post("/tournaments/{name}/publish", th.PublishHandler)
	r.Post("/imports/registrations", ih.ImportRegistrations)
	r.Get("/ws/tournaments/{name}", wh.ServeWs)

	return &testServer{router: r, svc: svc, hub: hub, importer: importer}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestPreviewHandler(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/brackets/preview",
		`{"name":"Club Night","format":"round_robin","participants":["A","B","C","D"],"seed":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got models.Tournament
	require.NoError(t, json.Unmarshal(decode(t, rec)["tournament"], &got))
	assert.Equal(t, "Club Night", got.Name)
	assert.Equal(t, brackets.Match{"A", "D"}, got.Schedule[0][0])

	rec = s.do(http.MethodGet, "/tournaments/Club%20Night", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreviewHandlerErrors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"bad json", `{"format":`, http.StatusBadRequest},
		{"unknown field", `{"format":"round_robin","colour":"red"}`, http.StatusBadRequest},
		{"unknown format", `{"format":"swiss","participants":["A","B"]}`, http.StatusBadRequest},
		{"no participants", `{"format":"single_elimination"}`, http.StatusUnprocessableEntity},
		{"one participant", `{"format":"single_elimination","participants":["A"]}`, http.StatusUnprocessableEntity},
		{"odd courts", `{"format":"courts","team_count":5,"courts":2}`, http.StatusUnprocessableEntity},
		{"too many courts", `{"format":"courts","team_count":2,"courts":4611686018427387904}`, http.StatusUnprocessableEntity},
		{"huge team count", `{"format":"round_robin","team_count":4611686018427387904}`, http.StatusBadRequest},
		{"team count over limit", `{"format":"round_robin","team_count":1001}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/brackets/preview", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Contains(t, decode(t, rec), "error")
		})
	}
}

func TestTournamentLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/tournaments",
		`{"name":"Spring Open","format":"courts","team_count":8,"courts":2,"rules":"Best of three."}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/tournaments/Spring%20Open", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Tournament
	require.NoError(t, json.Unmarshal(decode(t, rec)["tournament"], &got))
	require.NotNil(t, got.Courts)
	assert.Len(t, got.Courts.Courts, 2)

	rec = s.do(http.MethodGet, "/tournaments/Spring%20Open/text", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Court 1\n")
	assert.Contains(t, rec.Body.String(), "Best of three.")

	rec = s.do(http.MethodGet, "/tournaments?q=spring", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Spring Open"]`, string(decode(t, rec)["tournaments"]))

	rec = s.do(http.MethodPost, "/tournaments/Spring%20Open/publish", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = s.do(http.MethodDelete, "/tournaments/Spring%20Open", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, "/tournaments/Spring%20Open", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEscapedSlashInName(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/tournaments", `{"name":"U12/U14","format":"round_robin","team_count":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/tournaments/U12%2FU14", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLoginHandler(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/login", `{"password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", `{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", `{"password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var token string
	require.NoError(t, json.Unmarshal(decode(t, rec)["token"], &token))
	assert.NotEmpty(t, token)
}

func TestImportHandler(t *testing.T) {
	s := newTestServer(t)

	s.importer.names = []string{"Alice", "Bob"}
	rec := s.do(http.MethodPost, "/imports/registrations", `{"urls":["https://example.com/entries"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Alice","Bob"]`, string(decode(t, rec)["participants"]))
	assert.Equal(t, []string{"https://example.com/entries"}, s.importer.got)

	s.importer.err = fmt.Errorf("%w: https://example.com/entries: status 404", services.ErrImportFailed)
	rec = s.do(http.MethodPost, "/imports/registrations", `{"urls":["https://example.com/entries"]}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repositories.ErrTournamentNotFound, http.StatusNotFound},
		{fmt.Errorf("x: %w", brackets.ErrInvalidGroupCount), http.StatusUnprocessableEntity},
		{brackets.ErrInsufficientParticipants, http.StatusUnprocessableEntity},
		{brackets.ErrInvalidCourtCount, http.StatusUnprocessableEntity},
		{services.ErrValidationFailed, http.StatusBadRequest},
		{services.ErrAuthInvalidToken, http.StatusUnauthorized},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{services.ErrAuthDisabled, http.StatusServiceUnavailable},
		{services.ErrPublishingDisabled, http.StatusServiceUnavailable},
		{services.ErrImportFailed, http.StatusBadGateway},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

func TestWebSocketReceivesUpdates(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/tournaments/Club%20Night"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.RoomSize("Club Night") == 1 }, 2*time.Second, 10*time.Millisecond)

	rec := s.do(http.MethodPost, "/tournaments", `{"name":"Club Night","format":"round_robin","team_count":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string            `json:"type"`
		Room    string            `json:"room"`
		Payload models.Tournament `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, realtime.MessageBracketUpdated, msg.Type)
	assert.Equal(t, "Club Night", msg.Room)
	assert.Len(t, msg.Payload.Schedule, 3)
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteTextLogsWriteFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	w := failingWriter{httptest.NewRecorder()}
	writeText(w, httptest.NewRequest(http.MethodGet, "/tournaments/Cup/text", nil), http.StatusOK, "Cup\n")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, buf.String(), "failed to write response")
	assert.Contains(t, buf.String(), "connection reset")
}
