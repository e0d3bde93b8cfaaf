package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/tourney/services"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct {
	enabled bool
	err     error
}

func (a stubAuth) Enabled() bool { return a.enabled }

func (a stubAuth) Login(ctx context.Context, password string) (string, error) { return "", nil }

func (a stubAuth) ParseToken(token string) (jwt.MapClaims, error) {
	if a.err != nil {
		return nil, a.err
	}
	return jwt.MapClaims{"role": services.RoleOrganizer}, nil
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRequireOrganizer(t *testing.T) {
	tests := []struct {
		name   string
		auth   stubAuth
		header string
		want   int
	}{
		{"auth disabled", stubAuth{}, "", http.StatusNoContent},
		{"missing token", stubAuth{enabled: true}, "", http.StatusUnauthorized},
		{"wrong scheme", stubAuth{enabled: true}, "Basic abc", http.StatusUnauthorized},
		{"invalid token", stubAuth{enabled: true, err: services.ErrAuthInvalidToken}, "Bearer abc", http.StatusUnauthorized},
		{"wrong role", stubAuth{enabled: true, err: services.ErrForbiddenOperation}, "Bearer abc", http.StatusForbidden},
		{"valid token", stubAuth{enabled: true}, "Bearer abc", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tournaments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			RequireOrganizer(tt.auth)(okHandler).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusNoContent {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Limit(okHandler)

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/brackets/preview", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2:1000"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1003"))

	now = now.Add(limiterIdleTTL + time.Second)
	do("10.0.0.3:1000")
	rl.mu.Lock()
	assert.Len(t, rl.clients, 1)
	rl.mu.Unlock()
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := chiMiddleware.RequestID(RequestLogger(logger)(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/healthz")
	assert.Contains(t, out, "status=204")
	assert.Contains(t, out, "request_id=")
}
