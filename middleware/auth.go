package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/tourney/services"
)

// RequireOrganizer rejects requests without a valid organiser token. When
// no admin password is configured every request passes.
func RequireOrganizer(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			if _, err := auth.ParseToken(strings.TrimSpace(token)); err != nil {
				if errors.Is(err, services.ErrForbiddenOperation) {
					writeError(w, http.StatusForbidden, err.Error())
					return
				}
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
