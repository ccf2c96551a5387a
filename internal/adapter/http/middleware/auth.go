package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/citydash/tripdash/internal/domain/models"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
)

// Auth validates the session token and injects the session into the
// context. Requests without a token pass through anonymously; protected
// handlers are wrapped with RequireSession.
func (h *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		session, err := h.gate.Check(ctx, token)
		if err != nil || session == nil {
			h.log.Warn(wrap.ErrorCtx(ctx, err), "rejected session token")
			errorResponse(w, http.StatusUnauthorized, "access denied")
			return
		}

		next.ServeHTTP(w, r.WithContext(models.WithSession(ctx, session)))
	})
}

// RequireSession wraps a handler and allows only requests carrying a valid
// session established through the access gate.
func (h *Middleware) RequireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := models.SessionFromContext(r.Context())
		if session == nil {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
