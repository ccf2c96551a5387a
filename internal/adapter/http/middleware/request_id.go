package middleware

import (
	"net/http"

	"github.com/citydash/tripdash/internal/domain/types"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/uuid"
)

// RequestID attaches a fresh request ID to the context so logs and
// error wrappers can correlate entries produced for the same request.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.New()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		requestID := id.String()

		ctx := types.WithRequestIDContext(r.Context(), requestID)
		ctx = wrap.WithRequestID(ctx, requestID)

		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
