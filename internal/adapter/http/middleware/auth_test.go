package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/service/access"
	"github.com/citydash/tripdash/pkg/logger"
)

func testMiddleware() (*Middleware, *access.Gate) {
	log := logger.InitLogger("tripdash-test", logger.LevelError)
	tokens := access.NewTokenService("test-jwt-secret", time.Hour, log)
	gate := access.NewGate("tripdash-test", "hunter2", tokens, log)
	return NewMiddleware(gate, log), gate
}

func protected(m *Middleware) http.Handler {
	inner := func(w http.ResponseWriter, r *http.Request) {
		if models.SessionFromContext(r.Context()) == nil {
			http.Error(w, "session missing from context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
	return m.Auth(m.RequireSession(inner))
}

func TestAuth_ValidTokenReachesHandler(t *testing.T) {
	m, gate := testMiddleware()

	token, err := gate.Login(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	protected(m).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestAuth_NoTokenIsRejectedByRequireSession(t *testing.T) {
	m, _ := testMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	protected(m).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_GarbageTokenIsRejected(t *testing.T) {
	m, _ := testMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	protected(m).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	m, _ := testMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	protected(m).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}
