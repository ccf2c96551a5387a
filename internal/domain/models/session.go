package models

import (
	"context"
	"time"

	"github.com/citydash/tripdash/pkg/uuid"
)

// Session is the single shared dashboard identity established after the
// access gate grants entry. There are no per-user accounts or roles.
type Session struct {
	TokenID   uuid.UUID `json:"token_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionToken is the signed token handed out by the access gate together
// with its expiry.
type SessionToken struct {
	Token     string    `json:"session_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// sessionKeyStruct is an unexported type for the session context key.
type sessionKeyStruct struct{}

var sessionKey = &sessionKeyStruct{}

// WithSession returns a new context carrying the granted session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session stored in the context, or nil when
// the request was not authenticated.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}
