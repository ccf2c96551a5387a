package access

import (
	"context"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/pkg/hasher"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/metrics"
)

// Gate is the access gate in front of every data endpoint. It compares the
// supplied password against the one configured secret and, on success,
// issues a session token. Denials are always the same generic error so the
// caller cannot distinguish a wrong password from a missing secret.
type Gate struct {
	serviceName string
	secret      string
	tokens      *TokenService
	l           logger.Logger
}

func NewGate(serviceName, secret string, tokens *TokenService, l logger.Logger) *Gate {
	return &Gate{
		serviceName: serviceName,
		secret:      secret,
		tokens:      tokens,
		l:           l,
	}
}

// Login checks the password and returns a signed session token. An empty
// configured secret denies everything.
func (g *Gate) Login(ctx context.Context, password string) (*models.SessionToken, error) {
	ctx = wrap.WithAction(ctx, "gate_login")

	if g.secret == "" {
		g.l.Warn(ctx, "dashboard secret not configured, denying access")
		metrics.RecordSessionCheck(g.serviceName, false)
		return nil, types.ErrAccessDenied
	}

	if !hasher.VerifyConstantTime(password, g.secret) {
		metrics.RecordSessionCheck(g.serviceName, false)
		return nil, types.ErrAccessDenied
	}

	token, err := g.tokens.Issue(ctx)
	if err != nil {
		g.l.Error(wrap.ErrorCtx(ctx, err), "failed to issue session token", err)
		metrics.RecordSessionCheck(g.serviceName, false)
		return nil, types.ErrAccessDenied
	}

	metrics.RecordSessionCheck(g.serviceName, true)
	g.l.Info(ctx, "access granted", "expires_at", token.ExpiresAt)

	return token, nil
}

// Check validates a session token, returning the session it carries.
func (g *Gate) Check(ctx context.Context, token string) (*models.Session, error) {
	return g.tokens.Validate(ctx, token)
}
