package access

import (
	"context"
	"time"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/uuid"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenType = "session"

// TokenService signs and validates the dashboard session tokens. There is a
// single shared identity, so the claims carry only the token ID and expiry,
// no user information.
type TokenService struct {
	secret     string
	SessionTTL time.Duration
	log        logger.Logger
}

func NewTokenService(secret string, sessionTTL time.Duration, log logger.Logger) *TokenService {
	return &TokenService{
		secret:     secret,
		SessionTTL: sessionTTL,
		log:        log,
	}
}

func (s *TokenService) getSecret() string {
	return s.secret
}

// Issue creates a new signed session token.
func (s *TokenService) Issue(ctx context.Context) (*models.SessionToken, error) {
	ctx = wrap.WithAction(ctx, "issue_session_token")

	issuedAt := time.Now().UTC()
	tokenID, err := uuid.New()
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	expiresAt := issuedAt.Add(s.SessionTTL)

	claims := jwt.MapClaims{
		"typ": sessionTokenType,
		"jti": tokenID.String(),
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.getSecret()))
	if err != nil {
		return nil, wrap.Error(ctx, ErrTokenGenerateFail)
	}

	return &models.SessionToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate checks the given JWT session token string, returning the session
// it represents if valid.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.Session, error) {
	ctx = wrap.WithAction(ctx, "validate_session_token")

	parsedToken, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(s.getSecret()), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	mc, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	typ, _ := mc["typ"].(string)
	if typ != sessionTokenType {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	tokenIDStr, _ := mc["jti"].(string)
	if tokenIDStr == "" {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}
	tokenID, err := uuid.Parse(tokenIDStr)
	if err != nil {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	expFloat, ok := mc["exp"].(float64)
	if !ok {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().UTC().After(expTime) {
		return nil, wrap.Error(ctx, ErrExpToken)
	}

	var issuedAt time.Time
	if iatFloat, ok := mc["iat"].(float64); ok {
		issuedAt = time.Unix(int64(iatFloat), 0)
	}

	return &models.Session{
		TokenID:   tokenID,
		IssuedAt:  issuedAt,
		ExpiresAt: expTime,
	}, nil
}
