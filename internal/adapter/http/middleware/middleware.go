package middleware

import (
	"context"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/pkg/logger"
)

type (
	AccessService interface {
		Check(ctx context.Context, token string) (*models.Session, error)
	}

	Middleware struct {
		gate AccessService
		log  logger.Logger
	}
)

func NewMiddleware(gate AccessService, log logger.Logger) *Middleware {
	return &Middleware{
		gate: gate,
		log:  log,
	}
}
