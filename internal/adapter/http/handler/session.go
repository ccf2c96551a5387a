package handler

import (
	"context"
	"net/http"

	"github.com/citydash/tripdash/internal/adapter/http/handler/dto"
	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/validator"
)

type AccessService interface {
	Login(ctx context.Context, password string) (*models.SessionToken, error)
	Check(ctx context.Context, token string) (*models.Session, error)
}

type Session struct {
	gate AccessService
	l    logger.Logger
}

func NewSession(gate AccessService, l logger.Logger) *Session {
	return &Session{
		gate: gate,
		l:    l,
	}
}

// Login godoc
// @Summary      Open a dashboard session
// @Description  Checks the shared dashboard password and returns a session token
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        request  body  dto.LoginRequest  true  "Dashboard password"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /session [post]
func (h *Session) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "open_session")

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	token, err := h.gate.Login(ctx, req.Password)
	if err != nil {
		// Always the same generic message: wrong password and missing
		// configuration must be indistinguishable to the client.
		h.l.Warn(ctx, "session denied")
		errorResponse(w, GetCode(err), "access denied")
		return
	}

	response := envelope{
		"session_token": token.Token,
		"expires_at":    token.ExpiresAt,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
