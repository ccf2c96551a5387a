package handler

import (
	"encoding/json"
	"net/http"

	"github.com/citydash/tripdash/internal/adapter/http/handler/dto"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/metrics"
	"github.com/citydash/tripdash/pkg/uuid"
	"github.com/citydash/tripdash/pkg/validator"
	ws "github.com/citydash/tripdash/pkg/wsHub"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// DashboardWS serves the live dashboard channel: the client sends filter
// criteria as JSON messages and receives a full snapshot in reply to each.
type DashboardWS struct {
	serviceName string
	s           DashboardService
	gate        AccessService
	hub         *ws.ConnectionHub
	l           logger.Logger
}

func NewDashboardWS(serviceName string, s DashboardService, gate AccessService, hub *ws.ConnectionHub, l logger.Logger) *DashboardWS {
	return &DashboardWS{
		serviceName: serviceName,
		s:           s,
		gate:        gate,
		hub:         hub,
		l:           l,
	}
}

// HandleWS godoc
// @Summary      Live dashboard channel
// @Description  WebSocket endpoint; each criteria message is answered with a snapshot
// @Tags         Dashboard
// @Param        token  query  string  true  "Session token"
// @Router       /ws/dashboard [get]
func (h *DashboardWS) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_ws")

	// Browsers cannot set headers on websocket dials, so the session token
	// arrives as a query parameter here.
	token := r.URL.Query().Get("token")
	if _, err := h.gate.Check(ctx, token); err != nil {
		errorResponse(w, http.StatusUnauthorized, "access denied")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error(ctx, "failed to upgrade connection", err)
		return
	}

	viewerID, err := uuid.New()
	if err != nil {
		h.l.Error(ctx, "failed to generate viewer id", err)
		conn.Close()
		return
	}

	client := ws.NewConn(ctx, viewerID, conn)
	if err := h.hub.Add(client); err != nil {
		h.l.Error(ctx, "failed to register connection", err)
		conn.Close()
		return
	}

	metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Inc()
	h.l.Info(ctx, "dashboard viewer connected", "viewer_id", viewerID)

	defer func() {
		_ = h.hub.Delete(viewerID)
		metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Dec()
		h.l.Info(ctx, "dashboard viewer disconnected", "viewer_id", viewerID)
	}()

	err = client.Listen(func(raw []byte) error {
		var msg dto.WSCriteriaMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return client.Send(envelope{"error": "malformed criteria message"})
		}

		v := validator.New()
		req := msg.ToCriteriaRequest(v)

		// Omitted bounds fall back to the full dataset range, same as the
		// HTTP endpoints. An explicit "max_miles": 0 is a real bound.
		full := h.s.FullRangeCriteria()
		if req.From.IsZero() {
			req.From = full.From
		}
		if req.To.IsZero() {
			req.To = full.To
		}
		if msg.MinMiles == nil {
			req.MinMiles = full.MinMiles
		}
		if msg.MaxMiles == nil {
			req.MaxMiles = full.MaxMiles
		}

		req.Validate(v)
		if !v.Valid() {
			return client.Send(envelope{"error": v.Errors})
		}

		snap := h.s.Snapshot(ctx, req.ToCriteria(), req.ToChartOptions())
		return client.Send(envelope{"snapshot": snap})
	})
	if err != nil {
		h.l.Debug(ctx, "viewer listen loop ended", "viewer_id", viewerID, "reason", err.Error())
	}
}
