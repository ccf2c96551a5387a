package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub stores and manages all active viewer websocket connections.
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// Add registers a new connection in the hub. If a connection with the same
// viewer ID already exists, it is closed and replaced.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.viewerID]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"viewer_id", existing.viewerID,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"viewer_id", existing.viewerID,
				"err", err.Error(),
			)
		}
	}

	h.clients[newConn.viewerID] = newConn
	h.wg.Add(1)

	return nil
}

// Delete removes and closes the connection with the given viewer ID.
func (h *ConnectionHub) Delete(viewerID uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[viewerID]
	if !ok {
		h.l.Warn(ctx,
			"delete called for unknown viewer",
			"viewer_id", viewerID,
		)
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close conn",
			"viewer_id", conn.viewerID,
			"err", err.Error(),
		)
	}

	delete(h.clients, viewerID)
	h.wg.Done()

	return nil
}

// SendTo delivers a message to a specific viewer.
// Returns ErrConnIsNotFound when the connection is unknown.
func (h *ConnectionHub) SendTo(id uuid.UUID, msg any) error {
	h.mu.Lock()
	conn, ok := h.clients[id]
	h.mu.Unlock()

	if !ok {
		return ErrConnIsNotFound
	}
	return conn.Send(msg)
}

// Broadcast sends a message to every connected viewer. Failed sends are
// logged but do not stop delivery to the remaining viewers.
func (h *ConnectionHub) Broadcast(msg any) {
	ctx := wrap.WithAction(context.Background(), "hub_broadcast")

	for _, conn := range h.Clients() {
		if err := conn.Send(msg); err != nil {
			h.l.Warn(ctx,
				"failed to broadcast to viewer",
				"viewer_id", conn.viewerID,
				"err", err.Error(),
			)
		}
	}
}

// Close closes every websocket connection and waits for them to drain.
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	for _, conn := range clients {
		_ = h.Delete(conn.viewerID)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}

// Clients returns a copy of the current connection map values.
func (h *ConnectionHub) Clients() []*Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		out = append(out, conn)
	}
	return out
}
