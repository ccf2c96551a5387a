package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/citydash/tripdash/pkg/uuid"
	"github.com/gorilla/websocket"
)

// Conn wraps a single viewer websocket connection. Writes are serialized
// through the mutex since gorilla/websocket allows only one concurrent writer.
type Conn struct {
	conn     *websocket.Conn
	viewerID uuid.UUID
	doneCtx  context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
}

func NewConn(ctx context.Context, viewerID uuid.UUID, conn *websocket.Conn) *Conn {
	ctx, cancel := context.WithCancel(ctx)

	return &Conn{
		conn:     conn,
		viewerID: viewerID,
		doneCtx:  ctx,
		cancel:   cancel,
	}
}

func (c *Conn) ViewerID() uuid.UUID {
	return c.viewerID
}

func (c *Conn) health() error {
	if c.conn == nil {
		return errors.New("connection is nil")
	}

	select {
	case <-c.doneCtx.Done():
		return errors.New("connection context cancelled")
	default:
	}

	if err := c.conn.WriteControl(
		websocket.PingMessage,
		[]byte("ping"),
		time.Now().Add(3*time.Second),
	); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

// Send writes a JSON payload to the viewer.
func (c *Conn) Send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.health(); err != nil {
		return fmt.Errorf("send failed: connection not healthy: %w", err)
	}
	return c.conn.WriteJSON(msg)
}

// Listen reads JSON messages until the connection is closed, passing each
// one to the handler.
func (c *Conn) Listen(handler func(raw []byte) error) error {
	for {
		select {
		case <-c.doneCtx.Done():
			return errors.New("listen stopped: context done")
		default:
			_, raw, err := c.conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("read failed: %w", err)
			}
			if err := handler(raw); err != nil {
				return fmt.Errorf("handler failed: %w", err)
			}
		}
	}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
