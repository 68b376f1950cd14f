package relay

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client wraps a websocket connection registered with the hub.
type Client struct {
	id     string
	conn   *websocket.Conn
	logger *zap.Logger
	mu     sync.Mutex
}

// NewClient constructs a client wrapper.
func NewClient(id string, conn *websocket.Conn, logger *zap.Logger) *Client {
	return &Client{id: id, conn: conn, logger: logger}
}

// ID returns the connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Send writes a message to the websocket connection.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.logger.Warn("websocket send failed", zap.String("connection_id", c.id), zap.Error(err))
		_ = c.conn.Close()
		return err
	}
	return nil
}

// Close terminates the connection.
func (c *Client) Close() {
	_ = c.conn.Close()
}
