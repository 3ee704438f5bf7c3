// Package transport owns the raw WebSocket channel to the fe2.io event
// server, wrapped behind small Dialer/Conn interfaces.
package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	defaultWriteTimeout     = 10 * time.Second
)

// WebsocketDialer dials the event server over WebSocket using
// gorilla/websocket.
type WebsocketDialer struct {
	// HandshakeTimeout bounds the WebSocket opening handshake. Zero means
	// the default of 10 seconds.
	HandshakeTimeout time.Duration
}

// Dial implements Dialer.
func (d *WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	timeout := d.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}

	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	ws, resp, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	if resp != nil {
		_ = resp.Body.Close()
	}

	return &wsConn{ws: ws}, nil
}

type wsConn struct {
	ws *websocket.Conn

	// writeMu serializes writes; gorilla allows at most one concurrent
	// writer per connection.
	writeMu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

// ReadMessage implements Conn. gorilla reads have no context support, so
// cancellation is delivered by expiring the read deadline, which fails the
// blocked read immediately.
func (c *wsConn) ReadMessage(ctx context.Context) ([]byte, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.ws.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	_, data, err := c.ws.ReadMessage()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("read frame: %w", err)
	}

	return data, nil
}

// WriteText implements Conn.
func (c *wsConn) WriteText(ctx context.Context, payload string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(defaultWriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.ws.SetWriteDeadline(deadline)

	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}

// Close implements Conn.
func (c *wsConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}
