package transport

import "context"

// Dialer opens connections to the event server. It is an interface so that
// connection-management tests can run against in-memory fakes.
type Dialer interface {
	// Dial opens a connection to the given ws:// or wss:// URL. It
	// respects ctx cancellation while the connection is being
	// established.
	Dial(ctx context.Context, url string) (Conn, error)
}

// Conn is a single bidirectional message channel to the event server.
// At most one Conn produced by a Dialer is open at any time; the owner
// closes the previous one before dialing again.
type Conn interface {
	// ReadMessage blocks until the next frame arrives, the connection
	// drops, or ctx is cancelled.
	ReadMessage(ctx context.Context) ([]byte, error)
	// WriteText sends a single text frame.
	WriteText(ctx context.Context, payload string) error
	// Close tears the connection down. Safe to call more than once.
	Close() error
}
