package conn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/fe2io-go/internal/config"
	"github.com/MKhiriev/fe2io-go/internal/logger"
	"github.com/MKhiriev/fe2io-go/internal/transport"
)

// jitter spreads reconnect delays so that many clients dropped by the same
// server outage do not redial in lockstep.
const jitter = 250 * time.Millisecond

// Manager owns the connection to the event server. All methods must be
// called from the single goroutine that drives the read loop; the manager
// holds no locks of its own.
type Manager struct {
	username     string
	url          string
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64

	dialer transport.Dialer
	log    *logger.Logger

	conn    transport.Conn
	session string
	status  Status
}

// New creates a Manager for the endpoint and backoff settings in cfg. The
// manager is idle until Connect or Next is called.
func New(cfg *config.Config, dialer transport.Dialer, log *logger.Logger) *Manager {
	return &Manager{
		username:     cfg.Username,
		url:          cfg.ServerURL,
		initialDelay: cfg.InitialDelay,
		maxDelay:     cfg.MaxDelay,
		multiplier:   cfg.Multiplier,
		dialer:       dialer,
		log:          log,
	}
}

// Status returns a snapshot of the current connection state.
func (m *Manager) Status() Status {
	return m.status
}

// Connect establishes a connection to the server and sends the username
// handshake, retrying with capped exponential backoff until it succeeds or
// ctx is cancelled.
//
// An empty username fails immediately with config.ErrMissingUsername before
// any dial attempt; no network cost is wasted on a connection the server
// would reject.
func (m *Manager) Connect(ctx context.Context) error {
	if strings.TrimSpace(m.username) == "" {
		return config.ErrMissingUsername
	}

	backoff := newBackoff(m.initialDelay, m.maxDelay, m.multiplier, jitter)
	for {
		if err := ctx.Err(); err != nil {
			m.status = Status{State: StateDisconnected}
			return err
		}

		m.status = Status{State: StateConnecting}
		err := m.dial(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			m.status = Status{State: StateDisconnected}
			return ctx.Err()
		}

		delay, _ := backoff.Next()
		m.status = Status{State: StateBackoff, Delay: delay}
		m.log.Warn().
			Err(err).
			Str("url", m.url).
			Dur("retry_in", delay).
			Msg("failed to connect to server, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			m.status = Status{State: StateDisconnected}
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// dial opens a fresh transport and replays the handshake. On handshake
// failure the transport is closed before returning, so a failed attempt
// never leaves a connection open.
func (m *Manager) dial(ctx context.Context) error {
	c, err := m.dialer.Dial(ctx, m.url)
	if err != nil {
		return err
	}

	if err := c.WriteText(ctx, m.username); err != nil {
		_ = c.Close()
		return fmt.Errorf("handshake: %w", err)
	}

	m.conn = c
	m.session = uuid.NewString()
	m.status = Status{State: StateConnected}
	m.log.Info().
		Str("session", m.session).
		Str("url", m.url).
		Str("username", m.username).
		Msg("connected to server")

	return nil
}

// Next blocks until the next frame arrives from the server. If the
// connection drops, Next absorbs the failure, reconnects with backoff
// (replaying the handshake), and keeps waiting. It returns an error only
// when ctx is cancelled.
//
// Missed events during an outage are lost; the server is not assumed to
// buffer.
func (m *Manager) Next(ctx context.Context) ([]byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if m.conn == nil {
			if err := m.Connect(ctx); err != nil {
				return nil, err
			}
		}

		frame, err := m.conn.ReadMessage(ctx)
		if err == nil {
			return frame, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		m.log.Warn().
			Err(err).
			Str("session", m.session).
			Msg("lost connection to server, reconnecting")
		m.teardown()
	}
}

// Close tears down the live transport, if any. Safe to call when
// disconnected.
func (m *Manager) Close() error {
	var err error
	if m.conn != nil {
		err = m.conn.Close()
	}
	m.teardown()
	return err
}

// teardown closes and forgets the current transport so the next dial never
// overlaps with a previous connection.
func (m *Manager) teardown() {
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.session = ""
	m.status = Status{State: StateDisconnected}
}
