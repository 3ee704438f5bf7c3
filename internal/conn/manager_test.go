package conn

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fe2io-go/internal/config"
	"github.com/MKhiriev/fe2io-go/internal/logger"
	"github.com/MKhiriev/fe2io-go/internal/transport"
)

type readResult struct {
	data []byte
	err  error
}

// fakeConn replays a scripted sequence of reads and records writes.
type fakeConn struct {
	mu     sync.Mutex
	reads  chan readResult
	writes []string
	closed bool
}

func newFakeConn(script ...readResult) *fakeConn {
	reads := make(chan readResult, len(script))
	for _, r := range script {
		reads <- r
	}
	return &fakeConn{reads: reads}
}

func (c *fakeConn) ReadMessage(ctx context.Context) ([]byte, error) {
	select {
	case r := <-c.reads:
		return r.data, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *fakeConn) WriteText(_ context.Context, payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, payload)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) handshakes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeDialer hands out scripted errors first, then scripted connections.
type fakeDialer struct {
	mu       sync.Mutex
	dialErrs []error
	conns    []*fakeConn
	dials    int
}

func (d *fakeDialer) Dial(_ context.Context, _ string) (transport.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dials++
	if len(d.dialErrs) > 0 {
		err := d.dialErrs[0]
		d.dialErrs = d.dialErrs[1:]
		return nil, err
	}
	if len(d.conns) == 0 {
		return nil, errors.New("dialer script exhausted")
	}

	c := d.conns[0]
	d.conns = d.conns[1:]
	return c, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func testConfig() *config.Config {
	return &config.Config{
		Username:     "alice",
		Volume:       0.5,
		ServerURL:    "ws://test.invalid:8081",
		InitialDelay: time.Millisecond,
		MaxDelay:     4 * time.Millisecond,
		Multiplier:   2,
	}
}

// ── backoff ──────────────────────────────────────────────────────────────────

// TestNewBackoff_Sequence checks that the un-jittered delay sequence is
// non-decreasing until the cap and then stays at the cap.
func TestNewBackoff_Sequence(t *testing.T) {
	b := newBackoff(1*time.Second, 30*time.Second, 2, 0)

	expected := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}

	prev := time.Duration(0)
	for i, want := range expected {
		got, stop := b.Next()
		require.False(t, stop, "reconnect backoff never signals stop")
		assert.Equal(t, want, got, "delay %d", i)
		assert.GreaterOrEqual(t, got, prev, "delays never shrink")
		prev = got
	}
}

// TestNewBackoff_Jitter checks that jittered delays stay within the jitter
// window around the exponential value.
func TestNewBackoff_Jitter(t *testing.T) {
	const jitterWindow = 100 * time.Millisecond
	b := newBackoff(1*time.Second, 30*time.Second, 2, jitterWindow)

	got, stop := b.Next()
	require.False(t, stop)
	assert.GreaterOrEqual(t, got, 1*time.Second-jitterWindow)
	assert.LessOrEqual(t, got, 1*time.Second+jitterWindow)
}

// TestNewBackoff_FractionalMultiplier checks a non-doubling growth factor.
func TestNewBackoff_FractionalMultiplier(t *testing.T) {
	b := newBackoff(time.Second, 10*time.Second, 1.5, 0)

	first, _ := b.Next()
	second, _ := b.Next()

	assert.Equal(t, time.Second, first)
	assert.Equal(t, 1500*time.Millisecond, second)
}

// ── Connect ──────────────────────────────────────────────────────────────────

func TestManager_Connect_EmptyUsername(t *testing.T) {
	cfg := testConfig()
	cfg.Username = "  "
	dialer := &fakeDialer{}
	m := New(cfg, dialer, logger.Nop())

	err := m.Connect(context.Background())

	assert.ErrorIs(t, err, config.ErrMissingUsername)
	assert.Equal(t, 0, dialer.dialCount(), "no network cost before validation passes")
}

func TestManager_Connect_SendsHandshake(t *testing.T) {
	c := newFakeConn()
	dialer := &fakeDialer{conns: []*fakeConn{c}}
	m := New(testConfig(), dialer, logger.Nop())

	require.NoError(t, m.Connect(context.Background()))

	assert.Equal(t, []string{"alice"}, c.handshakes())
	assert.Equal(t, StateConnected, m.Status().State)
}

func TestManager_Connect_RetriesUntilSuccess(t *testing.T) {
	c := newFakeConn()
	dialer := &fakeDialer{
		dialErrs: []error{errors.New("refused"), errors.New("refused")},
		conns:    []*fakeConn{c},
	}
	m := New(testConfig(), dialer, logger.Nop())

	require.NoError(t, m.Connect(context.Background()))

	assert.Equal(t, 3, dialer.dialCount())
	assert.Equal(t, []string{"alice"}, c.handshakes())
}

func TestManager_Connect_CancelDuringBackoff(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = time.Hour
	cfg.MaxDelay = time.Hour
	dialer := &fakeDialer{} // always fails: script exhausted
	m := New(cfg, dialer, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := m.Connect(ctx)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "a pending backoff wait must be interruptible")
	assert.Equal(t, StateDisconnected, m.Status().State)
}

// ── Next ─────────────────────────────────────────────────────────────────────

func TestManager_Next_DeliversFrame(t *testing.T) {
	frame := []byte(`{"msgType":"gameStatus","statusType":"died"}`)
	c := newFakeConn(readResult{data: frame})
	dialer := &fakeDialer{conns: []*fakeConn{c}}
	m := New(testConfig(), dialer, logger.Nop())

	got, err := m.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, frame, got)
}

// TestManager_Next_ReconnectsAndReplaysHandshake checks that a read failure
// is absorbed: the dead transport is closed before a new one is opened, the
// handshake is replayed, and the next frame is delivered.
func TestManager_Next_ReconnectsAndReplaysHandshake(t *testing.T) {
	frame := []byte(`{"msgType":"gameStatus","statusType":"died"}`)
	dead := newFakeConn(readResult{err: errors.New("connection reset")})
	alive := newFakeConn(readResult{data: frame})
	dialer := &fakeDialer{conns: []*fakeConn{dead, alive}}
	m := New(testConfig(), dialer, logger.Nop())

	require.NoError(t, m.Connect(context.Background()))

	got, err := m.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, frame, got)
	assert.Equal(t, 2, dialer.dialCount())
	assert.True(t, dead.isClosed(), "old transport is closed before redialing")
	assert.Equal(t, []string{"alice"}, alive.handshakes(), "handshake replayed on reconnect")
}

func TestManager_Next_CancelWhileWaiting(t *testing.T) {
	c := newFakeConn() // no frames scripted: read blocks until ctx is done
	dialer := &fakeDialer{conns: []*fakeConn{c}}
	m := New(testConfig(), dialer, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := m.Next(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

// ── Close ────────────────────────────────────────────────────────────────────

func TestManager_Close(t *testing.T) {
	c := newFakeConn()
	dialer := &fakeDialer{conns: []*fakeConn{c}}
	m := New(testConfig(), dialer, logger.Nop())

	require.NoError(t, m.Connect(context.Background()))
	require.NoError(t, m.Close())

	assert.True(t, c.isClosed())
	assert.Equal(t, StateDisconnected, m.Status().State)
}

func TestManager_Close_WhenDisconnected(t *testing.T) {
	m := New(testConfig(), &fakeDialer{}, logger.Nop())

	assert.NotPanics(t, func() { _ = m.Close() })
}
