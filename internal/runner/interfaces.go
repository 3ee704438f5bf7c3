package runner

import (
	"context"

	"github.com/MKhiriev/fe2io-go/internal/protocol"
)

// EventSource delivers raw frames from the event server. Connection loss is
// absorbed inside the source; Next fails only on cancellation.
type EventSource interface {
	Connect(ctx context.Context) error
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// Dispatcher applies the event-to-audio policy. Wait drains fire-and-forget
// playback work during shutdown.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev protocol.GameEvent)
	Wait()
}

// Engine is the audio engine lifecycle as seen by the runner.
type Engine interface {
	Open() error
	Close()
}
