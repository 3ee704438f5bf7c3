// Package runner composes the connection manager, message parser, event
// dispatcher, and audio engine into a single long-lived control loop.
//
// The runner walks a four-state machine: Starting claims the audio device
// (before any network attempt), Running drives next frame -> parse ->
// dispatch, ShuttingDown releases the transport and the engine handle, and
// Stopped is terminal. Cancellation is cooperative: the context is checked
// at the top of every loop iteration and inside every backoff wait, so even
// a pending 30s reconnect delay is interruptible.
package runner

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/MKhiriev/fe2io-go/internal/logger"
	"github.com/MKhiriev/fe2io-go/internal/protocol"
)

// State enumerates the runner lifecycle states.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateShuttingDown
	StateStopped
)

// String returns the state name used in log fields.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shuttingDown"
	case StateStopped:
		return "stopped"
	default:
		return "starting"
	}
}

// Runner owns the process lifecycle. A Runner is used for a single Run call.
type Runner struct {
	source     EventSource
	dispatcher Dispatcher
	engine     Engine
	log        *logger.Logger

	state atomic.Int32
}

// New creates a Runner over the given collaborators.
func New(source EventSource, dispatcher Dispatcher, engine Engine, log *logger.Logger) *Runner {
	return &Runner{
		source:     source,
		dispatcher: dispatcher,
		engine:     engine,
		log:        log,
	}
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
	r.log.Debug().Stringer("state", s).Msg("runner state changed")
}

// Run executes the full lifecycle and blocks until ctx is cancelled or a
// fatal startup error occurs.
//
// Startup failures (audio device unavailable, invalid configuration) are
// returned to the caller for a non-zero exit. Once Running is reached the
// only way out is cancellation, which produces a clean shutdown and a nil
// return.
func (r *Runner) Run(ctx context.Context) error {
	r.setState(StateStarting)

	// The device is claimed before the first dial: an unusable audio
	// setup must fail without any network cost.
	if err := r.engine.Open(); err != nil {
		r.setState(StateStopped)
		return err
	}

	if err := r.source.Connect(ctx); err != nil {
		r.shutdown()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	r.setState(StateRunning)
	for {
		if ctx.Err() != nil {
			break
		}

		frame, err := r.source.Next(ctx)
		if err != nil {
			// Next absorbs connection loss internally; reaching
			// here means cancellation.
			break
		}

		ev := protocol.Parse(frame)
		r.log.Debug().Stringer("event", ev.Kind).Msg("received event")
		r.dispatcher.Dispatch(ctx, ev)
	}

	r.shutdown()
	return nil
}

// shutdown releases the transport, drains in-flight playback work, and
// gives the device handle back. It does not wait for clips to finish.
func (r *Runner) shutdown() {
	r.setState(StateShuttingDown)
	_ = r.source.Close()
	r.dispatcher.Wait()
	r.engine.Close()
	r.setState(StateStopped)
	r.log.Info().Msg("shutdown complete")
}
