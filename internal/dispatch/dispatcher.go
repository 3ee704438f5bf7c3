// Package dispatch maps decoded game events onto audio engine actions.
//
// The mapping is a pure policy with no memory of prior events: death plays
// the death cue at the configured volume, bgm swaps the background track,
// round end stops it, and everything else is an explicit no-op.
package dispatch

import (
	"context"
	"sync"

	"github.com/MKhiriev/fe2io-go/internal/audio"
	"github.com/MKhiriev/fe2io-go/internal/logger"
	"github.com/MKhiriev/fe2io-go/internal/protocol"
)

// Engine is the slice of the audio engine the dispatcher drives.
type Engine interface {
	Play(req audio.Request)
	PlayTrack(ctx context.Context, url string)
	StopTrack()
}

// Dispatcher turns game events into playback calls. Dispatch is idempotent
// per call; two identical events produce two identical actions.
type Dispatcher struct {
	engine Engine
	volume float64
	log    *logger.Logger

	wg sync.WaitGroup
}

// New creates a Dispatcher playing death cues at the given linear volume.
// The volume is clamped to [0, 1] once here, so the engine never sees an
// out-of-range value.
func New(engine Engine, volume float64, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		engine: engine,
		volume: audio.Clamp(volume),
		log:    log,
	}
}

// Dispatch applies the playback policy to a single event.
//
// Track fetches run as fire-and-forget goroutines so a slow download never
// stalls the caller's read loop; Wait drains them during shutdown.
func (d *Dispatcher) Dispatch(ctx context.Context, ev protocol.GameEvent) {
	switch ev.Kind {
	case protocol.EventDeath:
		d.engine.Play(audio.Request{Clip: audio.ClipDeath, Volume: d.volume})
	case protocol.EventBgm:
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.engine.PlayTrack(ctx, ev.AudioURL)
		}()
	case protocol.EventRoundEnd:
		d.engine.StopTrack()
	case protocol.EventRoundStart:
		// Reserved; the server announces it but no cue is assigned yet.
	default:
		d.log.Debug().Str("frame", string(ev.Raw)).Msg("ignoring unrecognized frame")
	}
}

// Wait blocks until all in-flight track fetches have returned. Called once
// while shutting down; cancelling the dispatch context unblocks them.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
