package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/MKhiriev/fe2io-go/internal/logger"
)

const (
	// sampleRate is the fixed mixer rate; decoded tracks are resampled to
	// it.
	sampleRate = beep.SampleRate(44100)

	resampleQuality = 4
	fetchTimeout    = 30 * time.Second
)

// Engine holds exclusive ownership of the audio output device.
//
// Open and Close are single-writer operations guarded by the engine mutex;
// Play, PlayTrack, and StopTrack are safe for concurrent use and never
// block on playback.
type Engine struct {
	out    output
	client *resty.Client
	log    *logger.Logger

	mu     sync.Mutex
	opened bool
	track  *beep.Ctrl
}

// New creates an Engine backed by the system speaker. The device is not
// claimed until Open is called.
func New(log *logger.Logger) *Engine {
	return &Engine{
		out:    speakerOutput{},
		client: resty.New().SetTimeout(fetchTimeout),
		log:    log,
	}
}

// Open claims the output device. Failure wraps ErrAudioInit and is fatal to
// the caller; a client without a device has nothing to do. Calling Open on
// an already open engine is a no-op.
func (e *Engine) Open() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.opened {
		return nil
	}

	if err := e.out.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioInit, err)
	}

	e.opened = true
	return nil
}

// Play starts a one-shot clip at the requested volume and returns without
// waiting for playback. Every call mixes an independent streamer, so
// overlapping requests play over each other instead of queueing or being
// dropped. Failures are logged and the cue is skipped.
func (e *Engine) Play(req Request) {
	e.mu.Lock()
	opened := e.opened
	e.mu.Unlock()
	if !opened {
		e.log.Error().Err(ErrEngineClosed).Str("clip", string(req.Clip)).Msg("playback skipped")
		return
	}

	streamer, err := newClipStreamer(req.Clip, sampleRate)
	if err != nil {
		e.log.Error().Err(err).Str("clip", string(req.Clip)).Msg("playback skipped")
		return
	}

	volume := Clamp(req.Volume)
	e.out.Play(&effects.Volume{
		Streamer: streamer,
		Base:     volumeBase,
		Volume:   gain(volume),
		Silent:   volume == 0,
	})

	e.log.Debug().Str("clip", string(req.Clip)).Float64("volume", volume).Msg("playing clip")
}

// PlayTrack fetches the background track at url, decodes it, and starts it
// in place of the previous track. Clips started via Play are unaffected.
// Fetch and decode failures are logged and absorbed; a missed track never
// crashes the client.
func (e *Engine) PlayTrack(ctx context.Context, trackURL string) {
	if err := e.playTrack(ctx, trackURL); err != nil {
		e.log.Error().Err(err).Str("url", trackURL).Msg("background track skipped")
	}
}

func (e *Engine) playTrack(ctx context.Context, trackURL string) error {
	e.mu.Lock()
	opened := e.opened
	e.mu.Unlock()
	if !opened {
		return ErrEngineClosed
	}

	resp, err := e.client.R().SetContext(ctx).Get(trackURL)
	if err != nil {
		return fmt.Errorf("fetch track: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("fetch track: server returned %s", resp.Status())
	}

	streamer, format, err := decodeTrack(trackURL, resp.Header().Get("Content-Type"), resp.Body())
	if err != nil {
		return fmt.Errorf("decode track: %w", err)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, sampleRate, s)
	}
	ctrl := &beep.Ctrl{Streamer: s}

	e.mu.Lock()
	old := e.track
	e.track = ctrl
	e.mu.Unlock()

	// A nil Ctrl streamer reports drained, which removes it from the
	// mixer; mutation must happen under the speaker lock.
	e.out.Lock()
	if old != nil {
		old.Streamer = nil
	}
	e.out.Unlock()

	e.out.Play(ctrl)
	e.log.Info().Str("url", trackURL).Msg("playing background track")
	return nil
}

// StopTrack silences the current background track, if any.
func (e *Engine) StopTrack() {
	e.mu.Lock()
	old := e.track
	e.track = nil
	e.mu.Unlock()

	if old == nil {
		return
	}

	e.out.Lock()
	old.Streamer = nil
	e.out.Unlock()

	e.log.Debug().Msg("background track stopped")
}

// Close releases the output device. In-flight clips are cut off rather than
// awaited; shutdown only needs the device handle back.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.opened {
		return
	}

	e.opened = false
	e.track = nil
	e.out.Close()
}

// decodeTrack picks a decoder from the response content type or the URL
// extension. The fe2.io catalogue serves ogg and mp3; wav shows up in
// custom maps.
func decodeTrack(trackURL, contentType string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	ext := ""
	if u, err := url.Parse(trackURL); err == nil {
		ext = strings.ToLower(path.Ext(u.Path))
	}

	switch {
	case strings.Contains(contentType, "ogg") || ext == ".ogg":
		return vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	case strings.Contains(contentType, "wav") || ext == ".wav":
		return wav.Decode(bytes.NewReader(data))
	default:
		return mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	}
}
