// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
)

// ClipID identifies a locally synthesized audio cue.
type ClipID string

// ClipDeath is the cue played when the tracked player dies.
const ClipDeath ClipID = "death"

// Request is a single one-shot playback order: which clip to play and at
// what linear volume. It is created per dispatched event and consumed once.
type Request struct {
	Clip   ClipID
	Volume float64
}

// newClipStreamer builds the streamer for a clip at the engine sample rate.
// Clips are synthesized rather than bundled, so the binary ships without
// audio assets.
func newClipStreamer(id ClipID, sr beep.SampleRate) (beep.Streamer, error) {
	switch id {
	case ClipDeath:
		return deathClip(sr)
	default:
		return nil, fmt.Errorf("unknown clip %q", id)
	}
}

// deathClip is a short descending two-tone burst.
func deathClip(sr beep.SampleRate) (beep.Streamer, error) {
	high, err := generators.SinTone(sr, 880)
	if err != nil {
		return nil, fmt.Errorf("synthesize death clip: %w", err)
	}
	low, err := generators.SinTone(sr, 440)
	if err != nil {
		return nil, fmt.Errorf("synthesize death clip: %w", err)
	}

	return beep.Seq(
		beep.Take(sr.N(120*time.Millisecond), high),
		beep.Take(sr.N(220*time.Millisecond), low),
	), nil
}
