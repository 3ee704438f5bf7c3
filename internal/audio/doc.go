// Package audio owns the output device and turns playback requests into
// sound.
//
// The engine claims the speaker once at startup; claiming it is the only
// fatal audio operation. Individual playback calls are non-blocking and may
// overlap freely: every request is mixed as an independent streamer, so a
// burst of death cues produces a burst of overlapping clips instead of
// dropped ones. Per-call failures are logged and absorbed.
package audio
