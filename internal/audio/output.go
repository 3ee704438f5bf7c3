package audio

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// output abstracts the speaker so engine tests can count playback calls
// without touching a real device.
type output interface {
	// Init claims the output device. Single writer: called once by Open.
	Init(sr beep.SampleRate, bufferSize int) error
	// Play mixes streamers into the running output. Safe for concurrent
	// use; the speaker serializes access to the mixer internally.
	Play(s ...beep.Streamer)
	// Lock/Unlock guard mutations of streamers that are already playing.
	Lock()
	Unlock()
	// Close releases the device.
	Close()
}

// speakerOutput is the production output backed by the beep speaker.
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }

func (speakerOutput) Lock() { speaker.Lock() }

func (speakerOutput) Unlock() { speaker.Unlock() }

func (speakerOutput) Close() { speaker.Close() }
