package audio

import "errors"

var (
	// ErrAudioInit indicates the output device could not be claimed at
	// startup. Fatal: without a device the client has no purpose.
	ErrAudioInit = errors.New("audio device initialization failed")
	// ErrEngineClosed indicates a playback request arrived before Open or
	// after Close. Recoverable: the cue is skipped.
	ErrEngineClosed = errors.New("audio engine is not open")
)
