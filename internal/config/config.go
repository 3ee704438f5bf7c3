package config

import (
	"os"
	"time"
)

// Default values applied when neither environment variables nor flags set a
// field.
const (
	// DefaultVolume is the playback volume for death cues.
	DefaultVolume = 0.5
	// DefaultServerURL is the public fe2.io event server endpoint.
	DefaultServerURL = "ws://client.fe2.io:8081"
	// DefaultInitialDelay is the first reconnect delay after a dropped
	// connection.
	DefaultInitialDelay = 1 * time.Second
	// DefaultMaxDelay caps the growth of the reconnect delay.
	DefaultMaxDelay = 30 * time.Second
	// DefaultMultiplier is the factor applied to the reconnect delay after
	// each failed attempt.
	DefaultMultiplier = 2.0
)

// Config holds all runtime settings of the fe2io client. It is read-only
// after startup and owned by the process entry point; dependents receive it
// by pointer.
type Config struct {
	// Username is the player name sent to the server as the handshake
	// frame. Required, non-empty.
	Username string `env:"FE2IO_USERNAME"`
	// Volume is the linear playback volume for death cues in [0, 1].
	Volume float64 `env:"FE2IO_VOLUME"`
	// ServerURL is the WebSocket endpoint of the event server.
	ServerURL string `env:"FE2IO_URL"`
	// InitialDelay is the first reconnect backoff delay.
	InitialDelay time.Duration `env:"FE2IO_DELAY"`
	// MaxDelay caps the reconnect backoff delay.
	MaxDelay time.Duration `env:"FE2IO_MAX_DELAY"`
	// Multiplier grows the reconnect delay after each failed attempt.
	Multiplier float64 `env:"FE2IO_BACKOFF"`
}

// GetConfig assembles the client configuration from environment variables,
// command-line arguments, and defaults, then validates the merged result.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withDefaults().
		build()
}
