package config

import (
	"flag"
	"io"
	"time"
)

// parseFlags parses command-line configuration from args (without the
// program name).
//
// Usage:
//
//	fe2io [flags] <username>
//
// Flags:
//
//	-v/-volume playback volume for death cues (0.0-1.0)
//	-u/-url WebSocket server URL
//	-delay initial reconnect delay (e.g., "1s")
//	-max-delay reconnect delay cap (e.g., "30s")
//	-backoff reconnect delay multiplier
func parseFlags(args []string) (*Config, error) {
	var volume float64
	var serverURL string
	var initialDelay time.Duration
	var maxDelay time.Duration
	var multiplier float64

	fs := flag.NewFlagSet("fe2io", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Float64Var(&volume, "v", 0, "Playback volume for death cues (0.0-1.0)")
	fs.Float64Var(&volume, "volume", 0, "Playback volume for death cues (alias)")
	fs.StringVar(&serverURL, "u", "", "WebSocket server URL")
	fs.StringVar(&serverURL, "url", "", "WebSocket server URL (alias)")
	fs.DurationVar(&initialDelay, "delay", 0, "Initial reconnect delay (e.g., 1s)")
	fs.DurationVar(&maxDelay, "max-delay", 0, "Reconnect delay cap (e.g., 30s)")
	fs.Float64Var(&multiplier, "backoff", 0, "Reconnect delay multiplier")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Config{
		Username:     fs.Arg(0),
		Volume:       volume,
		ServerURL:    serverURL,
		InitialDelay: initialDelay,
		MaxDelay:     maxDelay,
		Multiplier:   multiplier,
	}, nil
}
