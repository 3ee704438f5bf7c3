package config

import (
	"errors"
	"fmt"
)

// Validation errors returned by [Config.validate] when the merged
// configuration is incomplete or invalid. All of them are fatal at startup.
var (
	// ErrInvalidConfig is the base class for configuration validation
	// failures; use errors.Is against it to detect any of them.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrMissingUsername indicates the required positional username
	// argument (or FE2IO_USERNAME) was not provided.
	ErrMissingUsername = fmt.Errorf("%w: username is required", ErrInvalidConfig)
	// ErrInvalidServerURL indicates the server URL is not a ws:// or
	// wss:// endpoint.
	ErrInvalidServerURL = fmt.Errorf("%w: server url must be a ws:// or wss:// endpoint", ErrInvalidConfig)
	// ErrInvalidBackoff indicates inconsistent reconnect delay settings
	// (non-positive initial delay, cap below the initial delay, or a
	// multiplier below 1).
	ErrInvalidBackoff = fmt.Errorf("%w: reconnect delay settings are inconsistent", ErrInvalidConfig)
)
