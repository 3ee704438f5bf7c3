// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [Config] satisfies all application
// invariants before it is used at startup. Validation runs before any
// network or audio device access, so misconfiguration costs nothing.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *Config) validate() error {
	if strings.TrimSpace(cfg.Username) == "" {
		return ErrMissingUsername
	}

	if !strings.HasPrefix(cfg.ServerURL, "ws://") && !strings.HasPrefix(cfg.ServerURL, "wss://") {
		return ErrInvalidServerURL
	}

	if cfg.InitialDelay <= 0 || cfg.MaxDelay < cfg.InitialDelay || cfg.Multiplier < 1 {
		return ErrInvalidBackoff
	}

	return nil
}
