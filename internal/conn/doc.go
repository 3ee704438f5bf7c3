// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package conn manages the lifecycle of the connection to the fe2.io event
// server.
//
// It wraps a transport.Dialer with a reconnect state machine: every
// successful dial is followed by the username handshake, every read failure
// triggers capped exponential backoff with jitter, and reconnection is
// retried indefinitely. Network loss is never fatal; only context
// cancellation stops the manager.
package conn
