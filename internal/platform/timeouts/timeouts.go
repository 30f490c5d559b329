// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StorageAcquire caps the wait for a request-scoped storage handle.
const StorageAcquire = 3 * time.Second

// SessionSweep is the interval between expired session sweeps.
const SessionSweep = 10 * time.Minute
