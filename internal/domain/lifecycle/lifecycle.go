// Package lifecycle holds shared bounds for process startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of long-lived clients.
const DefaultTimeout = 10 * time.Second
