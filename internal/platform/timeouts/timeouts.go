// Package timeouts defines shared timeout constants. Keeping them in one
// place stops the CLI, the journal store and telemetry from drifting apart.
package timeouts

import "time"

// StorageBusy is how long SQLite waits on a locked journal before failing.
const StorageBusy = 5 * time.Second

// TelemetryShutdown limits how long buffered spans may take to flush on exit.
const TelemetryShutdown = 5 * time.Second

