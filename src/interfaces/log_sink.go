package interfaces

import "benchmark-observer/src/models"

// -----------------------------------------------------------------------------
// ILogSink is the set of append-only per-run logs classified traffic goes to.
// -----------------------------------------------------------------------------

type ILogSink interface {

	// Append writes one line for record to the named log.
	Append(name models.MLogName, record models.MTrafficLogRecord) error

	// -----------------------------------------------------------------------------

	// Prefix is the process-start timestamp shared by every file name.
	Prefix() string

	// -----------------------------------------------------------------------------

	Close() error
}
