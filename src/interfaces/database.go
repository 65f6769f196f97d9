package interfaces

import (
	"context"

	"benchmark-observer/src/models"
)

// -----------------------------------------------------------------------------
// IRecordStore mirrors classified records and run summaries into a database.
// -----------------------------------------------------------------------------

type IRecordStore interface {

	// -----------------------------------------------------------------------------

	// Initialize opens the connection and creates missing tables.
	Initialize(ctx context.Context) error

	// -----------------------------------------------------------------------------

	// SaveRecord inserts one classified record and sets its ID.
	SaveRecord(ctx context.Context, rec *models.MStoredRecord) error

	// -----------------------------------------------------------------------------

	// QueryRecords returns the newest records first. bucket may be "" (all),
	// a bucket name, or "realslow".
	QueryRecords(ctx context.Context, bucket string, limit int) ([]models.MStoredRecord, error)

	// -----------------------------------------------------------------------------

	// SaveRunSummary stores the shutdown summary of this run.
	SaveRunSummary(ctx context.Context, summary models.MRunSummary) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
