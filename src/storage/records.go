package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/interfaces"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/models"
)

const (
	defaultQueryLimit = 200
	maxQueryLimit     = 2000
)

// -----------------------------------------------------------------------------

// NewRecordStore picks the backend from storage.db_type. "none" (or empty)
// returns a nil store: records then only live in the log files.
func NewRecordStore(ctx context.Context, cfg *models.MConfig, runPrefix string, log *logger.Logger) (interfaces.IRecordStore, error) {
	var (
		store interfaces.IRecordStore
		err   error
	)

	switch strings.ToLower(cfg.Storage.DBType) {
	case "", "none":
		return nil, nil
	case "postgres":
		store, err = NewPostgresStore(cfg, runPrefix, log)
	default:
		store, err = NewSQLiteStore(cfg, runPrefix, log)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// -----------------------------------------------------------------------------

// bucketFilter builds the WHERE clause for QueryRecords. placeholder renders
// the n-th (1-based) bind parameter for the driver.
func bucketFilter(bucket string, placeholder func(n int) string) (string, []interface{}) {
	switch bucket {
	case "":
		return "", nil
	case "realslow":
		return fmt.Sprintf("WHERE realslow = %s", placeholder(1)), []interface{}{true}
	default:
		return fmt.Sprintf("WHERE bucket = %s", placeholder(1)), []interface{}{bucket}
	}
}

// -----------------------------------------------------------------------------

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultQueryLimit
	}
	if limit > maxQueryLimit {
		return maxQueryLimit
	}
	return limit
}

// -----------------------------------------------------------------------------

func scanRecords(rows *sql.Rows) ([]models.MStoredRecord, error) {
	defer rows.Close()

	out := make([]models.MStoredRecord, 0, 64)
	for rows.Next() {
		var (
			r      models.MStoredRecord
			bucket string
		)
		if err := rows.Scan(
			&r.ID,
			&bucket,
			&r.RealSlow,
			&r.PerfFactor,
			&r.OriginalExecTime,
			&r.NewExecTime,
			&r.RequestMethod,
			&r.RequestURL,
			&r.ResponseStatus,
			&r.ProcessTime,
			&r.ClientHost,
			&r.RequestSize,
			&r.CreatedAt,
		); err != nil {
			return nil, helpers.NewDatabaseError("failed to scan record", err)
		}
		r.Bucket = models.MBucket(bucket)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, helpers.NewDatabaseError("failed to iterate records", err)
	}
	return out, nil
}
