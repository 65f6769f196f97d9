package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteStore struct {
	Config    *models.MConfig
	DB        *sql.DB
	Logger    *logger.Logger
	RunPrefix string

	insert *sql.Stmt
}

// -----------------------------------------------------------------------------

func NewSQLiteStore(cfg *models.MConfig, runPrefix string, log *logger.Logger) (*SQLiteStore, error) {
	return &SQLiteStore{
		Config:    cfg,
		Logger:    log,
		RunPrefix: runPrefix,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Initialize(ctx context.Context) error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewDatabaseError("failed to open sqlite", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return helpers.NewDatabaseError("failed to ping sqlite", err)
	}

	// One writer; sqlite serialises anyway and this avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)
	d.DB = db

	// PRAGMA optimizations
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	if err := d.createTables(ctx); err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO benchmark_records (
			run_prefix, bucket, realslow, perf_factor, ori_exec_time, exec_time_newdb,
			request_method, request_url, response_status, process_time, client_host,
			request_size, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return helpers.NewDatabaseError("failed to prepare insert", err)
	}
	d.insert = stmt

	d.Logger.Info("SQLiteStore initialized (%s)", dsn)
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) createTables(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS benchmark_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_prefix TEXT NOT NULL,
			bucket TEXT NOT NULL,
			realslow INTEGER NOT NULL,
			perf_factor REAL NOT NULL,
			ori_exec_time REAL NOT NULL,
			exec_time_newdb REAL NOT NULL,
			request_method TEXT,
			request_url TEXT,
			response_status INTEGER,
			process_time REAL,
			client_host TEXT,
			request_size INTEGER,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_bucket ON benchmark_records(bucket);`,
		`CREATE INDEX IF NOT EXISTS idx_records_run ON benchmark_records(run_prefix);`,
		`CREATE TABLE IF NOT EXISTS test_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			tot_exectime_new REAL NOT NULL,
			tot_exectime_old REAL NOT NULL,
			nr_calls INTEGER NOT NULL,
			nr_clientdisconnect INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := d.DB.ExecContext(ctx, q); err != nil {
			return helpers.NewDatabaseError("failed to create tables", err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) SaveRecord(ctx context.Context, rec *models.MStoredRecord) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := d.insert.ExecContext(ctx,
		d.RunPrefix,
		string(rec.Bucket),
		rec.RealSlow,
		rec.PerfFactor,
		rec.OriginalExecTime,
		rec.NewExecTime,
		rec.RequestMethod,
		rec.RequestURL,
		rec.ResponseStatus,
		rec.ProcessTime,
		rec.ClientHost,
		rec.RequestSize,
		rec.CreatedAt,
	)
	if err != nil {
		return helpers.NewDatabaseError("failed to insert record", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) QueryRecords(ctx context.Context, bucket string, limit int) ([]models.MStoredRecord, error) {
	where, args := bucketFilter(bucket, func(int) string { return "?" })
	query := fmt.Sprintf(`
		SELECT id, bucket, realslow, perf_factor, ori_exec_time, exec_time_newdb,
			request_method, request_url, response_status, process_time, client_host,
			request_size, created_at
		FROM benchmark_records
		%s
		ORDER BY id DESC
		LIMIT ?
	`, where)
	args = append(args, normalizeLimit(limit))

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, helpers.NewDatabaseError("failed to query records", err)
	}
	return scanRecords(rows)
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) SaveRunSummary(ctx context.Context, s models.MRunSummary) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO test_runs (started_at, ended_at, tot_exectime_new, tot_exectime_old, nr_calls, nr_clientdisconnect, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.StartedAt, s.EndedAt, s.Counters.TotalExecTimeNew, s.Counters.TotalExecTimeOld,
		s.Counters.Calls, s.Counters.ClientDisconnects, time.Now().UTC())
	if err != nil {
		return helpers.NewDatabaseError("failed to save run summary", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Close() error {
	var firstErr error
	if d.insert != nil {
		if err := d.insert.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
