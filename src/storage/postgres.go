package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/models"

	"github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresStore struct {
	Config    *models.MConfig
	DB        *sql.DB
	Schema    string
	Logger    *logger.Logger
	RunPrefix string
}

// -----------------------------------------------------------------------------

// NewPostgresStore keeps its tables in a schema named after the application.
func NewPostgresStore(cfg *models.MConfig, runPrefix string, log *logger.Logger) (*PostgresStore, error) {
	if cfg.Storage.DBConnectionString == "" {
		return nil, fmt.Errorf("postgres connection string is empty")
	}
	return &PostgresStore{
		Config:    cfg,
		Schema:    cfg.Name,
		Logger:    log,
		RunPrefix: runPrefix,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) table(name string) string {
	return pq.QuoteIdentifier(d.Schema) + "." + pq.QuoteIdentifier(name)
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Initialize(ctx context.Context) error {
	db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
	if err != nil {
		return helpers.NewDatabaseError("failed to open postgres", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return helpers.NewDatabaseError("failed to ping postgres", err)
	}

	d.DB = db

	if _, err := d.DB.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, pq.QuoteIdentifier(d.Schema))); err != nil {
		return helpers.NewDatabaseError(fmt.Sprintf("failed to create schema %s", d.Schema), err)
	}

	if err := d.createTables(ctx); err != nil {
		return err
	}

	d.Logger.Info("PostgresStore initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) createTables(ctx context.Context) error {
	records := d.table("benchmark_records")
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			run_prefix TEXT NOT NULL,
			bucket TEXT NOT NULL,
			realslow BOOLEAN NOT NULL,
			perf_factor DOUBLE PRECISION NOT NULL,
			ori_exec_time DOUBLE PRECISION NOT NULL,
			exec_time_newdb DOUBLE PRECISION NOT NULL,
			request_method TEXT,
			request_url TEXT,
			response_status INTEGER,
			process_time DOUBLE PRECISION,
			client_host TEXT,
			request_size BIGINT,
			created_at TIMESTAMPTZ NOT NULL
		);`, records),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_records_bucket ON %s (bucket);`, records),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			tot_exectime_new DOUBLE PRECISION NOT NULL,
			tot_exectime_old DOUBLE PRECISION NOT NULL,
			nr_calls BIGINT NOT NULL,
			nr_clientdisconnect BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`, d.table("test_runs")),
	}
	for _, q := range stmts {
		if _, err := d.DB.ExecContext(ctx, q); err != nil {
			return helpers.NewDatabaseError("failed to create tables", err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) SaveRecord(ctx context.Context, rec *models.MStoredRecord) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			run_prefix, bucket, realslow, perf_factor, ori_exec_time, exec_time_newdb,
			request_method, request_url, response_status, process_time, client_host,
			request_size, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, d.table("benchmark_records"))

	err := d.DB.QueryRowContext(ctx, query,
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
	).Scan(&rec.ID)
	if err != nil {
		return helpers.NewDatabaseError("failed to insert record", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) QueryRecords(ctx context.Context, bucket string, limit int) ([]models.MStoredRecord, error) {
	where, args := bucketFilter(bucket, func(n int) string { return fmt.Sprintf("$%d", n) })
	query := fmt.Sprintf(`
		SELECT id, bucket, realslow, perf_factor, ori_exec_time, exec_time_newdb,
			request_method, request_url, response_status, process_time, client_host,
			request_size, created_at
		FROM %s
		%s
		ORDER BY id DESC
		LIMIT $%d
	`, d.table("benchmark_records"), where, len(args)+1)
	args = append(args, normalizeLimit(limit))

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, helpers.NewDatabaseError("failed to query records", err)
	}
	return scanRecords(rows)
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) SaveRunSummary(ctx context.Context, s models.MRunSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (started_at, ended_at, tot_exectime_new, tot_exectime_old, nr_calls, nr_clientdisconnect, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.table("test_runs"))

	_, err := d.DB.ExecContext(ctx, query, s.StartedAt, s.EndedAt, s.Counters.TotalExecTimeNew,
		s.Counters.TotalExecTimeOld, s.Counters.Calls, s.Counters.ClientDisconnects, time.Now().UTC())
	if err != nil {
		return helpers.NewDatabaseError("failed to save run summary", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
