package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"benchmark-observer/src/config"
	"benchmark-observer/src/interfaces"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ interfaces.IRecordStore = (*SQLiteStore)(nil)
	_ interfaces.IRecordStore = (*PostgresStore)(nil)
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "records.db")
	log := logger.NewLogger("ERROR", "test")
	log.SetOutput(io.Discard)

	store, err := NewRecordStore(context.Background(), cfg.MConfig, "202401010000", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s, ok := store.(*SQLiteStore)
	require.True(t, ok)
	return s
}

func TestSQLiteStore_SaveAndQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	records := []models.MStoredRecord{
		{Bucket: models.BucketFaster, PerfFactor: 2.0, OriginalExecTime: 0.8, NewExecTime: 0.4, RealSlow: true,
			RequestMethod: "POST", RequestURL: "http://x/db-benchmark", ResponseStatus: 200, ClientHost: "10.0.0.1", RequestSize: 48, CreatedAt: now},
		{Bucket: models.BucketSlower, PerfFactor: 0.5, OriginalExecTime: 0.1, NewExecTime: 0.2, CreatedAt: now},
		{Bucket: models.BucketSame, PerfFactor: 1.0, OriginalExecTime: 0.1, NewExecTime: 0.1, CreatedAt: now},
	}
	for i := range records {
		require.NoError(t, s.SaveRecord(ctx, &records[i]))
		assert.NotZero(t, records[i].ID)
	}

	all, err := s.QueryRecords(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.BucketSame, all[0].Bucket, "newest first")

	faster, err := s.QueryRecords(ctx, "faster", 10)
	require.NoError(t, err)
	require.Len(t, faster, 1)
	assert.Equal(t, "10.0.0.1", faster[0].ClientHost)
	assert.True(t, faster[0].RealSlow)
	assert.Equal(t, int64(48), faster[0].RequestSize)

	slow, err := s.QueryRecords(ctx, "realslow", 10)
	require.NoError(t, err)
	assert.Len(t, slow, 1)

	limited, err := s.QueryRecords(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteStore_SaveRunSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.SaveRunSummary(ctx, models.MRunSummary{
		Counters:  models.MCountersSnapshot{TotalExecTimeNew: 1, TotalExecTimeOld: 2, Calls: 3},
		StartedAt: "202401010000",
		EndedAt:   "202401010100",
	})
	require.NoError(t, err)

	var calls int64
	require.NoError(t, s.DB.QueryRowContext(ctx, "SELECT nr_calls FROM test_runs").Scan(&calls))
	assert.Equal(t, int64(3), calls)
}

func TestNewRecordStoreNone(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DBType = "none"

	store, err := NewRecordStore(context.Background(), cfg.MConfig, "p", logger.NewLogger("ERROR", "test"))
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestBucketFilter(t *testing.T) {
	where, args := bucketFilter("", func(int) string { return "?" })
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = bucketFilter("slower", func(n int) string { return "$1" })
	assert.Equal(t, "WHERE bucket = $1", where)
	assert.Equal(t, []interface{}{"slower"}, args)

	where, args = bucketFilter("realslow", func(int) string { return "?" })
	assert.Equal(t, "WHERE realslow = ?", where)
	assert.Equal(t, []interface{}{true}, args)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, defaultQueryLimit, normalizeLimit(0))
	assert.Equal(t, 5, normalizeLimit(5))
	assert.Equal(t, maxQueryLimit, normalizeLimit(1_000_000))
}
