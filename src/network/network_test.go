package network

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"benchmark-observer/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logger.Logger {
	log := logger.NewLogger("ERROR", "test")
	log.SetOutput(io.Discard)
	return log
}

func TestFetchRecordsSendsQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records", r.URL.Path)
		assert.Equal(t, "faster", r.URL.Query().Get("bucket"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"id": 3, "bucket": "faster", "perf_factor": 2, "realslow": true}]`))
	}))
	defer ts.Close()

	ac := NewAdminClient(ts.URL, time.Second, 1, quietLogger())
	rows, err := ac.FetchRecords(context.Background(), "faster", 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].ID)
	assert.True(t, rows[0].RealSlow)
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"counters": {"nr_calls": 7}, "recent": {"count": 2}}`))
	}))
	defer ts.Close()

	var logs bytes.Buffer
	log := logger.NewLogger("INFO", "report")
	log.SetOutput(&logs)

	ac := NewAdminClient(ts.URL, time.Second, 3, log)
	ac.BaseDelay = time.Millisecond

	out, err := ac.FetchCounters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Counters.Calls)
	assert.Equal(t, 2, out.Recent.Count)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2, strings.Count(logs.String(), "[AdminClient] WARNING: Attempt"))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error": "unknown bucket: x"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	ac := NewAdminClient(ts.URL, time.Second, 3, quietLogger())
	ac.BaseDelay = time.Millisecond

	_, err := ac.FetchRecords(context.Background(), "x", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewAdminClientAddsScheme(t *testing.T) {
	ac := NewAdminClient("127.0.0.1:8001/", 0, 1, quietLogger())
	assert.Equal(t, "http://127.0.0.1:8001", ac.BaseURL)
	assert.Equal(t, 10*time.Second, ac.Client.Timeout)
}
