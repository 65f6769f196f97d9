package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"benchmark-observer/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	cause := io.ErrUnexpectedEOF

	err := fmt.Errorf("wrapped: %w", NewInvalidInput("bad body", cause))
	assert.True(t, IsInvalidInput(err))
	assert.False(t, IsDivisionByZero(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad body: unexpected EOF")

	assert.True(t, IsDivisionByZero(NewDivisionByZero("exec_time_newdb is zero")))
	assert.True(t, IsWriteFailure(NewWriteFailure("append", cause)))
	assert.True(t, IsClientDisconnect(NewClientDisconnect("read body", cause)))
	assert.False(t, IsClientDisconnect(errors.New("plain")))
}

func TestRetryWithBackoff(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger("INFO", "retry")
	log.SetOutput(&buf)

	calls := 0
	res, err := RetryWithBackoff(log, "fetch", 3, time.Millisecond, func() (interface{}, error) {
		calls++
		if calls < 2 {
			return nil, errors.New("boom")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	assert.Equal(t, 2, calls)
	assert.Contains(t, buf.String(), "[retry] WARNING: Attempt 1/3 failed for fetch: boom")

	calls = 0
	_, err = RetryWithBackoff(log, "fetch", 2, time.Millisecond, func() (interface{}, error) {
		calls++
		return nil, errors.New("still down")
	})
	assert.EqualError(t, err, "still down")
	assert.Equal(t, 2, calls)
}

func TestErrorHandlerCounts(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger("INFO", "test")
	log.SetOutput(&buf)

	h := NewErrorHandler(log)
	h.Handle(nil, "noop")
	h.Handle(NewClientDisconnect("read body", io.EOF), "interceptor")
	h.Handle(NewInvalidInput("missing ori_exec_time", nil), "interceptor")

	assert.Equal(t, int64(2), h.ErrorCount())
	assert.Contains(t, buf.String(), "[ErrorHandler] WARNING: Client disconnected in interceptor")
	assert.Contains(t, buf.String(), "[ErrorHandler] ERROR: Rejected sample in interceptor")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.0", FormatFloat(0))
	assert.Equal(t, "2.0", FormatFloat(2))
	assert.Equal(t, "1.11", FormatFloat(1.11))
	assert.Equal(t, "0.30000000000000004", FormatFloat(0.1+0.2))
}
