package helpers

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"benchmark-observer/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ObserverError struct {
	Message string
	Cause   error
}

func (e *ObserverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ObserverError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As
type ConfigurationError struct{ ObserverError }
type DatabaseError struct{ ObserverError }
type InvalidInputError struct{ ObserverError }
type DivisionByZeroError struct{ ObserverError }
type WriteFailureError struct{ ObserverError }
type ClientDisconnectError struct{ ObserverError }

// -----------------------------------------------------------------------------

func NewInvalidInput(message string, cause error) error {
	return &InvalidInputError{ObserverError{Message: message, Cause: cause}}
}

func NewDivisionByZero(message string) error {
	return &DivisionByZeroError{ObserverError{Message: message}}
}

func NewWriteFailure(message string, cause error) error {
	return &WriteFailureError{ObserverError{Message: message, Cause: cause}}
}

func NewClientDisconnect(message string, cause error) error {
	return &ClientDisconnectError{ObserverError{Message: message, Cause: cause}}
}

func NewDatabaseError(message string, cause error) error {
	return &DatabaseError{ObserverError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

func IsDivisionByZero(err error) bool {
	var target *DivisionByZeroError
	return errors.As(err, &target)
}

func IsWriteFailure(err error) bool {
	var target *WriteFailureError
	return errors.As(err, &target)
}

func IsClientDisconnect(err error) bool {
	var target *ClientDisconnectError
	return errors.As(err, &target)
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts to execute the operation up to maxRetries times with exponential backoff.
// Failed attempts are reported on log as warnings.
func RetryWithBackoff(log *logger.Logger, operation string, maxRetries int, baseDelay time.Duration, fn func() (interface{}, error)) (interface{}, error) {
	var lastErr error

	if maxRetries <= 0 {
		maxRetries = 1
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}

		lastErr = err
		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		log.Warning("Attempt %d/%d failed for %s: %v. Retrying in %v", attempt+1, maxRetries, operation, err, delay)
		time.Sleep(delay)
	}

	return nil, lastErr
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	errorCount atomic.Int64
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		Logger: log.Named("ErrorHandler"),
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ErrorCount() int64 {
	return e.errorCount.Load()
}

// -----------------------------------------------------------------------------

// Handle logs err against context and counts it. Nil errors are ignored.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	e.errorCount.Add(1)

	switch {
	case IsClientDisconnect(err):
		e.Logger.Warning("Client disconnected in %s: %v", context, err)
	case IsInvalidInput(err), IsDivisionByZero(err):
		e.Logger.Error("Rejected sample in %s: %v", context, err)
	default:
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
