package interfaces

import "context"

// -----------------------------------------------------------------------------
// IServer is a listener with a graceful stop.
// -----------------------------------------------------------------------------

type IServer interface {
	// -----------------------------------------------------------------------------
	// Start blocks until the listener stops. http.ErrServerClosed is not an error.
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop(ctx context.Context) error
}
