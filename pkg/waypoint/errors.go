package waypoint

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// Sentinel errors for App misuse.
var (
	// ErrNotStarted is returned when a URL is dispatched before Start.
	ErrNotStarted = errors.New("app not started")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("app closed")
)

// InfrastructureError is a failure building the App itself: an unreadable
// config file, a broken catalog, a missing locale. These are not routing
// outcomes and the host usually cannot recover from them.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "load_config", "load_catalog")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("waypoint: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("waypoint: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError wraps err as a failure of op.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsUnhandled checks if an error reports a URL outside the registered schemes and domains.
func IsUnhandled(err error) bool {
	return errors.Is(err, router.ErrCannotHandle)
}
