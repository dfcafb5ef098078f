package coordinator

import (
	"errors"
	"fmt"
)

// Sentinel errors for misuse of the coordinator lifecycle and tree.
// These are programmer errors: they are returned and logged, never recovered from silently.
var (
	ErrAlreadyStarted  = errors.New("coordinator already started")
	ErrNotStarted      = errors.New("coordinator not started")
	ErrFinished        = errors.New("coordinator already finished")
	ErrCycle           = errors.New("coordinator would become its own ancestor")
	ErrAlreadyAttached = errors.New("coordinator already has a parent")
	ErrParentMismatch  = errors.New("coordinator parent reference does not match owner")
)

// LifecycleError reports an operation attempted on a coordinator in the wrong state.
type LifecycleError struct {
	Op          string // Operation that failed (e.g., "start", "add_child")
	Coordinator string // Coordinator the operation was invoked on
	Err         error  // One of the sentinel errors above
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("coordinator %s: %s: %v", e.Coordinator, e.Op, e.Err)
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}

// IsLifecycleError checks if an error is a lifecycle error.
func IsLifecycleError(err error) bool {
	var lcErr *LifecycleError
	return errors.As(err, &lcErr)
}
