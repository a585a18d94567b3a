package registration

import "fmt"

// ValidationError reports an incomplete or malformed submission. The step is
// left untouched when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing user, dashboard, step or document slot.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports an illegal state transition, e.g. resubmitting a step
// that was never rejected or submitting one that is already completed.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamIOError wraps a storage or persistence failure.
type UpstreamIOError struct {
	Message string
	Err     error
}

func (e *UpstreamIOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamIOError) Unwrap() error { return e.Err }
