package handler

import "errors"

// HandlerError is the base interface for structured handler failures. The
// reconciler uses the concrete type to decide how a failure is reported.
type HandlerError interface {
	error
	DeclarationID() string
	Unwrap() error
}

// ValidationError represents a malformed or incomplete declaration payload.
type ValidationError struct {
	ID  string
	Err error
}

// NewValidationError creates a ValidationError.
func NewValidationError(id string, err error) *ValidationError {
	return &ValidationError{ID: id, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return "invalid declaration " + e.ID
	}
	return "invalid declaration " + e.ID + ": " + e.Err.Error()
}

// DeclarationID returns the failing declaration's id.
func (e *ValidationError) DeclarationID() string { return e.ID }

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error { return e.Err }

// Is matches any ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ExecutionError represents a failed external operation during apply: an
// installer exiting non-zero, a file write failing, a service refusing to
// start.
type ExecutionError struct {
	ID  string
	Err error
}

// NewExecutionError creates an ExecutionError.
func NewExecutionError(id string, err error) *ExecutionError {
	return &ExecutionError{ID: id, Err: err}
}

func (e *ExecutionError) Error() string {
	if e.Err == nil {
		return "execution failed for declaration " + e.ID
	}
	return "execution failed for declaration " + e.ID + ": " + e.Err.Error()
}

// DeclarationID returns the failing declaration's id.
func (e *ExecutionError) DeclarationID() string { return e.ID }

// Unwrap returns the underlying error.
func (e *ExecutionError) Unwrap() error { return e.Err }

// Is matches any ExecutionError.
func (e *ExecutionError) Is(target error) bool {
	_, ok := target.(*ExecutionError)
	return ok
}

// StateError represents inability to determine current state at all: the
// probe could not read the system, or the declaration cannot apply to this
// platform.
type StateError struct {
	ID  string
	Err error
}

// NewStateError creates a StateError.
func NewStateError(id string, err error) *StateError {
	return &StateError{ID: id, Err: err}
}

func (e *StateError) Error() string {
	if e.Err == nil {
		return "cannot determine state for declaration " + e.ID
	}
	return "cannot determine state for declaration " + e.ID + ": " + e.Err.Error()
}

// DeclarationID returns the failing declaration's id.
func (e *StateError) DeclarationID() string { return e.ID }

// Unwrap returns the underlying error.
func (e *StateError) Unwrap() error { return e.Err }

// Is matches any StateError.
func (e *StateError) Is(target error) bool {
	_, ok := target.(*StateError)
	return ok
}

// AsHandlerError extracts a structured handler error from an error chain.
func AsHandlerError(err error) (HandlerError, bool) {
	var handlerErr HandlerError
	if errors.As(err, &handlerErr) {
		return handlerErr, true
	}
	return nil, false
}
