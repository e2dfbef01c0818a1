package submit

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when an activation arrives while a previous
// submission has not finished. The activation is dropped.
var ErrInFlight = errors.New("a submission is already in progress")

// ValidationError blocks a submission before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is allows for error checking with errors.Is().
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// OperationError covers every failure after the request was attempted:
// connectivity, non-2xx status, unreadable body, or a service-reported error.
type OperationError struct {
	Err error
}

func (e *OperationError) Error() string {
	return e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *OperationError) Is(target error) bool {
	_, ok := target.(*OperationError)
	return ok
}

// ServiceError carries the text of a response's "error" field.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Is allows for error checking with errors.Is().
func (e *ServiceError) Is(target error) bool {
	_, ok := target.(*ServiceError)
	return ok
}
