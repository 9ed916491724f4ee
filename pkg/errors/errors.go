package errors

import (
	"fmt"
	"net/http"
)

// ArgumentNullError is returned before any network call when a required
// identifier or parameter is missing
type ArgumentNullError struct {
	Param string
}

func (e *ArgumentNullError) Error() string {
	return fmt.Sprintf("argument null: %s", e.Param)
}

// ArgumentError is returned when a parameter is present but unusable
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Reason)
}

// InvalidStateError is returned when an operation is not allowed in the
// current connection state
type InvalidStateError struct {
	Op    string
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}

// ServiceResponseError represents a non-2xx response from a Watson service
type ServiceResponseError struct {
	StatusCode    int
	Message       string
	TransactionID string
	Body          []byte
}

func (e *ServiceResponseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("service responded %d: %s", e.StatusCode, msg)
}

// TransportError wraps network level failures: DNS, TLS, dial, abrupt close
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a malformed document. Position is 1-based within the
// received sequence and zero for single-document bodies.
type DecodeError struct {
	Position int
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("decode document %d: %v", e.Position, e.Err)
	}
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrArgumentNull is returned when a required parameter is empty
func ErrArgumentNull(param string) error {
	return &ArgumentNullError{Param: param}
}

// ErrInvalidArgument is returned when a parameter has an unusable value
func ErrInvalidArgument(param, reason string) error {
	return &ArgumentError{Param: param, Reason: reason}
}

// ErrInvalidState is returned when an operation is attempted in the wrong state
func ErrInvalidState(op, state string) error {
	return &InvalidStateError{Op: op, State: state}
}

// RequireNonEmpty returns an ArgumentNullError for the first empty value.
// Arguments are given as name/value pairs.
func RequireNonEmpty(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return ErrArgumentNull(pairs[i])
		}
	}
	return nil
}
