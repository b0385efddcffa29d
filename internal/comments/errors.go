package comments

import (
	"errors"
	"fmt"
)

// Failure kinds of a Comment Service call.
var (
	// ErrNetwork means the request could not complete.
	ErrNetwork = errors.New("network failure")
	// ErrRejected means the service answered with a non-success status.
	ErrRejected = errors.New("server rejection")
	// ErrMalformed means a success response had an unexpected body.
	ErrMalformed = errors.New("malformed response")
)

// RequestError describes a failed Comment Service call.
type RequestError struct {
	Op     string // "list", "vote", "delete", "auth"
	Kind   error  // one of ErrNetwork, ErrRejected, ErrMalformed
	Status int    // HTTP status, zero for network failures
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %v (status %d)", e.Op, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Retryable reports whether a retry could succeed without changing the
// request. Only network failures qualify.
func Retryable(err error) bool {
	return errors.Is(err, ErrNetwork)
}
