package analysis

import "errors"

// Sentinel kinds for transport errors. These allow errors.Is from callers.
var (
	ErrRequest = errors.New("analysis request failed")
	ErrDecode  = errors.New("analysis response decode failed")
)

// TransportError describes a failed exchange with the analysis service.
// Message is always non-empty and safe to show to the user: the service's
// detail string when one was returned, a generic fallback otherwise.
type TransportError struct {
	Message string
	Status  int // HTTP status, 0 when the request never completed
	Err     error
}

func (e *TransportError) Error() string { return e.Message }

func (e *TransportError) Unwrap() error { return e.Err }
