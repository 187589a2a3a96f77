package upstream

import (
	"errors"
	"fmt"
)

// ErrUnknownCollection is returned for a collection the API does not serve.
var ErrUnknownCollection = errors.New("unknown collection")

// TransportError means the request never produced a response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError represents a non-successful response. The body is not read.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// DecodeError means a successful response carried a body that is not JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ShapeError is raised for unrecognized payload shapes when strict shapes are enabled.
type ShapeError struct {
	Kind string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape: %s is neither an array nor a results envelope", e.Kind)
}
