package backend

import (
	"fmt"
	"strings"
)

// ValidationError reports a start-job request rejected locally, before any
// network call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "segment and at least one location are required (invalid: " + strings.Join(e.Fields, ", ") + ")"
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError is a non-success HTTP response. Message is the backend's own
// message when it sent one.
type RejectedError struct {
	Op      string
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Message)
}
