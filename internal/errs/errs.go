// Package errs defines the error taxonomy shared by the pipeline stages.
//
// Every upstream call in the pipeline fails in one of a small number of ways,
// and the orchestrator's control flow depends on telling them apart, so the
// categories live here rather than in each provider package. Match with
// errors.Is (sentinels) or errors.As (UnexpectedStatusError).
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable marks a transport or connection failure, or a
	// response body that could not be parsed at all.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrSchemaViolation marks a response that parsed but is missing a
	// required field or carries one with the wrong type.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrNoCandidate is not a failure: it signals that a search turned up no
	// qualifying restaurant and the discovery loop should resample.
	ErrNoCandidate = errors.New("no qualifying candidate")

	// ErrMissingLocation marks a 302 response without a Location header.
	ErrMissingLocation = errors.New("302 response without Location header")

	// ErrTooManyRedirects marks a redirect chain exceeding the fetch cap.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// UnexpectedStatusError reports an HTTP status the caller has no handling for.
type UnexpectedStatusError struct {
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}
