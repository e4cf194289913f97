// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by GetByID when the feed carries no entry for
// the requested identifier.
var ErrNotFound = errors.New("arxiv: paper not found")

// NetworkError reports a transport failure that survived the retry
// policy.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("arxiv: network error for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError reports a non-success HTTP status from the endpoint. Body
// holds a truncated copy of the response body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("arxiv: API returned HTTP %d", e.StatusCode)
}

// ParseError reports a feed document that did not match the expected
// shape. Index is the position of the offending entry, or -1 when the
// failure is not tied to a single entry.
type ParseError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("arxiv: parsing entry %d: %s", e.Index, e.Reason)
	}
	return "arxiv: parsing feed: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }
