// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "fmt"

// InvalidQueryError reports malformed builder input: a misplaced
// connective, a rejected term, or an unknown sort field. It is raised
// locally and never reaches the network.
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return "invalid query: " + e.Reason
}

// DateError reports a date-range endpoint that could not be parsed or a
// range whose start lies after its end. Input names the offending string.
type DateError struct {
	Input  string
	Reason string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("query date %q: %s", e.Input, e.Reason)
}
