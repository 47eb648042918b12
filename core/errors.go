package core

import (
	"fmt"
	"net/http"
)

// InvalidQueryError reports a query term that cannot map onto a wiki page
// slug. It is raised before any network call is attempted.
type InvalidQueryError struct {
	Term   string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Term, e.Reason)
}

// NetworkError reports a failed HTTP exchange (connection refused, timeout).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a response outside the 2xx range.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Status, e.URL)
}

// NotFound reports whether the page simply does not exist, which for the
// wiki means the queried spell or class has no entry.
func (e *HTTPError) NotFound() bool { return e.Status == http.StatusNotFound }

// ParseError reports a page that fetched fine but lacks the layout the
// extractor expects. This usually means the source site changed shape.
type ParseError struct {
	Page    string
	Missing string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s page: missing %s", e.Page, e.Missing)
}
