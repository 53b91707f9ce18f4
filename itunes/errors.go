package itunes

import (
	"errors"
	"fmt"
)

// Usage errors: surfaced before any I/O happens.
var (
	ErrEmptyID         = errors.New("empty identifier")
	ErrEmptySearchTerm = errors.New("empty search term")
)

// TransportError reports a request that reached the store but came back
// with a non-success status. The core never retries it.
type TransportError struct {
	URL    string
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Status)
}
