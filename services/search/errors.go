package search

import "fmt"

// SearchError carries a machine-readable code alongside the message.
type SearchError struct {
	Code    string
	Message string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrAvailabilityUnavailable signals that the booking store could not be
// read. Searches degrade to a neutral availability sub-score instead of
// failing; the result carries AvailabilityDegraded so the caller can tell.
var ErrAvailabilityUnavailable = &SearchError{
	Code:    "availabilityUnavailable",
	Message: "booking store unreachable, availability data degraded",
}

// ErrSearchCancelled signals the caller's context was cancelled mid-search;
// the result returned alongside it is partial.
var ErrSearchCancelled = &SearchError{
	Code:    "searchCancelled",
	Message: "search cancelled before completion",
}
