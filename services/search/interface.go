package search

import (
	"context"
	"time"

	"leasely/models"
)

// SearchService is the engine's produced interface, consumed by the HTTP
// layer.
type SearchService interface {
	// Search interprets the free-text query and returns ranked results.
	// date is the default window start when the query names no dates.
	Search(ctx context.Context, query string, date time.Time) (*models.SearchResult, error)

	// Autocomplete serves the typeahead over centre names.
	Autocomplete(ctx context.Context, partial string) ([]models.Centre, error)

	// Calendar returns the occupying bookings for one space over a window.
	Calendar(ctx context.Context, spaceID string, start, end time.Time) ([]models.BookingInterval, error)

	// CheckAvailability is the advisory conflict pre-check for a new or
	// edited booking. It uses the same overlap predicate the search
	// calendar uses.
	CheckAvailability(ctx context.Context, spaceID string, start, end time.Time, excludeBookingID string) (bool, error)
}
