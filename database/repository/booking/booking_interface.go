package bookingRepo

import (
	"context"
	"time"

	"leasely/models"
)

// BookingRepository is the read-only port onto the booking store.
type BookingRepository interface {
	// BookingsForSpaces returns every booking on the given spaces whose
	// inclusive date range overlaps [start, end]. Status filtering is left
	// to the availability engine, which owns the occupancy rule.
	BookingsForSpaces(ctx context.Context, spaceIDs []string, start, end time.Time) ([]models.BookingInterval, error)
}
