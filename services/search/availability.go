package search

import (
	"context"
	"fmt"
	"time"

	"leasely/database/repository"
	"leasely/models"
)

// AvailabilityEngine computes per-day booked state from the booking store.
// Its overlap predicate is the single source of truth: search-result
// calendars and new-booking conflict checks both go through it.
type AvailabilityEngine struct {
	Bookings repository.BookingRepository
}

// NormalizeDay strips the time of day, leaving midnight UTC.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two inclusive day ranges share at least one day.
// Times of day are stripped before comparison.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	s1, e1 = NormalizeDay(s1), NormalizeDay(e1)
	s2, e2 = NormalizeDay(s2), NormalizeDay(e2)
	return !s1.After(e2) && !s2.After(e1)
}

// Calendar returns, per space, the occupying bookings that overlap
// [start, end]. Cancelled and rejected bookings never appear.
func (e *AvailabilityEngine) Calendar(ctx context.Context, spaceIDs []string, start, end time.Time) (map[string][]models.BookingInterval, error) {
	cal := make(map[string][]models.BookingInterval, len(spaceIDs))
	for _, id := range spaceIDs {
		cal[id] = nil
	}
	if len(spaceIDs) == 0 {
		return cal, nil
	}

	bookings, err := e.Bookings.BookingsForSpaces(ctx, spaceIDs, NormalizeDay(start), NormalizeDay(end))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	for _, b := range bookings {
		if !b.Status.OccupiesCalendar() {
			continue
		}
		if !Overlaps(b.StartDate, b.EndDate, start, end) {
			continue
		}
		cal[b.SpaceID] = append(cal[b.SpaceID], b)
	}
	return cal, nil
}

// IsAvailable reports whether the space is free for every day of the
// inclusive range. excludeBookingID lets an edit-in-place check ignore the
// booking being modified. The answer is advisory for search display; the
// authoritative write point re-verifies conflicts.
func (e *AvailabilityEngine) IsAvailable(ctx context.Context, spaceID string, start, end time.Time, excludeBookingID string) (bool, error) {
	cal, err := e.Calendar(ctx, []string{spaceID}, start, end)
	if err != nil {
		return false, err
	}
	for _, b := range cal[spaceID] {
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if Overlaps(b.StartDate, b.EndDate, start, end) {
			return false, nil
		}
	}
	return true, nil
}

// FreeFraction returns the fraction of days in [start, end] not blocked by
// the given bookings, and whether the start day itself is free.
func FreeFraction(bookings []models.BookingInterval, start, end time.Time) (float64, bool) {
	start, end = NormalizeDay(start), NormalizeDay(end)
	if end.Before(start) {
		end = start
	}
	total := int(end.Sub(start).Hours()/24) + 1

	free := 0
	startFree := true
	for day, i := start, 0; i < total; day, i = day.AddDate(0, 0, 1), i+1 {
		blocked := false
		for _, b := range bookings {
			if !b.Status.OccupiesCalendar() {
				continue
			}
			if Overlaps(b.StartDate, b.EndDate, day, day) {
				blocked = true
				break
			}
		}
		if !blocked {
			free++
		} else if i == 0 {
			startFree = false
		}
	}
	return float64(free) / float64(total), startFree
}
