package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"leasely/models"
)

// fakeCatalog is an in-memory CatalogRepository for tests.
type fakeCatalog struct {
	centres        []models.Centre
	spacesByCentre map[string][]models.Space
	textHits       []models.Space
	policies       map[string]models.CategoryPolicy

	allCentresCalls int
	allCentresErr   error
	textSearches    []string
}

func (f *fakeCatalog) ListCentresByName(_ context.Context, phrase, state string) ([]models.Centre, error) {
	var out []models.Centre
	p := strings.ToLower(strings.TrimSpace(phrase))
	for _, c := range f.centres {
		if state != "" && c.State != state {
			continue
		}
		if p != "" &&
			!strings.Contains(strings.ToLower(c.Name), p) &&
			!strings.Contains(strings.ToLower(c.Suburb), p) &&
			!strings.Contains(strings.ToLower(c.City), p) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCatalog) ListCentresByIDs(_ context.Context, ids []string) ([]models.Centre, error) {
	var out []models.Centre
	for _, c := range f.centres {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCatalog) AllCentres(context.Context) ([]models.Centre, error) {
	f.allCentresCalls++
	if f.allCentresErr != nil {
		return nil, f.allCentresErr
	}
	return f.centres, nil
}

func (f *fakeCatalog) ListSpacesByCentre(_ context.Context, centreID string, asset models.AssetType) ([]models.Space, error) {
	var out []models.Space
	for _, s := range f.spacesByCentre[centreID] {
		if s.Asset() == asset {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) SearchSpacesByText(_ context.Context, text, categoryID, state string) ([]models.Space, error) {
	f.textSearches = append(f.textSearches, text)
	var out []models.Space
	for _, s := range f.textHits {
		if categoryID != "" && !s.Categories().Allows(categoryID) {
			continue
		}
		if state != "" && s.Region() != state {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalog) ApprovedCategoryIDs(_ context.Context, spaceID string) (models.CategoryPolicy, error) {
	if p, ok := f.policies[spaceID]; ok {
		return p, nil
	}
	return models.CategoryPolicy{AllApproved: true}, nil
}

// fakeBookings is an in-memory BookingRepository for tests.
type fakeBookings struct {
	bookings []models.BookingInterval
	err      error
}

func (f *fakeBookings) BookingsForSpaces(_ context.Context, spaceIDs []string, start, end time.Time) ([]models.BookingInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make(map[string]bool, len(spaceIDs))
	for _, id := range spaceIDs {
		ids[id] = true
	}
	var out []models.BookingInterval
	for _, b := range f.bookings {
		if ids[b.SpaceID] && Overlaps(b.StartDate, b.EndDate, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

// captureAnalytics records events for assertions.
type captureAnalytics struct {
	mu     sync.Mutex
	events []models.SearchEvent
}

func (c *captureAnalytics) Record(e models.SearchEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureAnalytics) all() []models.SearchEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.SearchEvent{}, c.events...)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
