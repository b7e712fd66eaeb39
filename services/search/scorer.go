package search

import (
	"fmt"
	"strings"
	"time"

	"leasely/models"
	"leasely/vocabulary"
)

// Scorer ranks a space against a parsed filter. Weights are fixed and sum
// to 100: category 30, location 25, availability 20, price 15, size 10.
// The absence of a constraint never penalises a space.
type Scorer struct {
	Vocab *vocabulary.Vocabulary
}

// Score computes the 0-100 relevance of one space. bookings are the
// occupying intervals for the space over [start, end]; degraded marks
// that the booking store could not be read, which scores availability
// neutrally rather than as zero.
func (sc *Scorer) Score(filter models.ParsedFilter, space models.Space, centre models.Centre, bookings []models.BookingInterval, start, end time.Time, degraded bool) models.MatchScore {
	score := models.MatchScore{SpaceID: space.SpaceID()}

	addScore := func(points float64, reason string) float64 {
		if reason != "" {
			score.Reasons = append(score.Reasons, reason)
		}
		return points
	}

	score.CategoryMatch = addScore(sc.scoreCategory(filter, space))
	score.LocationMatch = addScore(sc.scoreLocation(filter, centre))
	score.Availability = addScore(sc.scoreAvailability(bookings, start, end, degraded))
	score.PriceMatch = addScore(sc.scorePrice(filter, space, start, end))
	score.SizeMatch = addScore(sc.scoreSize(filter, space))

	score.Total = score.CategoryMatch + score.LocationMatch + score.Availability + score.PriceMatch + score.SizeMatch
	return score
}

func (sc *Scorer) scoreCategory(filter models.ParsedFilter, space models.Space) (float64, string) {
	if filter.ProductCategory == "" {
		return models.MaxCategoryScore, ""
	}
	name := filter.ProductCategory
	if sc.Vocab != nil {
		name = sc.Vocab.CategoryName(filter.ProductCategory)
	}
	policy := space.Categories()
	if policy.AllApproved {
		return models.MaxCategoryScore, "Open to all product categories"
	}
	if policy.Allows(filter.ProductCategory) {
		return models.MaxCategoryScore, fmt.Sprintf("Accepts %s category", name)
	}
	return 0, fmt.Sprintf("Not approved for %s", name)
}

func (sc *Scorer) scoreLocation(filter models.ParsedFilter, centre models.Centre) (float64, string) {
	phrase := strings.ToLower(filter.CentreNamePhrase)
	phraseMatches := phrase != "" &&
		(strings.Contains(strings.ToLower(centre.Name), phrase) ||
			strings.Contains(strings.ToLower(centre.Suburb), phrase) ||
			strings.Contains(strings.ToLower(centre.City), phrase))

	switch {
	case filter.StateFilter == "" && phrase == "":
		return models.MaxLocationScore, ""
	case filter.StateFilter != "" && centre.State != filter.StateFilter:
		return 0, fmt.Sprintf("Outside %s", filter.StateFilter)
	case phraseMatches:
		return models.MaxLocationScore, fmt.Sprintf("Located at %s", centre.Name)
	case filter.StateFilter != "" && phrase == "":
		return models.MaxLocationScore, fmt.Sprintf("Located in %s", filter.StateFilter)
	case filter.StateFilter != "":
		// Right state, different suburb.
		return models.MaxLocationScore / 2, fmt.Sprintf("In %s, near your search area", filter.StateFilter)
	default:
		return models.MaxLocationScore / 2, "Different location to your search"
	}
}

func (sc *Scorer) scoreAvailability(bookings []models.BookingInterval, start, end time.Time, degraded bool) (float64, string) {
	if degraded {
		return models.MaxAvailabilityScore, "Availability could not be checked"
	}
	fraction, startFree := FreeFraction(bookings, start, end)
	if startFree {
		return models.MaxAvailabilityScore, "Available on your requested date"
	}
	if fraction > 0 {
		return models.MaxAvailabilityScore * fraction,
			fmt.Sprintf("Available for %.0f%% of your dates", fraction*100)
	}
	return 0, "Booked for your requested dates"
}

func (sc *Scorer) scorePrice(filter models.ParsedFilter, space models.Space, start, end time.Time) (float64, string) {
	if filter.Budget == nil {
		return models.MaxPriceScore, ""
	}
	rate := space.DailyRate()
	if rate <= 0 {
		// Missing attribute contributes zero rather than aborting the score.
		return 0, "No price listed"
	}

	limit := filter.Budget.Amount
	switch filter.Budget.Period {
	case models.BudgetPerWeek:
		limit /= 7
	case models.BudgetTotal:
		days := float64(windowDays(start, end))
		limit /= days
	}

	if rate <= limit {
		return models.MaxPriceScore, "Within your budget"
	}
	over := (rate - limit) / limit
	points := models.MaxPriceScore * (1 - over)
	if points < 0 {
		points = 0
	}
	return points, "Above your budget"
}

func (sc *Scorer) scoreSize(filter models.ParsedFilter, space models.Space) (float64, string) {
	if filter.MinSizeM2 <= 0 {
		return models.MaxSizeScore, ""
	}
	size := space.Size()
	switch {
	case size <= 0:
		return 0, "Size not listed"
	case size == filter.MinSizeM2:
		return models.MaxSizeScore, fmt.Sprintf("Exactly %.0fm²", size)
	case size > filter.MinSizeM2:
		// Partial credit, decreasing the larger the space is.
		return models.MaxSizeScore * filter.MinSizeM2 / size,
			fmt.Sprintf("%.0fm², larger than you asked for", size)
	default:
		return 0, fmt.Sprintf("%.0fm², smaller than you asked for", size)
	}
}

func windowDays(start, end time.Time) int {
	start, end = NormalizeDay(start), NormalizeDay(end)
	if end.Before(start) {
		return 1
	}
	return int(end.Sub(start).Hours()/24) + 1
}
