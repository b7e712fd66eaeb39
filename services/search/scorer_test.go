package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasely/models"
	"leasely/vocabulary"
)

var (
	scoreCentre = models.Centre{ID: "c1", Name: "Eastgate Shopping Centre", Suburb: "Bondi", City: "Sydney", State: "NSW"}
	scoreSpace  = models.CasualSite{
		ID:          "s1",
		CentreID:    "c1",
		Name:        "Centre Court Site 1",
		SizeM2:      20,
		MaxTables:   3,
		Approved:    models.CategoryPolicy{IDs: []string{"fashion", "footwear"}},
		PricePerDay: 100,
		State:       "NSW",
	}
	scoreWindow = [2]time.Time{day(2026, time.March, 9), day(2026, time.March, 13)}
)

func newScorer() *Scorer {
	return &Scorer{Vocab: vocabulary.Default()}
}

func TestScoreNoConstraintsIsPerfect(t *testing.T) {
	sc := newScorer()

	s := sc.Score(models.ParsedFilter{}, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)

	assert.Equal(t, 100.0, s.Total)
	assert.Equal(t, models.MaxCategoryScore, s.CategoryMatch)
	assert.Equal(t, models.MaxLocationScore, s.LocationMatch)
	assert.Equal(t, models.MaxAvailabilityScore, s.Availability)
	assert.Equal(t, models.MaxPriceScore, s.PriceMatch)
	assert.Equal(t, models.MaxSizeScore, s.SizeMatch)
	// Available dates still get a reason; unconstrained factors stay silent.
	assert.Equal(t, []string{"Available on your requested date"}, s.Reasons)
}

func TestScoreTotalIsSumOfFactors(t *testing.T) {
	sc := newScorer()
	filter := models.ParsedFilter{
		CentreNamePhrase: "Eastgate",
		ProductCategory:  "fashion",
		MinSizeM2:        20,
		StateFilter:      "NSW",
		Budget:           &models.Budget{Amount: 150, Period: models.BudgetPerDay},
	}

	s := sc.Score(filter, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)

	assert.InDelta(t, s.CategoryMatch+s.LocationMatch+s.Availability+s.PriceMatch+s.SizeMatch, s.Total, 1e-9)
	assert.Equal(t, 100.0, s.Total)
	assert.Contains(t, s.Reasons, "Accepts Fashion category")
	assert.Contains(t, s.Reasons, "Located at Eastgate Shopping Centre")
	assert.Contains(t, s.Reasons, "Within your budget")
	assert.Contains(t, s.Reasons, "Exactly 20m²")
}

func TestScoreCategory(t *testing.T) {
	sc := newScorer()
	filter := models.ParsedFilter{ProductCategory: "fashion"}

	t.Run("approved list", func(t *testing.T) {
		s := sc.Score(filter, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxCategoryScore, s.CategoryMatch)
	})

	t.Run("open to all", func(t *testing.T) {
		open := scoreSpace
		open.Approved = models.CategoryPolicy{AllApproved: true}
		s := sc.Score(filter, open, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxCategoryScore, s.CategoryMatch)
		assert.Contains(t, s.Reasons, "Open to all product categories")
	})

	t.Run("not approved", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{ProductCategory: "food"}, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, 0.0, s.CategoryMatch)
		assert.Contains(t, s.Reasons, "Not approved for Food & Beverage")
	})

	t.Run("empty id list allows nothing", func(t *testing.T) {
		closed := scoreSpace
		closed.Approved = models.CategoryPolicy{}
		s := sc.Score(filter, closed, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, 0.0, s.CategoryMatch)
	})
}

func TestScoreLocation(t *testing.T) {
	sc := newScorer()

	t.Run("wrong state scores zero", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{StateFilter: "VIC"}, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, 0.0, s.LocationMatch)
		assert.Contains(t, s.Reasons, "Outside VIC")
	})

	t.Run("suburb phrase matches", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{CentreNamePhrase: "Bondi"}, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxLocationScore, s.LocationMatch)
	})

	t.Run("state only", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{StateFilter: "NSW"}, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxLocationScore, s.LocationMatch)
		assert.Contains(t, s.Reasons, "Located in NSW")
	})

	t.Run("right state unmatched phrase scores half", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{StateFilter: "NSW", CentreNamePhrase: "Westside"}, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxLocationScore/2, s.LocationMatch)
	})

	t.Run("unmatched phrase scores half", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{CentreNamePhrase: "Westside"}, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxLocationScore/2, s.LocationMatch)
		assert.Contains(t, s.Reasons, "Different location to your search")
	})
}

func TestScoreAvailability(t *testing.T) {
	sc := newScorer()

	fullyBooked := []models.BookingInterval{
		{SpaceID: "s1", StartDate: scoreWindow[0], EndDate: scoreWindow[1], Status: models.BookingConfirmed},
	}
	tailBooked := []models.BookingInterval{
		// Blocks the last 2 of 5 days.
		{SpaceID: "s1", StartDate: day(2026, time.March, 12), EndDate: day(2026, time.March, 13), Status: models.BookingPending},
	}

	t.Run("fully booked scores zero", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{}, scoreSpace, scoreCentre, fullyBooked, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, 0.0, s.Availability)
		assert.Contains(t, s.Reasons, "Booked for your requested dates")
	})

	t.Run("start free scores full", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{}, scoreSpace, scoreCentre, tailBooked, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxAvailabilityScore, s.Availability)
	})

	t.Run("start blocked scores by fraction", func(t *testing.T) {
		headBooked := []models.BookingInterval{
			{SpaceID: "s1", StartDate: day(2026, time.March, 9), EndDate: day(2026, time.March, 10), Status: models.BookingConfirmed},
		}
		s := sc.Score(models.ParsedFilter{}, scoreSpace, scoreCentre, headBooked, scoreWindow[0], scoreWindow[1], false)
		assert.InDelta(t, models.MaxAvailabilityScore*0.6, s.Availability, 1e-9)
		assert.Contains(t, s.Reasons, "Available for 60% of your dates")
	})

	t.Run("degraded scores neutral", func(t *testing.T) {
		s := sc.Score(models.ParsedFilter{}, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], true)
		assert.Equal(t, models.MaxAvailabilityScore, s.Availability)
		assert.Contains(t, s.Reasons, "Availability could not be checked")
	})
}

func TestScorePrice(t *testing.T) {
	sc := newScorer()

	t.Run("per week budget divides by seven", func(t *testing.T) {
		// $700/week is $100/day, exactly the rate.
		f := models.ParsedFilter{Budget: &models.Budget{Amount: 700, Period: models.BudgetPerWeek}}
		s := sc.Score(f, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxPriceScore, s.PriceMatch)
	})

	t.Run("total budget divides by window days", func(t *testing.T) {
		// $500 across 5 days is $100/day.
		f := models.ParsedFilter{Budget: &models.Budget{Amount: 500, Period: models.BudgetTotal}}
		s := sc.Score(f, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxPriceScore, s.PriceMatch)
	})

	t.Run("over budget degrades linearly", func(t *testing.T) {
		// Rate $100 against a $80/day limit is 25% over.
		f := models.ParsedFilter{Budget: &models.Budget{Amount: 80, Period: models.BudgetPerDay}}
		s := sc.Score(f, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.InDelta(t, models.MaxPriceScore*0.75, s.PriceMatch, 1e-9)
		assert.Contains(t, s.Reasons, "Above your budget")
	})

	t.Run("far over budget floors at zero", func(t *testing.T) {
		f := models.ParsedFilter{Budget: &models.Budget{Amount: 10, Period: models.BudgetPerDay}}
		s := sc.Score(f, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, 0.0, s.PriceMatch)
	})

	t.Run("missing price scores zero", func(t *testing.T) {
		unpriced := scoreSpace
		unpriced.PricePerDay = 0
		f := models.ParsedFilter{Budget: &models.Budget{Amount: 100, Period: models.BudgetPerDay}}
		s := sc.Score(f, unpriced, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, 0.0, s.PriceMatch)
		assert.Contains(t, s.Reasons, "No price listed")
	})
}

func TestScoreSize(t *testing.T) {
	sc := newScorer()
	filter := models.ParsedFilter{MinSizeM2: 20}

	t.Run("exact", func(t *testing.T) {
		s := sc.Score(filter, scoreSpace, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, models.MaxSizeScore, s.SizeMatch)
	})

	t.Run("larger gets partial credit", func(t *testing.T) {
		big := scoreSpace
		big.SizeM2 = 40
		s := sc.Score(filter, big, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.InDelta(t, models.MaxSizeScore/2, s.SizeMatch, 1e-9)
	})

	t.Run("smaller scores zero", func(t *testing.T) {
		small := scoreSpace
		small.SizeM2 = 15
		s := sc.Score(filter, small, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, 0.0, s.SizeMatch)
	})

	t.Run("size not listed scores zero", func(t *testing.T) {
		third := models.ThirdLineAsset{ID: "t1", CentreID: "c1", Category: "vending", PricePerDay: 30, State: "NSW"}
		s := sc.Score(filter, third, scoreCentre, nil, scoreWindow[0], scoreWindow[1], false)
		assert.Equal(t, 0.0, s.SizeMatch)
		assert.Contains(t, s.Reasons, "Size not listed")
	})
}

func TestScoreBuckets(t *testing.T) {
	cases := []struct {
		total float64
		want  string
	}{
		{100, "best"},
		{70, "best"},
		{69.9, "good"},
		{40, "good"},
		{39.9, "other"},
		{0, "other"},
	}
	for _, tc := range cases {
		m := models.MatchScore{Total: tc.total}
		require.Equal(t, tc.want, m.Bucket(), "total %v", tc.total)
	}
}
