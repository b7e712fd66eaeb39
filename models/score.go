package models

// Relevance sub-score maxima. They sum to 100.
const (
	MaxCategoryScore     = 30.0
	MaxLocationScore     = 25.0
	MaxAvailabilityScore = 20.0
	MaxPriceScore        = 15.0
	MaxSizeScore         = 10.0
)

// Presentation buckets for ranked results.
const (
	BestMatchThreshold = 70.0
	GoodMatchThreshold = 40.0
)

// MatchScore is the 0-100 relevance of a space against a parsed filter,
// broken down per factor, with human-readable reasons for the UI tooltip.
type MatchScore struct {
	SpaceID       string   `json:"spaceId"`
	Total         float64  `json:"total"`
	CategoryMatch float64  `json:"categoryMatch"`
	LocationMatch float64  `json:"locationMatch"`
	Availability  float64  `json:"availability"`
	PriceMatch    float64  `json:"priceMatch"`
	SizeMatch     float64  `json:"sizeMatch"`
	Reasons       []string `json:"reasons"`
}

// Bucket classifies the total into the presentation tier.
func (m MatchScore) Bucket() string {
	switch {
	case m.Total >= BestMatchThreshold:
		return "best"
	case m.Total >= GoodMatchThreshold:
		return "good"
	default:
		return "other"
	}
}
