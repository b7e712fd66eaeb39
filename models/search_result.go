package models

import "time"

// Suggestion is a "did you mean" alternative offered when a search finds
// no centres.
type Suggestion struct {
	CentreID   string `json:"centreId"`
	CentreName string `json:"centreName"`
	Reason     string `json:"reason"`
	Distance   int    `json:"distance"` // edit distance, 0 for substring hits
}

// SearchResult is the full response of one interpreted search.
type SearchResult struct {
	Query                string                       `json:"query"`
	Filter               ParsedFilter                 `json:"filter"`
	Centres              []Centre                     `json:"centres"`
	Spaces               []Space                      `json:"spaces"`
	MatchedSpaceIDs      []string                     `json:"matchedSpaceIds,omitempty"`
	Availability         map[string][]BookingInterval `json:"availability,omitempty"`
	Scores               []MatchScore                 `json:"scores,omitempty"`
	SizeNotAvailable     bool                         `json:"sizeNotAvailable,omitempty"`
	ClosestMatch         Space                        `json:"closestMatch,omitempty"`
	CategoryNotAvailable bool                         `json:"categoryNotAvailable,omitempty"`
	AvailabilityDegraded bool                         `json:"availabilityDegraded,omitempty"`
	Cancelled            bool                         `json:"cancelled,omitempty"`
	Suggestions          []Suggestion                 `json:"suggestions,omitempty"`
}

// SearchEvent is the fire-and-forget analytics record emitted after each
// search. Failing to persist it never fails the search.
type SearchEvent struct {
	ID               string    `bson:"id" json:"id"`
	Query            string    `bson:"query" json:"query"`
	ParsedCentreName string    `bson:"parsedCentreName" json:"parsedCentreName"`
	MinSizeM2        float64   `bson:"minSizeM2,omitempty" json:"minSizeM2,omitempty"`
	ProductCategory  string    `bson:"productCategory,omitempty" json:"productCategory,omitempty"`
	ResultsCount     int       `bson:"resultsCount" json:"resultsCount"`
	SuggestionsShown bool      `bson:"suggestionsShown" json:"suggestionsShown"`
	SearchDate       time.Time `bson:"searchDate" json:"searchDate"`
}
