package models

import "time"

// BudgetPeriod qualifies what a stated budget amount covers.
type BudgetPeriod string

const (
	BudgetPerDay  BudgetPeriod = "per_day"
	BudgetPerWeek BudgetPeriod = "per_week"
	BudgetTotal   BudgetPeriod = "total"
)

// Budget is a price ceiling extracted from the query, e.g. "$300/week".
type Budget struct {
	Amount float64      `json:"amount"`
	Period BudgetPeriod `json:"period"`
}

// ParsedFilter is the structured result of interpreting a free-text query.
// Zero values mean "not requested"; DateStart/DateEnd are nil when absent
// and the caller defaults the window to today.
type ParsedFilter struct {
	CentreNamePhrase  string     `json:"centreNamePhrase"`
	DateStart         *time.Time `json:"dateStart,omitempty"`
	DateEnd           *time.Time `json:"dateEnd,omitempty"` // inclusive
	MinSizeM2         float64    `json:"minSizeM2,omitempty"`
	MinTables         int        `json:"minTables,omitempty"`
	ProductCategory   string     `json:"productCategory,omitempty"` // canonical category id
	StateFilter       string     `json:"stateFilter,omitempty"`     // state code, e.g. "VIC"
	AssetType         AssetType  `json:"assetType,omitempty"`
	ThirdLineCategory string     `json:"thirdLineCategory,omitempty"`
	Budget            *Budget    `json:"budget,omitempty"`
}

// HasConstraints reports whether the filter carries a size, table or
// category requirement.
func (f ParsedFilter) HasConstraints() bool {
	return f.MinSizeM2 > 0 || f.MinTables > 0 || f.ProductCategory != ""
}
