package models

// AssetType discriminates the three kinds of bookable space.
type AssetType string

const (
	AssetCasualLeasing AssetType = "casual_leasing"
	AssetVacantShop    AssetType = "vacant_shop"
	AssetThirdLine     AssetType = "third_line"
)

// CategoryPolicy records which product categories a space is approved for.
// AllApproved is an explicit flag rather than an empty-set convention so an
// accidentally empty set cannot silently mean "approve everything".
type CategoryPolicy struct {
	AllApproved bool     `bson:"allApproved" json:"allApproved"`
	IDs         []string `bson:"ids,omitempty" json:"ids,omitempty"`
}

// Allows reports whether the policy permits the given category.
func (p CategoryPolicy) Allows(categoryID string) bool {
	if p.AllApproved {
		return true
	}
	for _, id := range p.IDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// Space is the uniform view over the three asset kinds. The scorer and the
// availability engine only need these accessors; handlers serialise the
// concrete structs.
type Space interface {
	SpaceID() string
	Asset() AssetType
	Centre() string
	Size() float64 // square metres, 0 when not applicable
	Tables() int   // 0 when not applicable
	Categories() CategoryPolicy
	DailyRate() float64
	WeekendDailyRate() float64 // 0 means same as DailyRate
	Region() string            // state code inherited from the centre
}

// CasualSite is a casual-leasing site on the mall floor.
type CasualSite struct {
	ID                 string         `bson:"id" json:"id"`
	CentreID           string         `bson:"centreId" json:"centreId"`
	Name               string         `bson:"name" json:"name"`
	Description        string         `bson:"description,omitempty" json:"description,omitempty"`
	SizeM2             float64        `bson:"sizeM2,omitempty" json:"sizeM2,omitempty"`
	MaxTables          int            `bson:"maxTables,omitempty" json:"maxTables,omitempty"`
	Approved           CategoryPolicy `bson:"approved" json:"approved"`
	PricePerDay        float64        `bson:"pricePerDay" json:"pricePerDay"`
	WeekendPricePerDay float64        `bson:"weekendPricePerDay,omitempty" json:"weekendPricePerDay,omitempty"`
	State              string         `bson:"state" json:"state"`
}

func (s CasualSite) SpaceID() string            { return s.ID }
func (s CasualSite) Asset() AssetType           { return AssetCasualLeasing }
func (s CasualSite) Centre() string             { return s.CentreID }
func (s CasualSite) Size() float64              { return s.SizeM2 }
func (s CasualSite) Tables() int                { return s.MaxTables }
func (s CasualSite) Categories() CategoryPolicy { return s.Approved }
func (s CasualSite) DailyRate() float64         { return s.PricePerDay }
func (s CasualSite) WeekendDailyRate() float64  { return s.WeekendPricePerDay }
func (s CasualSite) Region() string             { return s.State }

// VacantShop is an empty tenancy offered for short-term lease.
type VacantShop struct {
	ID          string         `bson:"id" json:"id"`
	CentreID    string         `bson:"centreId" json:"centreId"`
	ShopNumber  string         `bson:"shopNumber" json:"shopNumber"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	SizeM2      float64        `bson:"sizeM2,omitempty" json:"sizeM2,omitempty"`
	Approved    CategoryPolicy `bson:"approved" json:"approved"`
	PricePerDay float64        `bson:"pricePerDay" json:"pricePerDay"`
	State       string         `bson:"state" json:"state"`
}

func (s VacantShop) SpaceID() string            { return s.ID }
func (s VacantShop) Asset() AssetType           { return AssetVacantShop }
func (s VacantShop) Centre() string             { return s.CentreID }
func (s VacantShop) Size() float64              { return s.SizeM2 }
func (s VacantShop) Tables() int                { return 0 }
func (s VacantShop) Categories() CategoryPolicy { return s.Approved }
func (s VacantShop) DailyRate() float64         { return s.PricePerDay }
func (s VacantShop) WeekendDailyRate() float64  { return 0 }
func (s VacantShop) Region() string             { return s.State }

// ThirdLineAsset is non-tenancy income such as vending machines, signage or ATMs.
type ThirdLineAsset struct {
	ID          string  `bson:"id" json:"id"`
	CentreID    string  `bson:"centreId" json:"centreId"`
	Category    string  `bson:"category" json:"category"` // e.g. "vending", "signage", "atm"
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	PricePerDay float64 `bson:"pricePerDay" json:"pricePerDay"`
	State       string  `bson:"state" json:"state"`
}

func (s ThirdLineAsset) SpaceID() string            { return s.ID }
func (s ThirdLineAsset) Asset() AssetType           { return AssetThirdLine }
func (s ThirdLineAsset) Centre() string             { return s.CentreID }
func (s ThirdLineAsset) Size() float64              { return 0 }
func (s ThirdLineAsset) Tables() int                { return 0 }
func (s ThirdLineAsset) Categories() CategoryPolicy { return CategoryPolicy{AllApproved: true} }
func (s ThirdLineAsset) DailyRate() float64         { return s.PricePerDay }
func (s ThirdLineAsset) WeekendDailyRate() float64  { return 0 }
func (s ThirdLineAsset) Region() string             { return s.State }
