package models

// Centre represents a shopping centre, the grouping container for bookable spaces.
type Centre struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Suburb    string  `bson:"suburb,omitempty" json:"suburb,omitempty"`
	City      string  `bson:"city,omitempty" json:"city,omitempty"`
	State     string  `bson:"state" json:"state"` // e.g. "NSW"
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}
