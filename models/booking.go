package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
)

// OccupiesCalendar reports whether a booking in this status blocks dates.
// Only pending and confirmed bookings occupy the calendar.
func (s BookingStatus) OccupiesCalendar() bool {
	return s == BookingPending || s == BookingConfirmed
}

// BookingInterval is a booking's claim on a space over an inclusive date range.
type BookingInterval struct {
	ID        string        `bson:"id" json:"id"`
	SpaceID   string        `bson:"spaceId" json:"spaceId"`
	StartDate time.Time     `bson:"startDate" json:"startDate"` // inclusive
	EndDate   time.Time     `bson:"endDate" json:"endDate"`     // inclusive
	Status    BookingStatus `bson:"status" json:"status"`
}
