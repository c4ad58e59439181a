package model

import "time"

// Booking references one customer and one flight, owning neither. Its identity
// is the (flight, booking date) pair, not the generated id: one flight can be
// booked at most once per calendar date.
type Booking struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerID  string    `json:"customer_id" bson:"customer_id" validate:"required,mongodb"`
	FlightID    string    `json:"flight_id" bson:"flight_id" validate:"required,mongodb"`
	BookingDate time.Time `json:"booking_date" bson:"booking_date" validate:"required"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// DateOnly truncates t to a UTC calendar date. Booking dates carry no time
// component, so every comparison and the (flight, date) unique index operate
// on midnight-UTC values.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
