package model

import "time"

// Flight is identified by its number, compared case-insensitively. Departure
// and destination are IATA-style codes and must differ from each other.
// Flights are immutable once created; deleting one removes its bookings.
type Flight struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Number      string    `json:"number" bson:"number" validate:"required,len=5,alphanum"`
	Departure   string    `json:"departure" bson:"departure" validate:"required,airport_code"`
	Destination string    `json:"destination" bson:"destination" validate:"required,airport_code"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}
