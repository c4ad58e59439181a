package model

// GuestBooking is the composite payload for the one operation that creates a
// customer and a booking as a single atomic unit. The booking's customer_id is
// filled in by the coordinator once the customer has been created.
type GuestBooking struct {
	Customer Customer `json:"customer"`
	Booking  Booking  `json:"booking"`
}

// GuestBookingResult carries both records exactly as committed.
type GuestBookingResult struct {
	Customer *Customer `json:"customer"`
	Booking  *Booking  `json:"booking"`
}
