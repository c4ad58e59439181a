package kafka

import "time"

// Event types published by the entity services and the guest-booking
// coordinator. The notifier consumes the booking-shaped ones.
const (
	EventCustomerCreated       = "customer.created"
	EventCustomerUpdated       = "customer.updated"
	EventCustomerDeleted       = "customer.deleted"
	EventFlightCreated         = "flight.created"
	EventFlightDeleted         = "flight.deleted"
	EventBookingCreated        = "booking.created"
	EventBookingDeleted        = "booking.deleted"
	EventGuestBookingCommitted = "guestbooking.committed"
)

type CustomerEvent struct {
	Type       string `json:"type"`
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

type FlightEvent struct {
	Type             string `json:"type"`
	FlightID         string `json:"flight_id"`
	Number           string `json:"number"`
	CascadedBookings int64  `json:"cascaded_bookings,omitempty"`
}

type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	CustomerID  string    `json:"customer_id"`
	FlightID    string    `json:"flight_id"`
	BookingDate time.Time `json:"booking_date"`
}

type GuestBookingEvent struct {
	Type       string `json:"type"`
	SagaID     string `json:"saga_id"`
	CustomerID string `json:"customer_id"`
	BookingID  string `json:"booking_id"`
}
