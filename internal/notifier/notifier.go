package notifier

import (
	"context"
	"time"

	"skybook/pkg/kafka"
	"skybook/pkg/logger"
)

// Notifier turns booking-related events into confirmation log lines. It
// stands in for a real delivery channel; the consumer redelivers on error,
// so Handle must stay idempotent.
type Notifier struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Handle(_ context.Context, msg kafka.Message) error {
	switch msg.GetEventType() {
	case kafka.EventBookingCreated:
		var event kafka.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}
		n.log.Info("Booking confirmed",
			"booking_id", event.BookingID,
			"customer_id", event.CustomerID,
			"flight_id", event.FlightID,
			"booking_date", event.BookingDate.Format(time.DateOnly),
		)

	case kafka.EventBookingDeleted:
		var event kafka.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}
		n.log.Info("Booking cancelled", "booking_id", event.BookingID, "customer_id", event.CustomerID)

	case kafka.EventGuestBookingCommitted:
		var event kafka.GuestBookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}
		n.log.Info("Guest booking confirmed",
			"saga_id", event.SagaID,
			"customer_id", event.CustomerID,
			"booking_id", event.BookingID,
		)

	case kafka.EventFlightDeleted:
		var event kafka.FlightEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}
		if event.CascadedBookings > 0 {
			n.log.Info("Flight cancelled, affected bookings removed",
				"flight_id", event.FlightID,
				"number", event.Number,
				"cascaded_bookings", event.CascadedBookings,
			)
		}

	default:
		// Customer and flight lifecycle events need no notification.
	}

	return nil
}
