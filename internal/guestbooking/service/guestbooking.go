package service

import (
	"context"

	bookingservice "skybook/internal/bookings/service"
	customerservice "skybook/internal/customers/service"
	dbmongo "skybook/pkg/db/mongo"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/kafka"
	"skybook/pkg/logger"
	"skybook/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const eventSource = "guestbooking-service"

// Saga states, logged as the flow advances. The transaction makes the
// customer and booking writes atomic; the states exist so an operator can
// see where a failed flow stopped.
const (
	stateStarted         = "started"
	stateCustomerCreated = "customer_created"
	stateBookingCreated  = "booking_created"
	stateCommitted       = "committed"
	stateRolledBack      = "rolled_back"
)

type GuestBookingService interface {
	Create(ctx context.Context, guest *model.GuestBooking) (*model.GuestBookingResult, error)
}

type guestBookingService struct {
	log       *logger.Logger
	customers customerservice.CustomerService
	bookings  bookingservice.BookingService
	txManager dbmongo.TransactionManager
	producer  *kafka.Producer
}

// NewGuestBookingService builds the coordinator. The customer and booking
// services passed here must be producer-less instances so no event escapes
// a transaction that later rolls back; the coordinator publishes its own
// event after commit.
func NewGuestBookingService(log *logger.Logger, customers customerservice.CustomerService, bookings bookingservice.BookingService, txManager dbmongo.TransactionManager, producer *kafka.Producer) GuestBookingService {
	return &guestBookingService{
		log:       log,
		customers: customers,
		bookings:  bookings,
		txManager: txManager,
		producer:  producer,
	}
}

// Create registers the customer and books the flight as one unit. Either
// both records exist afterwards or neither does. Failure kinds surface
// unchanged, so a duplicate email reads the same here as on the plain
// customer endpoint.
func (s *guestBookingService) Create(ctx context.Context, guest *model.GuestBooking) (*model.GuestBookingResult, error) {
	sagaID := uuid.NewString()
	s.logState(sagaID, stateStarted, nil, nil)

	var result model.GuestBookingResult
	err := s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		customer, err := s.customers.Create(sessCtx, &guest.Customer)
		if err != nil {
			return err
		}
		result.Customer = customer
		s.logState(sagaID, stateCustomerCreated, customer, nil)

		guest.Booking.CustomerID = customer.ID
		booking, err := s.bookings.Create(sessCtx, &guest.Booking)
		if err != nil {
			return err
		}
		result.Booking = booking
		s.logState(sagaID, stateBookingCreated, customer, booking)

		return nil
	})
	if err != nil {
		s.log.Warn("guest booking rolled back",
			"saga_id", sagaID,
			"state", stateRolledBack,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("guest booking failed", err)
	}

	s.logState(sagaID, stateCommitted, result.Customer, result.Booking)
	s.publish(ctx, sagaID, &result)

	return &result, nil
}

func (s *guestBookingService) logState(sagaID, state string, customer *model.Customer, booking *model.Booking) {
	args := []any{"saga_id", sagaID, "state", state}
	if customer != nil {
		args = append(args, "customer_id", customer.ID)
	}
	if booking != nil {
		args = append(args, "booking_id", booking.ID)
	}
	s.log.Info("guest booking state", args...)
}

func (s *guestBookingService) publish(ctx context.Context, sagaID string, result *model.GuestBookingResult) {
	if s.producer == nil {
		return
	}

	event := kafka.GuestBookingEvent{
		Type:       kafka.EventGuestBookingCommitted,
		SagaID:     sagaID,
		CustomerID: result.Customer.ID,
		BookingID:  result.Booking.ID,
	}
	msg, err := kafka.NewEventMessage(sagaID, kafka.EventGuestBookingCommitted, eventSource, event)
	if err != nil {
		s.log.Error("failed to encode guest booking event", "saga_id", sagaID, "error", err)
		return
	}
	if err := s.producer.Publish(ctx, msg); err != nil {
		s.log.Error("failed to publish guest booking event", "saga_id", sagaID, "error", err)
	}
}
