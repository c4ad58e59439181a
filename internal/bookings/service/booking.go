package service

import (
	"context"
	"errors"
	"sync"

	bookingerrors "skybook/internal/bookings/errors"
	"skybook/internal/bookings/repository"
	"skybook/internal/bookings/validator"
	customererrors "skybook/internal/customers/errors"
	flighterrors "skybook/internal/flights/errors"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/kafka"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

const eventSource = "bookings-service"

// CustomerChecker verifies a customer exists. The customers repository
// satisfies it.
type CustomerChecker interface {
	FindByID(ctx context.Context, id string) (*model.Customer, error)
}

// FlightChecker verifies a flight exists. The flights repository satisfies it.
type FlightChecker interface {
	FindByID(ctx context.Context, id string) (*model.Flight, error)
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	log       *logger.Logger
	repo      repository.BookingRepository
	validator validator.BookingValidator
	customers CustomerChecker
	flights   FlightChecker
	producer  *kafka.Producer
}

// NewBookingService wires a service around the repository and validator.
// producer may be nil to disable event publishing.
func NewBookingService(log *logger.Logger, repo repository.BookingRepository, v validator.BookingValidator, customers CustomerChecker, flights FlightChecker, producer *kafka.Producer) BookingService {
	return &bookingService{
		log:       log,
		repo:      repo,
		validator: v,
		customers: customers,
		flights:   flights,
		producer:  producer,
	}
}

// Create validates the booking, confirms both referenced records exist, then
// inserts. BookingDate is truncated to midnight UTC first so the natural key
// compares at day granularity.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.BookingDate = model.DateOnly(booking.BookingDate)

	if err := s.validator.Validate(ctx, booking); err != nil {
		return nil, err
	}

	if _, err := s.flights.FindByID(ctx, booking.FlightID); err != nil {
		if errors.Is(err, flighterrors.ErrNotFound) || errors.Is(err, flighterrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Flight", booking.FlightID)
		}
		return nil, apperrors.Internal("flight lookup failed", err)
	}

	if _, err := s.customers.FindByID(ctx, booking.CustomerID); err != nil {
		if errors.Is(err, customererrors.ErrNotFound) || errors.Is(err, customererrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Customer", booking.CustomerID)
		}
		return nil, apperrors.Internal("customer lookup failed", err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingerrors.ErrDuplicateKey) {
			return nil, apperrors.Duplicate("booking for this flight and date already exists", map[string]any{
				"flight_id":    booking.FlightID,
				"booking_date": booking.BookingDate,
			})
		}
		return nil, apperrors.Internal("failed to create booking", err)
	}

	s.log.Info("booking created",
		"booking_id", booking.ID,
		"customer_id", booking.CustomerID,
		"flight_id", booking.FlightID,
		"booking_date", booking.BookingDate,
	)
	s.publish(ctx, kafka.EventBookingCreated, booking)

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var (
		wg       sync.WaitGroup
		bookings []*model.Booking
		total    int64
		findErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.repo.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, apperrors.Internal("failed to list bookings", findErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("failed to count bookings", countErr)
	}

	return bookings, total, nil
}

func (s *bookingService) GetByCustomer(ctx context.Context, customerID string) ([]*model.Booking, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("customer ID is required")
	}

	bookings, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings by customer", err)
	}

	return bookings, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapLookupError(err, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, id)
	}

	s.log.Info("booking deleted", "booking_id", id)
	s.publish(ctx, kafka.EventBookingDeleted, booking)

	return nil
}

func (s *bookingService) mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, bookingerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingerrors.ErrInvalidID):
		return apperrors.InvalidInput("invalid booking ID format")
	default:
		return apperrors.Internal("booking lookup failed", err)
	}
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if s.producer == nil {
		return
	}

	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		CustomerID:  booking.CustomerID,
		FlightID:    booking.FlightID,
		BookingDate: booking.BookingDate,
	}
	msg, err := kafka.NewEventMessage(booking.ID, eventType, eventSource, event)
	if err != nil {
		s.log.Error("failed to encode booking event", "event_type", eventType, "error", err)
		return
	}
	if err := s.producer.Publish(ctx, msg); err != nil {
		s.log.Error("failed to publish booking event", "event_type", eventType, "error", err)
	}
}
