package service

import (
	"context"
	"errors"
	"sync"

	flighterrors "skybook/internal/flights/errors"
	"skybook/internal/flights/repository"
	"skybook/internal/flights/validator"
	dbmongo "skybook/pkg/db/mongo"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/kafka"
	"skybook/pkg/logger"
	"skybook/pkg/model"
	"skybook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const eventSource = "flights-service"

// BookingRemover removes every booking referencing a flight. The bookings
// repository satisfies it; taking an interface keeps the cascade testable
// and the packages uncoupled.
type BookingRemover interface {
	DeleteByFlight(ctx context.Context, flightID string) (int64, error)
}

type FlightService interface {
	Create(ctx context.Context, flight *model.Flight) (*model.Flight, error)
	GetByID(ctx context.Context, id string) (*model.Flight, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Flight, int64, error)
	Delete(ctx context.Context, id string) error
}

type flightService struct {
	log       *logger.Logger
	repo      repository.FlightRepository
	validator validator.FlightValidator
	bookings  BookingRemover
	txManager dbmongo.TransactionManager
	producer  *kafka.Producer
}

// NewFlightService wires a service around the repository and validator.
// producer may be nil to disable event publishing.
func NewFlightService(log *logger.Logger, repo repository.FlightRepository, v validator.FlightValidator, bookings BookingRemover, txManager dbmongo.TransactionManager, producer *kafka.Producer) FlightService {
	return &flightService{
		log:       log,
		repo:      repo,
		validator: v,
		bookings:  bookings,
		txManager: txManager,
		producer:  producer,
	}
}

func (s *flightService) Create(ctx context.Context, flight *model.Flight) (*model.Flight, error) {
	s.sanitize(flight)

	if err := s.validator.Validate(ctx, flight); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		if errors.Is(err, flighterrors.ErrDuplicateKey) {
			return nil, apperrors.Duplicate("flight with this number already exists", map[string]any{"number": flight.Number})
		}
		return nil, apperrors.Internal("failed to create flight", err)
	}

	s.log.Info("flight created", "flight_id", flight.ID, "number", flight.Number)
	s.publish(ctx, kafka.EventFlightCreated, flight, 0)

	return flight, nil
}

func (s *flightService) GetByID(ctx context.Context, id string) (*model.Flight, error) {
	flight, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return flight, nil
}

func (s *flightService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Flight, int64, error) {
	var (
		wg       sync.WaitGroup
		flights  []*model.Flight
		total    int64
		findErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		flights, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.repo.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, apperrors.Internal("failed to list flights", findErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("failed to count flights", countErr)
	}

	return flights, total, nil
}

// Delete removes the flight and every booking referencing it in one
// transaction, so a reader never observes a booking whose flight is gone.
func (s *flightService) Delete(ctx context.Context, id string) error {
	flight, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapLookupError(err, id)
	}

	var cascaded int64
	err = s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		removed, err := s.bookings.DeleteByFlight(sessCtx, id)
		if err != nil {
			return err
		}
		cascaded = removed

		return s.repo.Delete(sessCtx, id)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		if errors.Is(err, flighterrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Flight", id)
		}
		return apperrors.Internal("failed to delete flight", err)
	}

	s.log.Info("flight deleted", "flight_id", id, "number", flight.Number, "cascaded_bookings", cascaded)
	s.publish(ctx, kafka.EventFlightDeleted, flight, cascaded)

	return nil
}

func (s *flightService) sanitize(flight *model.Flight) {
	flight.Number = sanitizer.NormalizeFlightNumber(flight.Number)
	flight.Departure = sanitizer.NormalizeAirportCode(flight.Departure)
	flight.Destination = sanitizer.NormalizeAirportCode(flight.Destination)
}

func (s *flightService) mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, flighterrors.ErrNotFound):
		return apperrors.NotFoundWithID("Flight", id)
	case errors.Is(err, flighterrors.ErrInvalidID):
		return apperrors.InvalidInput("invalid flight ID format")
	default:
		return apperrors.Internal("flight lookup failed", err)
	}
}

func (s *flightService) publish(ctx context.Context, eventType string, flight *model.Flight, cascaded int64) {
	if s.producer == nil {
		return
	}

	event := kafka.FlightEvent{
		Type:             eventType,
		FlightID:         flight.ID,
		Number:           flight.Number,
		CascadedBookings: cascaded,
	}
	msg, err := kafka.NewEventMessage(flight.ID, eventType, eventSource, event)
	if err != nil {
		s.log.Error("failed to encode flight event", "event_type", eventType, "error", err)
		return
	}
	if err := s.producer.Publish(ctx, msg); err != nil {
		s.log.Error("failed to publish flight event", "event_type", eventType, "error", err)
	}
}
