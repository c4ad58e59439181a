package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/bookings/repository"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"

	"github.com/go-playground/validator/v10"
)

const uniquenessProbeLimit = 2

type BookingValidator interface {
	Validate(ctx context.Context, booking *model.Booking) error
}

type bookingValidator struct {
	log      *logger.Logger
	validate *validator.Validate
	repo     repository.BookingRepository
}

func NewBookingValidator(log *logger.Logger, repo repository.BookingRepository) (BookingValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := model.RegisterCustomValidations(v); err != nil {
		return nil, fmt.Errorf("failed to register custom validations: %w", err)
	}

	return &bookingValidator{
		log:      log,
		validate: v,
		repo:     repo,
	}, nil
}

// Validate checks field constraints, the future-date rule, then probes the
// (flight, booking date) key. BookingDate must already be truncated to
// midnight UTC when this runs.
func (bv *bookingValidator) Validate(ctx context.Context, booking *model.Booking) error {
	if err := bv.validateFields(booking); err != nil {
		return err
	}

	// Strictly after today: a booking dated today is already in the past at
	// day granularity.
	today := model.DateOnly(time.Now())
	if !booking.BookingDate.After(today) {
		return apperrors.Validation("booking validation failed", map[string]any{
			"booking_date": "booking date must be in the future",
		})
	}

	return bv.validateUniqueSlot(ctx, booking)
}

func (bv *bookingValidator) validateFields(booking *model.Booking) error {
	err := bv.validate.Struct(booking)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("booking validation failed", model.TranslateTagErrors(verrs))
	}

	return apperrors.Internal("booking validation failed", err)
}

func (bv *bookingValidator) validateUniqueSlot(ctx context.Context, booking *model.Booking) error {
	matches, err := bv.repo.FindByFlightAndDate(ctx, booking.FlightID, booking.BookingDate, uniquenessProbeLimit)
	if err != nil {
		return apperrors.Internal("failed to check booking uniqueness", err)
	}

	if len(matches) == 0 {
		return nil
	}

	if len(matches) > 1 {
		bv.log.Warn("ambiguous uniqueness state: multiple bookings share one flight and date",
			"flight_id", booking.FlightID,
			"booking_date", booking.BookingDate,
			"matches", len(matches),
		)
	}

	return apperrors.Duplicate("booking for this flight and date already exists", map[string]any{
		"flight_id":    booking.FlightID,
		"booking_date": booking.BookingDate.Format(time.DateOnly),
	})
}
