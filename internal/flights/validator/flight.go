package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skybook/internal/flights/repository"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"

	"github.com/go-playground/validator/v10"
)

const uniquenessProbeLimit = 2

type FlightValidator interface {
	Validate(ctx context.Context, flight *model.Flight) error
}

type flightValidator struct {
	log      *logger.Logger
	validate *validator.Validate
	repo     repository.FlightRepository
}

func NewFlightValidator(log *logger.Logger, repo repository.FlightRepository) (FlightValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := model.RegisterCustomValidations(v); err != nil {
		return nil, fmt.Errorf("failed to register custom validations: %w", err)
	}

	return &flightValidator{
		log:      log,
		validate: v,
		repo:     repo,
	}, nil
}

// Validate checks field constraints, the departure/destination distinctness
// rule, then probes the flight number key. The unique index on the collection
// backs the probe against concurrent inserts.
func (fv *flightValidator) Validate(ctx context.Context, flight *model.Flight) error {
	if err := fv.validateFields(flight); err != nil {
		return err
	}

	if strings.EqualFold(flight.Departure, flight.Destination) {
		return apperrors.Validation("flight validation failed", map[string]any{
			"destination": "destination must differ from departure",
		})
	}

	return fv.validateUniqueNumber(ctx, flight.Number)
}

func (fv *flightValidator) validateFields(flight *model.Flight) error {
	err := fv.validate.Struct(flight)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("flight validation failed", model.TranslateTagErrors(verrs))
	}

	return apperrors.Internal("flight validation failed", err)
}

func (fv *flightValidator) validateUniqueNumber(ctx context.Context, number string) error {
	matches, err := fv.repo.FindByNumber(ctx, number, uniquenessProbeLimit)
	if err != nil {
		return apperrors.Internal("failed to check flight number uniqueness", err)
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		return apperrors.Duplicate("flight with this number already exists", map[string]any{"number": number})
	default:
		fv.log.Warn("ambiguous uniqueness state: multiple flights share one number",
			"number", number,
			"matches", len(matches),
		)
		return apperrors.Duplicate("flight with this number already exists", map[string]any{"number": number})
	}
}
