package validator

import (
	"context"
	"testing"

	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

type mockFlightRepo struct {
	findByNumberFn func(ctx context.Context, number string, limit int64) ([]*model.Flight, error)
}

func (m *mockFlightRepo) Create(_ context.Context, _ *model.Flight) error { return nil }

func (m *mockFlightRepo) FindByID(_ context.Context, _ string) (*model.Flight, error) {
	return nil, nil
}

func (m *mockFlightRepo) FindAll(_ context.Context, _ int, _ int64) ([]*model.Flight, error) {
	return nil, nil
}

func (m *mockFlightRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func (m *mockFlightRepo) FindByNumber(ctx context.Context, number string, limit int64) ([]*model.Flight, error) {
	return m.findByNumberFn(ctx, number, limit)
}

func (m *mockFlightRepo) Delete(_ context.Context, _ string) error { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
}

func newValidator(t *testing.T, repo *mockFlightRepo) FlightValidator {
	t.Helper()
	v, err := NewFlightValidator(testLogger(), repo)
	if err != nil {
		t.Fatalf("NewFlightValidator returned error: %v", err)
	}
	return v
}

func validFlight() *model.Flight {
	return &model.Flight{
		Number:      "BA123",
		Departure:   "NCL",
		Destination: "LHR",
	}
}

func noMatches(_ context.Context, _ string, _ int64) ([]*model.Flight, error) {
	return nil, nil
}

func TestFlightValidateAcceptsValidFlight(t *testing.T) {
	v := newValidator(t, &mockFlightRepo{findByNumberFn: noMatches})

	if err := v.Validate(context.Background(), validFlight()); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestFlightValidateFieldRules(t *testing.T) {
	v := newValidator(t, &mockFlightRepo{findByNumberFn: noMatches})

	cases := []struct {
		name   string
		mutate func(f *model.Flight)
	}{
		{"number too short", func(f *model.Flight) { f.Number = "BA12" }},
		{"number too long", func(f *model.Flight) { f.Number = "BA1234" }},
		{"number with hyphen", func(f *model.Flight) { f.Number = "GR-02" }},
		{"lowercase departure", func(f *model.Flight) { f.Departure = "ncl" }},
		{"long destination", func(f *model.Flight) { f.Destination = "LHRX" }},
		{"missing departure", func(f *model.Flight) { f.Departure = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flight := validFlight()
			tc.mutate(flight)

			err := v.Validate(context.Background(), flight)
			if !apperrors.IsCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFlightValidateRejectsSameRouteEndpoints(t *testing.T) {
	v := newValidator(t, &mockFlightRepo{findByNumberFn: noMatches})

	flight := validFlight()
	flight.Destination = flight.Departure
	err := v.Validate(context.Background(), flight)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	appErr := apperrors.AsAppError(err)
	if _, ok := appErr.Details["destination"]; !ok {
		t.Errorf("expected details for destination, got %v", appErr.Details)
	}
}

func TestFlightValidateRejectsDuplicateNumber(t *testing.T) {
	existing := validFlight()
	existing.ID = "64f000000000000000000001"
	v := newValidator(t, &mockFlightRepo{
		findByNumberFn: func(_ context.Context, _ string, limit int64) ([]*model.Flight, error) {
			if limit != 2 {
				t.Errorf("expected probe limit 2, got %d", limit)
			}
			return []*model.Flight{existing}, nil
		},
	})

	err := v.Validate(context.Background(), validFlight())
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
