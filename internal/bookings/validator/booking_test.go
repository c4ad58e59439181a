package validator

import (
	"context"
	"testing"
	"time"

	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

type mockBookingRepo struct {
	findByFlightAndDateFn func(ctx context.Context, flightID string, date time.Time, limit int64) ([]*model.Booking, error)
}

func (m *mockBookingRepo) Create(_ context.Context, _ *model.Booking) error { return nil }

func (m *mockBookingRepo) FindByID(_ context.Context, _ string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindAll(_ context.Context, _ int, _ int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func (m *mockBookingRepo) FindByCustomer(_ context.Context, _ string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindByFlightAndDate(ctx context.Context, flightID string, date time.Time, limit int64) ([]*model.Booking, error) {
	return m.findByFlightAndDateFn(ctx, flightID, date, limit)
}

func (m *mockBookingRepo) DeleteByFlight(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, _ string) error { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
}

func newValidator(t *testing.T, repo *mockBookingRepo) BookingValidator {
	t.Helper()
	v, err := NewBookingValidator(testLogger(), repo)
	if err != nil {
		t.Fatalf("NewBookingValidator returned error: %v", err)
	}
	return v
}

func validBooking() *model.Booking {
	return &model.Booking{
		CustomerID:  "64f000000000000000000001",
		FlightID:    "64f000000000000000000002",
		BookingDate: model.DateOnly(time.Now().AddDate(0, 0, 7)),
	}
}

func noMatches(_ context.Context, _ string, _ time.Time, _ int64) ([]*model.Booking, error) {
	return nil, nil
}

func TestBookingValidateAcceptsFutureBooking(t *testing.T) {
	v := newValidator(t, &mockBookingRepo{findByFlightAndDateFn: noMatches})

	if err := v.Validate(context.Background(), validBooking()); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestBookingValidateRejectsMalformedIDs(t *testing.T) {
	v := newValidator(t, &mockBookingRepo{findByFlightAndDateFn: noMatches})

	cases := []struct {
		name   string
		mutate func(b *model.Booking)
	}{
		{"missing customer id", func(b *model.Booking) { b.CustomerID = "" }},
		{"malformed customer id", func(b *model.Booking) { b.CustomerID = "abc" }},
		{"missing flight id", func(b *model.Booking) { b.FlightID = "" }},
		{"missing date", func(b *model.Booking) { b.BookingDate = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking := validBooking()
			tc.mutate(booking)

			err := v.Validate(context.Background(), booking)
			if !apperrors.IsCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestBookingValidateRejectsPastAndPresentDates(t *testing.T) {
	v := newValidator(t, &mockBookingRepo{findByFlightAndDateFn: noMatches})

	cases := []struct {
		name string
		date time.Time
	}{
		{"yesterday", model.DateOnly(time.Now().AddDate(0, 0, -1))},
		{"today", model.DateOnly(time.Now())},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking := validBooking()
			booking.BookingDate = tc.date

			err := v.Validate(context.Background(), booking)
			if !apperrors.IsCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			appErr := apperrors.AsAppError(err)
			if _, ok := appErr.Details["booking_date"]; !ok {
				t.Errorf("expected details for booking_date, got %v", appErr.Details)
			}
		})
	}
}

func TestBookingValidateRejectsDuplicateSlot(t *testing.T) {
	existing := validBooking()
	existing.ID = "64f000000000000000000003"
	v := newValidator(t, &mockBookingRepo{
		findByFlightAndDateFn: func(_ context.Context, flightID string, date time.Time, limit int64) ([]*model.Booking, error) {
			if limit != 2 {
				t.Errorf("expected probe limit 2, got %d", limit)
			}
			if !date.Equal(existing.BookingDate) {
				t.Errorf("probe used wrong date: %v", date)
			}
			return []*model.Booking{existing}, nil
		},
	})

	err := v.Validate(context.Background(), validBooking())
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
