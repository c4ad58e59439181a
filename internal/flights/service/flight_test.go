package service

import (
	"context"
	"errors"
	"testing"

	flighterrors "skybook/internal/flights/errors"
	dbmongo "skybook/pkg/db/mongo"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

type mockFlightRepo struct {
	createFn       func(ctx context.Context, flight *model.Flight) error
	findByIDFn     func(ctx context.Context, id string) (*model.Flight, error)
	findAllFn      func(ctx context.Context, limit int, offset int64) ([]*model.Flight, error)
	countFn        func(ctx context.Context) (int64, error)
	findByNumberFn func(ctx context.Context, number string, limit int64) ([]*model.Flight, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockFlightRepo) Create(ctx context.Context, flight *model.Flight) error {
	return m.createFn(ctx, flight)
}

func (m *mockFlightRepo) FindByID(ctx context.Context, id string) (*model.Flight, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockFlightRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Flight, error) {
	return m.findAllFn(ctx, limit, offset)
}

func (m *mockFlightRepo) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}

func (m *mockFlightRepo) FindByNumber(ctx context.Context, number string, limit int64) ([]*model.Flight, error) {
	return m.findByNumberFn(ctx, number, limit)
}

func (m *mockFlightRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockFlightValidator struct {
	validateFn func(ctx context.Context, flight *model.Flight) error
}

func (m *mockFlightValidator) Validate(ctx context.Context, flight *model.Flight) error {
	if m.validateFn == nil {
		return nil
	}
	return m.validateFn(ctx, flight)
}

type mockBookingRemover struct {
	deleteByFlightFn func(ctx context.Context, flightID string) (int64, error)
}

func (m *mockBookingRemover) DeleteByFlight(ctx context.Context, flightID string) (int64, error) {
	return m.deleteByFlightFn(ctx, flightID)
}

// fakeTxManager runs the function without a real session. The nil session
// context is fine for mocks that never touch Mongo.
type fakeTxManager struct {
	executed bool
}

func (f *fakeTxManager) ExecuteTransaction(_ context.Context, fn dbmongo.TransactionFunc) error {
	f.executed = true
	return fn(nil)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
}

func validFlight() *model.Flight {
	return &model.Flight{
		Number:      "BA123",
		Departure:   "NCL",
		Destination: "LHR",
	}
}

func TestFlightCreateNormalizesNumber(t *testing.T) {
	var stored *model.Flight
	repo := &mockFlightRepo{
		createFn: func(_ context.Context, f *model.Flight) error {
			stored = f
			f.ID = "64f000000000000000000001"
			return nil
		},
	}
	svc := NewFlightService(testLogger(), repo, &mockFlightValidator{}, nil, nil, nil)

	flight := validFlight()
	flight.Number = " ba123 "
	created, err := svc.Create(context.Background(), flight)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if stored.Number != "BA123" {
		t.Errorf("number not normalized: %q", stored.Number)
	}
	if created.ID == "" {
		t.Error("created flight has no ID")
	}
}

func TestFlightCreateDuplicateKeyRemapped(t *testing.T) {
	repo := &mockFlightRepo{
		createFn: func(_ context.Context, _ *model.Flight) error {
			return flighterrors.ErrDuplicateKey
		},
	}
	svc := NewFlightService(testLogger(), repo, &mockFlightValidator{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), validFlight())
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestFlightDeleteCascadesInsideTransaction(t *testing.T) {
	flight := validFlight()
	flight.ID = "64f000000000000000000001"

	flightDeleted := false
	repo := &mockFlightRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Flight, error) {
			return flight, nil
		},
		deleteFn: func(_ context.Context, _ string) error {
			flightDeleted = true
			return nil
		},
	}
	bookings := &mockBookingRemover{
		deleteByFlightFn: func(_ context.Context, flightID string) (int64, error) {
			if flightID != flight.ID {
				t.Errorf("cascade used wrong flight id: %q", flightID)
			}
			return 3, nil
		},
	}
	tx := &fakeTxManager{}
	svc := NewFlightService(testLogger(), repo, &mockFlightValidator{}, bookings, tx, nil)

	if err := svc.Delete(context.Background(), flight.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !tx.executed {
		t.Error("cascade did not run inside a transaction")
	}
	if !flightDeleted {
		t.Error("flight document was not deleted")
	}
}

func TestFlightDeleteAbortsWhenCascadeFails(t *testing.T) {
	flight := validFlight()
	flight.ID = "64f000000000000000000001"

	flightDeleted := false
	repo := &mockFlightRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Flight, error) {
			return flight, nil
		},
		deleteFn: func(_ context.Context, _ string) error {
			flightDeleted = true
			return nil
		},
	}
	bookings := &mockBookingRemover{
		deleteByFlightFn: func(_ context.Context, _ string) (int64, error) {
			return 0, errors.New("write conflict")
		},
	}
	svc := NewFlightService(testLogger(), repo, &mockFlightValidator{}, bookings, &fakeTxManager{}, nil)

	err := svc.Delete(context.Background(), flight.ID)
	if !apperrors.IsCode(err, apperrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if flightDeleted {
		t.Error("flight was deleted after the cascade failed")
	}
}

func TestFlightDeleteNotFound(t *testing.T) {
	repo := &mockFlightRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Flight, error) {
			return nil, flighterrors.ErrNotFound
		},
	}
	svc := NewFlightService(testLogger(), repo, &mockFlightValidator{}, nil, nil, nil)

	err := svc.Delete(context.Background(), "64f000000000000000000009")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
