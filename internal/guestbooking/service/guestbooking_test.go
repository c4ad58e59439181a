package service

import (
	"context"
	"testing"
	"time"

	dbmongo "skybook/pkg/db/mongo"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

type mockCustomerService struct {
	createFn func(ctx context.Context, customer *model.Customer) (*model.Customer, error)
}

func (m *mockCustomerService) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	return m.createFn(ctx, customer)
}

func (m *mockCustomerService) GetByID(_ context.Context, _ string) (*model.Customer, error) {
	return nil, nil
}

func (m *mockCustomerService) GetAll(_ context.Context, _ int, _ int64) ([]*model.Customer, int64, error) {
	return nil, 0, nil
}

func (m *mockCustomerService) Update(_ context.Context, _ string, _ *model.Customer) (*model.Customer, error) {
	return nil, nil
}

func (m *mockCustomerService) Delete(_ context.Context, _ string) error { return nil }

type mockBookingService struct {
	createFn func(ctx context.Context, booking *model.Booking) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	return m.createFn(ctx, booking)
}

func (m *mockBookingService) GetByID(_ context.Context, _ string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) GetAll(_ context.Context, _ int, _ int64) ([]*model.Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingService) GetByCustomer(_ context.Context, _ string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) Delete(_ context.Context, _ string) error { return nil }

// fakeTxManager mimics transaction semantics for mocks: when the function
// fails, writes recorded through rollback() are undone.
type fakeTxManager struct {
	rollback func()
}

func (f *fakeTxManager) ExecuteTransaction(_ context.Context, fn dbmongo.TransactionFunc) error {
	err := fn(nil)
	if err != nil && f.rollback != nil {
		f.rollback()
	}
	return err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
}

func validGuestBooking() *model.GuestBooking {
	return &model.GuestBooking{
		Customer: model.Customer{
			Name:  "Georgios Kallergis",
			Email: "george@example.com",
			Phone: "07871545186",
		},
		Booking: model.Booking{
			FlightID:    "64f000000000000000000002",
			BookingDate: model.DateOnly(time.Now().AddDate(0, 0, 7)),
		},
	}
}

func TestGuestBookingCommitsBothRecords(t *testing.T) {
	customers := &mockCustomerService{
		createFn: func(_ context.Context, c *model.Customer) (*model.Customer, error) {
			c.ID = "64f000000000000000000001"
			return c, nil
		},
	}

	var bookedCustomerID string
	bookings := &mockBookingService{
		createFn: func(_ context.Context, b *model.Booking) (*model.Booking, error) {
			bookedCustomerID = b.CustomerID
			b.ID = "64f000000000000000000003"
			return b, nil
		},
	}

	svc := NewGuestBookingService(testLogger(), customers, bookings, &fakeTxManager{}, nil)

	result, err := svc.Create(context.Background(), validGuestBooking())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if result.Customer == nil || result.Customer.ID == "" {
		t.Fatal("result has no customer")
	}
	if result.Booking == nil || result.Booking.ID == "" {
		t.Fatal("result has no booking")
	}
	if bookedCustomerID != result.Customer.ID {
		t.Errorf("booking not linked to new customer: got %q want %q", bookedCustomerID, result.Customer.ID)
	}
}

func TestGuestBookingRollsBackCustomerWhenBookingFails(t *testing.T) {
	customerPersisted := false
	customers := &mockCustomerService{
		createFn: func(_ context.Context, c *model.Customer) (*model.Customer, error) {
			customerPersisted = true
			c.ID = "64f000000000000000000001"
			return c, nil
		},
	}
	bookings := &mockBookingService{
		createFn: func(_ context.Context, _ *model.Booking) (*model.Booking, error) {
			return nil, apperrors.Duplicate("booking for this flight and date already exists", map[string]any{
				"flight_id": "64f000000000000000000002",
			})
		},
	}
	tx := &fakeTxManager{rollback: func() { customerPersisted = false }}

	svc := NewGuestBookingService(testLogger(), customers, bookings, tx, nil)

	_, err := svc.Create(context.Background(), validGuestBooking())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if customerPersisted {
		t.Error("customer write survived the rollback")
	}
}

func TestGuestBookingSurfacesOriginalFailureKind(t *testing.T) {
	cases := []struct {
		name        string
		customerErr error
		bookingErr  error
		wantCode    string
	}{
		{
			name:        "duplicate email",
			customerErr: apperrors.Duplicate("customer with this email already exists", map[string]any{"email": "george@example.com"}),
			wantCode:    apperrors.CodeConflict,
		},
		{
			name:       "invalid booking",
			bookingErr: apperrors.Validation("booking validation failed", map[string]any{"booking_date": "booking date must be in the future"}),
			wantCode:   apperrors.CodeValidation,
		},
		{
			name:       "unknown flight",
			bookingErr: apperrors.NotFoundWithID("Flight", "64f000000000000000000002"),
			wantCode:   apperrors.CodeNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customers := &mockCustomerService{
				createFn: func(_ context.Context, c *model.Customer) (*model.Customer, error) {
					if tc.customerErr != nil {
						return nil, tc.customerErr
					}
					c.ID = "64f000000000000000000001"
					return c, nil
				},
			}
			bookings := &mockBookingService{
				createFn: func(_ context.Context, _ *model.Booking) (*model.Booking, error) {
					return nil, tc.bookingErr
				},
			}

			svc := NewGuestBookingService(testLogger(), customers, bookings, &fakeTxManager{}, nil)

			_, err := svc.Create(context.Background(), validGuestBooking())
			if !apperrors.IsCode(err, tc.wantCode) {
				t.Fatalf("expected code %s, got %v", tc.wantCode, err)
			}
		})
	}
}
