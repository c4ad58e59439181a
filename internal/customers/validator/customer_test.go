package validator

import (
	"context"
	"testing"

	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"
)

type mockCustomerRepo struct {
	findByEmailFn func(ctx context.Context, email string, limit int64) ([]*model.Customer, error)
}

func (m *mockCustomerRepo) Create(_ context.Context, _ *model.Customer) error { return nil }

func (m *mockCustomerRepo) FindByID(_ context.Context, _ string) (*model.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) FindAll(_ context.Context, _ int, _ int64) ([]*model.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string, limit int64) ([]*model.Customer, error) {
	return m.findByEmailFn(ctx, email, limit)
}

func (m *mockCustomerRepo) Replace(_ context.Context, _ string, _ *model.Customer) error { return nil }

func (m *mockCustomerRepo) Delete(_ context.Context, _ string) error { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
}

func newValidator(t *testing.T, repo *mockCustomerRepo) CustomerValidator {
	t.Helper()
	v, err := NewCustomerValidator(testLogger(), repo)
	if err != nil {
		t.Fatalf("NewCustomerValidator returned error: %v", err)
	}
	return v
}

func validCustomer() *model.Customer {
	return &model.Customer{
		Name:  "Georgios Kallergis",
		Email: "george@example.com",
		Phone: "07871545186",
	}
}

func noMatches(_ context.Context, _ string, _ int64) ([]*model.Customer, error) {
	return nil, nil
}

func TestValidateAcceptsValidCustomer(t *testing.T) {
	v := newValidator(t, &mockCustomerRepo{findByEmailFn: noMatches})

	if err := v.Validate(context.Background(), validCustomer()); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidateFieldErrorsSkipUniquenessProbe(t *testing.T) {
	probed := false
	v := newValidator(t, &mockCustomerRepo{
		findByEmailFn: func(_ context.Context, _ string, _ int64) ([]*model.Customer, error) {
			probed = true
			return nil, nil
		},
	})

	cases := []struct {
		name   string
		mutate func(c *model.Customer)
		field  string
	}{
		{"missing name", func(c *model.Customer) { c.Name = "" }, "name"},
		{"digits in name", func(c *model.Customer) { c.Name = "Georgios2" }, "name"},
		{"bad email", func(c *model.Customer) { c.Email = "not-an-email" }, "email"},
		{"international phone", func(c *model.Customer) { c.Phone = "+447871545186" }, "phone"},
		{"short phone", func(c *model.Customer) { c.Phone = "0787154" }, "phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customer := validCustomer()
			tc.mutate(customer)

			err := v.Validate(context.Background(), customer)
			if !apperrors.IsCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			appErr := apperrors.AsAppError(err)
			if _, ok := appErr.Details[tc.field]; !ok {
				t.Errorf("expected details for field %q, got %v", tc.field, appErr.Details)
			}
		})
	}

	if probed {
		t.Error("uniqueness probe ran despite field validation failure")
	}
}

func TestValidateRejectsDuplicateEmail(t *testing.T) {
	other := validCustomer()
	other.ID = "64f000000000000000000001"
	v := newValidator(t, &mockCustomerRepo{
		findByEmailFn: func(_ context.Context, _ string, _ int64) ([]*model.Customer, error) {
			return []*model.Customer{other}, nil
		},
	})

	err := v.Validate(context.Background(), validCustomer())
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestValidateExistingTolerateOwnEmail(t *testing.T) {
	self := validCustomer()
	self.ID = "64f000000000000000000001"
	v := newValidator(t, &mockCustomerRepo{
		findByEmailFn: func(_ context.Context, _ string, _ int64) ([]*model.Customer, error) {
			return []*model.Customer{self}, nil
		},
	})

	if err := v.ValidateExisting(context.Background(), self.ID, validCustomer()); err != nil {
		t.Fatalf("ValidateExisting rejected the customer's own email: %v", err)
	}
}

func TestValidateAmbiguousMatchesRejected(t *testing.T) {
	a, b := validCustomer(), validCustomer()
	a.ID = "64f000000000000000000001"
	b.ID = "64f000000000000000000002"
	v := newValidator(t, &mockCustomerRepo{
		findByEmailFn: func(_ context.Context, _ string, limit int64) ([]*model.Customer, error) {
			if limit != 2 {
				t.Errorf("expected probe limit 2, got %d", limit)
			}
			return []*model.Customer{a, b}, nil
		},
	})

	err := v.ValidateExisting(context.Background(), a.ID, validCustomer())
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error for ambiguous state, got %v", err)
	}
}
