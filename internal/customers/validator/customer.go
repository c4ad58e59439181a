package validator

import (
	"context"
	"errors"
	"fmt"

	"skybook/internal/customers/repository"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
	"skybook/pkg/model"

	"github.com/go-playground/validator/v10"
)

// uniquenessProbeLimit is 2 so a single read can tell apart "no match",
// "one match" and "more than one match" without scanning the collection.
const uniquenessProbeLimit = 2

type CustomerValidator interface {
	Validate(ctx context.Context, customer *model.Customer) error
	ValidateExisting(ctx context.Context, id string, customer *model.Customer) error
}

type customerValidator struct {
	log      *logger.Logger
	validate *validator.Validate
	repo     repository.CustomerRepository
}

func NewCustomerValidator(log *logger.Logger, repo repository.CustomerRepository) (CustomerValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := model.RegisterCustomValidations(v); err != nil {
		return nil, fmt.Errorf("failed to register custom validations: %w", err)
	}

	return &customerValidator{
		log:      log,
		validate: v,
		repo:     repo,
	}, nil
}

// Validate checks field constraints first, then probes the email key. A
// concurrent insert can still slip between the probe and the write, which is
// why the repository backs this with a unique index.
func (cv *customerValidator) Validate(ctx context.Context, customer *model.Customer) error {
	if err := cv.validateFields(customer); err != nil {
		return err
	}

	return cv.validateUniqueEmail(ctx, customer.Email, "")
}

// ValidateExisting applies the same rules as Validate but tolerates the
// email belonging to the customer being updated.
func (cv *customerValidator) ValidateExisting(ctx context.Context, id string, customer *model.Customer) error {
	if err := cv.validateFields(customer); err != nil {
		return err
	}

	return cv.validateUniqueEmail(ctx, customer.Email, id)
}

func (cv *customerValidator) validateFields(customer *model.Customer) error {
	err := cv.validate.Struct(customer)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("customer validation failed", model.TranslateTagErrors(verrs))
	}

	return apperrors.Internal("customer validation failed", err)
}

func (cv *customerValidator) validateUniqueEmail(ctx context.Context, email, excludeID string) error {
	matches, err := cv.repo.FindByEmail(ctx, email, uniquenessProbeLimit)
	if err != nil {
		return apperrors.Internal("failed to check email uniqueness", err)
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		if matches[0].ID == excludeID {
			return nil
		}
		return apperrors.Duplicate("customer with this email already exists", map[string]any{"email": email})
	default:
		// More than one document holds a key that should be unique. Refuse
		// the write rather than make the inconsistency worse.
		cv.log.Warn("ambiguous uniqueness state: multiple customers share one email",
			"email", email,
			"matches", len(matches),
		)
		return apperrors.Duplicate("customer with this email already exists", map[string]any{"email": email})
	}
}
