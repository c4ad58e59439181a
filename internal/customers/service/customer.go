package service

import (
	"context"
	"errors"
	"sync"

	customererrors "skybook/internal/customers/errors"
	"skybook/internal/customers/repository"
	"skybook/internal/customers/validator"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/kafka"
	"skybook/pkg/logger"
	"skybook/pkg/model"
	"skybook/pkg/sanitizer"
)

const eventSource = "customers-service"

type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error)
	Update(ctx context.Context, id string, customer *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id string) error
}

type customerService struct {
	log       *logger.Logger
	repo      repository.CustomerRepository
	validator validator.CustomerValidator
	producer  *kafka.Producer
}

// NewCustomerService wires a service around the repository and validator.
// producer may be nil; a nil producer disables event publishing, which the
// guest-booking coordinator relies on to keep events out of its transaction.
func NewCustomerService(log *logger.Logger, repo repository.CustomerRepository, v validator.CustomerValidator, producer *kafka.Producer) CustomerService {
	return &customerService{
		log:       log,
		repo:      repo,
		validator: v,
		producer:  producer,
	}
}

func (s *customerService) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	s.sanitize(customer)

	if err := s.validator.Validate(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, customererrors.ErrDuplicateKey) {
			return nil, apperrors.Duplicate("customer with this email already exists", map[string]any{"email": customer.Email})
		}
		return nil, apperrors.Internal("failed to create customer", err)
	}

	s.log.Info("customer created", "customer_id", customer.ID, "email", customer.Email)
	s.publish(ctx, kafka.EventCustomerCreated, customer)

	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return customer, nil
}

func (s *customerService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error) {
	var (
		wg        sync.WaitGroup
		customers []*model.Customer
		total     int64
		findErr   error
		countErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		customers, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.repo.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, apperrors.Internal("failed to list customers", findErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("failed to count customers", countErr)
	}

	return customers, total, nil
}

func (s *customerService) Update(ctx context.Context, id string, customer *model.Customer) (*model.Customer, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("customer ID is required")
	}
	if customer.ID != "" && customer.ID != id {
		return nil, apperrors.IDMismatch(id, customer.ID)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	s.sanitize(customer)
	if err := s.validator.ValidateExisting(ctx, id, customer); err != nil {
		return nil, err
	}

	customer.ID = id
	customer.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, customer); err != nil {
		switch {
		case errors.Is(err, customererrors.ErrDuplicateKey):
			return nil, apperrors.Duplicate("customer with this email already exists", map[string]any{"email": customer.Email})
		case errors.Is(err, customererrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Customer", id)
		default:
			return nil, apperrors.Internal("failed to update customer", err)
		}
	}

	s.log.Info("customer updated", "customer_id", id)
	s.publish(ctx, kafka.EventCustomerUpdated, customer)

	return customer, nil
}

// Delete is a no-op for an empty id so callers can issue it unconditionally
// during cleanup.
func (s *customerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, id)
	}

	s.log.Info("customer deleted", "customer_id", id)
	s.publish(ctx, kafka.EventCustomerDeleted, &model.Customer{ID: id})

	return nil
}

func (s *customerService) sanitize(customer *model.Customer) {
	customer.Name = sanitizer.NormalizeName(customer.Name)
	customer.Email = sanitizer.NormalizeEmail(customer.Email)
	customer.Phone = sanitizer.NormalizePhone(customer.Phone)
}

func (s *customerService) mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, customererrors.ErrNotFound):
		return apperrors.NotFoundWithID("Customer", id)
	case errors.Is(err, customererrors.ErrInvalidID):
		return apperrors.InvalidInput("invalid customer ID format")
	default:
		return apperrors.Internal("customer lookup failed", err)
	}
}

func (s *customerService) publish(ctx context.Context, eventType string, customer *model.Customer) {
	if s.producer == nil {
		return
	}

	event := kafka.CustomerEvent{
		Type:       eventType,
		CustomerID: customer.ID,
		Email:      customer.Email,
		Name:       customer.Name,
	}
	msg, err := kafka.NewEventMessage(customer.ID, eventType, eventSource, event)
	if err != nil {
		s.log.Error("failed to encode customer event", "event_type", eventType, "error", err)
		return
	}
	if err := s.producer.Publish(ctx, msg); err != nil {
		s.log.Error("failed to publish customer event", "event_type", eventType, "error", err)
	}
}
