package service

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/store"
	"crm-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer mutations and queries
type CustomerService struct {
	store  store.Customers
	events EventPublisher
	logger *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(store store.Customers, events EventPublisher) *CustomerService {
	return &CustomerService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// CustomerInput is the payload for creating a customer
type CustomerInput struct {
	Name  string  `json:"name" binding:"required"`
	Email string  `json:"email" binding:"required"`
	Phone *string `json:"phone,omitempty"`
}

// CreateCustomerResult is the mutation envelope for a single customer
type CreateCustomerResult struct {
	Customer *models.Customer `json:"customer"`
	Message  string           `json:"message,omitempty"`
	Errors   []FieldError     `json:"errors,omitempty"`
}

// BulkCreateCustomersResult pairs the created customers with per-item
// error strings for the items that were skipped
type BulkCreateCustomersResult struct {
	Customers []models.Customer `json:"customers"`
	Errors    []string          `json:"errors,omitempty"`
}

// CreateCustomer validates and persists a single customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input CustomerInput) (*CreateCustomerResult, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	var fieldErrors []FieldError

	exists, err := s.store.CustomerEmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		fieldErrors = append(fieldErrors, FieldError{Field: "email", Message: "Email already exists"})
	}

	if input.Phone != nil && !validPhone(*input.Phone) {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   "phone",
			Message: "Phone number must be in format +1234567890 or 123-456-7890",
		})
	}

	if len(fieldErrors) > 0 {
		for _, fe := range fieldErrors {
			util.MutationErrorsTotal.WithLabelValues("create_customer", fe.Field).Inc()
		}
		return &CreateCustomerResult{Errors: fieldErrors}, nil
	}

	customer := &models.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	util.CustomersCreatedTotal.Inc()
	s.logger.Info("Customer created",
		zap.Int64("customer_id", customer.ID),
		zap.String("email", customer.Email))

	s.publishCustomerCreated(ctx, customer)

	return &CreateCustomerResult{
		Customer: customer,
		Message:  "Customer created successfully",
	}, nil
}

// BulkCreateCustomers creates a batch of customers inside one
// transaction. Failing items are skipped with a per-item error string
// and the transaction commits whatever succeeded. The uniqueness check
// runs inside the transaction, so earlier in-batch inserts are visible
// to later items.
func (s *CustomerService) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) (*BulkCreateCustomersResult, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.BulkCreateCustomers")
	defer span.End()

	created := []models.Customer{}
	var itemErrors []string

	err := s.store.InTx(ctx, func(tx store.Customers) error {
		for i, input := range inputs {
			exists, err := tx.CustomerEmailExists(ctx, input.Email)
			if err != nil {
				itemErrors = append(itemErrors, fmt.Sprintf("Customer %d: %v", i+1, err))
				continue
			}
			if exists {
				itemErrors = append(itemErrors, fmt.Sprintf("Customer %d: Email already exists", i+1))
				continue
			}

			if input.Phone != nil && !validPhone(*input.Phone) {
				itemErrors = append(itemErrors, fmt.Sprintf("Customer %d: Invalid phone format", i+1))
				continue
			}

			customer := models.Customer{
				Name:  input.Name,
				Email: input.Email,
				Phone: input.Phone,
			}
			if err := tx.CreateCustomer(ctx, &customer); err != nil {
				itemErrors = append(itemErrors, fmt.Sprintf("Customer %d: %v", i+1, err))
				continue
			}

			created = append(created, customer)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bulk create transaction failed: %w", err)
	}

	util.CustomersCreatedTotal.Add(float64(len(created)))
	if len(itemErrors) > 0 {
		util.BulkCustomersSkippedTotal.Add(float64(len(itemErrors)))
	}

	s.logger.Info("Bulk customer create finished",
		zap.Int("created", len(created)),
		zap.Int("skipped", len(itemErrors)))

	for i := range created {
		s.publishCustomerCreated(ctx, &created[i])
	}

	return &BulkCreateCustomersResult{
		Customers: created,
		Errors:    itemErrors,
	}, nil
}

// GetCustomer returns the customer or nil for an unknown id
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return s.store.GetCustomerByID(ctx, id)
}

// ListCustomers returns customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx, filter)
}

func (s *CustomerService) publishCustomerCreated(ctx context.Context, customer *models.Customer) {
	if s.events == nil {
		return
	}

	event := &models.CustomerCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCustomerCreated,
			Timestamp: time.Now(),
		},
		CustomerID: customer.ID,
		Email:      customer.Email,
	}

	if err := s.events.PublishCustomerCreated(ctx, event); err != nil {
		util.EventPublishFailuresTotal.WithLabelValues(models.EventTypeCustomerCreated).Inc()
		s.logger.Error("Failed to publish CustomerCreated event", zap.Error(err))
	}
}
