package service

import (
	"context"
	"regexp"

	"crm-service/internal/models"
)

// FieldError is a structured business-rule violation tied to an input
// field. Mutations return these alongside a nil entity instead of a Go
// error; Go errors are reserved for infrastructure failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Accepts +1234567890 (with optional space or dash after the country
// code) or 123-456-7890.
var phoneRE = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10}$|^\d{3}-\d{3}-\d{4}$`)

func validPhone(phone string) bool {
	return phoneRE.MatchString(phone)
}

// EventPublisher publishes domain events after successful mutations.
// Publishing is best-effort: failures are logged by callers, never
// surfaced to API clients.
type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event *models.CustomerCreatedEvent) error
	PublishProductCreated(ctx context.Context, event *models.ProductCreatedEvent) error
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishLowStockUpdated(ctx context.Context, event *models.LowStockUpdatedEvent) error
}

// ProductCache is a read-through cache for product lookups
type ProductCache interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product) error
	InvalidateProduct(ctx context.Context, id int64) error
}
