package broker

import (
	"context"
	"fmt"

	"crm-service/internal/models"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCustomerCreated publishes CustomerCreated event
func (ep *EventPublisher) PublishCustomerCreated(ctx context.Context, event *models.CustomerCreatedEvent) error {
	key := fmt.Sprintf("customer-%d", event.CustomerID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishProductCreated publishes ProductCreated event
func (ep *EventPublisher) PublishProductCreated(ctx context.Context, event *models.ProductCreatedEvent) error {
	key := fmt.Sprintf("product-%d", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderCreated publishes OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishLowStockUpdated publishes LowStockUpdated event
func (ep *EventPublisher) PublishLowStockUpdated(ctx context.Context, event *models.LowStockUpdatedEvent) error {
	return ep.producer.PublishEvent(ctx, "low-stock", event)
}
