package service

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/store"
	"crm-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles order creation and queries
type OrderService struct {
	store     store.Orders
	customers store.Customers
	products  store.Products
	events    EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders store.Orders, customers store.Customers, products store.Products, events EventPublisher) *OrderService {
	return &OrderService{
		store:     orders,
		customers: customers,
		products:  products,
		events:    events,
		logger:    util.GetLogger(),
	}
}

// OrderInput is the payload for creating an order
type OrderInput struct {
	CustomerID int64      `json:"customer_id" binding:"required"`
	ProductIDs []int64    `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date,omitempty"`
}

// CreateOrderResult is the mutation envelope for an order
type CreateOrderResult struct {
	Order   *models.Order `json:"order"`
	Message string        `json:"message,omitempty"`
	Errors  []FieldError  `json:"errors,omitempty"`
}

// CreateOrder validates the customer and product set, computes the
// total, and persists the order with its product associations. Checks
// short-circuit in order: customer existence, non-empty product list,
// product resolution by count comparison.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderInput) (*CreateOrderResult, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	customer, err := s.customers.GetCustomerByID(ctx, input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer == nil {
		util.MutationErrorsTotal.WithLabelValues("create_order", "customer_id").Inc()
		return &CreateOrderResult{
			Errors: []FieldError{{Field: "customer_id", Message: "Invalid customer ID"}},
		}, nil
	}

	if len(input.ProductIDs) == 0 {
		util.MutationErrorsTotal.WithLabelValues("create_order", "product_ids").Inc()
		return &CreateOrderResult{
			Errors: []FieldError{{Field: "product_ids", Message: "At least one product is required"}},
		}, nil
	}

	products, err := s.products.GetProductsByIDs(ctx, input.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up products: %w", err)
	}
	if len(products) != len(input.ProductIDs) {
		util.MutationErrorsTotal.WithLabelValues("create_order", "product_ids").Inc()
		return &CreateOrderResult{
			Errors: []FieldError{{Field: "product_ids", Message: "One or more invalid product IDs"}},
		}, nil
	}

	total := decimal.Zero
	for _, product := range products {
		total = total.Add(product.Price)
	}

	order := &models.Order{
		CustomerID:  input.CustomerID,
		TotalAmount: total,
	}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}

	if err := s.store.CreateOrder(ctx, order, input.ProductIDs); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Products = products

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.String("total_amount", order.TotalAmount.String()))

	if s.events != nil {
		event := &models.OrderCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderCreated,
				Timestamp: time.Now(),
			},
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			TotalAmount: order.TotalAmount,
			ProductIDs:  input.ProductIDs,
		}
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			util.EventPublishFailuresTotal.WithLabelValues(models.EventTypeOrderCreated).Inc()
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return &CreateOrderResult{
		Order:   order,
		Message: "Order created successfully",
	}, nil
}

// GetOrder returns the order with its products, or nil for an unknown id
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.store.GetOrderByID(ctx, id)
}

// ListOrders returns orders matching the filter, joined with the
// customer email
func (s *OrderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderWithCustomer, error) {
	return s.store.ListOrders(ctx, filter)
}
