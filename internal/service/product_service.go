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

// ProductService handles product mutations and queries
type ProductService struct {
	store             store.Products
	cache             ProductCache
	events            EventPublisher
	lowStockThreshold int
	restockAmount     int
	logger            *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store store.Products, cache ProductCache, events EventPublisher, lowStockThreshold, restockAmount int) *ProductService {
	return &ProductService{
		store:             store,
		cache:             cache,
		events:            events,
		lowStockThreshold: lowStockThreshold,
		restockAmount:     restockAmount,
		logger:            util.GetLogger(),
	}
}

// ProductInput is the payload for creating a product
type ProductInput struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock,omitempty"`
}

// CreateProductResult is the mutation envelope for a product
type CreateProductResult struct {
	Product *models.Product `json:"product"`
	Message string          `json:"message,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// UpdateLowStockResult carries the products touched by a replenishment run
type UpdateLowStockResult struct {
	Products []models.Product `json:"products"`
	Message  string           `json:"message"`
}

// CreateProduct validates and persists a product. Stock defaults to 0.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (*CreateProductResult, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.CreateProduct")
	defer span.End()

	var fieldErrors []FieldError

	if !input.Price.IsPositive() {
		fieldErrors = append(fieldErrors, FieldError{Field: "price", Message: "Price must be positive"})
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		fieldErrors = append(fieldErrors, FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}

	if len(fieldErrors) > 0 {
		for _, fe := range fieldErrors {
			util.MutationErrorsTotal.WithLabelValues("create_product", fe.Field).Inc()
		}
		return &CreateProductResult{Errors: fieldErrors}, nil
	}

	product := &models.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: stock,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name))

	if s.events != nil {
		event := &models.ProductCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeProductCreated,
				Timestamp: time.Now(),
			},
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Stock:     product.Stock,
		}
		if err := s.events.PublishProductCreated(ctx, event); err != nil {
			util.EventPublishFailuresTotal.WithLabelValues(models.EventTypeProductCreated).Inc()
			s.logger.Error("Failed to publish ProductCreated event", zap.Error(err))
		}
	}

	return &CreateProductResult{
		Product: product,
		Message: "Product created successfully",
	}, nil
}

// UpdateLowStock raises the stock of every product below the configured
// threshold by the configured amount and returns the updated set
func (s *ProductService) UpdateLowStock(ctx context.Context) (*UpdateLowStockResult, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.UpdateLowStock")
	defer span.End()

	products, err := s.store.RestockLowStock(ctx, s.lowStockThreshold, s.restockAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to restock low-stock products: %w", err)
	}

	if len(products) == 0 {
		return &UpdateLowStockResult{
			Products: products,
			Message:  "No low stock products found",
		}, nil
	}

	util.LowStockRestockedTotal.Add(float64(len(products)))
	s.logger.Info("Low-stock products restocked", zap.Int("count", len(products)))

	productIDs := make([]int64, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
		if s.cache != nil {
			if err := s.cache.InvalidateProduct(ctx, p.ID); err != nil {
				s.logger.Warn("Failed to invalidate product cache",
					zap.Int64("product_id", p.ID),
					zap.Error(err))
			}
		}
	}

	if s.events != nil {
		event := &models.LowStockUpdatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeLowStockUpdated,
				Timestamp: time.Now(),
			},
			ProductIDs: productIDs,
		}
		if err := s.events.PublishLowStockUpdated(ctx, event); err != nil {
			util.EventPublishFailuresTotal.WithLabelValues(models.EventTypeLowStockUpdated).Inc()
			s.logger.Error("Failed to publish LowStockUpdated event", zap.Error(err))
		}
	}

	return &UpdateLowStockResult{
		Products: products,
		Message:  fmt.Sprintf("Stock updated for %d products", len(products)),
	}, nil
}

// GetProduct returns the product or nil for an unknown id. Lookups go
// through the cache when one is configured; cache failures fall back to
// the database.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if s.cache != nil {
		product, err := s.cache.GetProduct(ctx, id)
		if err != nil {
			s.logger.Warn("Product cache lookup failed, falling back to DB",
				zap.Int64("product_id", id),
				zap.Error(err))
		} else if product != nil {
			return product, nil
		}
	}

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product != nil && s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			s.logger.Warn("Failed to cache product",
				zap.Int64("product_id", id),
				zap.Error(err))
		}
	}

	return product, nil
}

// ListProducts returns products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.store.ListProducts(ctx, filter)
}
