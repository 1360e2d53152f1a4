package store

import (
	"context"
	"database/sql"
	"fmt"

	"crm-service/internal/models"
)

// CreateOrder inserts the order row and its product associations in one
// transaction. A zero OrderDate defers to the database default.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order, productIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var orderDate interface{}
	if !order.OrderDate.IsZero() {
		orderDate = order.OrderDate
	}

	query := `
		INSERT INTO orders (customer_id, total_amount, order_date)
		VALUES ($1, $2, COALESCE($3, NOW()))
		RETURNING id, order_date, created_at, updated_at`

	if err := tx.GetContext(ctx, order, query,
		order.CustomerID, order.TotalAmount, orderDate); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for _, productID := range productIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)",
			order.ID, productID)
		if err != nil {
			return fmt.Errorf("failed to associate product %d: %w", productID, err)
		}
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order with its products, nil if not found
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.q.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	products, err := s.getOrderProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Products = products

	return &order, nil
}

func (s *Store) getOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error) {
	query := `
		SELECT p.* FROM products p
		JOIN order_products op ON op.product_id = p.id
		WHERE op.order_id = $1
		ORDER BY p.id`

	products := []models.Product{}
	err := s.q.SelectContext(ctx, &products, query, orderID)
	return products, err
}

// ListOrders retrieves orders matching the filter, joined with the
// customer email, newest first
func (s *Store) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderWithCustomer, error) {
	query := `
		SELECT o.*, c.email AS customer_email
		FROM orders o
		JOIN customers c ON c.id = o.customer_id`
	var conds []string
	var args []interface{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conds = append(conds, fmt.Sprintf("o.customer_id = $%d", len(args)))
	}
	if filter.TotalGTE != nil {
		args = append(args, *filter.TotalGTE)
		conds = append(conds, fmt.Sprintf("o.total_amount >= $%d", len(args)))
	}
	if filter.TotalLTE != nil {
		args = append(args, *filter.TotalLTE)
		conds = append(conds, fmt.Sprintf("o.total_amount <= $%d", len(args)))
	}
	if filter.OrderDateAfter != nil {
		args = append(args, *filter.OrderDateAfter)
		conds = append(conds, fmt.Sprintf("o.order_date >= $%d", len(args)))
	}
	if filter.OrderDateBefore != nil {
		args = append(args, *filter.OrderDateBefore)
		conds = append(conds, fmt.Sprintf("o.order_date <= $%d", len(args)))
	}

	query += whereClause(conds) + " ORDER BY o.order_date DESC"

	orders := []models.OrderWithCustomer{}
	err := s.q.SelectContext(ctx, &orders, query, args...)
	return orders, err
}
