package store

import (
	"context"
	"database/sql"
	"fmt"

	"crm-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateProduct inserts a new product and fills in generated fields
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return s.q.GetContext(ctx, product, query,
		product.Name, product.Price, product.Stock)
}

// GetProductByID retrieves a product by ID, nil if not found
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.q.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.q.Rebind(query)

	products := []models.Product{}
	err = s.q.SelectContext(ctx, &products, query, args...)
	return products, err
}

// ListProducts retrieves products matching the filter, ordered by name
func (s *Store) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := "SELECT * FROM products"
	var conds []string
	var args []interface{}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.PriceGTE != nil {
		args = append(args, *filter.PriceGTE)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.PriceLTE != nil {
		args = append(args, *filter.PriceLTE)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.StockGTE != nil {
		args = append(args, *filter.StockGTE)
		conds = append(conds, fmt.Sprintf("stock >= $%d", len(args)))
	}
	if filter.StockLTE != nil {
		args = append(args, *filter.StockLTE)
		conds = append(conds, fmt.Sprintf("stock <= $%d", len(args)))
	}
	if filter.LowStock {
		conds = append(conds, "stock < 10")
	}

	query += whereClause(conds) + " ORDER BY name"

	products := []models.Product{}
	err := s.q.SelectContext(ctx, &products, query, args...)
	return products, err
}

// RestockLowStock raises the stock of every product below threshold by
// amount, in a single statement, and returns the updated rows.
func (s *Store) RestockLowStock(ctx context.Context, threshold, amount int) ([]models.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE stock < $1
		RETURNING *`

	products := []models.Product{}
	err := s.q.SelectContext(ctx, &products, query, threshold, amount)
	return products, err
}
