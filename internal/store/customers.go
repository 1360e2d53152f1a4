package store

import (
	"context"
	"database/sql"
	"fmt"

	"crm-service/internal/models"
)

// CustomerEmailExists reports whether a customer with the email exists
func (s *Store) CustomerEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.q.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)", email)
	return exists, err
}

// CreateCustomer inserts a new customer and fills in generated fields
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return s.q.GetContext(ctx, customer, query,
		customer.Name, customer.Email, customer.Phone)
}

// GetCustomerByID retrieves a customer by ID, nil if not found
func (s *Store) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.q.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomers retrieves customers matching the filter, ordered by name
func (s *Store) ListCustomers(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	query := "SELECT * FROM customers"
	var conds []string
	var args []interface{}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		conds = append(conds, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query += whereClause(conds) + " ORDER BY name"

	customers := []models.Customer{}
	err := s.q.SelectContext(ctx, &customers, query, args...)
	return customers, err
}
