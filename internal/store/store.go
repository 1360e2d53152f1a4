package store

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Customers is the customer repository interface
type Customers interface {
	CustomerEmailExists(ctx context.Context, email string) (bool, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error)
	InTx(ctx context.Context, fn func(Customers) error) error
}

// Products is the product repository interface
type Products interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	RestockLowStock(ctx context.Context, threshold, amount int) ([]models.Product, error)
}

// Orders is the order repository interface
type Orders interface {
	CreateOrder(ctx context.Context, order *models.Order, productIDs []int64) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderWithCustomer, error)
}

// querier is satisfied by both *sqlx.DB and *sqlx.Tx, so the same query
// methods serve plain and transaction-scoped stores.
type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Store struct {
	db *sqlx.DB
	q  querier
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, q: db}, nil
}

// NewStoreWithDB wraps an existing connection, used by tests
func NewStoreWithDB(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	clause := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		clause += " AND " + c
	}
	return clause
}

// InTx runs fn against a transaction-scoped store and commits if fn
// returns nil. Not reentrant.
func (s *Store) InTx(ctx context.Context, fn func(Customers) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		return err
	}

	return tx.Commit()
}
