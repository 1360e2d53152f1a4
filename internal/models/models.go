package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a CRM customer
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Product represents a product in the catalog; prices are exact decimals
// with two fractional digits
type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Stock     int             `db:"stock" json:"stock"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Order represents a customer order. TotalAmount is the sum of the
// associated product prices at creation time and is never recomputed.
type Order struct {
	ID          int64           `db:"id" json:"id"`
	CustomerID  int64           `db:"customer_id" json:"customer_id"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	OrderDate   time.Time       `db:"order_date" json:"order_date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`

	// Loaded from the order_products join table, not a column.
	Products []Product `db:"-" json:"products,omitempty"`
}

// OrderWithCustomer is an order row joined with the customer's email,
// as returned by the order list query for the reminder job.
type OrderWithCustomer struct {
	Order
	CustomerEmail string `db:"customer_email" json:"customer_email"`
}
