package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// List-query filters. Nil / zero-value fields are ignored; set fields
// translate to equality or range predicates in the store.

type CustomerFilter struct {
	Name          string
	Email         string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type ProductFilter struct {
	Name     string
	PriceGTE *decimal.Decimal
	PriceLTE *decimal.Decimal
	StockGTE *int
	StockLTE *int
	LowStock bool
}

type OrderFilter struct {
	CustomerID      *int64
	TotalGTE        *decimal.Decimal
	TotalLTE        *decimal.Decimal
	OrderDateAfter  *time.Time
	OrderDateBefore *time.Time
}
