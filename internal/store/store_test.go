package store

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"crm-service/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStoreWithDB(sqlx.NewDb(db, "sqlmock")), mock
}

func TestMigrateAppliesAllStatements(t *testing.T) {
	s, mock := newMockStore(t)

	for range migrations {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerEmailExists(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.CustomerEmailExists(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCustomerFillsGeneratedFields(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs("Alice", "alice@example.com", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	customer := &models.Customer{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, s.CreateCustomer(context.Background(), customer))

	assert.Equal(t, int64(7), customer.ID)
	assert.Equal(t, now, customer.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCustomerByIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM customers WHERE id`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at", "updated_at"}))

	customer, err := s.GetCustomerByID(context.Background(), 404)

	require.NoError(t, err)
	assert.Nil(t, customer)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDScansDecimalPrice(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM products WHERE id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "created_at", "updated_at"}).
			AddRow(int64(1), "Laptop", "999.99", 10, now, now))

	product, err := s.GetProductByID(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("999.99")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestockLowStockReturnsUpdatedRows(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`UPDATE products`).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "created_at", "updated_at"}).
			AddRow(int64(5), "Webcam", "89.99", 18, now, now))

	products, err := s.RestockLowStock(context.Background(), 10, 10)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 18, products[0].Stock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderCommitsRowAndAssociations(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(1), decimalArg("1029.98"), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_date", "created_at", "updated_at"}).
			AddRow(int64(3), now, now, now))
	mock.ExpectExec(`INSERT INTO order_products`).
		WithArgs(int64(3), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_products`).
		WithArgs(int64(3), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order := &models.Order{
		CustomerID:  1,
		TotalAmount: decimal.RequireFromString("1029.98"),
	}
	err := s.CreateOrder(context.Background(), order, []int64{10, 11})

	require.NoError(t, err)
	assert.Equal(t, int64(3), order.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersAppliesFilters(t *testing.T) {
	s, mock := newMockStore(t)

	customerID := int64(1)
	after := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT o\.\*, c\.email AS customer_email`).
		WithArgs(customerID, after).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "customer_id", "total_amount", "order_date", "created_at", "updated_at", "customer_email"}).
			AddRow(int64(2), customerID, "49.98", after.Add(time.Hour), after, after, "alice@example.com"))

	orders, err := s.ListOrders(context.Background(), models.OrderFilter{
		CustomerID:     &customerID,
		OrderDateAfter: &after,
	})

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "alice@example.com", orders[0].CustomerEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsLowStockFilter(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM products WHERE stock < 10 ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "created_at", "updated_at"}).
			AddRow(int64(5), "Webcam", "89.99", 8, now, now))

	products, err := s.ListProducts(context.Background(), models.ProductFilter{LowStock: true})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 8, products[0].Stock)
	require.NoError(t, mock.ExpectationsWereMet())
}

// decimalArg matches a decimal.Decimal passed through database/sql by
// its driver value.
func decimalArg(s string) sqlmock.Argument {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Match(v driver.Value) bool {
	str, ok := v.(string)
	if !ok {
		return false
	}
	got, err := decimal.NewFromString(str)
	if err != nil {
		return false
	}
	return got.Equal(m.want)
}
