package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	customers *fakeCustomerStore
	products  *fakeProductStore
	orders    *fakeOrderStore
	svc       *OrderService
	customer  models.Customer
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	customers := newFakeCustomerStore()
	products := newFakeProductStore()
	orders := newFakeOrderStore()

	customer := models.Customer{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, customers.CreateCustomer(context.Background(), &customer))

	return &orderFixture{
		customers: customers,
		products:  products,
		orders:    orders,
		svc:       NewOrderService(orders, customers, products, nil),
		customer:  customer,
	}
}

func (f *orderFixture) addProduct(t *testing.T, name, price string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: 10}
	require.NoError(t, f.products.CreateProduct(context.Background(), &p))
	return p
}

func TestCreateOrderTotalIsSumOfPrices(t *testing.T) {
	f := newOrderFixture(t)
	laptop := f.addProduct(t, "Laptop", "999.99")
	mouse := f.addProduct(t, "Mouse", "29.99")
	keyboard := f.addProduct(t, "Keyboard", "79.99")

	result, err := f.svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: f.customer.ID,
		ProductIDs: []int64{laptop.ID, mouse.ID, keyboard.ID},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Order)
	assert.True(t, result.Order.TotalAmount.Equal(decimal.RequireFromString("1109.97")),
		"got total %s", result.Order.TotalAmount)
	assert.Len(t, result.Order.Products, 3)
	assert.Equal(t, "Order created successfully", result.Message)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	f := newOrderFixture(t)
	laptop := f.addProduct(t, "Laptop", "999.99")

	result, err := f.svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: 9999,
		ProductIDs: []int64{laptop.ID},
	})
	require.NoError(t, err)

	assert.Nil(t, result.Order)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "customer_id", result.Errors[0].Field)
	assert.Equal(t, "Invalid customer ID", result.Errors[0].Message)
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderEmptyProductList(t *testing.T) {
	f := newOrderFixture(t)

	result, err := f.svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: f.customer.ID,
		ProductIDs: []int64{},
	})
	require.NoError(t, err)

	assert.Nil(t, result.Order)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "product_ids", result.Errors[0].Field)
	assert.Equal(t, "At least one product is required", result.Errors[0].Message)
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture(t)
	laptop := f.addProduct(t, "Laptop", "999.99")

	result, err := f.svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: f.customer.ID,
		ProductIDs: []int64{laptop.ID, 9999},
	})
	require.NoError(t, err)

	assert.Nil(t, result.Order)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "product_ids", result.Errors[0].Field)
	assert.Equal(t, "One or more invalid product IDs", result.Errors[0].Message)
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderDatePassedThrough(t *testing.T) {
	f := newOrderFixture(t)
	laptop := f.addProduct(t, "Laptop", "999.99")

	orderDate := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	result, err := f.svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: f.customer.ID,
		ProductIDs: []int64{laptop.ID},
		OrderDate:  &orderDate,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	assert.True(t, result.Order.OrderDate.Equal(orderDate))
}

func TestCreateOrderStoreFailureIsInfraError(t *testing.T) {
	f := newOrderFixture(t)
	laptop := f.addProduct(t, "Laptop", "999.99")
	f.orders.failNext = errors.New("connection reset")

	result, err := f.svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: f.customer.ID,
		ProductIDs: []int64{laptop.ID},
	})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.GetOrder(context.Background(), 404)

	require.NoError(t, err)
	assert.Nil(t, order)
}
