package service

import (
	"context"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/store"
)

type fakeCustomerStore struct {
	customers map[int64]models.Customer
	nextID    int64
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: map[int64]models.Customer{}}
}

func (f *fakeCustomerStore) CustomerEmailExists(_ context.Context, email string) (bool, error) {
	for _, c := range f.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerStore) CreateCustomer(_ context.Context, customer *models.Customer) error {
	f.nextID++
	customer.ID = f.nextID
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	f.customers[customer.ID] = *customer
	return nil
}

func (f *fakeCustomerStore) GetCustomerByID(_ context.Context, id int64) (*models.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCustomerStore) ListCustomers(_ context.Context, _ models.CustomerFilter) ([]models.Customer, error) {
	out := []models.Customer{}
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomerStore) InTx(_ context.Context, fn func(store.Customers) error) error {
	return fn(f)
}

type fakeProductStore struct {
	products map[int64]models.Product
	nextID   int64
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int64]models.Product{}}
}

func (f *fakeProductStore) CreateProduct(_ context.Context, product *models.Product) error {
	f.nextID++
	product.ID = f.nextID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductStore) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeProductStore) GetProductsByIDs(_ context.Context, ids []int64) ([]models.Product, error) {
	seen := map[int64]bool{}
	out := []models.Product{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) ListProducts(_ context.Context, _ models.ProductFilter) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) RestockLowStock(_ context.Context, threshold, amount int) ([]models.Product, error) {
	out := []models.Product{}
	for id, p := range f.products {
		if p.Stock < threshold {
			p.Stock += amount
			f.products[id] = p
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeOrderStore struct {
	orders   map[int64]models.Order
	assocs   map[int64][]int64
	nextID   int64
	failNext error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders: map[int64]models.Order{},
		assocs: map[int64][]int64{},
	}
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, order *models.Order, productIDs []int64) error {
	if f.failNext != nil {
		return f.failNext
	}
	f.nextID++
	order.ID = f.nextID
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	f.orders[order.ID] = *order
	f.assocs[order.ID] = append([]int64{}, productIDs...)
	return nil
}

func (f *fakeOrderStore) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	if o, ok := f.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (f *fakeOrderStore) ListOrders(_ context.Context, _ models.OrderFilter) ([]models.OrderWithCustomer, error) {
	out := []models.OrderWithCustomer{}
	for _, o := range f.orders {
		out = append(out, models.OrderWithCustomer{Order: o})
	}
	return out, nil
}
