package main

import (
	"context"
	"log"

	"crm-service/config"
	"crm-service/internal/models"
	"crm-service/internal/store"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func main() {
	cfg := config.Load()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("Seeding database...")

	customers := []models.Customer{
		{Name: "Alice Johnson", Email: "alice@example.com", Phone: strPtr("+1234567890")},
		{Name: "Bob Smith", Email: "bob@example.com", Phone: strPtr("123-456-7890")},
		{Name: "Carol Davis", Email: "carol@example.com", Phone: strPtr("+1987654321")},
		{Name: "David Wilson", Email: "david@example.com", Phone: strPtr("987-654-3210")},
		{Name: "Eve Brown", Email: "eve@example.com", Phone: strPtr("+1122334455")},
	}
	for i := range customers {
		if err := db.CreateCustomer(ctx, &customers[i]); err != nil {
			log.Fatalf("Failed to create customer %s: %v", customers[i].Name, err)
		}
		log.Printf("Created customer: %s", customers[i].Name)
	}

	products := []models.Product{
		{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10},
		{Name: "Mouse", Price: decimal.RequireFromString("29.99"), Stock: 50},
		{Name: "Keyboard", Price: decimal.RequireFromString("79.99"), Stock: 25},
		{Name: "Monitor", Price: decimal.RequireFromString("299.99"), Stock: 15},
		{Name: "Webcam", Price: decimal.RequireFromString("89.99"), Stock: 8},
		{Name: "Headphones", Price: decimal.RequireFromString("149.99"), Stock: 20},
	}
	for i := range products {
		if err := db.CreateProduct(ctx, &products[i]); err != nil {
			log.Fatalf("Failed to create product %s: %v", products[i].Name, err)
		}
		log.Printf("Created product: %s", products[i].Name)
	}

	orders := []struct {
		customer int
		products []int
	}{
		{0, []int{0, 1}},
		{1, []int{2, 3}},
		{2, []int{4}},
		{3, []int{5, 1}},
		{4, []int{0, 2, 4}},
	}
	for _, o := range orders {
		total := decimal.Zero
		productIDs := make([]int64, len(o.products))
		for i, idx := range o.products {
			total = total.Add(products[idx].Price)
			productIDs[i] = products[idx].ID
		}

		order := models.Order{
			CustomerID:  customers[o.customer].ID,
			TotalAmount: total,
		}
		if err := db.CreateOrder(ctx, &order, productIDs); err != nil {
			log.Fatalf("Failed to create order for %s: %v", customers[o.customer].Name, err)
		}
		log.Printf("Created order for %s (Total: $%s)", customers[o.customer].Name, total.String())
	}

	log.Println("Database seeded successfully!")
}
