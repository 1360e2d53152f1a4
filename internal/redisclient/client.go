package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crm-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const productTTL = 5 * time.Minute

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct retrieves a cached product, nil on cache miss
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached product: %w", err)
	}
	return &product, nil
}

// SetProduct caches a product with a TTL
func (c *Client) SetProduct(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	return c.rdb.Set(ctx, productKey(product.ID), data, productTTL).Err()
}

// InvalidateProduct drops a product from the cache
func (c *Client) InvalidateProduct(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, productKey(id)).Err()
}
