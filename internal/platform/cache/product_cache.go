package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"
	"wings_cafe/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const productListKey = "products:all"

// ProductCache is a read-through cache for the full product listing.
// A nil *ProductCache is valid and behaves as a permanent miss, so the
// service layer can run without Redis (e.g. in tests).
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

// GetProducts returns the cached listing and whether it was present.
// Redis errors are treated as misses.
func (c *ProductCache) GetProducts(ctx context.Context) ([]model.Product, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, productListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("product cache read failed: %v", err)
		}
		return nil, false
	}
	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		log.Printf("product cache contained invalid payload: %v", err)
		return nil, false
	}
	return products, true
}

func (c *ProductCache) SetProducts(ctx context.Context, products []model.Product) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, productListKey, raw, c.ttl).Err(); err != nil {
		log.Printf("product cache write failed: %v", err)
	}
}

// Invalidate drops the cached listing. Called after every product write.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, productListKey).Err(); err != nil {
		log.Printf("product cache invalidation failed: %v", err)
	}
}
