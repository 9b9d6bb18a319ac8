package rdx

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"finflock/models"

	"github.com/redis/go-redis/v9"
)

const baseTTL = 15 * time.Minute

// Cache is a best-effort JSON cache in front of the product catalog. A
// nil Cache, a nil client, or a failing Redis never blocks a request;
// errors are logged and the caller falls through to the store.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) GetProduct(ctx context.Context, id string) (models.ProductView, bool) {
	var view models.ProductView
	if c == nil || c.client == nil {
		return view, false
	}

	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("rdx get error:", err)
		}
		return view, false
	}
	if err := json.Unmarshal(data, &view); err != nil {
		log.Println("rdx unmarshal error:", err)
		return view, false
	}
	return view, true
}

func (c *Cache) SetProduct(ctx context.Context, id string, view models.ProductView) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		return
	}

	// jitter spreads expiry so a burst of seeded keys does not lapse at once
	ttl := baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := c.client.Set(ctx, productKey(id), data, ttl).Err(); err != nil {
		log.Println("rdx set error:", err)
	}
}

func productKey(id string) string {
	return "product:" + id
}
