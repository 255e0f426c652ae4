package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/umalmyha/customer-registry/internal/model"
)

// CountryCache keeps country data fetched from external provider
type CountryCache interface {
	FindByCode(context.Context, int16) (*model.Country, error)
	Cache(context.Context, int16, *model.Country) error
}

type redisCountryCache struct {
	client     *redis.Client
	timeToLive time.Duration
}

// NewRedisCountryCache builds redis backed CountryCache
func NewRedisCountryCache(client *redis.Client, ttl time.Duration) CountryCache {
	return &redisCountryCache{client: client, timeToLive: ttl}
}

func (r *redisCountryCache) FindByCode(ctx context.Context, code int16) (*model.Country, error) {
	var c model.Country
	found, err := readMsgpack(ctx, r.client, r.key(code), &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

// Cache stores country under requested code, provider may report it differently
func (r *redisCountryCache) Cache(ctx context.Context, code int16, c *model.Country) error {
	return writeMsgpack(ctx, r.client, r.key(code), c, r.timeToLive)
}

func (r *redisCountryCache) key(code int16) string {
	return fmt.Sprintf("country:%03d", code)
}
