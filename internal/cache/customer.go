package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/umalmyha/customer-registry/internal/model"
)

// CustomerCache keeps active customers by id
type CustomerCache interface {
	FindByID(context.Context, int) (*model.Customer, error)
	DeleteByID(context.Context, int) error
	Create(context.Context, *model.Customer) error
}

type redisCustomerCache struct {
	client     *redis.Client
	namespace  string
	timeToLive time.Duration
}

// NewRedisCustomerCache builds redis backed CustomerCache, keys of different namespaces never collide
func NewRedisCustomerCache(client *redis.Client, namespace string, ttl time.Duration) CustomerCache {
	return &redisCustomerCache{client: client, namespace: namespace, timeToLive: ttl}
}

func (r *redisCustomerCache) FindByID(ctx context.Context, id int) (*model.Customer, error) {
	var c model.Customer
	found, err := readMsgpack(ctx, r.client, r.key(id), &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

func (r *redisCustomerCache) DeleteByID(ctx context.Context, id int) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

func (r *redisCustomerCache) Create(ctx context.Context, c *model.Customer) error {
	return writeMsgpack(ctx, r.client, r.key(c.ID), c, r.timeToLive)
}

func (r *redisCustomerCache) key(id int) string {
	return fmt.Sprintf("%s:customer:%d", r.namespace, id)
}
