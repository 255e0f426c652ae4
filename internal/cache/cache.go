package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// readMsgpack decodes entry stored under key, found is false for missing entry
func readMsgpack(ctx context.Context, client *redis.Client, key string, dst any) (found bool, err error) {
	res, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := msgpack.Unmarshal(res, dst); err != nil {
		return false, err
	}
	return true, nil
}

func writeMsgpack(ctx context.Context, client *redis.Client, key string, src any, ttl time.Duration) error {
	encoded, err := msgpack.Marshal(src)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, encoded, ttl).Err()
}
