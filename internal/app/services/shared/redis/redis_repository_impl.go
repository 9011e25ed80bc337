package redis

import (
	"context"
	"errors"
	"personas-web/internal/app/contracts"
	"personas-web/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const maxUpdateRetries = 10

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return err
}

func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = r.client.Set(ctx, key, jsonValue, exp).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return err
}

func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return data, nil
	} else if err != nil {
		return data, exceptions.ErrRedisGetNoData(err, key)
	}

	return data, err
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	acquired, err := r.client.SetNX(ctx, key, jsonValue, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

// Update is an optimistic WATCH/MULTI transaction, retried when another
// client touched the key in between.
func (r *redisRepository) Update(ctx context.Context, key string, exp time.Duration, fn func(current string) (string, error)) error {
	var fnErr error
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, exp)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		fnErr = nil
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if fnErr != nil {
			return fnErr
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return exceptions.ErrRedisUpdate(err)
	}
	return exceptions.ErrRedisUpdate(redis.TxFailedErr)
}
