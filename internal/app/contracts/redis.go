package contracts

import (
	"context"
	"time"
)

// RedisRepository is the key-value backend shared by the response cache,
// the session store and the locker. Get returns an empty string for a
// missing key. Set stores the JSON encoding of value, Update stores what fn
// returns as is.
type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// Update runs fn on the current value and stores its result atomically
	// with respect to other Update calls on the same key. An error from fn
	// aborts the update and is returned unchanged.
	Update(ctx context.Context, key string, exp time.Duration, fn func(current string) (string, error)) error
}
