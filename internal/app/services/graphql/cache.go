package graphql

import (
	"context"
	"personas-web/internal/app/contracts"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/exceptions"
	"personas-web/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ResponseCache keeps the data member of successful query responses. Entries
// never expire on their own.
type ResponseCache struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewResponseCache(repo contracts.RedisRepository, logger *zap.Logger) *ResponseCache {
	return &ResponseCache{
		redisRepo: repo,
		Log:       logger,
	}
}

// CacheKey identifies a query by operation name and variables. Variables are
// canonicalized so that field order never changes the key.
func CacheKey(operationName string, variables interface{}) (string, error) {
	canonical := []byte("{}")
	if variables != nil {
		raw, err := json.Marshal(variables)
		if err != nil {
			return "", exceptions.ErrCannotMarshalJSON(err)
		}
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return "", exceptions.ErrCannotParseJSON(err)
		}
		if generic != nil {
			canonical, err = json.Marshal(generic)
			if err != nil {
				return "", exceptions.ErrCannotMarshalJSON(err)
			}
		}
	}
	return constvars.RedisKeyGraphQLCachePrefix + ":" + operationName + ":" + string(canonical), nil
}

// Get reports a miss when the backend fails; the caller falls through to
// the network.
func (c *ResponseCache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	data, err := c.redisRepo.Get(ctx, key)
	if err != nil {
		c.Log.Warn("ResponseCache.Get error calling redisRepo.Get",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		return nil, false
	}
	if data == "" {
		return nil, false
	}
	return json.RawMessage(data), true
}

func (c *ResponseCache) Set(ctx context.Context, key string, data json.RawMessage) {
	err := c.redisRepo.Set(ctx, key, data, 0)
	if err != nil {
		c.Log.Warn("ResponseCache.Set error calling redisRepo.Set",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
	}
}

func (c *ResponseCache) Delete(ctx context.Context, key string) error {
	err := c.redisRepo.Delete(ctx, key)
	if err != nil {
		c.Log.Error("ResponseCache.Delete error calling redisRepo.Delete",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		return err
	}
	return nil
}
