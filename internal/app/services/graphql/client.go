package graphql

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"personas-web/internal/app/config"
	"personas-web/internal/app/contracts"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/exceptions"
	"personas-web/internal/pkg/queries"
	"personas-web/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

type ClientConfig struct {
	Endpoint             string
	Timeout              time.Duration
	MaxRequestsPerSecond float64
	MaxBurst             int
}

func NewClientConfig(internalConfig *config.InternalConfig) ClientConfig {
	return ClientConfig{
		Endpoint:             internalConfig.GraphQL.Endpoint,
		Timeout:              time.Duration(internalConfig.GraphQL.TimeoutInSeconds) * time.Second,
		MaxRequestsPerSecond: internalConfig.GraphQL.MaxRequestsPerSecond,
		MaxBurst:             internalConfig.GraphQL.MaxBurst,
	}
}

type graphqlClient struct {
	Endpoint   string
	HTTPClient *http.Client
	Cache      *ResponseCache
	Log        *zap.Logger

	limiter *rate.Limiter
	group   singleflight.Group

	// generations counts invalidations per cache key. A query result is only
	// cached if no invalidation happened while it was in flight.
	mu          sync.Mutex
	generations map[string]uint64
}

func NewGraphQLClient(cfg ClientConfig, cache *ResponseCache, logger *zap.Logger) contracts.GraphQLClient {
	client := &graphqlClient{
		Endpoint:    cfg.Endpoint,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		Cache:       cache,
		Log:         logger,
		generations: make(map[string]uint64),
	}
	if cfg.MaxRequestsPerSecond > 0 {
		burst := cfg.MaxBurst
		if burst < 1 {
			burst = 1
		}
		client.limiter = rate.NewLimiter(rate.Limit(cfg.MaxRequestsPerSecond), burst)
	}
	return client
}

func (c *graphqlClient) Query(ctx context.Context, operation queries.Operation, variables interface{}, out interface{}) error {
	requestID := utils.GetRequestID(ctx)
	key, err := CacheKey(operation.Name, variables)
	if err != nil {
		return err
	}

	if data, ok := c.Cache.Get(ctx, key); ok {
		c.Log.Debug("graphqlClient.Query served from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Bool(constvars.LoggingCacheHitKey, true),
		)
		return decodeData(data, operation.Name, out)
	}

	c.Log.Info("graphqlClient.Query called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationNameKey, operation.Name),
		zap.Bool(constvars.LoggingCacheHitKey, false),
	)
	data, err := c.load(ctx, key, operation, variables)
	if err != nil {
		return err
	}
	return decodeData(data, operation.Name, out)
}

func (c *graphqlClient) Mutate(ctx context.Context, operation queries.Operation, variables interface{}, out interface{}) error {
	c.Log.Info("graphqlClient.Mutate called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingOperationNameKey, operation.Name),
	)
	data, err := c.send(ctx, operation, variables)
	if err != nil {
		return err
	}
	return decodeData(data, operation.Name, out)
}

// Refetch drops the cached entry and reloads it from the network. Queries
// that were already in flight are not joined and their results are not
// cached.
func (c *graphqlClient) Refetch(ctx context.Context, operation queries.Operation, variables interface{}, out interface{}) error {
	c.Log.Info("graphqlClient.Refetch called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingOperationNameKey, operation.Name),
	)
	key, err := CacheKey(operation.Name, variables)
	if err != nil {
		return err
	}
	if err := c.invalidate(ctx, key); err != nil {
		return err
	}
	data, err := c.load(ctx, key, operation, variables)
	if err != nil {
		return err
	}
	return decodeData(data, operation.Name, out)
}

func (c *graphqlClient) Invalidate(ctx context.Context, operation queries.Operation, variables interface{}) error {
	key, err := CacheKey(operation.Name, variables)
	if err != nil {
		return err
	}
	return c.invalidate(ctx, key)
}

func (c *graphqlClient) invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	c.generations[key]++
	c.group.Forget(key)
	c.mu.Unlock()
	return c.Cache.Delete(ctx, key)
}

func (c *graphqlClient) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// load collapses concurrent identical queries into one network request. The
// request is detached from the caller's cancellation so that callers joining
// the flight are not failed by the one who started it.
func (c *graphqlClient) load(ctx context.Context, key string, operation queries.Operation, variables interface{}) (json.RawMessage, error) {
	c.mu.Lock()
	generation := c.generations[key]
	result := c.group.DoChan(key, func() (interface{}, error) {
		flightCtx := context.WithoutCancel(ctx)
		data, err := c.send(flightCtx, operation, variables)
		if err != nil {
			return nil, err
		}
		if c.generation(key) == generation {
			c.Cache.Set(flightCtx, key, data)
		} else {
			c.Log.Info("graphqlClient.load result invalidated while in flight, not cached",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingCacheKey, key),
			)
		}
		return data, nil
	})
	c.mu.Unlock()

	select {
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	case <-ctx.Done():
		return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
	}
}

func (c *graphqlClient) send(ctx context.Context, operation queries.Operation, variables interface{}) (json.RawMessage, error) {
	requestID := utils.GetRequestID(ctx)
	startTime := time.Now()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.Log.Error("graphqlClient.send error waiting for rate limiter",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingOperationNameKey, operation.Name),
				zap.Error(err),
			)
			return nil, exceptions.ErrRateLimiterWait(err)
		}
	}

	body, err := json.Marshal(requests.GraphQLRequest{
		Query:         operation.Document,
		OperationName: operation.Name,
		Variables:     variables,
	})
	if err != nil {
		c.Log.Error("graphqlClient.send error marshaling request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		c.Log.Error("graphqlClient.send error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("graphqlClient.send error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationNameKey, operation.Name),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("graphqlClient.send error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrReadHTTPResponse(err)
	}

	isSuccessStatus := resp.StatusCode >= 200 && resp.StatusCode < 300
	var result responses.GraphQLResponse
	err = json.Unmarshal(bodyBytes, &result)
	if err != nil {
		if !isSuccessStatus {
			err = exceptions.ErrUnexpectedHTTPStatus(resp.StatusCode)
		} else {
			err = exceptions.ErrDecodeResponse(err, operation.Name)
		}
		c.Log.Error("graphqlClient.send error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationNameKey, operation.Name),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(err),
		)
		return nil, err
	}

	if len(result.Errors) > 0 {
		messages := make([]string, 0, len(result.Errors))
		for _, graphqlErr := range result.Errors {
			messages = append(messages, graphqlErr.Message)
		}
		err := exceptions.ErrGraphQLResponse(errors.New(strings.Join(messages, "; ")), operation.Name)
		c.Log.Warn("graphqlClient.send operation returned errors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationNameKey, operation.Name),
			zap.Strings("messages", messages),
		)
		return nil, err
	}

	if !isSuccessStatus {
		err := exceptions.ErrUnexpectedHTTPStatus(resp.StatusCode)
		c.Log.Error("graphqlClient.send unexpected HTTP status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationNameKey, operation.Name),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, err
	}

	c.Log.Info("graphqlClient.send succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationNameKey, operation.Name),
		zap.Duration(constvars.LoggingDurationKey, time.Since(startTime)),
	)
	return result.Data, nil
}

func decodeData(data json.RawMessage, operationName string, out interface{}) error {
	if out == nil {
		return nil
	}
	if len(data) == 0 {
		return exceptions.ErrDecodeResponse(errors.New("response has no data"), operationName)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return exceptions.ErrDecodeResponse(err, operationName)
	}
	return nil
}
