package session

import (
	"context"
	"personas-web/internal/app/contracts"
	"personas-web/internal/app/models"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/exceptions"
	"personas-web/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	Expiration      time.Duration
	Log             *zap.Logger
}

func NewSessionService(redisRepository contracts.RedisRepository, expiration time.Duration, logger *zap.Logger) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		Expiration:      expiration,
		Log:             logger,
	}
}

func (svc *sessionService) Get(ctx context.Context, sessionID string) (*models.PageState, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, utils.BuildSessionKey(sessionID))
	if err != nil {
		svc.Log.Error("sessionService.Get error calling RedisRepository.Get",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}
	return svc.parseSessionData(sessionData)
}

func (svc *sessionService) Update(ctx context.Context, sessionID string, fn func(state *models.PageState) error) (*models.PageState, error) {
	var state *models.PageState
	err := svc.RedisRepository.Update(ctx, utils.BuildSessionKey(sessionID), svc.Expiration, func(current string) (string, error) {
		parsed, err := svc.parseSessionData(current)
		if err != nil {
			return "", err
		}
		if err := fn(parsed); err != nil {
			return "", err
		}
		encoded, err := json.Marshal(parsed)
		if err != nil {
			return "", exceptions.ErrCannotMarshalJSON(err)
		}
		state = parsed
		return string(encoded), nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (svc *sessionService) Delete(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, utils.BuildSessionKey(sessionID))
}

func (svc *sessionService) parseSessionData(sessionData string) (*models.PageState, error) {
	state := models.NewPageState()
	if sessionData == "" {
		return state, nil
	}
	err := json.Unmarshal([]byte(sessionData), state)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return state, nil
}
