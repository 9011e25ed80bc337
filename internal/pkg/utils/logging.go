package utils

import (
	"context"
	"errors"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/exceptions"

	"go.uber.org/zap"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string); ok {
		return sessionID
	}
	return ""
}

// LogErrorByKind logs err at a level chosen by its kind: validation failures
// are expected user mistakes, service errors are the remote API refusing the
// operation, and network or internal failures are ours to look at.
func LogErrorByKind(logger *zap.Logger, message string, err error, fields ...zap.Field) {
	kind := exceptions.KindOf(err)
	allFields := append([]zap.Field{
		zap.String(constvars.LoggingErrorKindKey, string(kind)),
		zap.Error(err),
	}, fields...)

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) && customErr.Location != nil {
		allFields = append(allFields, zap.Any(constvars.LoggingErrorLocationKey, customErr.Location))
	}

	switch kind {
	case exceptions.KindValidation:
		logger.Info(message, allFields...)
	case exceptions.KindService:
		logger.Warn(message, allFields...)
	default:
		logger.Error(message, allFields...)
	}
}
