package exceptions

import (
	"fmt"
	"personas-web/internal/pkg/constvars"
)

var (
	// Validation
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, FormatAllValidationErrors(err), constvars.ErrDevValidationFailed, KindValidation)
	}
	ErrUnknownDraftField = func(field string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, fmt.Sprintf("%s: %s", constvars.ErrClientUnknownField, field), fmt.Sprintf(constvars.ErrDevUnknownDraftField, field), KindValidation)
	}
	ErrEditSurfaceClosed = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientEditSurfaceClosed, constvars.ErrDevEditSurfaceClosed, KindValidation)
	}
	ErrOperationInProgress = func(component string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusTooManyRequests, constvars.ErrClientOperationInProgress, fmt.Sprintf(constvars.ErrDevOperationInProgress, component), KindValidation)
	}
	ErrCannotParseForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseForm, KindValidation)
	}

	// Parse
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotParseJSON, KindInternal)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON, KindInternal)
	}

	// HTTP
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest, KindNetwork)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientRemoteServiceUnavailable, constvars.ErrDevSendHTTPRequest, KindNetwork)
	}
	ErrReadHTTPResponse = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientRemoteServiceUnavailable, constvars.ErrDevReadHTTPResponse, KindNetwork)
	}
	ErrUnexpectedHTTPStatus = func(statusCode int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadGateway, constvars.ErrClientRemoteServiceUnavailable, fmt.Sprintf(constvars.ErrDevUnexpectedHTTPStatus, statusCode), KindNetwork)
	}
	ErrRateLimiterWait = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevGraphQLRateLimiterWait, KindNetwork)
	}

	// GraphQL
	ErrDecodeResponse = func(err error, operationName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientRemoteServiceUnavailable, fmt.Sprintf(constvars.ErrDevGraphQLDecodeResponse, operationName), KindNetwork)
	}
	// ErrGraphQLResponse carries the service's own message to the client, the
	// list error placeholder shows it verbatim.
	ErrGraphQLResponse = func(err error, operationName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, err.Error(), fmt.Sprintf(constvars.ErrDevGraphQLOperationFailed, operationName), KindService)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData, KindInternal)
	}
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey), KindInternal)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData, KindInternal)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData, KindInternal)
	}
	ErrRedisUpdate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUpdateData, KindInternal)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock, KindInternal)
	}

	// Default Server
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess, KindInternal)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded, KindNetwork)
	}
	ErrSessionMissing = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSessionMissing, KindInternal)
	}
	ErrRenderTemplate = func(err error, name string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRenderTemplate, name), KindInternal)
	}
)
