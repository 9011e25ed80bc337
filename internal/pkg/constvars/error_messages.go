package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"oneof":    "must be one of [%s]",
	"datetime": "must be a date formatted as %s",
	"numeric":  "must be a number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientRemoteServiceUnavailable      = "the personas service is not reachable"
	ErrClientEditSurfaceClosed             = "la edición ya no está activa"
	ErrClientOperationInProgress           = "ya hay una operación en curso, espera a que termine"
	ErrClientUnknownField                  = "campo desconocido"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevValidationFailed          = "validation failed"
	ErrDevUnknownDraftField         = "unknown draft field %s"
	ErrDevEditSurfaceClosed         = "edit surface is closed or was replaced"
	ErrDevOperationInProgress       = "another %s operation is in flight for this session"
	ErrDevCannotParseJSON           = "cannot parse JSON"
	ErrDevCannotMarshalJSON         = "cannot marshal JSON"
	ErrDevServerProcess             = "server failed to process the request"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevCreateHTTPRequest         = "failed to create HTTP request"
	ErrDevSendHTTPRequest           = "failed to send HTTP request"
	ErrDevReadHTTPResponse          = "failed to read HTTP response body"
	ErrDevUnexpectedHTTPStatus      = "remote service responded with HTTP status %d"
	ErrDevGraphQLDecodeResponse     = "failed to decode %s response"
	ErrDevGraphQLOperationFailed    = "graphql operation %s returned errors"
	ErrDevGraphQLRateLimiterWait    = "outbound rate limiter wait failed"
	ErrDevRedisGetData              = "failed to get data from redis"
	ErrDevRedisGetNoData            = "no data found in redis for key %s"
	ErrDevRedisSetData              = "failed to set data in redis"
	ErrDevRedisDeleteData           = "failed to delete data from redis"
	ErrDevRedisUpdateData           = "failed to update data in redis"
	ErrDevRedisUnlock               = "failed to release redis lock"
	ErrDevSessionMissing            = "session id not found in context"
	ErrDevRenderTemplate            = "failed to render template %s"
	ErrDevCannotParseForm           = "cannot parse form body"
)
