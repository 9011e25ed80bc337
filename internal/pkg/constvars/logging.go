package constvars

const (
	LoggingRequestIDKey         = "request_id"
	LoggingSessionIDKey         = "session_id"
	LoggingMethodKey            = "method"
	LoggingEndpointKey          = "endpoint"
	LoggingRemoteAddrKey        = "remote_addr"
	LoggingUserAgentKey         = "user_agent"
	LoggingQueryKey             = "query"
	LoggingStatusCodeKey        = "status_code"
	LoggingDurationKey          = "duration"
	LoggingSuccessKey           = "success"
	LoggingErrorKindKey         = "error_kind"
	LoggingErrorLocationKey     = "location"
	LoggingOperationNameKey     = "operation_name"
	LoggingCacheKey             = "cache_key"
	LoggingCacheHitKey          = "cache_hit"
	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingLockStoredValueKey   = "lock_stored_value"
	LoggingLockExpectedValueKey = "lock_expected_value"
	LoggingPersonaIDKey         = "persona_id"
	LoggingPersonaCountKey      = "persona_count"
	LoggingEditTokenKey         = "edit_token"
	LoggingDraftRevisionKey     = "draft_revision"
	LoggingListStatusKey        = "list_status"
	LoggingFieldKey             = "field"
)
