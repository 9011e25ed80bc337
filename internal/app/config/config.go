package config

import (
	"personas-web/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Store: Store{
			Driver: utils.GetEnvString("STORE_DRIVER", StoreDriverMemory),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                              utils.GetEnvString("APP_ENV", "development"),
			Port:                             utils.GetEnvString("APP_PORT", ":8080"),
			Version:                          utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                         utils.GetEnvString("APP_TIMEZONE", "America/Guayaquil"),
			FrontendDomain:                   utils.GetEnvString("APP_FRONTEND_DOMAIN", "*"),
			MaxRequests:                      utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeoutInSeconds:         utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:          utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			SessionExpiredTimeInHours:        utils.GetEnvInt("APP_SESSION_EXPIRED_TIME_IN_HOURS", 12),
			SecureCookie:                     utils.GetEnvBool("APP_SECURE_COOKIE", false),
			MutationLockExpirationInSeconds:  utils.GetEnvInt("APP_MUTATION_LOCK_EXPIRATION_IN_SECONDS", 30),
			ListRenderDeadlineInMilliseconds: utils.GetEnvInt("APP_LIST_RENDER_DEADLINE_IN_MILLISECONDS", 1500),
			NotificationDurationInSeconds:    utils.GetEnvInt("APP_NOTIFICATION_DURATION_IN_SECONDS", 5),
		},
		GraphQL: AppGraphQL{
			Endpoint:             utils.GetEnvString("GRAPHQL_ENDPOINT", "http://localhost:4000/graphql"),
			TimeoutInSeconds:     utils.GetEnvInt("GRAPHQL_TIMEOUT_IN_SECONDS", 10),
			MaxRequestsPerSecond: utils.GetEnvFloat("GRAPHQL_MAX_REQUESTS_PER_SECOND", 0),
			MaxBurst:             utils.GetEnvInt("GRAPHQL_MAX_BURST", 1),
		},
	}
}
