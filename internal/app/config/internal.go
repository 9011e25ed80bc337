package config

type InternalConfig struct {
	App     App        `mapstructure:"app"`
	GraphQL AppGraphQL `mapstructure:"graphql"`
}

type App struct {
	Env                              string `mapstructure:"env"`
	Port                             string `mapstructure:"port"`
	Version                          string `mapstructure:"version"`
	Timezone                         string `mapstructure:"timezone"`
	FrontendDomain                   string `mapstructure:"frontend_domain"`
	MaxRequests                      int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds         int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds          int    `mapstructure:"request_timeout_in_seconds"`
	SessionExpiredTimeInHours        int    `mapstructure:"session_expired_time_in_hours"`
	SecureCookie                     bool   `mapstructure:"secure_cookie"`
	MutationLockExpirationInSeconds  int    `mapstructure:"mutation_lock_expiration_in_seconds"`
	ListRenderDeadlineInMilliseconds int    `mapstructure:"list_render_deadline_in_milliseconds"`
	NotificationDurationInSeconds    int    `mapstructure:"notification_duration_in_seconds"`
}

// AppGraphQL configures the remote data service. Endpoint is the single
// source of the backend address.
type AppGraphQL struct {
	Endpoint             string  `mapstructure:"endpoint"`
	TimeoutInSeconds     int     `mapstructure:"timeout_in_seconds"`
	MaxRequestsPerSecond float64 `mapstructure:"max_requests_per_second"`
	MaxBurst             int     `mapstructure:"max_burst"`
}
