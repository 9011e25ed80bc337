package config

const (
	StoreDriverMemory = "memory"
	StoreDriverRedis  = "redis"
)

type DriverConfig struct {
	Store  Store
	Redis  Redis
	Logger Logger
}

type Store struct {
	Driver string
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type Logger struct {
	Level               string
	OutputFileName      string
	OutputErrorFileName string
}
