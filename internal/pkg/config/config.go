package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends for the persisted session.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=4360"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// APIConfig holds the backend base URLs and the per-request timeout.
type APIConfig struct {
	AuthURL    string        `env:"API_AUTH_URL,    default=http://localhost:8081/api"`
	RdvURL     string        `env:"API_RDV_URL,     default=http://localhost:8083/api"`
	GatewayURL string        `env:"API_GATEWAY_URL, default=http://localhost:8080/api"`
	ChatURL    string        `env:"API_CHAT_URL,    default=http://localhost:8083/api"`
	Timeout    time.Duration `env:"API_TIMEOUT,     default=30s"`
}

// SessionConfig selects where the session is persisted.
type SessionConfig struct {
	Store    string `env:"SESSION_STORE,     default=file"`
	ClientID string `env:"SESSION_CLIENT_ID, default=default"`
	File     string `env:"SESSION_FILE,      default=.rdv360/session.json"`
	Secret   string `env:"SESSION_SECRET"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rdv360"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), nil)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom is Load with an explicit lookuper; nil means the OS environment.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if l == nil {
		l = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values go-envconfig accepts but the gateway cannot use.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreFile, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if c.Session.ClientID == "" {
		return fmt.Errorf("config: SESSION_CLIENT_ID must not be empty")
	}
	return nil
}
