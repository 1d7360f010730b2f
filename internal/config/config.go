package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all gateway configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Line   LineConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	// EventTimeout bounds processing of one webhook request so the
	// handler always answers inside the platform's response window.
	EventTimeout time.Duration `envconfig:"SERVER_EVENT_TIMEOUT" default:"25s"`
}

// MongoConfig holds the shared data store settings.
type MongoConfig struct {
	URI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	Database string `envconfig:"MONGODB_DATABASE" default:"tirehub"`
}

// RedisConfig holds replay guard settings. Redis is optional: with
// Enabled false the confirm dedup is switched off entirely.
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// LineConfig holds the global fallback LINE channel credentials and
// messaging settings. Per-store secrets and tokens live on the store
// rows; these values only serve requests no tenant secret matched.
type LineConfig struct {
	ChannelSecret      string        `envconfig:"LINE_CHANNEL_SECRET" default:""`
	ChannelAccessToken string        `envconfig:"LINE_CHANNEL_ACCESS_TOKEN" default:""`
	ReplyTimeout       time.Duration `envconfig:"LINE_REPLY_TIMEOUT" default:"10s"`
	ReplayGuardTTL     time.Duration `envconfig:"LINE_REPLAY_GUARD_TTL" default:"10m"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
