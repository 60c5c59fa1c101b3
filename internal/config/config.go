package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage and event backend names
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	EventsNone   = "none"
	EventsMemory = "memory"
	EventsRedis  = "redis"
)

// Config is the server configuration read from the environment
type Config struct {
	Host     string `env:"PLAYER_HOST"`
	Port     int    `env:"PLAYER_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL"   envDefault:"info"`

	StorageType   string `env:"STORAGE_TYPE"     envDefault:"memory"`
	RedisURL      string `env:"REDIS_URL"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE"  envDefault:"10"`
	RedisPrefix   string `env:"REDIS_KEY_PREFIX" envDefault:"gameon"`

	SystemID   string `env:"SYSTEM_ID"    envDefault:"game-on.org"`
	JWTKeyFile string `env:"JWT_KEY_FILE,required"`

	EventsType           string        `env:"EVENTS_TYPE"            envDefault:"none"`
	EventsRedisURL       string        `env:"EVENTS_REDIS_URL"`
	EventsTopic          string        `env:"EVENTS_TOPIC"           envDefault:"playerEvents"`
	EventsMaxLen         int64         `env:"EVENTS_MAX_LEN"         envDefault:"0"`
	EventsShutdownGrace  time.Duration `env:"EVENTS_SHUTDOWN_GRACE"  envDefault:"5s"`
	EventsConnectTimeout time.Duration `env:"EVENTS_CONNECT_TIMEOUT" envDefault:"2m"`
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other
func (c Config) Validate() error {
	var errs []error

	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when STORAGE_TYPE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE must be memory or redis, got %q", c.StorageType))
	}

	switch c.EventsType {
	case EventsNone, EventsMemory:
	case EventsRedis:
		if c.EventsRedisURL == "" && c.RedisURL == "" {
			errs = append(errs, errors.New("EVENTS_REDIS_URL or REDIS_URL is required when EVENTS_TYPE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("EVENTS_TYPE must be none, memory or redis, got %q", c.EventsType))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PLAYER_PORT out of range: %d", c.Port))
	}
	if c.EventsMaxLen < 0 {
		errs = append(errs, errors.New("EVENTS_MAX_LEN must not be negative"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// EventsURL returns the Redis URL used for event streams
func (c Config) EventsURL() string {
	if c.EventsRedisURL != "" {
		return c.EventsRedisURL
	}
	return c.RedisURL
}

// ParseLevel converts a LOG_LEVEL value to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
