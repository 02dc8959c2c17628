package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Драйверы хранилища сессий
const (
	SessionDriverMemory   = "memory"
	SessionDriverFile     = "file"
	SessionDriverRedis    = "redis"
	SessionDriverPostgres = "postgres"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация клиента
type Config struct {
	Backend   BackendConfig   `toml:"backend"`
	Typeahead TypeaheadConfig `toml:"typeahead"`
	Session   SessionConfig   `toml:"session"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// BackendConfig настройки REST бэкенда
type BackendConfig struct {
	URL     string `toml:"url"`     // например http://localhost:8080/api
	Timeout int    `toml:"timeout"` // секунды
}

// TypeaheadConfig настройки поиска по мере ввода
type TypeaheadConfig struct {
	DebounceMs     int `toml:"debounce_ms"`
	MinQueryLength int `toml:"min_query_length"`
}

// Debounce возвращает окно тишины
func (c TypeaheadConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// SessionConfig настройки хранилища токенов
type SessionConfig struct {
	Driver   string         `toml:"driver"`
	File     FileConfig     `toml:"file"`
	Redis    RedisConfig    `toml:"redis"`
	Postgres PostgresConfig `toml:"postgres"`
}

// FileConfig файловое хранилище
type FileConfig struct {
	Path string `toml:"path"`
}

// RedisConfig хранилище в Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// PostgresConfig хранилище в PostgreSQL
type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
	Table    string `toml:"table"`
}

// DSN строка подключения для lib/pq
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Port        int    `toml:"port"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     "http://localhost:8080/api",
			Timeout: 10,
		},
		Typeahead: TypeaheadConfig{
			DebounceMs:     300,
			MinQueryLength: 2,
		},
		Session: SessionConfig{
			Driver: SessionDriverFile,
			File:   FileConfig{Path: ".travelbuddy/session.json"},
			Redis:  RedisConfig{Addr: "localhost:6379", Prefix: "travelbuddy"},
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
				Table:   "session_storage",
			},
		},
		Logs: LogsConfig{
			File:  "travelbuddy.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Port:        9102,
			Path:        "/metrics",
			ServiceName: "travelbuddy-client",
		},
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем TOML файл (если есть),
// затем .env и переменные окружения TRAVELBUDDY_*.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidConfig, path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to stat %s: %v", ErrInvalidConfig, path, err)
		}
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.URL) == "" {
		return fmt.Errorf("%w: backend.url is required", ErrInvalidConfig)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend.timeout must be positive", ErrInvalidConfig)
	}
	if c.Typeahead.DebounceMs < 0 {
		return fmt.Errorf("%w: typeahead.debounce_ms must not be negative", ErrInvalidConfig)
	}
	if c.Typeahead.MinQueryLength < 1 {
		return fmt.Errorf("%w: typeahead.min_query_length must be at least 1", ErrInvalidConfig)
	}

	switch c.Session.Driver {
	case SessionDriverMemory:
	case SessionDriverFile:
		if c.Session.File.Path == "" {
			return fmt.Errorf("%w: session.file.path is required", ErrInvalidConfig)
		}
	case SessionDriverRedis:
		if c.Session.Redis.Addr == "" {
			return fmt.Errorf("%w: session.redis.addr is required", ErrInvalidConfig)
		}
	case SessionDriverPostgres:
		if c.Session.Postgres.DBName == "" {
			return fmt.Errorf("%w: session.postgres.dbname is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown session.driver %q", ErrInvalidConfig, c.Session.Driver)
	}

	if c.Metrics.Enabled && c.Metrics.Port <= 0 {
		return fmt.Errorf("%w: metrics.port must be positive", ErrInvalidConfig)
	}

	return nil
}

// applyEnv перекрывает значения переменными окружения
func applyEnv(cfg *Config) error {
	if v := os.Getenv("TRAVELBUDDY_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("TRAVELBUDDY_BACKEND_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: TRAVELBUDDY_BACKEND_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		cfg.Backend.Timeout = n
	}
	if v := os.Getenv("TRAVELBUDDY_SESSION_DRIVER"); v != "" {
		cfg.Session.Driver = v
	}
	if v := os.Getenv("TRAVELBUDDY_REDIS_ADDR"); v != "" {
		cfg.Session.Redis.Addr = v
	}
	if v := os.Getenv("TRAVELBUDDY_REDIS_PASSWORD"); v != "" {
		cfg.Session.Redis.Password = v
	}
	if v := os.Getenv("TRAVELBUDDY_POSTGRES_PASSWORD"); v != "" {
		cfg.Session.Postgres.Password = v
	}
	if v := os.Getenv("TRAVELBUDDY_LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	return nil
}
