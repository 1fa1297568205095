package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректных значениях в файле конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// TravelAPIKeyEnv переменная окружения с ключом Distance Matrix API, имеет приоритет над файлом
const TravelAPIKeyEnv = "TRAVEL_API_KEY"

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
	TravelService TravelServiceConfig `toml:"travel_service"`
	Redis         RedisConfig         `toml:"redis"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig параметры расчёта слотов
type SchedulingConfig struct {
	SlotIntervalMinutes    int    `toml:"slot_interval_minutes"`
	DefaultBufferMinutes   int    `toml:"default_buffer_minutes"`
	ArrivalMarginMinutes   int    `toml:"arrival_margin_minutes"`
	DepartureMarginMinutes int    `toml:"departure_margin_minutes"`
	EarliestHour           int    `toml:"earliest_hour"`
	LatestHour             int    `toml:"latest_hour"`
	TravelTimeoutMs        int    `toml:"travel_timeout_ms"`
	MaxConcurrentLookups   int    `toml:"max_concurrent_lookups"`
	Timezone               string `toml:"timezone"`
}

// Location возвращает часовой пояс, в котором интерпретируются даты и время визитов
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type TravelServiceConfig struct {
	URL               string  `toml:"url"`
	APIKey            string  `toml:"api_key"`
	Timeout           int     `toml:"timeout"` // секунды
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и проверяет её
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if key := os.Getenv(TravelAPIKeyEnv); key != "" {
		cfg.TravelService.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			DBName:          "visit_scheduler",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "visit-scheduler",
		},
		Scheduling: SchedulingConfig{
			SlotIntervalMinutes:    30,
			DefaultBufferMinutes:   15,
			ArrivalMarginMinutes:   15,
			DepartureMarginMinutes: 15,
			EarliestHour:           6,
			LatestHour:             22,
			TravelTimeoutMs:        5000,
			MaxConcurrentLookups:   8,
			Timezone:               "UTC",
		},
		TravelService: TravelServiceConfig{
			URL:               "https://maps.googleapis.com/maps/api/distancematrix/json",
			Timeout:           5,
			RequestsPerSecond: 10,
			Burst:             10,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLMinutes: 60,
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	s := c.Scheduling
	if s.SlotIntervalMinutes <= 0 || 60%s.SlotIntervalMinutes != 0 {
		return fmt.Errorf("%w: scheduling.slot_interval_minutes must divide an hour, got %d", ErrInvalidConfig, s.SlotIntervalMinutes)
	}
	if s.DefaultBufferMinutes < 0 || s.ArrivalMarginMinutes < 0 || s.DepartureMarginMinutes < 0 {
		return fmt.Errorf("%w: scheduling buffers and margins must not be negative", ErrInvalidConfig)
	}
	if s.EarliestHour < 0 || s.LatestHour > 24 || s.EarliestHour >= s.LatestHour {
		return fmt.Errorf("%w: scheduling hours [%d, %d) are invalid", ErrInvalidConfig, s.EarliestHour, s.LatestHour)
	}
	if s.TravelTimeoutMs <= 0 || s.MaxConcurrentLookups <= 0 {
		return fmt.Errorf("%w: scheduling.travel_timeout_ms and max_concurrent_lookups must be positive", ErrInvalidConfig)
	}
	if _, err := s.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}

	if c.TravelService.RequestsPerSecond <= 0 || c.TravelService.Burst <= 0 {
		return fmt.Errorf("%w: travel_service rate limit must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}

	return nil
}
