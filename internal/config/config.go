package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server            ServerConfig            `toml:"server"`
	Database          DatabaseConfig          `toml:"database"`
	Logs              LogsConfig              `toml:"logs"`
	Metrics           MetricsConfig           `toml:"metrics"`
	Redis             RedisConfig             `toml:"redis"`
	RateLimit         RateLimitConfig         `toml:"rate_limit"`
	MembershipService MembershipServiceConfig `toml:"membership_service"`
	Business          BusinessConfig          `toml:"business"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig кэш набора скидок
type RedisConfig struct {
	Enabled          bool   `toml:"enabled"`
	Addr             string `toml:"addr"`
	Password         string `toml:"password"`
	DB               int    `toml:"db"`
	DiscountCacheTTL int    `toml:"discount_cache_ttl"` // секунды
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`

	// IP клиента из X-Forwarded-For; включать только за доверенным прокси
	TrustForwardedFor bool `toml:"trust_forwarded_for"`
}

// MembershipServiceConfig сервис членств, пустой URL отключает скидки по уровням
type MembershipServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BusinessConfig параметры бизнеса
type BusinessConfig struct {
	Timezone              string `toml:"timezone"`
	BookingCodePrefix     string `toml:"booking_code_prefix"`
	CheckinBaseURL        string `toml:"checkin_base_url"`
	AvailableDatesDefault int    `toml:"available_dates_default"`
	AvailableDatesMax     int    `toml:"available_dates_max"`
}

// Location загружает часовой пояс бизнеса
func (b BusinessConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", b.Timezone, err)
	}
	return loc, nil
}

// Load читает конфигурацию из TOML файла и подставляет значения по умолчанию
// Пароль БД можно переопределить переменной DB_PASSWORD
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
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
			ServiceName: "availability-service",
		},
		Redis: RedisConfig{
			Addr:             "localhost:6379",
			DiscountCacheTTL: 60,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		MembershipService: MembershipServiceConfig{
			Timeout: 3,
		},
		Business: BusinessConfig{
			Timezone:              "UTC",
			BookingCodePrefix:     "BK",
			AvailableDatesDefault: 14,
			AvailableDatesMax:     60,
		},
	}
}

func (c *Config) validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Redis.Enabled && c.Redis.DiscountCacheTTL <= 0 {
		errs = append(errs, errors.New("redis.discount_cache_ttl must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.rps and rate_limit.burst must be positive"))
	}
	if strings.TrimSpace(c.Business.BookingCodePrefix) == "" {
		errs = append(errs, errors.New("business.booking_code_prefix is required"))
	}
	if c.Business.AvailableDatesDefault <= 0 || c.Business.AvailableDatesDefault > c.Business.AvailableDatesMax {
		errs = append(errs, errors.New("business.available_dates_default must be in [1, available_dates_max]"))
	}
	if _, err := c.Business.Location(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
