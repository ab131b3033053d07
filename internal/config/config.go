package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Config конфигурация сервиса, загружаемая из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Booking        BookingConfig        `toml:"booking"`
	AccountService AccountServiceConfig `toml:"account_service"`
}

// ServerConfig настройки HTTP сервера
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

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-политика бронирования
// Рабочие часы сравниваются в одной канонической таймзоне площадки,
// чтобы переходы на летнее время не пропускали брони вне рабочих часов
type BookingConfig struct {
	Timezone                string `toml:"timezone"`
	OpenTime                string `toml:"open_time"`
	CloseTime               string `toml:"close_time"`
	CheckInToleranceMinutes int    `toml:"checkin_tolerance_minutes"`
}

// AccountServiceConfig настройки клиента AccountService
type AccountServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "reservation-service"
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "UTC"
	}
	if c.Booking.OpenTime == "" {
		c.Booking.OpenTime = domain.DefaultOpenTime
	}
	if c.Booking.CloseTime == "" {
		c.Booking.CloseTime = domain.DefaultCloseTime
	}
	if c.Booking.CheckInToleranceMinutes == 0 {
		c.Booking.CheckInToleranceMinutes = domain.DefaultCheckInToleranceMinutes
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}

	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("config: invalid booking timezone %q: %w", c.Booking.Timezone, err)
	}

	openTime, err := types.NewTimeStringFromString(c.Booking.OpenTime)
	if err != nil {
		return fmt.Errorf("config: invalid booking open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Booking.CloseTime)
	if err != nil {
		return fmt.Errorf("config: invalid booking close_time: %w", err)
	}
	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("config: booking open_time must be before close_time")
	}

	return nil
}

// Location возвращает загруженную таймзону площадки
// Вызывается после успешного Load, когда таймзона уже провалидирована
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
