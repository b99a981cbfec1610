package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Переменные окружения, перекрывающие значения из файла
const (
	EnvDBPassword        = "SALON_DB_PASSWORD"
	EnvAdminPassword     = "SALON_ADMIN_PASSWORD"
	EnvAdminPasswordHash = "SALON_ADMIN_PASSWORD_HASH"
	EnvHTTPPort          = "SALON_HTTP_PORT"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Admin        AdminConfig        `toml:"admin"`
	Booking      BookingConfig      `toml:"booking"`
	Availability AvailabilityConfig `toml:"availability"`
	Sessions     SessionsConfig     `toml:"sessions"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AdminConfig учётные данные администратора (HTTP Basic)
type AdminConfig struct {
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	PasswordHash string `toml:"password_hash"` // bcrypt, имеет приоритет над password
}

// BookingConfig параметры поиска слотов и записи
type BookingConfig struct {
	SlotStepMinutes    int  `toml:"slot_step_minutes"`
	BufferMinutes      int  `toml:"buffer_minutes"`
	RevalidateOnCommit bool `toml:"revalidate_on_commit"`
	AgendaDays         int  `toml:"agenda_days"`
}

// AvailabilityConfig недельное расписание; пустой список означает расписание по умолчанию
type AvailabilityConfig struct {
	Windows []WindowConfig `toml:"window"`
}

// WindowConfig окно работы в один день недели (1 = понедельник ... 7 = воскресенье)
type WindowConfig struct {
	Weekday int    `toml:"weekday"`
	Open    string `toml:"open"`
	Close   string `toml:"close"`
}

// SessionsConfig настройки хранилища сессий мастера записи
type SessionsConfig struct {
	TTLMinutes           int `toml:"ttl_minutes"`
	PurgeIntervalSeconds int `toml:"purge_interval_seconds"`
}

// Load читает конфигурацию из TOML файла, подгружает .env (если есть)
// и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "salon",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrateOnStart:  true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "salon_booking",
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Booking: BookingConfig{
			SlotStepMinutes:    domain.DefaultSlotStepMinutes,
			BufferMinutes:      domain.DefaultBufferMinutes,
			RevalidateOnCommit: true,
			AgendaDays:         14,
		},
		Sessions: SessionsConfig{
			TTLMinutes:           30,
			PurgeIntervalSeconds: 60,
		},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvAdminPassword); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv(EnvAdminPasswordHash); v != "" {
		c.Admin.PasswordHash = v
	}
	if v := os.Getenv(EnvHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Booking.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: booking.slot_step_minutes must be positive, got %d", ErrInvalidConfig, c.Booking.SlotStepMinutes)
	}
	if c.Booking.BufferMinutes < 0 {
		return fmt.Errorf("%w: booking.buffer_minutes must not be negative, got %d", ErrInvalidConfig, c.Booking.BufferMinutes)
	}
	if c.Booking.AgendaDays < 0 {
		return fmt.Errorf("%w: booking.agenda_days must not be negative, got %d", ErrInvalidConfig, c.Booking.AgendaDays)
	}
	if c.Sessions.TTLMinutes <= 0 {
		return fmt.Errorf("%w: sessions.ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Admin.Username == "" {
		return fmt.Errorf("%w: admin.username is required", ErrInvalidConfig)
	}

	for i, w := range c.Availability.Windows {
		if w.Weekday < 1 || w.Weekday > 7 {
			return fmt.Errorf("%w: availability.window[%d].weekday must be in 1..7, got %d", ErrInvalidConfig, i, w.Weekday)
		}
		open, err := types.NewTimeStringFromString(w.Open)
		if err != nil {
			return fmt.Errorf("%w: availability.window[%d].open: %v", ErrInvalidConfig, i, err)
		}
		closing, err := types.NewTimeStringFromString(w.Close)
		if err != nil {
			return fmt.Errorf("%w: availability.window[%d].close: %v", ErrInvalidConfig, i, err)
		}
		if !open.IsBefore(closing) {
			return fmt.Errorf("%w: availability.window[%d] opens at %s after closing at %s", ErrInvalidConfig, i, open, closing)
		}
	}

	return nil
}

// DSN строка подключения к PostgreSQL для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// AvailabilityTable строит таблицу окон по дням недели.
// Без окон в файле используется расписание салона по умолчанию.
func (c *Config) AvailabilityTable() domain.AvailabilityTable {
	if len(c.Availability.Windows) == 0 {
		return domain.DefaultAvailability()
	}

	table := make(domain.AvailabilityTable)
	for _, w := range c.Availability.Windows {
		table[w.Weekday] = append(table[w.Weekday], domain.AvailabilityWindow{Open: w.Open, Close: w.Close})
	}
	return table
}

// SessionTTL время жизни сессии мастера записи
func (s SessionsConfig) SessionTTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// PurgeInterval период очистки просроченных сессий
func (s SessionsConfig) PurgeInterval() time.Duration {
	if s.PurgeIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.PurgeIntervalSeconds) * time.Second
}

// SlotSettings параметры поиска слотов из секций booking и availability
func (c *Config) SlotSettings() domain.SlotSettings {
	return domain.SlotSettings{
		StepMinutes:   c.Booking.SlotStepMinutes,
		BufferMinutes: c.Booking.BufferMinutes,
		Availability:  c.AvailabilityTable(),
	}
}
