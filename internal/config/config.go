package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Salon         SalonConfig         `toml:"salon"`
	Notifications NotificationsConfig `toml:"notifications"`
	Redis         RedisConfig         `toml:"redis"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
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
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SalonConfig расписание салона
type SalonConfig struct {
	Name            string `toml:"name"`
	Timezone        string `toml:"timezone"`
	OpenTime        string `toml:"open_time"`
	CloseTime       string `toml:"close_time"`
	SlotStepMinutes int    `toml:"slot_step_minutes"`
}

// BusinessHours часы работы в доменной модели
func (c SalonConfig) BusinessHours() domain.BusinessHours {
	return domain.BusinessHours{
		Open:  types.TimeString(c.OpenTime),
		Close: types.TimeString(c.CloseTime),
	}
}

// SlotStep шаг сетки слотов
func (c SalonConfig) SlotStep() time.Duration {
	return time.Duration(c.SlotStepMinutes) * time.Minute
}

// Location часовой пояс салона
func (c SalonConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// NotificationsConfig настройки исходящих уведомлений
type NotificationsConfig struct {
	Workers       int         `toml:"workers"`
	QueueSize     int         `toml:"queue_size"`
	RatePerSecond float64     `toml:"rate_per_second"`
	Burst         int         `toml:"burst"`
	SendTimeout   int         `toml:"send_timeout"` // секунды
	MaxAttempts   int         `toml:"max_attempts"`
	RetryDelay    int         `toml:"retry_delay"` // секунды
	Email         EmailConfig `toml:"email"`
	SMS           SMSConfig   `toml:"sms"`
	Alert         AlertConfig `toml:"alert"`
}

// EmailConfig настройки SMTP
type EmailConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// SMSConfig настройки SMS шлюза
type SMSConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	APIToken string `toml:"api_token"`
	SenderID string `toml:"sender_id"`
	Timeout  int    `toml:"timeout"` // секунды
}

// AlertConfig канал оповещения администратора о новых записях
type AlertConfig struct {
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	AdminContact string   `toml:"admin_contact"`
}

// RedisConfig настройки Redis
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig ограничение частоты запросов на создание записей
type RateLimitConfig struct {
	Requests      int  `toml:"requests"`
	WindowSeconds int  `toml:"window_seconds"`
	FailOpen      bool `toml:"fail_open"`
}

// Load читает TOML файл, подмешивает секреты из окружения (и .env, если он есть),
// проставляет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Notifications.Email.Password, "SMTP_PASSWORD")
	setString(&c.Notifications.SMS.APIToken, "SMS_API_TOKEN")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && v != "" {
		c.Notifications.Alert.Brokers = strings.Split(v, ",")
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-service"
	}
	if c.Salon.Name == "" {
		c.Salon.Name = "Salon"
	}
	if c.Salon.Timezone == "" {
		c.Salon.Timezone = domain.DefaultTimezone
	}
	if c.Salon.OpenTime == "" {
		c.Salon.OpenTime = domain.DefaultOpenTime
	}
	if c.Salon.CloseTime == "" {
		c.Salon.CloseTime = domain.DefaultCloseTime
	}
	if c.Salon.SlotStepMinutes == 0 {
		c.Salon.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if c.Notifications.Workers == 0 {
		c.Notifications.Workers = 2
	}
	if c.Notifications.QueueSize == 0 {
		c.Notifications.QueueSize = 256
	}
	if c.Notifications.RatePerSecond == 0 {
		c.Notifications.RatePerSecond = 5
	}
	if c.Notifications.Burst == 0 {
		c.Notifications.Burst = 10
	}
	if c.Notifications.SendTimeout == 0 {
		c.Notifications.SendTimeout = 10
	}
	if c.Notifications.MaxAttempts == 0 {
		c.Notifications.MaxAttempts = 3
	}
	if c.Notifications.RetryDelay == 0 {
		c.Notifications.RetryDelay = 2
	}
	if c.Notifications.SMS.Timeout == 0 {
		c.Notifications.SMS.Timeout = 5
	}
	if c.Notifications.Alert.Topic == "" {
		c.Notifications.Alert.Topic = "salon.bookings.alerts"
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 20
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if err := c.Salon.BusinessHours().Validate(); err != nil {
		return fmt.Errorf("%w: salon hours: %v", ErrInvalidConfig, err)
	}
	if c.Salon.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: salon.slot_step_minutes=%d", ErrInvalidConfig, c.Salon.SlotStepMinutes)
	}
	if _, err := c.Salon.Location(); err != nil {
		return fmt.Errorf("%w: salon.timezone=%q: %v", ErrInvalidConfig, c.Salon.Timezone, err)
	}
	if c.Notifications.Workers < 0 || c.Notifications.QueueSize < 0 {
		return fmt.Errorf("%w: notifications workers/queue_size must not be negative", ErrInvalidConfig)
	}
	if c.Notifications.Email.Enabled && (c.Notifications.Email.Host == "" || c.Notifications.Email.From == "") {
		return fmt.Errorf("%w: notifications.email requires host and from", ErrInvalidConfig)
	}
	if c.Notifications.SMS.Enabled && c.Notifications.SMS.URL == "" {
		return fmt.Errorf("%w: notifications.sms requires url", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return fmt.Errorf("%w: redis.address is required when redis is enabled", ErrInvalidConfig)
	}
	return nil
}
