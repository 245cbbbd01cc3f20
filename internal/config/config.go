package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Shop        ShopConfig        `toml:"shop"`
	WhatsAppBot WhatsAppBotConfig `toml:"whatsapp_bot"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
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

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки Redis (используется лимитером запросов)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig ограничение количества бронирований с одного IP
type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	Requests      int  `toml:"requests"`
	WindowSeconds int  `toml:"window_seconds"`

	// TrustedProxies адреса или CIDR балансировщиков, которым разрешено передавать
	// адрес клиента в X-Forwarded-For. Пусто - ключом лимитера служит адрес соединения.
	TrustedProxies []string `toml:"trusted_proxies"`
}

// Window возвращает окно лимитера
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// ShopConfig настройки барбершопа
type ShopConfig struct {
	Timezone         string `toml:"timezone"`
	MaxDaysInAdvance int    `toml:"max_days_in_advance"`

	location *time.Location
}

// Location возвращает часовой пояс барбершопа (заполняется при загрузке)
func (c ShopConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// WhatsAppBotConfig настройки бота для отправки подтверждений
type WhatsAppBotConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует ее
func Load(path string) (*Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalidConfig, strings.Join(keys, ", "))
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
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			Requests:      3,
			WindowSeconds: 60,
		},
		Shop: ShopConfig{
			Timezone:         domain.DefaultTimezone,
			MaxDaysInAdvance: domain.DefaultMaxDaysInAdvance,
		},
		WhatsAppBot: WhatsAppBotConfig{
			Timeout: 5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "ronald-barber",
		},
	}
}

// Validate проверяет конфигурацию и резолвит часовой пояс
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return fmt.Errorf("%w: rate_limit.requests and rate_limit.window_seconds must be positive", ErrInvalidConfig)
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !isIPOrCIDR(proxy) {
			return fmt.Errorf("%w: rate_limit.trusted_proxies: %q is not an IP or CIDR", ErrInvalidConfig, proxy)
		}
	}
	if c.Shop.MaxDaysInAdvance <= 0 {
		return fmt.Errorf("%w: shop.max_days_in_advance must be positive", ErrInvalidConfig)
	}
	if c.WhatsAppBot.Enabled && c.WhatsAppBot.URL == "" {
		return fmt.Errorf("%w: whatsapp_bot.url is required when the bot is enabled", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	loc, err := time.LoadLocation(c.Shop.Timezone)
	if err != nil {
		return fmt.Errorf("%w: shop.timezone %q: %v", ErrInvalidConfig, c.Shop.Timezone, err)
	}
	c.Shop.location = loc

	return nil
}

func isIPOrCIDR(s string) bool {
	s = strings.TrimSpace(s)
	if net.ParseIP(s) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(s)
	return err == nil
}
