package config

import (
	"fmt"
	"strings"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// LedgerStoreConfig configures the hosted tabular data API that owns all
// marketplace tables (agency payout settings, payments, payout requests).
type LedgerStoreConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	ServiceKey     string        `mapstructure:"service_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

// Configured reports whether settlement credentials are present. An empty
// secret key disables the settlement feature entirely.
func (s *StripeConfig) Configured() bool {
	return strings.TrimSpace(s.SecretKey) != ""
}

type PayoutConfig struct {
	SchedulerEnabled      bool          `mapstructure:"scheduler_enabled"`
	Interval              time.Duration `mapstructure:"interval"`
	Currency              string        `mapstructure:"currency"`
	SettingsPageSize      int           `mapstructure:"settings_page_size"`
	DefaultThresholdCents int64         `mapstructure:"default_threshold_cents"`
	CallTimeout           time.Duration `mapstructure:"call_timeout"`
}

type ReminderConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	LeadDays int           `mapstructure:"lead_days"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Configured reports whether a Redis endpoint was provided. The advisory
// cycle lock is only engaged when it is.
func (r *RedisConfig) Configured() bool {
	return r.Host != ""
}
