package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	sharedConfig "liken/internal/shared/config"
)

type Config struct {
	Server      sharedConfig.ServerConfig      `mapstructure:"server"`
	Logger      sharedConfig.LoggerConfig      `mapstructure:"logger"`
	Auth        sharedConfig.AuthConfig        `mapstructure:"auth"`
	LedgerStore sharedConfig.LedgerStoreConfig `mapstructure:"ledger_store"`
	Stripe      sharedConfig.StripeConfig      `mapstructure:"stripe"`
	Payout      sharedConfig.PayoutConfig      `mapstructure:"payout"`
	Reminder    sharedConfig.ReminderConfig    `mapstructure:"reminder"`
	Email       sharedConfig.EmailConfig       `mapstructure:"email"`
	Redis       sharedConfig.RedisConfig       `mapstructure:"redis"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	configName := "config"
	if env != "" && env != "default" {
		configName = "config." + env
	}
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("LIKEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// The whole configuration can come from environment variables.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")

	// Ledger store defaults
	viper.SetDefault("ledger_store.base_url", "http://localhost:54321/rest/v1")
	viper.SetDefault("ledger_store.service_key", "")
	viper.SetDefault("ledger_store.request_timeout", 10*time.Second)

	// Stripe defaults (empty disables settlement)
	viper.SetDefault("stripe.secret_key", "")

	// Payout scheduler defaults
	viper.SetDefault("payout.scheduler_enabled", false)
	viper.SetDefault("payout.interval", 15*time.Minute)
	viper.SetDefault("payout.currency", "USD")
	viper.SetDefault("payout.settings_page_size", 500)
	viper.SetDefault("payout.default_threshold_cents", 5000)
	viper.SetDefault("payout.call_timeout", 15*time.Second)

	// Reminder sweep defaults
	viper.SetDefault("reminder.enabled", true)
	viper.SetDefault("reminder.interval", 24*time.Hour)
	viper.SetDefault("reminder.lead_days", 5)

	// Email defaults
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "noreply@liken.local")
	viper.SetDefault("email.from_name", "Liken")

	// Redis defaults (empty host disables the advisory cycle lock)
	viper.SetDefault("redis.host", "")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
}
