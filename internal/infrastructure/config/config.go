package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/keshevplus/leadhub/internal/shared/config"
	"github.com/keshevplus/leadhub/internal/shared/constants"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	Environment string                       `mapstructure:"environment"`
	Server      sharedConfig.ServerConfig    `mapstructure:"server"`
	Database    sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth        sharedConfig.AuthConfig      `mapstructure:"auth"`
	Email       sharedConfig.EmailConfig     `mapstructure:"email"`
	Redis       sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit   sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == constants.EnvProduction
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// legacyEnv binds the variable names the site's deployment has always used.
var legacyEnv = map[string][]string{
	"database.url":           {"DATABASE_URL"},
	"auth.jwt.secret":        {"JWT_SECRET"},
	"email.smtp_host":        {"EMAIL_HOST"},
	"email.smtp_port":        {"EMAIL_PORT"},
	"email.smtp_user":        {"EMAIL_USER"},
	"email.smtp_password":    {"EMAIL_PASS"},
	"email.from_address":     {"EMAIL_FROM"},
	"email.admin_address":    {"EMAIL_TO"},
	"server.frontend_url":    {"FRONTEND_URL"},
	"server.allowed_origins": {"ALLOWED_ORIGINS"},
	"server.port":            {"PORT"},
}

// Load reads configs/config.yaml (optional), a .env file (optional) and the
// environment. env overrides the configured environment when non-empty;
// configPath points at an explicit config file.
func Load(env string, configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("LEADHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range legacyEnv {
		prefixed := "LEADHUB_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("environment", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
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

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.IsProduction() && (c.Auth.JWT.Secret == "" || c.Auth.JWT.Secret == defaultJWTSecret) {
		return fmt.Errorf("auth.jwt.secret must be set in production")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", constants.EnvDevelopment)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:5000")
	v.SetDefault("server.frontend_url", "http://localhost:3000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.enable_swagger", true)

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", "leadhub_dev")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.conn_max_idle_time", 30)
	v.SetDefault("database.connect_timeout", 10)
	v.SetDefault("database.query_timeout", 10)
	v.SetDefault("database.migration_tool", "goose")
	v.SetDefault("database.log_level", "warn")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.access_exp_minutes", 24*60)
	v.SetDefault("auth.jwt.reset_exp_minutes", 60)

	// Email defaults; an empty smtp_host disables outbound mail
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from_address", "dr@keshevplus.co.il")
	v.SetDefault("email.from_name", "Keshev Plus")
	v.SetDefault("email.admin_address", "pluskeshev@gmail.com")
	v.SetDefault("email.send_timeout", 10)
	v.SetDefault("email.timezone", "Asia/Jerusalem")

	// Redis defaults; an empty host disables rate limiting
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.contact_per_minute", 5)
	v.SetDefault("ratelimit.contact_per_hour", 30)
	v.SetDefault("ratelimit.login_per_minute", 10)
	v.SetDefault("ratelimit.login_per_hour", 60)
}
