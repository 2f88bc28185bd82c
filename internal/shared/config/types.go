package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	FrontendURL    string   `mapstructure:"frontend_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// EnableSwagger serves /swagger outside release mode.
	EnableSwagger bool `mapstructure:"enable_swagger"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is one of postgres, mysql, sqlite.
	Driver string `mapstructure:"driver"`
	// URL is a full DSN. When set it wins over the discrete fields.
	URL             string `mapstructure:"url"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // seconds
	ConnectTimeout  int    `mapstructure:"connect_timeout"`    // seconds
	QueryTimeout    int    `mapstructure:"query_timeout"`      // seconds
	MigrationTool   string `mapstructure:"migration_tool"`
	LogLevel        string `mapstructure:"log_level"`
}

// GetDSN builds the driver-specific DSN from the discrete fields.
func (d *DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=%ds",
			d.Username, d.Password, d.Host, d.Port, d.Database, d.ConnectTimeout)
	case "sqlite":
		return d.Database
	default:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode, d.ConnectTimeout)
	}
}

func (d *DatabaseConfig) GetQueryTimeout() time.Duration {
	if d.QueryTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.QueryTimeout) * time.Second
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	ResetExpMinutes  int    `mapstructure:"reset_exp_minutes"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	// AdminAddress receives the new-lead notification.
	AdminAddress string `mapstructure:"admin_address"`
	SendTimeout  int    `mapstructure:"send_timeout"` // seconds
	// Timezone is used for timestamps printed in emails.
	Timezone string `mapstructure:"timezone"`
}

// Enabled reports whether outbound mail is configured at all.
func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != ""
}

func (e *EmailConfig) GetSendTimeout() time.Duration {
	if e.SendTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.SendTimeout) * time.Second
}

// Location resolves Timezone, falling back to UTC when it is empty or unknown.
func (e *EmailConfig) Location() *time.Location {
	if e.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
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

// Enabled reports whether a Redis host was configured.
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

type RateLimitConfig struct {
	ContactPerMinute int `mapstructure:"contact_per_minute"`
	ContactPerHour   int `mapstructure:"contact_per_hour"`
	LoginPerMinute   int `mapstructure:"login_per_minute"`
	LoginPerHour     int `mapstructure:"login_per_hour"`
}
