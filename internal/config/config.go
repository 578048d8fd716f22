package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the full application configuration, loaded from a TOML file
// with secrets overridable through the environment.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Mailer    MailerConfig    `toml:"mailer"`
	SheetSync SheetSyncConfig `toml:"sheetsync"`
	Sweep     SweepConfig     `toml:"sweep"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
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

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	BookingLimit  int  `toml:"booking_limit"`
	WindowSeconds int  `toml:"window_seconds"`
}

type MailerConfig struct {
	Enabled   bool   `toml:"enabled"`
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	FromName  string `toml:"from_name"`
	FromEmail string `toml:"from_email"`
	Timeout   int    `toml:"timeout"`
}

type SheetSyncConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
	SheetID string `toml:"sheet_id"`
	Timeout int    `toml:"timeout"`
}

type SweepConfig struct {
	Enabled          bool   `toml:"enabled"`
	Schedule         string `toml:"schedule"`
	ToleranceMinutes int    `toml:"tolerance_minutes"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Load reads the TOML file at path and applies environment overrides.
// A .env file next to the binary is honoured when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// Secrets never live in the checked-in TOML.
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("MAIL_API_KEY"); v != "" {
		cfg.Mailer.APIKey = v
	}
	if v := os.Getenv("SHEETSYNC_TOKEN"); v != "" {
		cfg.SheetSync.Token = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort == 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required (set JWT_SECRET)")
	}
	if c.Mailer.Enabled && c.Mailer.APIKey == "" {
		return fmt.Errorf("config: mailer.api_key is required when mailer is enabled (set MAIL_API_KEY)")
	}
	if c.SheetSync.Enabled && c.SheetSync.Token == "" {
		return fmt.Errorf("config: sheetsync.token is required when sheetsync is enabled (set SHEETSYNC_TOKEN)")
	}
	return nil
}
