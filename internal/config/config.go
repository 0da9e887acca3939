package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/corpsite/corpsite/internal/service"
)

// Config is the full corpsite configuration. It is read from corpsite.yaml,
// CORPSITE_* environment variables and command flags through viper, and
// written back out by "corpsite config init".
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	Admin    AdminConfig    `yaml:"admin" mapstructure:"admin"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Uploads  UploadsConfig  `yaml:"uploads" mapstructure:"uploads"`
	MCP      MCPConfig      `yaml:"mcp" mapstructure:"mcp"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig controls the HTTP server behavior.
type ServerConfig struct {
	Host            string          `yaml:"host" mapstructure:"host"`
	Port            int             `yaml:"port" mapstructure:"port"`
	ShutdownTimeout string          `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	MaxUploadSize   string          `yaml:"max_upload_size" mapstructure:"max_upload_size"`
	CORS            CORSConfig      `yaml:"cors" mapstructure:"cors"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// CORSConfig controls cross-origin resource sharing settings.
type CORSConfig struct {
	Origins []string `yaml:"origins" mapstructure:"origins"`
}

// RateLimitConfig caps the unauthenticated write routes per client IP.
// Zero disables the limit.
type RateLimitConfig struct {
	LoginPerMinute   int `yaml:"login_per_minute" mapstructure:"login_per_minute"`
	ContactPerMinute int `yaml:"contact_per_minute" mapstructure:"contact_per_minute"`
}

// AuthConfig controls bearer token signing.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	JWTExpiry string `yaml:"jwt_expiry" mapstructure:"jwt_expiry"`
}

// AdminConfig is the bootstrap admin account created on first start.
type AdminConfig struct {
	Email    string `yaml:"email" mapstructure:"email"`
	Password string `yaml:"password" mapstructure:"password"`
}

// DatabaseConfig selects the SQL backend. An empty DSN with the sqlite
// driver stores corpsite.db under DataDir.
type DatabaseConfig struct {
	Driver  string `yaml:"driver" mapstructure:"driver"`
	DSN     string `yaml:"dsn" mapstructure:"dsn"`
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
}

// UploadsConfig controls where uploaded images are written.
type UploadsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// MCPConfig controls the Model Context Protocol server.
type MCPConfig struct {
	Transport string `yaml:"transport" mapstructure:"transport"`
	Addr      string `yaml:"addr" mapstructure:"addr"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns a Config pre-filled with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: "30s",
			MaxUploadSize:   "5MB",
			CORS: CORSConfig{
				Origins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
			},
			RateLimit: RateLimitConfig{
				LoginPerMinute:   10,
				ContactPerMinute: 5,
			},
		},
		Auth: AuthConfig{
			JWTExpiry: "24h",
		},
		Admin: AdminConfig{
			Email:    service.DefaultAdminEmail,
			Password: service.DefaultAdminPassword,
		},
		Database: DatabaseConfig{
			Driver:  "sqlite",
			DataDir: "./data",
		},
		Uploads: UploadsConfig{
			Dir: "./uploads",
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Addr:      "127.0.0.1:8081",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads and parses a YAML configuration file over the defaults.
// Environment variables referenced as ${VAR_NAME} in the file are expanded
// before parsing.
func Load(path string) (*Config, error) {
	data, err := readExpanded(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// ReadInto loads the YAML file at path into v with the same ${VAR_NAME}
// expansion as Load. Keys bound to flags or CORPSITE_* variables still take
// precedence over the file.
func ReadInto(v *viper.Viper, path string) error {
	data, err := readExpanded(path)
	if err != nil {
		return err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func readExpanded(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return []byte(os.ExpandEnv(string(data))), nil
}

// SetDefaults registers every key of Default on v, so that environment
// variables are honored even for keys absent from the config file.
func SetDefaults(v *viper.Viper) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	setDefaults(v, "", tree)
	return nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]interface{}) {
	for key, val := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := val.(map[string]interface{}); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// FromViper decodes the effective configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.MaxUploadBytes(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.JWTExpiry(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Database.Driver {
	case "sqlite":
	case "postgres", "mysql":
		if c.Database.DSN == "" {
			errs = append(errs, fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver %q not supported (use sqlite, postgres or mysql)", c.Database.Driver))
	}
	return errors.Join(errs...)
}

// ShutdownTimeout parses server.shutdown_timeout.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	return parseDuration("server.shutdown_timeout", c.Server.ShutdownTimeout, 30*time.Second)
}

// JWTExpiry parses auth.jwt_expiry.
func (c *Config) JWTExpiry() (time.Duration, error) {
	return parseDuration("auth.jwt_expiry", c.Auth.JWTExpiry, 24*time.Hour)
}

// MaxUploadBytes parses server.max_upload_size, accepting sizes such as
// "5MB" or "512KiB".
func (c *Config) MaxUploadBytes() (int64, error) {
	s := strings.TrimSpace(c.Server.MaxUploadSize)
	if s == "" {
		return 5 << 20, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("server.max_upload_size: %w", err)
	}
	if n == 0 {
		return 0, errors.New("server.max_upload_size must be positive")
	}
	return int64(n), nil
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.Logging.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

func parseDuration(key, s string, fallback time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, s)
	}
	return d, nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default configuration to a YAML file.
func WriteDefault(path string) error {
	data, err := Default().Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
