package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/corpsite/corpsite/internal/config"
	"github.com/corpsite/corpsite/internal/store"
)

// devJWTSecret signs tokens in --dev mode when no secret is configured.
const devJWTSecret = "corpsite-dev-secret-change-me"

// loadConfig decodes and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from logging.level and
// logging.format. --dev forces debug output.
func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.LogLevel()
	if devMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openStore opens the configured database. SQLite without a DSN lives under
// database.data_dir.
func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Database.Driver == store.DriverSQLite && cfg.Database.DSN == "" {
		return store.NewStore(cfg.Database.DataDir)
	}
	return store.Open(cfg.Database.Driver, cfg.Database.DSN)
}

// jwtSecret returns auth.jwt_secret, substituting a development secret in
// --dev mode.
func jwtSecret(cfg *config.Config, logger *slog.Logger) (string, error) {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret, nil
	}
	if devMode {
		logger.Warn("auth.jwt_secret not set, using the development secret")
		return devJWTSecret, nil
	}
	return "", fmt.Errorf("auth.jwt_secret is required (set CORPSITE_AUTH_JWT_SECRET or run with --dev)")
}

// versionString returns a display version string.
func versionString() string {
	if appVersion == "" || appVersion == "dev" {
		return "dev"
	}
	if strings.HasPrefix(appVersion, "v") {
		return appVersion
	}
	return "v" + appVersion
}
