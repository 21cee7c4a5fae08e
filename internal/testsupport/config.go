package testsupport

import (
	"path/filepath"
	"testing"

	"clipvault/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Server.Bind = "127.0.0.1:0"
	cfg.Server.AdminUser = "admin"
	cfg.Server.AdminPassword = "secret"
	cfg.Rowstore.Backend = config.BackendSQLite
	cfg.Rowstore.SQLitePath = filepath.Join(base, "rowstore.db")
	cfg.Sheets.SpreadsheetID = "test-spreadsheet"
	cfg.Storage.Bucket = "test-bucket"
	cfg.Storage.AccessKeyID = "test-access"
	cfg.Storage.SecretAccessKey = "test-secret"
	cfg.Logging.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithCacheTTL overrides the listing cache TTL in seconds.
func WithCacheTTL(seconds int) ConfigOption {
	return func(c *config.Config) {
		c.Cache.TTLSeconds = seconds
	}
}

// WithAdminCredentials overrides the admin Basic-Auth credential pair.
func WithAdminCredentials(user, password string) ConfigOption {
	return func(c *config.Config) {
		c.Server.AdminUser = user
		c.Server.AdminPassword = password
	}
}
