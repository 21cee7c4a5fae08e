package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
		return fmt.Errorf("logging.log_dir: %w", err)
	}
	if c.Rowstore.SQLitePath, err = expandPath(c.Rowstore.SQLitePath); err != nil {
		return fmt.Errorf("rowstore.sqlite_path: %w", err)
	}
	if c.Sheets.CredentialsFile != "" {
		if c.Sheets.CredentialsFile, err = expandPath(c.Sheets.CredentialsFile); err != nil {
			return fmt.Errorf("sheets.credentials_file: %w", err)
		}
	}

	c.Rowstore.Backend = strings.ToLower(strings.TrimSpace(c.Rowstore.Backend))
	if c.Rowstore.Backend == "" {
		c.Rowstore.Backend = BackendSheets
	}

	// Private keys pasted into TOML or env vars often carry literal "\n".
	c.Sheets.PrivateKey = strings.ReplaceAll(c.Sheets.PrivateKey, `\n`, "\n")

	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	if strings.TrimSpace(c.Storage.Region) == "" {
		c.Storage.Region = defaultRegion
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
