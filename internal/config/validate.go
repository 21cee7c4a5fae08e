package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Validation happens once at
// load time so adapters can assume credentials are present before any
// network call.
func (c *Config) Validate() error {
	if err := c.validateRowstore(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateUploads(); err != nil {
		return err
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.New("cache.ttl_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateRowstore() error {
	switch c.Rowstore.Backend {
	case BackendSheets:
		return c.validateSheets()
	case BackendSQLite:
		if strings.TrimSpace(c.Rowstore.SQLitePath) == "" {
			return errors.New("rowstore.sqlite_path must be set when rowstore.backend is \"sqlite\"")
		}
		return nil
	default:
		return fmt.Errorf("rowstore.backend must be %q or %q, got %q", BackendSheets, BackendSQLite, c.Rowstore.Backend)
	}
}

func (c *Config) validateSheets() error {
	if strings.TrimSpace(c.Sheets.SpreadsheetID) == "" {
		return errors.New("sheets.spreadsheet_id must be set")
	}
	if strings.TrimSpace(c.Sheets.CredentialsFile) != "" {
		return nil
	}
	if strings.TrimSpace(c.Sheets.ClientEmail) == "" || strings.TrimSpace(c.Sheets.PrivateKey) == "" {
		return errors.New("sheets credentials missing: set sheets.credentials_file or both sheets.client_email and sheets.private_key")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if strings.TrimSpace(c.Storage.Bucket) == "" {
		return errors.New("storage.bucket must be set")
	}
	if strings.TrimSpace(c.Storage.AccessKeyID) == "" || strings.TrimSpace(c.Storage.SecretAccessKey) == "" {
		return errors.New("storage credentials missing: set storage.access_key_id and storage.secret_access_key")
	}
	return nil
}

func (c *Config) validateUploads() error {
	if c.Uploads.MaxDirectCreateBytes <= 0 {
		return errors.New("uploads.max_direct_create_bytes must be positive")
	}
	if c.Uploads.MaxDirectUpdateBytes <= 0 {
		return errors.New("uploads.max_direct_update_bytes must be positive")
	}
	if c.Uploads.MaxPresignedBytes <= 0 {
		return errors.New("uploads.max_presigned_bytes must be positive")
	}
	if c.Uploads.DownloadTTLSeconds <= 0 {
		return errors.New("uploads.download_ttl_seconds must be positive")
	}
	if c.Uploads.UploadTTLSeconds <= 0 {
		return errors.New("uploads.upload_ttl_seconds must be positive")
	}
	return nil
}
