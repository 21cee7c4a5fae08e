package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the HTTP bind address and the shared admin credential.
type Server struct {
	Bind          string `toml:"bind"`
	AdminUser     string `toml:"admin_user"`
	AdminPassword string `toml:"admin_password"`
}

// Rowstore selects the row-store backend. "sheets" is the production backend;
// "sqlite" keeps the same positional row semantics in a local file for
// development and tests.
type Rowstore struct {
	Backend    string `toml:"backend"`
	SQLitePath string `toml:"sqlite_path"`
}

// Sheets contains Google Sheets credentials and the target spreadsheet.
type Sheets struct {
	SpreadsheetID   string `toml:"spreadsheet_id"`
	ClientEmail     string `toml:"client_email"`
	PrivateKey      string `toml:"private_key"`
	CredentialsFile string `toml:"credentials_file"`
}

// Storage contains S3-compatible object storage settings. Endpoint covers
// non-AWS providers such as Cloudflare R2.
type Storage struct {
	Endpoint        string `toml:"endpoint"`
	Region          string `toml:"region"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	Bucket          string `toml:"bucket"`
}

// Uploads contains size ceilings and presign lifetimes per upload flow. The
// ceilings intentionally differ by flow; they mirror the product's current
// values and are configuration, not constants.
type Uploads struct {
	MaxDirectCreateBytes int64 `toml:"max_direct_create_bytes"`
	MaxDirectUpdateBytes int64 `toml:"max_direct_update_bytes"`
	MaxPresignedBytes    int64 `toml:"max_presigned_bytes"`
	DownloadTTLSeconds   int   `toml:"download_ttl_seconds"`
	UploadTTLSeconds     int   `toml:"upload_ttl_seconds"`
}

// Cache controls the wall-clock listing cache. TTL 0 disables the tier;
// request-scoped memoization is always on.
type Cache struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	LogDir string `toml:"log_dir"`
}

// Config encapsulates all configuration values for clipvault.
type Config struct {
	Server   Server   `toml:"server"`
	Rowstore Rowstore `toml:"rowstore"`
	Sheets   Sheets   `toml:"sheets"`
	Storage  Storage  `toml:"storage"`
	Uploads  Uploads  `toml:"uploads"`
	Cache    Cache    `toml:"cache"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipvault/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipvault.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the daemon needs at runtime.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Logging.LogDir}
	if c.Rowstore.Backend == BackendSQLite && strings.TrimSpace(c.Rowstore.SQLitePath) != "" {
		dirs = append(dirs, filepath.Dir(c.Rowstore.SQLitePath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
