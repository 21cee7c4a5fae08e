package config

// Row-store backend names.
const (
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
)

const (
	defaultBind       = "127.0.0.1:8790"
	defaultLogDir     = "~/.local/share/clipvault/logs"
	defaultSQLitePath = "~/.local/share/clipvault/rowstore.db"
	defaultLogFormat  = "text"
	defaultLogLevel   = "info"
	defaultRegion     = "auto"

	// Size ceilings differ by flow on purpose; see the uploads package.
	defaultMaxDirectCreateBytes = 900 * 1024 * 1024
	defaultMaxDirectUpdateBytes = 500 * 1024 * 1024
	defaultMaxPresignedBytes    = 2 * 1024 * 1024 * 1024

	defaultDownloadTTLSeconds = 3600
	defaultUploadTTLSeconds   = 900
	defaultCacheTTLSeconds    = 300
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
		},
		Rowstore: Rowstore{
			Backend:    BackendSheets,
			SQLitePath: defaultSQLitePath,
		},
		Storage: Storage{
			Region: defaultRegion,
		},
		Uploads: Uploads{
			MaxDirectCreateBytes: defaultMaxDirectCreateBytes,
			MaxDirectUpdateBytes: defaultMaxDirectUpdateBytes,
			MaxPresignedBytes:    defaultMaxPresignedBytes,
			DownloadTTLSeconds:   defaultDownloadTTLSeconds,
			UploadTTLSeconds:     defaultUploadTTLSeconds,
		},
		Cache: Cache{
			TTLSeconds: defaultCacheTTLSeconds,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			LogDir: defaultLogDir,
		},
	}
}
