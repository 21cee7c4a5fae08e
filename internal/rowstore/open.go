package rowstore

import (
	"context"
	"fmt"
	"log/slog"

	"clipvault/internal/config"
	"clipvault/internal/services"
)

// Open builds the Store selected by rowstore.backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "open", "configuration is required", nil)
	}
	switch cfg.Rowstore.Backend {
	case config.BackendSheets:
		return NewSheets(ctx, cfg, logger)
	case config.BackendSQLite:
		return NewSQLite(cfg, logger)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "open",
			fmt.Sprintf("unknown backend %q", cfg.Rowstore.Backend), nil)
	}
}
