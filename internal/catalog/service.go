package catalog

import (
	"context"
	"log/slog"
	"time"

	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/rowstore"
	"clipvault/internal/services"
)

// Service exposes the player, video, and association repositories on top of a
// row store. All methods are safe for concurrent use.
type Service struct {
	store  rowstore.Store
	cache  *listCache
	logger *slog.Logger
}

// NewService builds the catalog service. A nil config disables the list cache.
func NewService(store rowstore.Store, cfg *config.Config, logger *slog.Logger) *Service {
	ttl := time.Duration(0)
	if cfg != nil {
		ttl = time.Duration(cfg.Cache.TTLSeconds) * time.Second
	}
	return &Service{
		store:  store,
		cache:  newListCache(ttl),
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// cachedRows serves list reads: cache hit when fresh, otherwise a full sheet
// fetch that refills the cache.
func (s *Service) cachedRows(ctx context.Context, sheet string) ([][]string, error) {
	if rows, ok := s.cache.get(sheet); ok {
		return rows, nil
	}
	rows, err := s.store.GetRows(ctx, sheet, "")
	if err != nil {
		return nil, err
	}
	s.cache.put(sheet, rows)
	return rows, nil
}

// freshRows serves write paths, which must never act on stale data.
func (s *Service) freshRows(ctx context.Context, sheet string) ([][]string, error) {
	return s.store.GetRows(ctx, sheet, "")
}

func (s *Service) invalidate(sheet string) {
	s.cache.invalidate(sheet)
}

func storeErr(operation, userMsg string, err error) error {
	return services.Wrap(services.ErrStoreAccess, "catalog", operation, "",
		services.WithUserMessage(userMsg, err))
}

func notFoundErr(operation, userMsg string) error {
	return services.Wrap(services.ErrNotFound, "catalog", operation, "",
		services.WithUserMessage(userMsg, nil))
}

func validationErr(operation, userMsg string) error {
	return services.Wrap(services.ErrValidation, "catalog", operation, "",
		services.WithUserMessage(userMsg, nil))
}
