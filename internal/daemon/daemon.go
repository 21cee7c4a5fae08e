package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/rowstore"
	"clipvault/internal/server"
)

// Daemon owns the long-running pieces of clipvaultd.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  rowstore.Store
	server *server.Server

	lockPath string
	lock     *flock.Flock
	running  atomic.Bool
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store rowstore.Store, srv *server.Server, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || srv == nil {
		return nil, errors.New("daemon requires config, store, and server")
	}

	lockPath := filepath.Join(cfg.Logging.LogDir, "clipvaultd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		server:   srv,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and begins serving. The daemon stops when
// ctx is canceled.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another clipvault daemon instance is already running")
	}

	if err := d.server.Start(ctx); err != nil {
		_ = d.lock.Unlock()
		return err
	}

	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.server.Addr()))
	return nil
}

// Stop shuts the server down and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	d.server.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Close stops the daemon and closes the row store.
func (d *Daemon) Close() {
	d.Stop()
	if err := d.store.Close(); err != nil {
		d.logger.Warn("failed to close row store", logging.Error(err))
	}
}

// Addr reports the server's bound address while running.
func (d *Daemon) Addr() string {
	return d.server.Addr()
}
