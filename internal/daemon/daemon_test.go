package daemon_test

import (
	"context"
	"os"
	"testing"

	"clipvault/internal/catalog"
	"clipvault/internal/daemon"
	"clipvault/internal/logging"
	"clipvault/internal/server"
	"clipvault/internal/testsupport"
	"clipvault/internal/uploads"
)

func newDaemon(t *testing.T) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Logging.LogDir, 0o755); err != nil {
		t.Fatalf("mkdir log dir: %v", err)
	}
	store := testsupport.NewFakeStore(map[string][][]string{
		"players":       {{"id", "name"}},
		"videos":        {{"id", "name", "type"}},
		"player_videos": {{"id", "player_id", "video_id"}},
	})
	objects := testsupport.NewFakeObjectStore()
	cat := catalog.NewService(store, cfg, logging.NewNop())
	up := uploads.NewService(cat, objects, cfg, logging.NewNop())
	srv := server.New(cfg, cat, up, logging.NewNop())

	d, err := daemon.New(cfg, store, srv, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	return d
}

func TestDaemonStartStop(t *testing.T) {
	d := newDaemon(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Close()

	if d.Addr() == "" {
		t.Fatal("expected a bound address")
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second Start to fail")
	}
	d.Stop()
}

func TestDaemonRejectsMissingDependencies(t *testing.T) {
	if _, err := daemon.New(nil, nil, nil, logging.NewNop()); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}
