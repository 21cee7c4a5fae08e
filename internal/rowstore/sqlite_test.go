package rowstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/rowstore"
	"clipvault/internal/services"
)

func openStore(t *testing.T) *rowstore.SQLiteStore {
	t.Helper()
	cfg := config.Default()
	cfg.Rowstore.Backend = config.BackendSQLite
	cfg.Rowstore.SQLitePath = filepath.Join(t.TempDir(), "rowstore.db")
	cfg.Logging.LogDir = t.TempDir()

	store, err := rowstore.NewSQLite(&cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSQLite returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteAppendAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	rows, err := store.GetRows(ctx, "players", "")
	if err != nil {
		t.Fatalf("GetRows on empty sheet: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty sheet, got %v", rows)
	}

	seed := [][]string{
		{"id", "name"},
		{"1", "Alice"},
		{"2", "Bob"},
	}
	if err := store.AppendRows(ctx, "players", seed); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	rows, err = store.GetRows(ctx, "players", "")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if !reflect.DeepEqual(rows, seed) {
		t.Fatalf("GetRows = %v, want %v", rows, seed)
	}
}

func TestSQLiteUpdateRange(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	seed := [][]string{
		{"id", "name"},
		{"1", "Alice"},
	}
	if err := store.AppendRows(ctx, "players", seed); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	if err := store.UpdateRange(ctx, "players", "A2:B2", [][]string{{"1", "Alicia"}}); err != nil {
		t.Fatalf("UpdateRange: %v", err)
	}

	rows, err := store.GetRows(ctx, "players", "")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if rows[1][1] != "Alicia" {
		t.Fatalf("expected updated name, got %v", rows[1])
	}
}

func TestSQLiteClearRangeBlanksCellsWithoutRemovingRow(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	seed := [][]string{
		{"id", "name", "type"},
		{"1", "final.mp4", "決勝戦"},
	}
	if err := store.AppendRows(ctx, "videos", seed); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	if err := store.ClearRange(ctx, "videos", "B2"); err != nil {
		t.Fatalf("ClearRange: %v", err)
	}

	rows, err := store.GetRows(ctx, "videos", "")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected row to remain, got %d rows", len(rows))
	}
	if rows[1][0] != "1" || rows[1][1] != "" || rows[1][2] != "決勝戦" {
		t.Fatalf("expected only name blanked, got %v", rows[1])
	}
}

func TestSQLiteDeleteRowShiftsPositions(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	seed := [][]string{
		{"id", "name"},
		{"1", "Alice"},
		{"2", "Bob"},
		{"3", "Carol"},
	}
	if err := store.AppendRows(ctx, "players", seed); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	// Zero-based index 2 is Bob's row.
	if err := store.DeleteRow(ctx, "players", 2); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	rows, err := store.GetRows(ctx, "players", "")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{
		{"id", "name"},
		{"1", "Alice"},
		{"3", "Carol"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("GetRows after delete = %v, want %v", rows, want)
	}
}

func TestSQLiteDeleteRowUnknownSheet(t *testing.T) {
	store := openStore(t)

	err := store.DeleteRow(context.Background(), "missing", 1)
	if err == nil {
		t.Fatal("expected error for unknown sheet")
	}
	if !errors.Is(err, rowstore.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
}

func TestSQLiteGetRowsWithRange(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	seed := [][]string{
		{"id", "name", "type"},
		{"1", "semi.mp4", "TOP4"},
	}
	if err := store.AppendRows(ctx, "videos", seed); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	rows, err := store.GetRows(ctx, "videos", "B2:C2")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{{"semi.mp4", "TOP4"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("GetRows range = %v, want %v", rows, want)
	}
}
