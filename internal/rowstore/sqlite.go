package rowstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/services"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sheet_rows (
    sheet    TEXT    NOT NULL,
    position INTEGER NOT NULL,
    cells    TEXT    NOT NULL,
    PRIMARY KEY (sheet, position)
);
`

// SQLiteStore implements Store in a local database file with the same
// positional row semantics as the Sheets backend. It exists for development
// and tests; production uses SheetsStore.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLite opens (and initializes if needed) the local row store.
func NewSQLite(cfg *config.Config, logger *slog.Logger) (*SQLiteStore, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "init", "configuration is required", nil)
	}
	path := strings.TrimSpace(cfg.Rowstore.SQLitePath)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "init", "rowstore.sqlite_path is not set", nil)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "init", "ensure directories", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, services.Wrap(services.ErrStoreAccess, "rowstore", "init", "open sqlite db", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrStoreAccess, "rowstore", "init", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrStoreAccess, "rowstore", "init", "apply schema", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logging.NewComponentLogger(logger, "rowstore"),
	}, nil
}

func (s *SQLiteStore) GetRows(ctx context.Context, sheet, a1 string) ([][]string, error) {
	all, err := s.readSheet(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if a1 == "" {
		return all, nil
	}

	rng, err := parseSingleRowRange(a1)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "rowstore", "get "+sheet, err.Error(), nil)
	}
	if rng.row >= len(all) {
		return nil, nil
	}
	row := all[rng.row]
	cells := make([]string, 0, rng.endCol-rng.startCol+1)
	for col := rng.startCol; col <= rng.endCol; col++ {
		if col < len(row) {
			cells = append(cells, row[col])
		} else {
			cells = append(cells, "")
		}
	}
	return [][]string{cells}, nil
}

func (s *SQLiteStore) AppendRows(ctx context.Context, sheet string, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("append "+sheet, err)
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position)+1, 0) FROM sheet_rows WHERE sheet = ?`, sheet).Scan(&next)
	if err != nil {
		return s.fail("append "+sheet, err)
	}

	for i, row := range rows {
		encoded, err := json.Marshal(row)
		if err != nil {
			return s.fail("append "+sheet, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_rows (sheet, position, cells) VALUES (?, ?, ?)`,
			sheet, next+i, string(encoded)); err != nil {
			return s.fail("append "+sheet, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return s.fail("append "+sheet, err)
	}
	return nil
}

func (s *SQLiteStore) UpdateRange(ctx context.Context, sheet, a1 string, rows [][]string) error {
	rng, err := parseSingleRowRange(a1)
	if err != nil {
		return services.Wrap(services.ErrValidation, "rowstore", "update "+sheet, err.Error(), nil)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("update "+sheet, err)
	}
	defer tx.Rollback()

	for i, row := range rows {
		if err := s.writeCells(ctx, tx, sheet, rng.row+i, rng.startCol, row); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return s.fail("update "+sheet, err)
	}
	return nil
}

func (s *SQLiteStore) ClearRange(ctx context.Context, sheet, a1 string) error {
	rng, err := parseSingleRowRange(a1)
	if err != nil {
		return services.Wrap(services.ErrValidation, "rowstore", "clear "+sheet, err.Error(), nil)
	}

	blanks := make([]string, rng.endCol-rng.startCol+1)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("clear "+sheet, err)
	}
	defer tx.Rollback()

	if err := s.writeCells(ctx, tx, sheet, rng.row, rng.startCol, blanks); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return s.fail("clear "+sheet, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteRow(ctx context.Context, sheet string, rowIndex int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("delete row in "+sheet, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM sheet_rows WHERE sheet = ? AND position = ?`, sheet, rowIndex)
	if err != nil {
		return s.fail("delete row in "+sheet, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return s.fail("delete row in "+sheet, err)
	}
	if affected == 0 {
		userErr := services.WithUserMessage(fmt.Sprintf("sheet %q not found", sheet), ErrSheetNotFound)
		return services.Wrap(services.ErrNotFound, "rowstore", "delete row in "+sheet, "", userErr)
	}

	// Close the gap so positions stay contiguous, mirroring physical row
	// removal in a spreadsheet.
	if _, err := tx.ExecContext(ctx,
		`UPDATE sheet_rows SET position = position - 1 WHERE sheet = ? AND position > ?`,
		sheet, rowIndex); err != nil {
		return s.fail("delete row in "+sheet, err)
	}
	if err := tx.Commit(); err != nil {
		return s.fail("delete row in "+sheet, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) readSheet(ctx context.Context, sheet string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY position`, sheet)
	if err != nil {
		return nil, s.fail("get "+sheet, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, s.fail("get "+sheet, err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
			return nil, s.fail("get "+sheet, err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("get "+sheet, err)
	}
	return out, nil
}

// writeCells overwrites columns startCol.. of one zero-based row, creating
// the row padded with blanks when it does not exist yet.
func (s *SQLiteStore) writeCells(ctx context.Context, tx *sql.Tx, sheet string, position, startCol int, values []string) error {
	var encoded string
	var cells []string
	err := tx.QueryRowContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet = ? AND position = ?`,
		sheet, position).Scan(&encoded)
	switch {
	case err == sql.ErrNoRows:
		cells = nil
	case err != nil:
		return s.fail("update "+sheet, err)
	default:
		if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
			return s.fail("update "+sheet, err)
		}
	}

	need := startCol + len(values)
	for len(cells) < need {
		cells = append(cells, "")
	}
	copy(cells[startCol:], values)

	updated, err := json.Marshal(cells)
	if err != nil {
		return s.fail("update "+sheet, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet, position, cells) VALUES (?, ?, ?)
		 ON CONFLICT (sheet, position) DO UPDATE SET cells = excluded.cells`,
		sheet, position, string(updated)); err != nil {
		return s.fail("update "+sheet, err)
	}
	return nil
}

func (s *SQLiteStore) fail(operation string, err error) error {
	s.logger.Error("row store operation failed",
		logging.String("operation", operation),
		logging.Error(err))
	return services.Wrap(services.ErrStoreAccess, "rowstore", operation, "", err)
}
