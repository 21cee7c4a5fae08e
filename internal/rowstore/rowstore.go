package rowstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrSheetNotFound reports that a sheet title could not be resolved.
var ErrSheetNotFound = errors.New("sheet not found")

// Store is the row-level contract the catalog repositories depend on.
//
// GetRows returns every row of the sheet (or of the A1 range when non-empty);
// a sheet with no data yields an empty slice, not an error. AppendRows adds
// rows after the last non-empty row. UpdateRange overwrites a rectangular A1
// range. ClearRange blanks cells without removing rows. DeleteRow physically
// removes one row addressed by its zero-based index (header included).
type Store interface {
	GetRows(ctx context.Context, sheet, a1 string) ([][]string, error)
	AppendRows(ctx context.Context, sheet string, rows [][]string) error
	UpdateRange(ctx context.Context, sheet, a1 string, rows [][]string) error
	ClearRange(ctx context.Context, sheet, a1 string) error
	DeleteRow(ctx context.Context, sheet string, rowIndex int) error
	Close() error
}

// RowRange builds a single-row A1 range such as "A5:C5".
func RowRange(startCol, endCol string, row int) string {
	return fmt.Sprintf("%s%d:%s%d", startCol, row, endCol, row)
}

// Cell builds a single-cell A1 reference such as "B5".
func Cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// singleRowRange describes a parsed one-row A1 range with zero-based
// coordinates.
type singleRowRange struct {
	row      int // zero-based sheet row
	startCol int
	endCol   int
}

// parseSingleRowRange understands "B5" and "A5:C5" style ranges. Multi-row
// ranges are rejected; nothing in this system addresses them.
func parseSingleRowRange(a1 string) (singleRowRange, error) {
	a1 = strings.TrimSpace(a1)
	if a1 == "" {
		return singleRowRange{}, errors.New("empty range")
	}

	parts := strings.SplitN(a1, ":", 2)
	startCol, startRow, err := parseCellRef(parts[0])
	if err != nil {
		return singleRowRange{}, fmt.Errorf("parse range %q: %w", a1, err)
	}
	endCol := startCol
	if len(parts) == 2 {
		var endRow int
		endCol, endRow, err = parseCellRef(parts[1])
		if err != nil {
			return singleRowRange{}, fmt.Errorf("parse range %q: %w", a1, err)
		}
		if endRow != startRow {
			return singleRowRange{}, fmt.Errorf("range %q spans multiple rows", a1)
		}
		if endCol < startCol {
			return singleRowRange{}, fmt.Errorf("range %q has reversed columns", a1)
		}
	}

	return singleRowRange{row: startRow - 1, startCol: startCol, endCol: endCol}, nil
}

func parseCellRef(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("malformed cell reference %q", ref)
	}
	for ; i < len(ref); i++ {
		if ref[i] < '0' || ref[i] > '9' {
			return 0, 0, fmt.Errorf("malformed cell reference %q", ref)
		}
		row = row*10 + int(ref[i]-'0')
	}
	if row < 1 {
		return 0, 0, fmt.Errorf("cell reference %q addresses row 0", ref)
	}
	return col - 1, row, nil
}
