package testsupport

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeStore is an in-memory row store with sheet semantics: positional rows,
// single-row A1 updates, physical row deletion. Errors can be injected per
// operation name to exercise failure paths.
type FakeStore struct {
	mu     sync.Mutex
	sheets map[string][][]string
	errs   map[string]*injectedFailure
}

type injectedFailure struct {
	after int
	err   error
}

// NewFakeStore seeds an empty store with the given sheets, header rows
// included.
func NewFakeStore(sheets map[string][][]string) *FakeStore {
	copied := make(map[string][][]string, len(sheets))
	for name, rows := range sheets {
		copied[name] = copyRows(rows)
	}
	return &FakeStore{sheets: copied, errs: make(map[string]*injectedFailure)}
}

// FailWith makes the named operation ("get", "append", "update", "clear",
// "delete") return err on every subsequent call.
func (f *FakeStore) FailWith(op string, err error) {
	f.FailAfter(op, 0, err)
}

// FailAfter lets the named operation succeed n more times, then fail with err
// on every call after that.
func (f *FakeStore) FailAfter(op string, n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = &injectedFailure{after: n, err: err}
}

// failure is called under f.mu by every operation.
func (f *FakeStore) failure(op string) error {
	inj := f.errs[op]
	if inj == nil {
		return nil
	}
	if inj.after > 0 {
		inj.after--
		return nil
	}
	return inj.err
}

// Rows returns a copy of the sheet's current rows for assertions.
func (f *FakeStore) Rows(sheet string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyRows(f.sheets[sheet])
}

func (f *FakeStore) GetRows(_ context.Context, sheet, a1 string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("get"); err != nil {
		return nil, err
	}
	rows, ok := f.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("unknown sheet %q", sheet)
	}
	if a1 != "" {
		return nil, fmt.Errorf("fake store serves whole-sheet reads only, got %q", a1)
	}
	return copyRows(rows), nil
}

func (f *FakeStore) AppendRows(_ context.Context, sheet string, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("append"); err != nil {
		return err
	}
	existing, ok := f.sheets[sheet]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheet)
	}
	f.sheets[sheet] = append(existing, copyRows(rows)...)
	return nil
}

func (f *FakeStore) UpdateRange(_ context.Context, sheet, a1 string, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("update"); err != nil {
		return err
	}
	return f.writeRange(sheet, a1, rows)
}

func (f *FakeStore) ClearRange(_ context.Context, sheet, a1 string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("clear"); err != nil {
		return err
	}
	row, startCol, endCol, err := parseRowRange(a1)
	if err != nil {
		return err
	}
	blanks := make([]string, endCol-startCol+1)
	return f.writeCells(sheet, row, startCol, blanks)
}

func (f *FakeStore) DeleteRow(_ context.Context, sheet string, rowIndex int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("delete"); err != nil {
		return err
	}
	rows, ok := f.sheets[sheet]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheet)
	}
	if rowIndex < 0 || rowIndex >= len(rows) {
		return fmt.Errorf("row index %d out of range for sheet %q", rowIndex, sheet)
	}
	f.sheets[sheet] = append(rows[:rowIndex], rows[rowIndex+1:]...)
	return nil
}

func (f *FakeStore) Close() error { return nil }

func (f *FakeStore) writeRange(sheet, a1 string, rows [][]string) error {
	if len(rows) != 1 {
		return fmt.Errorf("fake store updates one row at a time, got %d", len(rows))
	}
	row, startCol, _, err := parseRowRange(a1)
	if err != nil {
		return err
	}
	return f.writeCells(sheet, row, startCol, rows[0])
}

func (f *FakeStore) writeCells(sheet string, row, startCol int, cells []string) error {
	stored, ok := f.sheets[sheet]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheet)
	}
	if row < 0 || row >= len(stored) {
		return fmt.Errorf("row %d out of range for sheet %q", row+1, sheet)
	}
	target := stored[row]
	for i, cell := range cells {
		col := startCol + i
		for col >= len(target) {
			target = append(target, "")
		}
		target[col] = cell
	}
	stored[row] = target
	return nil
}

// parseRowRange understands "B5" and "A5:C5" and returns the zero-based row
// and column bounds.
func parseRowRange(a1 string) (row, startCol, endCol int, err error) {
	parts := strings.SplitN(strings.TrimSpace(a1), ":", 2)
	startCol, startRow, err := parseCell(parts[0])
	if err != nil {
		return 0, 0, 0, err
	}
	endCol = startCol
	if len(parts) == 2 {
		var endRow int
		endCol, endRow, err = parseCell(parts[1])
		if err != nil {
			return 0, 0, 0, err
		}
		if endRow != startRow {
			return 0, 0, 0, fmt.Errorf("range %q spans multiple rows", a1)
		}
	}
	return startRow - 1, startCol, endCol, nil
}

func parseCell(ref string) (col, row int, err error) {
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
	return col - 1, row, nil
}

func copyRows(rows [][]string) [][]string {
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return copied
}
