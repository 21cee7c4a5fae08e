package rowstore

import "testing"

func TestParseSingleRowRange(t *testing.T) {
	cases := []struct {
		name     string
		a1       string
		row      int
		startCol int
		endCol   int
	}{
		{"single cell", "B5", 4, 1, 1},
		{"row range", "A5:C5", 4, 0, 2},
		{"wide columns", "AA10:AB10", 9, 26, 27},
		{"lowercase", "b2", 1, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := parseSingleRowRange(tc.a1)
			if err != nil {
				t.Fatalf("parseSingleRowRange(%q) returned error: %v", tc.a1, err)
			}
			if rng.row != tc.row || rng.startCol != tc.startCol || rng.endCol != tc.endCol {
				t.Fatalf("parseSingleRowRange(%q) = %+v, want row=%d start=%d end=%d",
					tc.a1, rng, tc.row, tc.startCol, tc.endCol)
			}
		})
	}
}

func TestParseSingleRowRangeRejectsBadInput(t *testing.T) {
	for _, a1 := range []string{"", "5", "A", "A5:B6", "C5:A5", "A0"} {
		if _, err := parseSingleRowRange(a1); err == nil {
			t.Fatalf("expected error for %q", a1)
		}
	}
}

func TestRowRangeHelpers(t *testing.T) {
	if got := RowRange("A", "C", 7); got != "A7:C7" {
		t.Fatalf("RowRange = %q", got)
	}
	if got := Cell("B", 3); got != "B3" {
		t.Fatalf("Cell = %q", got)
	}
}
