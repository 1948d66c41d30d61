package autofill

import (
	"strings"
	"testing"

	"github.com/crossgen/crossgen/pkg/dictionary"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/wordindex"
)

func mustGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	return g
}

func TestRun_SmallGridFindsValidFill(t *testing.T) {
	g := mustGrid(t, 3, 3)
	g, err := g.SetCell(1, 1, grid.BlackCell())
	if err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}

	dict := dictionary.New()
	for _, w := range []string{"CAT", "COW", "TOE", "WOE"} {
		dict.Add(w, 10, true)
	}

	result := Run(dict, g, Options{MaxVariations: 10})
	if result.Status != StatusOK {
		t.Fatalf("expected StatusOK, got %v (err %v)", result.Status, result.Err)
	}
	if len(result.Grids) == 0 {
		t.Fatal("expected at least one solution grid")
	}

	for _, solved := range result.Grids {
		wi := wordindex.Build(solved)
		for _, e := range wi.Entries {
			pattern := e.Pattern(solved)
			if strings.Contains(pattern, "_") {
				t.Errorf("entry %s left unfilled in a reported solution", e.ID)
			}
		}
	}
}

func TestRun_Distinctness(t *testing.T) {
	g := mustGrid(t, 3, 3)
	g, _ = g.SetCell(1, 1, grid.BlackCell())

	dict := dictionary.New()
	for _, w := range []string{"CAT", "COW", "TOE", "WOE"} {
		dict.Add(w, 10, true)
	}

	result := Run(dict, g, Options{MaxVariations: 100})
	seen := make(map[string]bool)
	for _, solved := range result.Grids {
		wi := wordindex.Build(solved)
		key := ""
		for _, e := range wi.Entries {
			key += e.ID + "=" + e.Pattern(solved) + "|"
		}
		if seen[key] {
			t.Errorf("duplicate solution assignment found: %s", key)
		}
		seen[key] = true
	}
}

func TestRun_NoFillReturnsEmptyNotError(t *testing.T) {
	g := mustGrid(t, 3, 1)

	dict := dictionary.New()
	dict.Add("ZZ", 1, true) // wrong length, no 3-letter word available

	result := Run(dict, g, Options{})
	if result.Status != StatusNoFill {
		t.Fatalf("expected StatusNoFill, got %v", result.Status)
	}
	if len(result.Grids) != 0 {
		t.Errorf("expected no solutions, got %d", len(result.Grids))
	}
}

func TestRun_PreservesExistingLetters(t *testing.T) {
	g := mustGrid(t, 1, 2)
	g, _ = g.SetCell(0, 0, grid.LetterCell('A'))

	dict := dictionary.New()
	dict.Add("AB", 10, true)
	dict.Add("XB", 10, true)

	result := Run(dict, g, Options{})
	if len(result.Grids) == 0 {
		t.Fatal("expected a solution")
	}
	for _, solved := range result.Grids {
		if solved.Cells[0][0].Letter != 'A' {
			t.Errorf("expected fixed letter A preserved, got %c", solved.Cells[0][0].Letter)
		}
	}
}

func TestRun_MaxVariationsCapsResults(t *testing.T) {
	g := mustGrid(t, 1, 2)
	dict := dictionary.New()
	for _, w := range []string{"AB", "AC", "AD", "AE", "AF"} {
		dict.Add(w, 10, true)
	}

	result := Run(dict, g, Options{MaxVariations: 2})
	if len(result.Grids) != 2 {
		t.Fatalf("expected exactly 2 solutions (MaxVariations cap), got %d", len(result.Grids))
	}
	if result.Status != StatusTruncated {
		t.Errorf("expected StatusTruncated, got %v", result.Status)
	}
}

func TestRun_NoCandidatesIsNoFillWithError(t *testing.T) {
	g := mustGrid(t, 1, 3)
	dict := dictionary.New() // empty: the single 3-letter entry has zero candidates

	result := Run(dict, g, Options{})
	if result.Status != StatusNoFill {
		t.Fatalf("expected StatusNoFill, got %v", result.Status)
	}
	if _, ok := result.Err.(*NoCandidatesError); !ok {
		t.Errorf("expected *NoCandidatesError, got %v", result.Err)
	}
}
