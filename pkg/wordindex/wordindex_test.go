package wordindex

import (
	"testing"

	"github.com/crossgen/crossgen/pkg/grid"
)

func emptyGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	return g
}

func TestBuild_EmptyGrid(t *testing.T) {
	g := emptyGrid(t, 3, 3)

	w := Build(g)

	// A 3x3 empty grid has 3 across and 3 down entries, one per row/column.
	acrossCount, downCount := 0, 0
	for _, e := range w.Entries {
		if e.Direction == grid.ACROSS {
			acrossCount++
		} else {
			downCount++
		}
	}
	if acrossCount != 3 {
		t.Errorf("expected 3 across entries, got %d", acrossCount)
	}
	if downCount != 3 {
		t.Errorf("expected 3 down entries, got %d", downCount)
	}
}

func TestBuild_SharedNumberAtCross(t *testing.T) {
	g := emptyGrid(t, 3, 3)

	w := Build(g)

	// (0,0) opens both an across and a down entry, so they share number 1.
	across, ok := w.ByID("1A")
	if !ok {
		t.Fatal("expected entry 1A")
	}
	down, ok := w.ByID("1D")
	if !ok {
		t.Fatal("expected entry 1D")
	}
	if across.Number != 1 || down.Number != 1 {
		t.Errorf("expected both entries at (0,0) to carry number 1, got %d and %d", across.Number, down.Number)
	}
	if across.StartRow != 0 || across.StartCol != 0 || down.StartRow != 0 || down.StartCol != 0 {
		t.Errorf("expected both entries to start at (0,0), got across %+v, down %+v", across, down)
	}
}

func TestBuild_ReadingOrderNumbering(t *testing.T) {
	g := emptyGrid(t, 3, 3)
	g.Cells[1][1] = grid.BlackCell()

	w := Build(g)

	// . . .
	// . # .
	// . . .
	// Starting positions in row-major order: (0,0), (0,1), (0,2), (1,0),
	// (1,2), (2,0), (2,1). Each gets the next number in that order.
	want := map[[2]int]int{
		{0, 0}: 1,
		{0, 1}: 2,
		{0, 2}: 3,
		{1, 0}: 4,
		{1, 2}: 5,
		{2, 0}: 6,
		{2, 1}: 7,
	}
	got := make(map[[2]int]int)
	for _, e := range w.Entries {
		got[[2]int{e.StartRow, e.StartCol}] = e.Number
	}
	for pos, number := range want {
		if got[pos] != number {
			t.Errorf("position %v: expected number %d, got %d", pos, number, got[pos])
		}
	}
}

func TestBuild_LengthOneEntryReported(t *testing.T) {
	g := emptyGrid(t, 3, 3)
	g.Cells[1][1] = grid.BlackCell()

	w := Build(g)

	// (1,0) is boxed in by the black cell at (1,1) and the grid edge, so its
	// across run is a single cell. It is still reported, per Build's doc.
	e, ok := w.ByID("4A")
	if !ok {
		t.Fatal("expected entry 4A")
	}
	if e.Length != 1 {
		t.Errorf("expected length-1 entry at (1,0), got length %d", e.Length)
	}
	if e.Direction != grid.ACROSS {
		t.Errorf("expected (1,0)'s length-1 entry to be ACROSS, got %v", e.Direction)
	}
}

func TestBuild_NoEntryThroughBlackCell(t *testing.T) {
	g := emptyGrid(t, 3, 1)
	g.Cells[1][0] = grid.BlackCell()

	w := Build(g)

	for _, e := range w.Entries {
		if e.Direction == grid.DOWN && e.Length > 1 {
			t.Errorf("expected no down run longer than 1 cell across the black cell, got %+v", e)
		}
	}
}

func TestBuild_Checkerboard(t *testing.T) {
	g := emptyGrid(t, 4, 4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if (r+c)%2 == 1 {
				g.Cells[r][c] = grid.BlackCell()
			}
		}
	}

	w := Build(g)

	// Every playable cell is isolated on all four sides, so every entry
	// (across and down) has length 1.
	for _, e := range w.Entries {
		if e.Length != 1 {
			t.Errorf("expected every entry in a checkerboard grid to have length 1, got %+v", e)
		}
	}
}

func TestBuild_AtCellReturnsCrossingEntries(t *testing.T) {
	g := emptyGrid(t, 3, 3)

	w := Build(g)

	entries := w.AtCell(0, 0)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries crossing (0,0), got %d: %+v", len(entries), entries)
	}

	entries = w.AtCell(1, 1)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries crossing (1,1), got %d: %+v", len(entries), entries)
	}
}

func TestBuild_PatternReadsLettersAndWildcards(t *testing.T) {
	g := emptyGrid(t, 1, 3)
	g.Cells[0][0] = grid.LetterCell('C')
	g.Cells[0][2] = grid.LetterCell('T')

	w := Build(g)

	e, ok := w.ByID("1A")
	if !ok {
		t.Fatal("expected entry 1A")
	}
	if got := e.Pattern(g); got != "C_T" {
		t.Errorf("expected pattern C_T, got %q", got)
	}
}

func TestBuild_EntryCoverage(t *testing.T) {
	g := emptyGrid(t, 5, 5)
	black := [][2]int{{0, 3}, {1, 3}, {3, 0}, {3, 1}, {3, 2}, {3, 3}, {3, 4}, {4, 3}}
	for _, pos := range black {
		g.Cells[pos[0]][pos[1]] = grid.BlackCell()
	}

	w := Build(g)

	// Every entry's cells must all be non-Black and the right length.
	for _, e := range w.Entries {
		cells := e.Cells()
		if len(cells) != e.Length {
			t.Errorf("entry %s: len(Cells()) = %d, want %d", e.ID, len(cells), e.Length)
		}
		for _, rc := range cells {
			if g.Cells[rc[0]][rc[1]].IsBlack {
				t.Errorf("entry %s covers Black cell %v", e.ID, rc)
			}
		}
	}
}
