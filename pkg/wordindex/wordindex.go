// Package wordindex derives the numbered across/down entries implied by a
// grid snapshot. It is a pure function over grid.Grid: nothing here mutates
// the grid, and nothing here is cached on it. Adapted from the teacher's
// pkg/grid/entries.go computeEntries, generalized from a square Size to
// independent Rows/Cols and moved off grid.Cell (which no longer carries a
// Number field) into its own read-only view.
package wordindex

import (
	"strconv"

	"github.com/crossgen/crossgen/pkg/grid"
)

// Entry is one across or down word slot: a numbered, directed run of
// consecutive non-Black cells.
type Entry struct {
	ID        string // e.g. "12A" or "7D", stable for a given grid snapshot
	Number    int
	Direction grid.Direction
	StartRow  int
	StartCol  int
	Length    int
}

// Pattern reads e's current letters off g: '_' for an Empty cell, the
// uppercase letter otherwise. This is the pattern the Matcher and Autofill
// consult to find candidate words for the entry.
func (e Entry) Pattern(g *grid.Grid) string {
	cells := e.Cells()
	pattern := make([]byte, len(cells))
	for i, rc := range cells {
		cell := g.Cells[rc[0]][rc[1]]
		if cell.IsLetter() {
			pattern[i] = byte(cell.Letter)
		} else {
			pattern[i] = '_'
		}
	}
	return string(pattern)
}

// Cells returns the (row, col) positions covered by the entry, in entry
// order (left-to-right for ACROSS, top-to-bottom for DOWN).
func (e Entry) Cells() [][2]int {
	cells := make([][2]int, e.Length)
	for i := 0; i < e.Length; i++ {
		if e.Direction == grid.DOWN {
			cells[i] = [2]int{e.StartRow + i, e.StartCol}
		} else {
			cells[i] = [2]int{e.StartRow, e.StartCol + i}
		}
	}
	return cells
}

// WordIndex is the set of entries derived from one grid snapshot, along with
// a lookup from cell position to the entries crossing it.
type WordIndex struct {
	Entries []Entry
	byID    map[string]Entry
	byCell  map[[2]int][]Entry
}

// ByID returns the entry with the given ID, if any.
func (w *WordIndex) ByID(id string) (Entry, bool) {
	e, ok := w.byID[id]
	return e, ok
}

// AtCell returns the entries (0, 1, or 2 of them) that cover (row, col).
func (w *WordIndex) AtCell(row, col int) []Entry {
	return w.byCell[[2]int{row, col}]
}

// Build derives the WordIndex for g: every maximal run of consecutive
// non-Black cells, in both directions, is an entry - including runs of
// length 1, which are reported but (per the Matcher/Autofill) carry no
// dictionary obligation. A cell starts an entry in a direction when its
// predecessor in that direction is the grid boundary or a Black cell.
// Numbering proceeds in row-major reading order over starting positions; a
// cell that starts both an across and a down entry shares one number
// between them, matching conventional crossword numbering.
func Build(g *grid.Grid) *WordIndex {
	w := &WordIndex{
		byID:   make(map[string]Entry),
		byCell: make(map[[2]int][]Entry),
	}

	numberAt := make(map[[2]int]int)
	number := 1
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col].IsBlack {
				continue
			}
			startsAcross := startsEntry(g, row, col, grid.ACROSS)
			startsDown := startsEntry(g, row, col, grid.DOWN)
			if startsAcross || startsDown {
				numberAt[[2]int{row, col}] = number
				number++
			}
		}
	}

	appendEntries(w, g, numberAt, grid.ACROSS)
	appendEntries(w, g, numberAt, grid.DOWN)

	return w
}

// startsEntry reports whether (row, col) begins a run in dir: its
// predecessor on the side opposite the direction of travel is the grid
// boundary or a Black cell. A lone playable cell between two Black
// neighbors still starts a (length-1) entry.
func startsEntry(g *grid.Grid, row, col int, dir grid.Direction) bool {
	var prevR, prevC int
	if dir == grid.ACROSS {
		prevR, prevC = row, col-1
	} else {
		prevR, prevC = row-1, col
	}
	return !g.InBounds(prevR, prevC) || g.Cells[prevR][prevC].IsBlack
}

func appendEntries(w *WordIndex, g *grid.Grid, numberAt map[[2]int]int, dir grid.Direction) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col].IsBlack {
				continue
			}
			if !startsEntry(g, row, col, dir) {
				continue
			}
			length := runLength(g, row, col, dir)
			number := numberAt[[2]int{row, col}]
			suffix := "A"
			if dir == grid.DOWN {
				suffix = "D"
			}
			entry := Entry{
				ID:        strconv.Itoa(number) + suffix,
				Number:    number,
				Direction: dir,
				StartRow:  row,
				StartCol:  col,
				Length:    length,
			}
			w.Entries = append(w.Entries, entry)
			w.byID[entry.ID] = entry
			for _, cell := range entry.Cells() {
				w.byCell[cell] = append(w.byCell[cell], entry)
			}
		}
	}
}

func runLength(g *grid.Grid, row, col int, dir grid.Direction) int {
	length := 0
	r, c := row, col
	for g.InBounds(r, c) && !g.Cells[r][c].IsBlack {
		length++
		if dir == grid.DOWN {
			r++
		} else {
			c++
		}
	}
	return length
}
