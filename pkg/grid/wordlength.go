package grid

import "errors"

// ErrShortWords is returned when a grid contains entries shorter than
// MinWordLength.
var ErrShortWords = errors.New("grid contains entries shorter than the minimum allowed length")

// MinWordLength is the minimum allowed entry length in a crossword grid.
const MinWordLength = 3

// HasShortWords reports whether the grid contains any run of two or more
// non-Black cells shorter than MinWordLength. Single-cell runs are not
// counted.
func HasShortWords(g *Grid) bool {
	return hasShortWords(g)
}

// hasShortWords reports whether the grid contains any run of 2 or more
// consecutive non-Black cells (in either direction) shorter than
// MinWordLength. A lone non-Black cell bounded by Black cells on both sides
// is not a word slot and is ignored.
func hasShortWords(g *Grid) bool {
	for row := 0; row < g.Rows; row++ {
		run := 0
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col].IsBlack {
				if run > 1 && run < MinWordLength {
					return true
				}
				run = 0
			} else {
				run++
			}
		}
		if run > 1 && run < MinWordLength {
			return true
		}
	}

	for col := 0; col < g.Cols; col++ {
		run := 0
		for row := 0; row < g.Rows; row++ {
			if g.Cells[row][col].IsBlack {
				if run > 1 && run < MinWordLength {
					return true
				}
				run = 0
			} else {
				run++
			}
		}
		if run > 1 && run < MinWordLength {
			return true
		}
	}

	return false
}
