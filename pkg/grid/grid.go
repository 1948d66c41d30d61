package grid

import "fmt"

// InvalidGeometryError reports a grid whose dimensions fall outside
// [1, MaxDimension] or whose rows are mismatched in width.
type InvalidGeometryError struct {
	Rows, Cols int
	Reason     string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid grid geometry %dx%d: %s", e.Rows, e.Cols, e.Reason)
}

// OutOfBoundsError reports an access outside the grid's extent.
type OutOfBoundsError struct {
	Row, Col, Rows, Cols int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position (%d,%d) out of bounds for %dx%d grid", e.Row, e.Col, e.Rows, e.Cols)
}

func validateDimensions(rows, cols int) error {
	if rows < 1 || rows > MaxDimension || cols < 1 || cols > MaxDimension {
		return &InvalidGeometryError{Rows: rows, Cols: cols, Reason: fmt.Sprintf("dimensions must be in [1, %d]", MaxDimension)}
	}
	return nil
}

// New creates an all-Empty grid of the given dimensions.
func New(rows, cols int) (*Grid, error) {
	if err := validateDimensions(rows, cols); err != nil {
		return nil, err
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Grid{Rows: rows, Cols: cols, Cells: cells}, nil
}

// Resize preserves the intersection region at the top-left; newly exposed
// cells are Empty. Shrinking drops the cells outside the new extent.
func (g *Grid) Resize(newRows, newCols int) (*Grid, error) {
	if err := validateDimensions(newRows, newCols); err != nil {
		return nil, err
	}
	out, _ := New(newRows, newCols)
	minRows, minCols := newRows, newCols
	if g.Rows < minRows {
		minRows = g.Rows
	}
	if g.Cols < minCols {
		minCols = g.Cols
	}
	for r := 0; r < minRows; r++ {
		copy(out.Cells[r][:minCols], g.Cells[r][:minCols])
	}
	return out, nil
}

// SetCell writes value at (r, c) with no symmetric co-edit (NoSymmetry).
// SetCell returns a new Grid; the receiver is left untouched.
func (g *Grid) SetCell(r, c int, value Cell) (*Grid, error) {
	return g.setCell(r, c, value, NoSymmetry)
}

// SetCellSymmetric is SetCell with an explicit symmetry mode. If symmetry is
// not NoSymmetry and the write toggles the cell's Black/non-Black status,
// the mirrored position receives the same Black/non-Black status (letter
// writes never propagate). If the mirror position coincides with (r, c), no
// second write occurs.
func (g *Grid) SetCellSymmetric(r, c int, value Cell, symmetry SymmetryMode) (*Grid, error) {
	return g.setCell(r, c, value, symmetry)
}

func (g *Grid) setCell(r, c int, value Cell, symmetry SymmetryMode) (*Grid, error) {
	if !g.InBounds(r, c) {
		return nil, &OutOfBoundsError{Row: r, Col: c, Rows: g.Rows, Cols: g.Cols}
	}
	out := g.clone()
	wasBlack := out.Cells[r][c].IsBlack
	out.Cells[r][c] = value

	if symmetry != NoSymmetry && wasBlack != value.IsBlack {
		mr, mc, ok := out.mirror(r, c, symmetry)
		if ok && !(mr == r && mc == c) {
			if value.IsBlack {
				out.Cells[mr][mc] = BlackCell()
			} else if out.Cells[mr][mc].IsBlack {
				// Become non-Black too; the mirror's own letter state (if
				// any survives a prior edit) is irrelevant here since the
				// cell was Black and carried no letter.
				out.Cells[mr][mc] = EmptyCell()
			}
		}
	}
	return out, nil
}

// ClearLetters replaces every Letter cell with Empty, leaving Black cells
// intact.
func (g *Grid) ClearLetters() *Grid {
	out := g.clone()
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Cols; c++ {
			if out.Cells[r][c].IsLetter() {
				out.Cells[r][c] = EmptyCell()
			}
		}
	}
	return out
}

// clone deep-copies the grid.
func (g *Grid) clone() *Grid {
	cells := make([][]Cell, g.Rows)
	for r := range cells {
		cells[r] = make([]Cell, g.Cols)
		copy(cells[r], g.Cells[r])
	}
	return &Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid { return g.clone() }

// NewWithSymmetricGeneration builds an empty grid and seeds black squares at
// the given density under the given symmetry mode, retrying with different
// seeds until the grid is connected and has no too-short entries, or
// MaxGenerationAttempts is exhausted. This is the Coordinator's optional grid
// proposal helper (SPEC_FULL section 11), adapted from the teacher's
// pkg/grid/generator.go density presets and pkg/grid/seed.go placement.
func NewWithSymmetricGeneration(cfg GeneratorConfig) (*Grid, error) {
	return generate(cfg)
}
