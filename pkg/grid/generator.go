package grid

import (
	"errors"
	"math/rand"
)

// Difficulty represents the difficulty level of a crossword puzzle.
type Difficulty string

const (
	// Easy difficulty has fewer black squares (easier to fill).
	Easy Difficulty = "easy"
	// Medium difficulty has a moderate number of black squares.
	Medium Difficulty = "medium"
	// Hard difficulty has more black squares.
	Hard Difficulty = "hard"
	// Expert difficulty has the most black squares (harder to fill).
	Expert Difficulty = "expert"
)

// ErrGenerationFailed is returned when grid generation fails after max attempts.
var ErrGenerationFailed = errors.New("failed to generate valid grid after maximum attempts")

// MaxGenerationAttempts is the maximum number of attempts to generate a valid grid.
const MaxGenerationAttempts = 1000

// GeneratorConfig parameterizes the optional grid proposal helper (SPEC_FULL
// section 11): dimensions, a difficulty preset or explicit density, the
// symmetry mode to enforce, and a seed for reproducibility.
type GeneratorConfig struct {
	Rows, Cols   int
	Difficulty   Difficulty
	BlackDensity float64 // overrides Difficulty if nonzero
	Symmetry     SymmetryMode
	Seed         int64 // 0 means the caller doesn't care about reproducibility; a seed of 0 is used as-is
}

// getDifficultyDensity maps difficulty levels to black square density
// percentages. Conservative values: random placement creates short words
// more easily than constraint-based placement.
func getDifficultyDensity(difficulty Difficulty) float64 {
	switch difficulty {
	case Easy:
		return 0.06
	case Medium:
		return 0.08
	case Hard:
		return 0.10
	case Expert:
		return 0.12
	default:
		return 0.08
	}
}

// generate creates a valid empty crossword grid: black squares seeded under
// the requested symmetry, retried until the grid is connected and has no
// too-short entries, or MaxGenerationAttempts is exhausted.
func generate(config GeneratorConfig) (*Grid, error) {
	if err := validateDimensions(config.Rows, config.Cols); err != nil {
		return nil, err
	}

	blackDensity := config.BlackDensity
	if blackDensity == 0 {
		blackDensity = getDifficultyDensity(config.Difficulty)
	}

	for attempt := 0; attempt < MaxGenerationAttempts; attempt++ {
		g, _ := New(config.Rows, config.Cols)
		seedBlackSquares(g, config.Seed+int64(attempt), blackDensity)
		enforceSymmetry(g, config.Symmetry)

		if !isConnected(g) {
			continue
		}
		if hasShortWords(g) {
			continue
		}
		return g, nil
	}

	return nil, ErrGenerationFailed
}

// seedBlackSquares randomly places black squares in the top-left quadrant,
// leaving the mirrored placement to enforceSymmetry. The center cell (for an
// odd x odd grid) is never seeded black, so the connectivity check always
// has a starting cell.
func seedBlackSquares(g *Grid, seed int64, density float64) {
	r := rand.New(rand.NewSource(seed))

	total := g.Rows * g.Cols
	target := int(float64(total) * density)
	toPlace := target / 2

	quadRows := (g.Rows + 1) / 2
	quadCols := (g.Cols + 1) / 2
	centerRow, centerCol := g.Rows/2, g.Cols/2

	type pos struct{ row, col int }
	var positions []pos
	for row := 0; row < quadRows; row++ {
		for col := 0; col < quadCols; col++ {
			if row == centerRow && col == centerCol {
				continue
			}
			positions = append(positions, pos{row, col})
		}
	}
	r.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})

	placed := 0
	for i := 0; i < len(positions) && placed < toPlace; i++ {
		g.Cells[positions[i].row][positions[i].col] = BlackCell()
		placed++
	}
	g.Cells[centerRow][centerCol] = EmptyCell()
}
