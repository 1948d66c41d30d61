package puzzle

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/crossgen/crossgen/pkg/autofill"
	"github.com/crossgen/crossgen/pkg/dictionary"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/wordindex"
	"github.com/google/uuid"
)

var (
	// ErrGridGenerationFailed is returned when grid proposal fails.
	ErrGridGenerationFailed = errors.New("grid generation failed")
	// ErrFillFailed is returned when autofill can't complete the grid.
	ErrFillFailed = errors.New("grid fill failed")
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the parameters for one GeneratePuzzle call.
type Config struct {
	// Grid proposal
	Rows, Cols   int
	Difficulty   grid.Difficulty
	BlackDensity float64
	Symmetry     grid.SymmetryMode
	Seed         int64

	// Fill
	MaxVariations int
	Deadline      time.Time

	// Metadata
	Title  string
	Author string
	Theme  string
}

// Generator orchestrates grid proposal and autofill into a complete Puzzle.
// Clue authorship is out of scope (see DESIGN.md); GeneratePuzzle seeds
// Puzzle.Clues with an empty string per entry so downstream tooling has a
// key for every entry to fill in.
type Generator struct {
	dict *dictionary.Dictionary
}

// NewGenerator builds a Generator that draws fill candidates from dict.
func NewGenerator(dict *dictionary.Dictionary) *Generator {
	return &Generator{dict: dict}
}

// GeneratePuzzle proposes a grid matching config, fills it with words from
// the Generator's dictionary, and assembles the result into a Puzzle. ctx's
// deadline (if any) and cancellation both bound the fill search.
func (g *Generator) GeneratePuzzle(ctx context.Context, config Config) (*Puzzle, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	config = setDefaults(config)

	proposed, err := grid.NewWithSymmetricGeneration(grid.GeneratorConfig{
		Rows:         config.Rows,
		Cols:         config.Cols,
		Difficulty:   config.Difficulty,
		BlackDensity: config.BlackDensity,
		Symmetry:     config.Symmetry,
		Seed:         config.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGridGenerationFailed, err)
	}

	opts := autofill.Options{
		MaxVariations: config.MaxVariations,
		Deadline:      config.Deadline,
	}
	if ctx != nil {
		if deadline, ok := ctx.Deadline(); ok && (config.Deadline.IsZero() || deadline.Before(config.Deadline)) {
			opts.Deadline = deadline
		}
		if ctx.Done() != nil {
			var cancelled atomic.Bool
			opts.Cancel = &cancelled
			go func() {
				<-ctx.Done()
				cancelled.Store(true)
			}()
		}
	}

	result := autofill.Run(g.dict, proposed, opts)
	if len(result.Grids) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrFillFailed, result.Err)
	}
	filled := result.Grids[0]

	clues := make(map[string]string)
	for _, e := range wordindex.Build(filled).Entries {
		clues[e.ID] = ""
	}

	metadata := Metadata{
		ID:         uuid.New().String(),
		Title:      config.Title,
		Author:     config.Author,
		Difficulty: config.Difficulty,
		Theme:      config.Theme,
		CreatedAt:  time.Now(),
	}

	return NewPuzzle(filled, clues, metadata), nil
}

// validateConfig checks the grid proposal parameters before any work starts.
func validateConfig(config Config) error {
	if config.Rows < 0 || config.Rows > grid.MaxDimension {
		return fmt.Errorf("rows must be between 1 and %d", grid.MaxDimension)
	}
	if config.Cols < 0 || config.Cols > grid.MaxDimension {
		return fmt.Errorf("cols must be between 1 and %d", grid.MaxDimension)
	}

	if config.Difficulty == "" {
		return nil
	}
	switch config.Difficulty {
	case grid.Easy, grid.Medium, grid.Hard, grid.Expert:
		return nil
	default:
		return errors.New("invalid difficulty level")
	}
}

// setDefaults fills in zero-valued optional Config fields.
func setDefaults(config Config) Config {
	if config.Rows == 0 {
		config.Rows = 15
	}
	if config.Cols == 0 {
		config.Cols = 15
	}
	if config.MaxVariations == 0 {
		config.MaxVariations = 1
	}
	if config.Title == "" {
		config.Title = fmt.Sprintf("Crossword Puzzle - %s", time.Now().Format("2006-01-02"))
	}
	if config.Author == "" {
		config.Author = "crossgen"
	}
	return config
}
