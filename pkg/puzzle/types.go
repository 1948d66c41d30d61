package puzzle

import (
	"time"

	"github.com/crossgen/crossgen/pkg/grid"
)

// Metadata holds the descriptive fields that ride alongside a filled grid
// but aren't part of its fill state: title, author, and provenance.
type Metadata struct {
	ID         string
	Title      string
	Author     string
	Difficulty grid.Difficulty
	Theme      string
	CreatedAt  time.Time
}

// Puzzle pairs a filled Grid with its clue text and metadata. Clues are
// keyed by entry ID ("1A", "7D", ...; see pkg/wordindex.Entry.ID) rather
// than by the teacher's "<number>-<direction>" string, so the same key
// space is shared with pkg/output's .puz codec.
type Puzzle struct {
	Grid     *grid.Grid
	Clues    map[string]string
	Metadata Metadata
}

// NewPuzzle assembles a Puzzle from its already-built components.
func NewPuzzle(g *grid.Grid, clues map[string]string, metadata Metadata) *Puzzle {
	return &Puzzle{
		Grid:     g,
		Clues:    clues,
		Metadata: metadata,
	}
}
