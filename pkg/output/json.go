package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/crossgen/crossgen/internal/models"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/wordindex"
)

// ClueJSON represents a clue in the JSON format
type ClueJSON struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Answer string `json:"answer"`
	Length int    `json:"length"`
}

// PuzzleJSON represents a puzzle in the JSON format for export
type PuzzleJSON struct {
	// Metadata
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Difficulty  string     `json:"difficulty"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	// Grid
	Grid [][]string `json:"grid"` // 2D array with letters or '.' for black cells

	// Clues
	Across []ClueJSON `json:"across"`
	Down   []ClueJSON `json:"down"`
}

// EncodeJSON builds the PuzzleJSON grid and clue lists straight from g and
// its word index, the same ground truth EncodePuz and EncodeIPuz number
// from, rather than from clue-number fields a caller stamped onto a wire
// struct. clues is keyed by wordindex.Entry.ID.
func EncodeJSON(g *grid.Grid, clues map[string]string, doc PuzDocument, difficulty string) *PuzzleJSON {
	w := wordindex.Build(g)

	cellGrid := make([][]string, g.Rows)
	for r := 0; r < g.Rows; r++ {
		cellGrid[r] = make([]string, g.Cols)
		for c := 0; c < g.Cols; c++ {
			cell := g.Cells[r][c]
			switch {
			case cell.IsBlack:
				cellGrid[r][c] = "."
			case cell.IsLetter():
				cellGrid[r][c] = string(cell.Letter)
			default:
				cellGrid[r][c] = " "
			}
		}
	}

	var across, down []ClueJSON
	for _, number := range sortedNumbers(w) {
		a, d := entriesForNumber(w, number)
		if a != nil {
			across = append(across, ClueJSON{Number: number, Text: clues[a.ID], Answer: entryAnswer(g, *a), Length: a.Length})
		}
		if d != nil {
			down = append(down, ClueJSON{Number: number, Text: clues[d.ID], Answer: entryAnswer(g, *d), Length: d.Length})
		}
	}

	return &PuzzleJSON{
		Title:      doc.Title,
		Author:     doc.Author,
		Difficulty: difficulty,
		Grid:       cellGrid,
		Across:     across,
		Down:       down,
	}
}

// FormatJSON lowers puzzle to a grid.Grid and clues map via
// gridAndCluesFromModels, the same conversion FormatPuz and FormatIPuz use,
// then calls EncodeJSON so the JSON export numbers entries off
// wordindex.Build rather than trusting the puzzle's own Clue.Number fields.
// The ID/CreatedAt/PublishedAt fields carry no analog in the core grid, so
// they are copied across at this layer instead.
func FormatJSON(puzzle *models.Puzzle) (*PuzzleJSON, error) {
	if puzzle == nil {
		return nil, fmt.Errorf("json: puzzle cannot be nil")
	}

	g, clues, err := gridAndCluesFromModels(puzzle)
	if err != nil {
		return nil, err
	}

	pj := EncodeJSON(g, clues, PuzDocument{Title: puzzle.Title, Author: puzzle.Author}, string(puzzle.Difficulty))
	pj.ID = puzzle.ID
	pj.CreatedAt = puzzle.CreatedAt
	pj.PublishedAt = puzzle.PublishedAt
	return pj, nil
}

// MarshalJSON serializes a PuzzleJSON to JSON bytes
func (p *PuzzleJSON) MarshalJSON() ([]byte, error) {
	type Alias PuzzleJSON
	return json.Marshal((*Alias)(p))
}

// ToJSON converts a models.Puzzle to JSON bytes
func ToJSON(puzzle *models.Puzzle) ([]byte, error) {
	puzzleJSON, err := FormatJSON(puzzle)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(puzzleJSON, "", "  ")
}

// DecodeJSON parses PuzzleJSON bytes into a grid, its clue text (keyed by
// wordindex entry ID), document metadata, and the raw difficulty string.
// "." (or an empty string, or a cell missing from a short row) marks a Black
// cell, a single space marks an unfilled Empty cell (the JSON export's own
// convention), and any other value is treated as a one-rune Letter cell.
func DecodeJSON(data []byte) (*grid.Grid, map[string]string, PuzDocument, string, error) {
	var doc PuzDocument
	var pj PuzzleJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, nil, doc, "", fmt.Errorf("json: failed to parse: %w", err)
	}
	g, clues, err := gridAndCluesFromJSON(pj)
	if err != nil {
		return nil, nil, doc, "", err
	}
	doc = PuzDocument{Title: pj.Title, Author: pj.Author}
	return g, clues, doc, pj.Difficulty, nil
}

// gridAndCluesFromJSON is DecodeJSON's and FromJSON's shared grid/clue
// derivation over an already-unmarshaled PuzzleJSON, so FromJSON need not
// parse the JSON bytes twice to also recover ID/CreatedAt/PublishedAt.
func gridAndCluesFromJSON(pj PuzzleJSON) (*grid.Grid, map[string]string, error) {
	height := len(pj.Grid)
	width := 0
	if height > 0 {
		width = len(pj.Grid[0])
	}
	g, err := grid.New(height, width)
	if err != nil {
		return nil, nil, fmt.Errorf("json: %w", err)
	}
	for r := 0; r < height; r++ {
		row := pj.Grid[r]
		for c := 0; c < width; c++ {
			var v string
			if c < len(row) {
				v = row[c]
			}
			switch v {
			case ".", "":
				g.Cells[r][c] = grid.BlackCell()
			case " ":
				g.Cells[r][c] = grid.EmptyCell()
			default:
				g.Cells[r][c] = grid.LetterCell([]rune(v)[0])
			}
		}
	}

	w := wordindex.Build(g)
	clues := make(map[string]string)
	assign := func(list []ClueJSON, dir grid.Direction) {
		for _, c := range list {
			for _, e := range w.Entries {
				if e.Number == c.Number && e.Direction == dir {
					clues[e.ID] = c.Text
					break
				}
			}
		}
	}
	assign(pj.Across, grid.ACROSS)
	assign(pj.Down, grid.DOWN)

	return g, clues, nil
}

// FromJSON parses PuzzleJSON bytes back into a models.Puzzle, sharing
// modelsPuzzleFromGrid with ParsePuz and FromIPuz so every decoder numbers
// entries off the same wordindex.Build pass. The ID/CreatedAt/PublishedAt
// fields, which have no analog in the core grid, are copied across
// afterward.
func FromJSON(data []byte) (*models.Puzzle, error) {
	var pj PuzzleJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("json: failed to parse: %w", err)
	}
	g, clues, err := gridAndCluesFromJSON(pj)
	if err != nil {
		return nil, err
	}

	puzzle := modelsPuzzleFromGrid(g, clues, PuzDocument{Title: pj.Title, Author: pj.Author}, models.Difficulty(pj.Difficulty))
	puzzle.ID = pj.ID
	puzzle.CreatedAt = pj.CreatedAt
	puzzle.PublishedAt = pj.PublishedAt
	return puzzle, nil
}
