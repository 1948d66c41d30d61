package output

import (
	"encoding/json"
	"fmt"

	"github.com/crossgen/crossgen/internal/models"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/wordindex"
)

// IPuzDimensions represents the puzzle dimensions
type IPuzDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IPuzClue represents a clue in ipuz format [number, "clue text"]
type IPuzClue []interface{}

// IPuzClues represents the clues section with Across and Down
type IPuzClues struct {
	Across []IPuzClue `json:"Across"`
	Down   []IPuzClue `json:"Down"`
}

// IPuzPuzzle represents the complete ipuz format structure
type IPuzPuzzle struct {
	Version    string          `json:"version"`
	Kind       []string        `json:"kind"`
	Title      string          `json:"title,omitempty"`
	Author     string          `json:"author,omitempty"`
	Copyright  string          `json:"copyright,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	Dimensions IPuzDimensions  `json:"dimensions"`
	Puzzle     [][]interface{} `json:"puzzle"`
	Solution   [][]interface{} `json:"solution"`
	Clues      IPuzClues       `json:"clues"`
}

// EncodeIPuz builds the ipuz structure straight from g and its word index -
// the same ground truth pkg/output's .puz codec numbers entries from -
// rather than from clue-number fields a caller happened to stamp onto a wire
// struct. clues is keyed by wordindex.Entry.ID, exactly like EncodePuz's
// clues argument.
func EncodeIPuz(g *grid.Grid, clues map[string]string, doc PuzDocument, difficulty string) (*IPuzPuzzle, error) {
	if g.Rows == 0 || g.Cols == 0 {
		return nil, fmt.Errorf("ipuz: invalid grid dimensions: %dx%d", g.Cols, g.Rows)
	}

	w := wordindex.Build(g)
	numberAt := make(map[[2]int]int, len(w.Entries))
	for _, e := range w.Entries {
		numberAt[[2]int{e.StartRow, e.StartCol}] = e.Number
	}

	puzzleGrid := make([][]interface{}, g.Rows)
	solutionGrid := make([][]interface{}, g.Rows)
	for r := 0; r < g.Rows; r++ {
		puzzleGrid[r] = make([]interface{}, g.Cols)
		solutionGrid[r] = make([]interface{}, g.Cols)
		for c := 0; c < g.Cols; c++ {
			cell := g.Cells[r][c]
			if cell.IsBlack {
				puzzleGrid[r][c] = "#"
				solutionGrid[r][c] = "#"
				continue
			}
			if n, ok := numberAt[[2]int{r, c}]; ok {
				puzzleGrid[r][c] = n
			} else {
				puzzleGrid[r][c] = 0
			}
			if cell.IsLetter() {
				solutionGrid[r][c] = string(cell.Letter)
			} else {
				solutionGrid[r][c] = ""
			}
		}
	}

	var acrossClues, downClues []IPuzClue
	for _, number := range sortedNumbers(w) {
		across, down := entriesForNumber(w, number)
		if across != nil {
			acrossClues = append(acrossClues, IPuzClue{number, clues[across.ID]})
		}
		if down != nil {
			downClues = append(downClues, IPuzClue{number, clues[down.ID]})
		}
	}

	copyright := doc.Copyright
	if copyright == "" && doc.Author != "" {
		copyright = fmt.Sprintf("© %s", doc.Author)
	}

	return &IPuzPuzzle{
		Version:    "http://ipuz.org/v2",
		Kind:       []string{"http://ipuz.org/crossword#1"},
		Title:      doc.Title,
		Author:     doc.Author,
		Copyright:  copyright,
		Difficulty: difficulty,
		Dimensions: IPuzDimensions{Width: g.Cols, Height: g.Rows},
		Puzzle:     puzzleGrid,
		Solution:   solutionGrid,
		Clues: IPuzClues{
			Across: acrossClues,
			Down:   downClues,
		},
	}, nil
}

// FormatIPuz lowers a models.Puzzle to a grid.Grid and clues map via
// gridAndCluesFromModels - the same conversion FormatPuz uses - then calls
// EncodeIPuz so the ipuz numbering is rederived from wordindex.Build rather
// than trusted from the puzzle's own GridCell.Number fields.
func FormatIPuz(puzzle *models.Puzzle) (*IPuzPuzzle, error) {
	if puzzle == nil {
		return nil, fmt.Errorf("ipuz: puzzle cannot be nil")
	}

	g, clues, err := gridAndCluesFromModels(puzzle)
	if err != nil {
		return nil, err
	}

	return EncodeIPuz(g, clues, PuzDocument{
		Title:     puzzle.Title,
		Author:    puzzle.Author,
		Copyright: puzzle.Copyright,
	}, string(puzzle.Difficulty))
}

// ToIPuz converts a models.Puzzle to ipuz JSON bytes
func ToIPuz(puzzle *models.Puzzle) ([]byte, error) {
	ipuzPuzzle, err := FormatIPuz(puzzle)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ipuzPuzzle, "", "  ")
}

// DecodeIPuz parses ipuz JSON bytes into a grid, its clue text (keyed by
// wordindex entry ID), document metadata, and the raw difficulty string -
// the ipuz counterpart to DecodePuz's three-part return shape.
func DecodeIPuz(data []byte) (*grid.Grid, map[string]string, PuzDocument, string, error) {
	var doc PuzDocument
	var ipuz IPuzPuzzle
	if err := json.Unmarshal(data, &ipuz); err != nil {
		return nil, nil, doc, "", fmt.Errorf("ipuz: failed to parse: %w", err)
	}
	if ipuz.Dimensions.Width <= 0 || ipuz.Dimensions.Height <= 0 {
		return nil, nil, doc, "", fmt.Errorf("ipuz: invalid dimensions: %dx%d", ipuz.Dimensions.Width, ipuz.Dimensions.Height)
	}

	g, err := grid.New(ipuz.Dimensions.Height, ipuz.Dimensions.Width)
	if err != nil {
		return nil, nil, doc, "", fmt.Errorf("ipuz: %w", err)
	}
	for r := 0; r < g.Rows; r++ {
		var row []interface{}
		if r < len(ipuz.Solution) {
			row = ipuz.Solution[r]
		}
		for c := 0; c < g.Cols; c++ {
			var cell interface{}
			if c < len(row) {
				cell = row[c]
			}
			switch v := cell.(type) {
			case string:
				if v == "" || v == "#" {
					g.Cells[r][c] = grid.BlackCell()
				} else {
					g.Cells[r][c] = grid.LetterCell([]rune(v)[0])
				}
			default:
				g.Cells[r][c] = grid.BlackCell()
			}
		}
	}

	w := wordindex.Build(g)
	clues := make(map[string]string)
	assign := func(list []IPuzClue, dir grid.Direction) {
		for _, c := range list {
			if len(c) < 2 {
				continue
			}
			num, ok := c[0].(float64)
			if !ok {
				continue
			}
			text, _ := c[1].(string)
			for _, e := range w.Entries {
				if e.Number == int(num) && e.Direction == dir {
					clues[e.ID] = text
					break
				}
			}
		}
	}
	assign(ipuz.Clues.Across, grid.ACROSS)
	assign(ipuz.Clues.Down, grid.DOWN)

	doc = PuzDocument{Title: ipuz.Title, Author: ipuz.Author, Copyright: ipuz.Copyright}
	return g, clues, doc, ipuz.Difficulty, nil
}

// FromIPuz parses ipuz JSON bytes and returns a models.Puzzle, sharing
// modelsPuzzleFromGrid with ParsePuz so both decoders number entries off the
// same wordindex.Build pass.
func FromIPuz(data []byte) (*models.Puzzle, error) {
	g, clues, doc, difficulty, err := DecodeIPuz(data)
	if err != nil {
		return nil, err
	}

	d := models.DifficultyMedium
	switch difficulty {
	case "easy", "Easy":
		d = models.DifficultyEasy
	case "hard", "Hard":
		d = models.DifficultyHard
	}

	return modelsPuzzleFromGrid(g, clues, doc, d), nil
}

// ValidateIPuz validates that a puzzle can be converted to ipuz format
func ValidateIPuz(puzzle *models.Puzzle) error {
	if puzzle == nil {
		return fmt.Errorf("puzzle cannot be nil")
	}

	if puzzle.Title == "" {
		return fmt.Errorf("puzzle title is required")
	}
	if puzzle.Author == "" {
		return fmt.Errorf("puzzle author is required")
	}
	if puzzle.GridWidth <= 0 || puzzle.GridHeight <= 0 {
		return fmt.Errorf("invalid grid dimensions: %dx%d", puzzle.GridWidth, puzzle.GridHeight)
	}
	if len(puzzle.Grid) != puzzle.GridHeight {
		return fmt.Errorf("grid height mismatch: expected %d, got %d", puzzle.GridHeight, len(puzzle.Grid))
	}
	for y := 0; y < puzzle.GridHeight; y++ {
		if len(puzzle.Grid[y]) != puzzle.GridWidth {
			return fmt.Errorf("grid width mismatch at row %d: expected %d, got %d", y, puzzle.GridWidth, len(puzzle.Grid[y]))
		}
	}
	if len(puzzle.CluesAcross) == 0 && len(puzzle.CluesDown) == 0 {
		return fmt.Errorf("puzzle must have at least one clue")
	}

	return nil
}
