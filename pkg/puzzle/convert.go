package puzzle

import (
	"github.com/crossgen/crossgen/internal/models"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/wordindex"
)

// ToModelsPuzzle converts a pkg/puzzle.Puzzle to the UI/export-facing
// models.Puzzle shape that pkg/output's formatters operate on.
func ToModelsPuzzle(p *Puzzle) *models.Puzzle {
	g := p.Grid
	wi := wordindex.Build(g)

	gridCells := make([][]models.GridCell, g.Rows)
	for y := 0; y < g.Rows; y++ {
		gridCells[y] = make([]models.GridCell, g.Cols)
		for x := 0; x < g.Cols; x++ {
			cell := g.Cells[y][x]

			var letter *string
			if !cell.IsBlack {
				letterStr := string(cell.Letter)
				letter = &letterStr
			}

			gridCells[y][x] = models.GridCell{Letter: letter}
		}
	}
	for _, e := range wi.Entries {
		number := e.Number
		gridCells[e.StartRow][e.StartCol].Number = &number
	}

	var acrossClues, downClues []models.Clue
	for _, e := range wi.Entries {
		clue := models.Clue{
			Number:    e.Number,
			Text:      p.Clues[e.ID],
			Answer:    extractAnswer(g, e),
			PositionX: e.StartCol,
			PositionY: e.StartRow,
			Length:    e.Length,
		}
		if e.Direction == grid.ACROSS {
			clue.Direction = "across"
			acrossClues = append(acrossClues, clue)
		} else {
			clue.Direction = "down"
			downClues = append(downClues, clue)
		}
	}

	var difficulty models.Difficulty
	switch p.Metadata.Difficulty {
	case grid.Easy:
		difficulty = models.DifficultyEasy
	case grid.Medium:
		difficulty = models.DifficultyMedium
	case grid.Hard, grid.Expert:
		difficulty = models.DifficultyHard
	default:
		difficulty = models.DifficultyMedium
	}

	var theme *string
	if p.Metadata.Theme != "" {
		theme = &p.Metadata.Theme
	}

	return &models.Puzzle{
		ID:          p.Metadata.ID,
		Title:       p.Metadata.Title,
		Author:      p.Metadata.Author,
		Difficulty:  difficulty,
		GridWidth:   g.Cols,
		GridHeight:  g.Rows,
		Grid:        gridCells,
		CluesAcross: acrossClues,
		CluesDown:   downClues,
		Theme:       theme,
		CreatedAt:   p.Metadata.CreatedAt,
		Status:      "draft",
	}
}

// extractAnswer reads the solved letters for e off of g.
func extractAnswer(g *grid.Grid, e wordindex.Entry) string {
	answer := make([]rune, 0, e.Length)
	for _, rc := range e.Cells() {
		answer = append(answer, g.Cells[rc[0]][rc[1]].Letter)
	}
	return string(answer)
}

// FromModelsPuzzle rebuilds the core Grid and an entry-ID-keyed clue map
// from the UI/export-facing models.Puzzle shape, the reverse of
// ToModelsPuzzle. It is how CLI subcommands that operate on the core
// (autofill, suggest) accept a puzzle file as input.
func FromModelsPuzzle(mp *models.Puzzle) (*grid.Grid, map[string]string, error) {
	g, err := grid.New(mp.GridHeight, mp.GridWidth)
	if err != nil {
		return nil, nil, err
	}
	for y := 0; y < mp.GridHeight; y++ {
		for x := 0; x < mp.GridWidth; x++ {
			cell := mp.Grid[y][x]
			switch {
			case cell.Letter == nil:
				g.Cells[y][x] = grid.BlackCell()
			case *cell.Letter == "":
				g.Cells[y][x] = grid.EmptyCell()
			default:
				g.Cells[y][x] = grid.LetterCell([]rune(*cell.Letter)[0])
			}
		}
	}

	clues := make(map[string]string)
	wi := wordindex.Build(g)
	for _, e := range wi.Entries {
		var source []models.Clue
		if e.Direction == grid.ACROSS {
			source = mp.CluesAcross
		} else {
			source = mp.CluesDown
		}
		for _, c := range source {
			if c.Number == e.Number {
				clues[e.ID] = c.Text
				break
			}
		}
	}

	return g, clues, nil
}
