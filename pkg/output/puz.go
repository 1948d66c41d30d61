// Package output holds the puzzle-at-rest encoders: the binary .puz codec
// (this file), ipuz, and plain JSON. Adapted from the teacher's
// pkg/output/puz.go, rewritten against the exact byte layout and four-layer
// checksum scheme of spec section 4.4 - the teacher's version wrote
// zero-valued checksum placeholders and never read a file back, so the
// checksum plumbing here is new, grounded on the field-tested parser in
// bbeck's puzzles-with-chat (api/crossword/puz.go) rather than on the
// teacher, which got the layout wrong.
package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/crossgen/crossgen/internal/models"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/wordindex"
	"golang.org/x/text/encoding/charmap"
)

// String length caps enforced on encode (spec section 4.4).
const (
	MaxTitleLen     = 50
	MaxAuthorLen    = 50
	MaxCopyrightLen = 200
	MaxNotesLen     = 2000
)

var (
	// ErrInvalidMagic is returned by DecodePuz when bytes 0x02..0x0E are not
	// the ACROSS&DOWN magic string.
	ErrInvalidMagic = errors.New("puz: invalid magic number")
	// ErrInvalidGeometry is returned by DecodePuz when width or height is
	// zero.
	ErrInvalidGeometry = errors.New("puz: invalid geometry")
	// ErrTruncated is returned by DecodePuz when a required field runs past
	// the end of the buffer.
	ErrTruncated = errors.New("puz: truncated")
	// ErrEncodeCapExceeded is returned by EncodePuz when the grid is too
	// large for the single-byte width/height fields.
	ErrEncodeCapExceeded = errors.New("puz: grid dimensions exceed a byte")
)

var puzMagic = []byte("ACROSS&DOWN\x00")

// PuzDocument is the metadata half of a .puz file - everything besides the
// grid and clue text.
type PuzDocument struct {
	Title     string
	Author    string
	Copyright string
	Notes     string
}

// EncodePuz serializes g, its clue text, and doc into a bit-exact .puz byte
// stream. clues is keyed by wordindex.Entry.ID ("1A", "7D", ...); a missing
// key becomes an empty clue string, matching the spec's "missing clues
// become empty strings" rule. Strings over their cap are truncated.
func EncodePuz(g *grid.Grid, clues map[string]string, doc PuzDocument) ([]byte, error) {
	if g.Rows == 0 || g.Cols == 0 || g.Rows > 255 || g.Cols > 255 {
		return nil, ErrEncodeCapExceeded
	}

	title := encodeWin1252(truncate(doc.Title, MaxTitleLen))
	author := encodeWin1252(truncate(doc.Author, MaxAuthorLen))
	copyright := encodeWin1252(truncate(doc.Copyright, MaxCopyrightLen))
	notes := encodeWin1252(truncate(doc.Notes, MaxNotesLen))

	solution := gridBytes(g, true)
	state := gridBytes(g, false)
	clueList := orderedClues(g, clues)
	clueBytes := make([][]byte, len(clueList))
	for i, c := range clueList {
		clueBytes[i] = encodeWin1252(c)
	}

	width := byte(g.Cols)
	height := byte(g.Rows)
	numClues := uint16(len(clueList))

	cib := cksumCIB(width, height, numClues)
	cSol := cksumRegion(0, solution)
	cGrid := cksumRegion(0, state)
	cPart := cksumStrings(title, author, copyright, clueBytes, notes)

	overall := cib
	overall = cksumRegion(overall, solution)
	overall = cksumRegion(overall, state)
	overall = foldStrings(overall, title, author, copyright, clueBytes, notes)

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, overall)
	buf.Write(puzMagic)
	binary.Write(buf, binary.LittleEndian, cib)

	maskedLow := [4]byte{
		'I' ^ lo(cib),
		'C' ^ lo(cSol),
		'H' ^ lo(cGrid),
		'E' ^ lo(cPart),
	}
	maskedHigh := [4]byte{
		'A' ^ hi(cib),
		'T' ^ hi(cSol),
		'E' ^ hi(cGrid),
		'D' ^ hi(cPart),
	}
	buf.Write(maskedLow[:])
	buf.Write(maskedHigh[:])

	buf.WriteString("1.3\x00")
	binary.Write(buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(0)) // scrambled-solution checksum
	buf.Write(make([]byte, 12))                       // reserved

	buf.WriteByte(width)
	buf.WriteByte(height)
	binary.Write(buf, binary.LittleEndian, numClues)
	binary.Write(buf, binary.LittleEndian, uint16(0)) // unknown bitmask
	binary.Write(buf, binary.LittleEndian, uint16(0)) // scrambled tag

	buf.Write(solution)
	buf.Write(state)

	writeCString(buf, title)
	writeCString(buf, author)
	writeCString(buf, copyright)
	for _, c := range clueBytes {
		writeCString(buf, c)
	}
	writeCString(buf, notes)

	return buf.Bytes(), nil
}

// DecodePuz parses a .puz byte stream into a grid, its clue text (keyed by
// wordindex entry ID), and the document metadata. It does not verify the
// stored checksums - legacy files with stale sums still decode - but every
// file EncodePuz writes will carry correct ones.
func DecodePuz(data []byte) (*grid.Grid, map[string]string, PuzDocument, error) {
	var doc PuzDocument
	if len(data) < 0x34 {
		return nil, nil, doc, ErrTruncated
	}
	if !bytes.Equal(data[0x02:0x0E], puzMagic) {
		return nil, nil, doc, ErrInvalidMagic
	}

	width := int(data[0x2C])
	height := int(data[0x2D])
	if width == 0 || height == 0 {
		return nil, nil, doc, ErrInvalidGeometry
	}
	numClues := int(binary.LittleEndian.Uint16(data[0x2E:0x30]))

	cellCount := width * height
	pos := 0x34
	if len(data) < pos+2*cellCount {
		return nil, nil, doc, ErrTruncated
	}
	solution := data[pos : pos+cellCount]
	pos += cellCount
	pos += cellCount // player-state grid; not needed to reconstruct the solution grid

	g, err := grid.New(height, width)
	if err != nil {
		return nil, nil, doc, err
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			b := solution[r*width+c]
			switch {
			case b == '.':
				g.Cells[r][c] = grid.BlackCell()
			case b == '-':
				g.Cells[r][c] = grid.EmptyCell()
			default:
				g.Cells[r][c] = grid.LetterCell(rune(b))
			}
		}
	}

	strs := make([]string, 0, 3+numClues+1)
	for i := 0; i < 3+numClues+1; i++ {
		s, next, ok := readCString(data, pos)
		if !ok {
			return nil, nil, doc, ErrTruncated
		}
		strs = append(strs, s)
		pos = next
	}

	doc.Title = decodeWin1252(strs[0])
	doc.Author = decodeWin1252(strs[1])
	doc.Copyright = decodeWin1252(strs[2])
	clueTexts := strs[3 : 3+numClues]
	for i, c := range clueTexts {
		clueTexts[i] = decodeWin1252(c)
	}
	doc.Notes = decodeWin1252(strs[3+numClues])

	w := wordindex.Build(g)
	clues := make(map[string]string)
	idx := 0
	numbers := sortedNumbers(w)
	for _, number := range numbers {
		across, down := entriesForNumber(w, number)
		if across != nil && idx < len(clueTexts) {
			clues[across.ID] = clueTexts[idx]
			idx++
		}
		if down != nil && idx < len(clueTexts) {
			clues[down.ID] = clueTexts[idx]
			idx++
		}
	}

	return g, clues, doc, nil
}

func gridBytes(g *grid.Grid, solution bool) []byte {
	out := make([]byte, g.Rows*g.Cols)
	i := 0
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cell := g.Cells[r][c]
			switch {
			case cell.IsBlack:
				out[i] = '.'
			case solution && cell.IsLetter():
				out[i] = byte(cell.Letter)
			case solution:
				out[i] = '-' // unfilled playable cell in the "solution" is still a dash; callers pass a fully filled grid for a real solution export
			default:
				out[i] = '-'
			}
			i++
		}
	}
	return out
}

// orderedClues collects entries from g's word index sorted by number, across
// before down for a shared number, per spec's "clue ordering on encode".
// Missing clue text becomes an empty string; every entry with an assigned
// number produces one slot in the returned slice.
func orderedClues(g *grid.Grid, clues map[string]string) []string {
	w := wordindex.Build(g)
	numbers := sortedNumbers(w)

	var out []string
	for _, number := range numbers {
		across, down := entriesForNumber(w, number)
		if across != nil {
			out = append(out, clues[across.ID])
		}
		if down != nil {
			out = append(out, clues[down.ID])
		}
	}
	return out
}

func sortedNumbers(w *wordindex.WordIndex) []int {
	seen := make(map[int]bool)
	var numbers []int
	for _, e := range w.Entries {
		if !seen[e.Number] {
			seen[e.Number] = true
			numbers = append(numbers, e.Number)
		}
	}
	sort.Ints(numbers)
	return numbers
}

func entriesForNumber(w *wordindex.WordIndex, number int) (across, down *wordindex.Entry) {
	for i, e := range w.Entries {
		if e.Number != number {
			continue
		}
		if e.Direction == grid.ACROSS {
			across = &w.Entries[i]
		} else {
			down = &w.Entries[i]
		}
	}
	return across, down
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// encodeWin1252 converts a Go UTF-8 string to the Windows-1252 byte sequence
// the .puz format expects on disk (spec section 9: the format "is
// effectively ISO-8859-1 / Windows-1252"). A rune with no Windows-1252
// representation falls back to the string's raw UTF-8 bytes rather than
// failing the whole encode.
func encodeWin1252(s string) []byte {
	if s == "" {
		return nil
	}
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return encoded
}

// decodeWin1252 is encodeWin1252's inverse: Windows-1252 bytes read off disk
// back to a Go UTF-8 string.
func decodeWin1252(raw string) string {
	if raw == "" {
		return ""
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes([]byte(raw))
	if err != nil {
		return raw
	}
	return string(decoded)
}

func writeCString(buf *bytes.Buffer, b []byte) {
	buf.Write(b)
	buf.WriteByte(0)
}

func readCString(data []byte, start int) (string, int, bool) {
	for i := start; i < len(data); i++ {
		if data[i] == 0 {
			return string(data[start:i]), i + 1, true
		}
	}
	return "", 0, false
}

func lo(v uint16) byte { return byte(v & 0x00FF) }
func hi(v uint16) byte { return byte(v >> 8) }

// cksumRegion is the checksum primitive from spec section 4.4: a running
// 16-bit state, rotated right one bit (wrapping through the top bit) and
// then added to by each byte in turn.
func cksumRegion(c uint16, data []byte) uint16 {
	for _, b := range data {
		if c&0x0001 != 0 {
			c = (c >> 1) + 0x8000
		} else {
			c = c >> 1
		}
		c += uint16(b)
	}
	return c
}

// gridAndCluesFromModels lowers a models.Puzzle's cell and clue data into a
// grid.Grid and a clues map keyed by wordindex.Entry.ID. This is the shared
// ground-truth conversion both FormatPuz and ipuz.go's ToIPuz build on, so
// every encoder derives its numbering from wordindex.Build instead of
// trusting the positions a caller happened to stamp onto the wire struct.
func gridAndCluesFromModels(puzzle *models.Puzzle) (*grid.Grid, map[string]string, error) {
	if len(puzzle.Grid) != puzzle.GridHeight {
		return nil, nil, fmt.Errorf("puz: grid height mismatch: expected %d, got %d", puzzle.GridHeight, len(puzzle.Grid))
	}
	g, err := grid.New(puzzle.GridHeight, puzzle.GridWidth)
	if err != nil {
		return nil, nil, fmt.Errorf("puz: %w", err)
	}
	for r := 0; r < puzzle.GridHeight; r++ {
		if len(puzzle.Grid[r]) != puzzle.GridWidth {
			return nil, nil, fmt.Errorf("puz: grid width mismatch at row %d: expected %d, got %d", r, puzzle.GridWidth, len(puzzle.Grid[r]))
		}
		for c := 0; c < puzzle.GridWidth; c++ {
			cell := puzzle.Grid[r][c]
			switch {
			case cell.Letter == nil:
				g.Cells[r][c] = grid.BlackCell()
			case *cell.Letter == "":
				g.Cells[r][c] = grid.EmptyCell()
			default:
				g.Cells[r][c] = grid.LetterCell([]rune(*cell.Letter)[0])
			}
		}
	}

	w := wordindex.Build(g)
	clues := make(map[string]string)
	for _, clue := range puzzle.CluesAcross {
		if id := entryIDAt(w, clue.PositionY, clue.PositionX, grid.ACROSS); id != "" {
			clues[id] = clue.Text
		}
	}
	for _, clue := range puzzle.CluesDown {
		if id := entryIDAt(w, clue.PositionY, clue.PositionX, grid.DOWN); id != "" {
			clues[id] = clue.Text
		}
	}
	return g, clues, nil
}

// FormatPuz converts a models.Puzzle to .puz binary format by lowering it to
// a grid.Grid and a clues map keyed by wordindex.Entry.ID, then delegating
// to EncodePuz.
func FormatPuz(puzzle *models.Puzzle) ([]byte, error) {
	g, clues, err := gridAndCluesFromModels(puzzle)
	if err != nil {
		return nil, err
	}

	copyright := puzzle.Copyright
	if copyright == "" && puzzle.Author != "" {
		copyright = fmt.Sprintf("(c) %s", puzzle.Author)
	}

	return EncodePuz(g, clues, PuzDocument{
		Title:     puzzle.Title,
		Author:    puzzle.Author,
		Copyright: copyright,
		Notes:     puzzle.Notes,
	})
}

// modelsPuzzleFromGrid builds a models.Puzzle wire struct from a decoded
// grid, its clue text, and document metadata - the inverse of
// gridAndCluesFromModels, shared by ParsePuz and ipuz.go's FromIPuz so both
// decoders number entries from the same wordindex.Build pass instead of each
// re-deriving grid positions its own way.
func modelsPuzzleFromGrid(g *grid.Grid, clues map[string]string, doc PuzDocument, difficulty models.Difficulty) *models.Puzzle {
	w := wordindex.Build(g)
	cellGrid := make([][]models.GridCell, g.Rows)
	for r := 0; r < g.Rows; r++ {
		cellGrid[r] = make([]models.GridCell, g.Cols)
		for c := 0; c < g.Cols; c++ {
			cell := g.Cells[r][c]
			if cell.IsBlack {
				cellGrid[r][c] = models.GridCell{Letter: nil}
				continue
			}
			letter := ""
			if cell.IsLetter() {
				letter = string(cell.Letter)
			}
			cellGrid[r][c] = models.GridCell{Letter: &letter}
		}
	}

	var cluesAcross, cluesDown []models.Clue
	for _, e := range w.Entries {
		number := e.Number
		c := models.Clue{
			Number:    number,
			Text:      clues[e.ID],
			Answer:    entryAnswer(g, e),
			PositionX: e.StartCol,
			PositionY: e.StartRow,
			Length:    e.Length,
		}
		cellGrid[e.StartRow][e.StartCol].Number = &number
		if e.Direction == grid.ACROSS {
			c.Direction = "across"
			cluesAcross = append(cluesAcross, c)
		} else {
			c.Direction = "down"
			cluesDown = append(cluesDown, c)
		}
	}

	return &models.Puzzle{
		Title:       doc.Title,
		Author:      doc.Author,
		Copyright:   doc.Copyright,
		Notes:       doc.Notes,
		Difficulty:  difficulty,
		GridWidth:   g.Cols,
		GridHeight:  g.Rows,
		Grid:        cellGrid,
		CluesAcross: cluesAcross,
		CluesDown:   cluesDown,
		Status:      "draft",
	}
}

// ParsePuz parses .puz binary bytes into a models.Puzzle.
func ParsePuz(data []byte) (*models.Puzzle, error) {
	g, clues, doc, err := DecodePuz(data)
	if err != nil {
		return nil, err
	}
	return modelsPuzzleFromGrid(g, clues, doc, ""), nil
}

// entryAnswer reads the letters g holds along e's cells, in entry order -
// shared by modelsPuzzleFromGrid and json.go's EncodeJSON so both read an
// entry's answer the same way.
func entryAnswer(g *grid.Grid, e wordindex.Entry) string {
	answer := make([]byte, 0, e.Length)
	for _, rc := range e.Cells() {
		answer = append(answer, byte(g.Cells[rc[0]][rc[1]].Letter))
	}
	return string(answer)
}

// entryIDAt returns the ID of the entry in direction dir starting at
// (row, col), or "" if none starts there.
func entryIDAt(w *wordindex.WordIndex, row, col int, dir grid.Direction) string {
	for _, e := range w.AtCell(row, col) {
		if e.Direction == dir && e.StartRow == row && e.StartCol == col {
			return e.ID
		}
	}
	return ""
}

// cksumCIB checksums the 8 header bytes starting at 0x2C: width, height,
// nclues, the (always zero) bitmask, and the (always zero) scrambled tag.
func cksumCIB(width, height byte, numClues uint16) uint16 {
	cib := []byte{width, height}
	cib = binary.LittleEndian.AppendUint16(cib, numClues)
	cib = binary.LittleEndian.AppendUint16(cib, 0) // unknown bitmask
	cib = binary.LittleEndian.AppendUint16(cib, 0) // scrambled tag
	return cksumRegion(0, cib)
}

// cksumStrings computes c_part over the encoded title/author/copyright/
// clues/notes bytes, starting from a zero state; foldStrings folds the
// identical sequence into an existing running checksum (used for the
// overall file checksum). Both follow the same rule: title/author/copyright
// and notes are fed with their terminating null, clues are fed WITHOUT one
// (the format's quirk), and an empty string contributes nothing.
func cksumStrings(title, author, copyright []byte, clues [][]byte, notes []byte) uint16 {
	return foldStrings(0, title, author, copyright, clues, notes)
}

func foldStrings(c uint16, title, author, copyright []byte, clues [][]byte, notes []byte) uint16 {
	for _, b := range [][]byte{title, author, copyright} {
		if len(b) == 0 {
			continue
		}
		c = cksumRegion(c, b)
		c = cksumRegion(c, []byte{0})
	}
	for _, clue := range clues {
		if len(clue) == 0 {
			continue
		}
		c = cksumRegion(c, clue)
	}
	if len(notes) != 0 {
		c = cksumRegion(c, notes)
		c = cksumRegion(c, []byte{0})
	}
	return c
}
