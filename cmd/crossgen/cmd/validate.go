package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crossgen/crossgen/internal/models"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/puzzle"
	"github.com/crossgen/crossgen/pkg/wordindex"
	"github.com/spf13/cobra"
)

var (
	validateInput string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate crossword puzzle files",
	Long: `Validate one or more crossword puzzle files for correctness.

Checks include:
  - Grid connectivity (all white cells reachable)
  - Minimum word length requirements
  - 180-degree rotational symmetry
  - Clue completeness (every entry has non-empty text and a matching answer length)

Examples:
  # Validate a single puzzle file
  crossgen validate --input puzzle.json

  # Validate all json files in a directory
  crossgen validate --input ./puzzles`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "input file or directory to validate (required)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Validating: %s\n", validateInput)
	}

	info, err := os.Stat(validateInput)
	if err != nil {
		return fmt.Errorf("failed to access input path: %w", err)
	}

	var filesToValidate []string
	if info.IsDir() {
		files, err := filepath.Glob(filepath.Join(validateInput, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .json files found in directory: %s", validateInput)
		}
		filesToValidate = files
	} else {
		filesToValidate = []string{validateInput}
	}

	totalFiles := len(filesToValidate)
	invalidFiles := 0
	validFiles := 0

	for _, filePath := range filesToValidate {
		if verbosity > 0 {
			fmt.Printf("\nValidating: %s\n", filePath)
		}

		errs, err := validatePuzzleFile(filePath)
		if err != nil {
			fmt.Printf("ERROR %s: %v\n", filepath.Base(filePath), err)
			invalidFiles++
			continue
		}
		if len(errs) > 0 {
			fmt.Printf("INVALID %s\n", filepath.Base(filePath))
			for _, e := range errs {
				fmt.Printf("  - %s\n", e)
			}
			invalidFiles++
			continue
		}
		if verbosity > 0 {
			fmt.Printf("VALID %s\n", filepath.Base(filePath))
		}
		validFiles++
	}

	fmt.Printf("\nValidation Summary:\n")
	fmt.Printf("  Total files: %d\n", totalFiles)
	fmt.Printf("  Valid:       %d\n", validFiles)
	fmt.Printf("  Invalid:     %d\n", invalidFiles)

	if invalidFiles > 0 {
		os.Exit(1)
	}
	return nil
}

// validatePuzzleFile loads filePath and runs every check against it,
// returning the list of violations found (empty means valid).
func validatePuzzleFile(filePath string) ([]string, error) {
	mp, err := loadPuzzleFile(filePath)
	if err != nil {
		return nil, err
	}

	g, clues, err := puzzle.FromModelsPuzzle(mp)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild grid: %w", err)
	}

	var errs []string
	if !grid.IsConnected(g) {
		errs = append(errs, "grid has disconnected white cells")
	}
	if grid.HasShortWords(g) {
		errs = append(errs, fmt.Sprintf("grid contains entries shorter than the minimum length (%d)", grid.MinWordLength))
	}
	if !grid.IsSymmetric(g, grid.Rotational180) {
		errs = append(errs, "grid lacks 180-degree rotational symmetry")
	}
	errs = append(errs, validateClueCompleteness(g, clues, mp)...)

	return errs, nil
}

// validateClueCompleteness checks that every wordindex entry has non-empty
// clue text and that its declared answer length matches models.Puzzle's
// clue.Length, and that no clue references an entry the grid doesn't have.
func validateClueCompleteness(g *grid.Grid, clues map[string]string, mp *models.Puzzle) []string {
	var errs []string
	wi := wordindex.Build(g)

	for _, e := range wi.Entries {
		if e.Length < grid.MinWordLength {
			continue
		}
		text, ok := clues[e.ID]
		if !ok {
			errs = append(errs, fmt.Sprintf("entry %s has no corresponding clue", e.ID))
			continue
		}
		if strings.TrimSpace(text) == "" {
			errs = append(errs, fmt.Sprintf("clue %s has empty text", e.ID))
		}
	}

	for _, c := range append(append([]models.Clue{}, mp.CluesAcross...), mp.CluesDown...) {
		if c.Length < grid.MinWordLength {
			continue
		}
		wantDir := grid.ACROSS
		if c.Direction == "down" {
			wantDir = grid.DOWN
		}
		found := false
		for _, entry := range wi.AtCell(c.PositionY, c.PositionX) {
			if entry.Direction != wantDir {
				continue
			}
			found = true
			if entry.Length != c.Length {
				errs = append(errs, fmt.Sprintf("clue %d: answer length mismatch (grid expects %d, clue says %d)", c.Number, entry.Length, c.Length))
			}
			break
		}
		if !found {
			errs = append(errs, fmt.Sprintf("clue %d %s: no matching entry in the grid", c.Number, c.Direction))
		}
	}

	return errs
}

