package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/crossgen/crossgen/pkg/autofill"
	"github.com/crossgen/crossgen/pkg/dictionary"
	"github.com/crossgen/crossgen/pkg/puzzle"
	"github.com/spf13/cobra"
)

var (
	autofillDict          string
	autofillInput         string
	autofillOutput        string
	autofillFormat        string
	autofillMaxVariations int
	autofillNodeBudget    int
	autofillTimeout       time.Duration
)

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill every incomplete entry of a puzzle's grid",
	Long: `Run the backtracking constraint solver over an existing puzzle file's
grid, enumerating up to --max-variations distinct completions and writing
each one out as a separate puzzle file.

Examples:
  # Fill a partially-completed grid, keep up to 5 variations
  crossgen autofill --dict words.txt --input partial.json --max-variations 5 --output ./filled`,
	RunE: runAutofill,
}

func init() {
	rootCmd.AddCommand(autofillCmd)

	autofillCmd.Flags().StringVarP(&autofillDict, "dict", "w", "", "path to dictionary file (required)")
	autofillCmd.Flags().StringVarP(&autofillInput, "input", "i", "", "input puzzle file: json, ipuz, or puz (required)")
	autofillCmd.Flags().StringVarP(&autofillOutput, "output", "o", ".", "output directory")
	autofillCmd.Flags().StringVarP(&autofillFormat, "format", "f", "json", "output format (json, puz, ipuz, all)")
	autofillCmd.Flags().IntVar(&autofillMaxVariations, "max-variations", autofill.MaxVariations, "maximum number of distinct solutions to enumerate")
	autofillCmd.Flags().IntVar(&autofillNodeBudget, "node-budget", 0, "maximum search nodes to explore (0 = unbounded)")
	autofillCmd.Flags().DurationVar(&autofillTimeout, "timeout", 30*time.Second, "search deadline")

	autofillCmd.MarkFlagRequired("dict")
	autofillCmd.MarkFlagRequired("input")
}

func runAutofill(cmd *cobra.Command, args []string) error {
	formats, err := parseFormats(autofillFormat)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	dict, err := dictionary.Load(autofillDict)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	mp, err := loadPuzzleFile(autofillInput)
	if err != nil {
		return fmt.Errorf("failed to load input puzzle: %w", err)
	}

	g, clues, err := puzzle.FromModelsPuzzle(mp)
	if err != nil {
		return fmt.Errorf("failed to rebuild grid from input puzzle: %w", err)
	}

	if err := os.MkdirAll(autofillOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	result := autofill.Run(dict, g, autofill.Options{
		MaxVariations: autofillMaxVariations,
		NodeBudget:    autofillNodeBudget,
		Deadline:      time.Now().Add(autofillTimeout),
	})

	fmt.Printf("Autofill finished: status=%s, variations=%d\n", result.Status, len(result.Grids))
	if result.Err != nil {
		fmt.Printf("(%v)\n", result.Err)
	}

	for i, filled := range result.Grids {
		puz := puzzle.NewPuzzle(filled, clues, puzzle.Metadata{
			ID:         mp.ID,
			Title:      mp.Title,
			Author:     mp.Author,
			Theme:      derefString(mp.Theme),
			CreatedAt:  time.Now(),
		})
		modelsPuzzle := puzzle.ToModelsPuzzle(puz)

		if err := writeOutputFiles(modelsPuzzle, autofillOutput, i+1, formats); err != nil {
			return fmt.Errorf("failed to write variation %d: %w", i+1, err)
		}
	}

	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
