package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crossgen/crossgen/internal/models"
	"github.com/crossgen/crossgen/pkg/dictionary"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/output"
	"github.com/crossgen/crossgen/pkg/puzzle"
	"github.com/spf13/cobra"
)

var (
	genCount      int
	genRows       int
	genCols       int
	genDifficulty string
	genOutput     string
	genFormat     string
	genDict       string
	genSeed       int64
	genTimeout    time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate crossword puzzles",
	Long: `Generate one or more crossword puzzles: propose a grid, fill it with
words from a dictionary via constraint satisfaction, and export it.

Examples:
  # Generate 10 easy 15x15 puzzles in JSON format
  crossgen generate --count 10 --difficulty easy --format json --output ./puzzles --dict words.txt

  # Generate a single 21x21 hard puzzle in all formats
  crossgen generate --rows 21 --cols 21 --difficulty hard --format all --output ./puzzle --dict words.txt`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "number of puzzles to generate")
	generateCmd.Flags().IntVar(&genRows, "rows", 0, "grid row count (default 15, or config grid_rows)")
	generateCmd.Flags().IntVar(&genCols, "cols", 0, "grid column count (default 15, or config grid_cols)")
	generateCmd.Flags().StringVarP(&genDifficulty, "difficulty", "d", "medium", "puzzle difficulty (easy, medium, hard, expert)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", ".", "output directory")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "json", "output format (json, puz, ipuz, all)")
	generateCmd.Flags().StringVarP(&genDict, "dict", "w", "", "path to dictionary file (WORD or WORD;RATING per line)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "grid proposal seed (0 = use as-is, not randomized)")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 30*time.Second, "per-puzzle fill deadline")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	difficulty, err := parseDifficulty(genDifficulty)
	if err != nil {
		return fmt.Errorf("invalid difficulty: %w", err)
	}

	formats, err := parseFormats(genFormat)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	dictPath := genDict
	if dictPath == "" {
		dictPath = config.WordlistPath
	}
	if dictPath == "" {
		return fmt.Errorf("--dict flag is required (or set wordlist_path in the config file)")
	}

	if verbosity > 0 {
		fmt.Printf("Loading dictionary from: %s\n", dictPath)
	}

	dict, err := dictionary.Load(dictPath)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	if verbosity > 0 {
		fmt.Printf("Loaded %d words\n", dict.Size())
	}

	rows, cols := genRows, genCols
	if rows == 0 {
		rows = config.GridRows
	}
	if cols == 0 {
		cols = config.GridCols
	}

	gen := puzzle.NewGenerator(dict)

	if err := os.MkdirAll(genOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Generating %d puzzle(s) with difficulty: %s\n", genCount, genDifficulty)

	for i := 1; i <= genCount; i++ {
		startTime := time.Now()
		fmt.Printf("[%d/%d] Generating puzzle... ", i, genCount)

		ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
		puzzleConfig := puzzle.Config{
			Rows:       rows,
			Cols:       cols,
			Difficulty: difficulty,
			Seed:       genSeed,
			Title:      fmt.Sprintf("Crossword Puzzle %d - %s", i, time.Now().Format("2006-01-02")),
			Author:     "crossgen",
		}

		puz, err := gen.GeneratePuzzle(ctx, puzzleConfig)
		cancel()
		if err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to generate puzzle %d: %w", i, err)
		}

		modelsPuzzle := puzzle.ToModelsPuzzle(puz)

		if err := writeOutputFiles(modelsPuzzle, genOutput, i, formats); err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to write output files for puzzle %d: %w", i, err)
		}

		elapsed := time.Since(startTime)
		fmt.Printf("OK (%.1fs)\n", elapsed.Seconds())
	}

	fmt.Printf("\nSuccessfully generated %d puzzle(s) in %s\n", genCount, genOutput)
	return nil
}

// parseDifficulty converts string difficulty to grid.Difficulty
func parseDifficulty(diff string) (grid.Difficulty, error) {
	switch strings.ToLower(diff) {
	case "easy":
		return grid.Easy, nil
	case "medium":
		return grid.Medium, nil
	case "hard":
		return grid.Hard, nil
	case "expert":
		return grid.Expert, nil
	default:
		return grid.Medium, fmt.Errorf("invalid difficulty: %s (must be easy, medium, hard, or expert)", diff)
	}
}

// parseFormats converts format string to list of formats
func parseFormats(format string) ([]string, error) {
	format = strings.ToLower(format)
	if format == "all" {
		return []string{"json", "puz", "ipuz"}, nil
	}

	validFormats := map[string]bool{
		"json": true,
		"puz":  true,
		"ipuz": true,
	}

	if !validFormats[format] {
		return nil, fmt.Errorf("invalid format: %s (must be json, puz, ipuz, or all)", format)
	}

	return []string{format}, nil
}

// writeOutputFiles writes puzzle to disk in the specified formats
func writeOutputFiles(puz *models.Puzzle, outputDir string, puzzleNum int, formats []string) error {
	baseName := fmt.Sprintf("puzzle_%03d", puzzleNum)

	for _, format := range formats {
		var filePath string
		var data []byte
		var err error

		switch format {
		case "json":
			filePath = filepath.Join(outputDir, baseName+".json")
			data, err = output.ToJSON(puz)
		case "puz":
			filePath = filepath.Join(outputDir, baseName+".puz")
			data, err = output.FormatPuz(puz)
		case "ipuz":
			filePath = filepath.Join(outputDir, baseName+".ipuz")
			data, err = output.ToIPuz(puz)
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return fmt.Errorf("failed to format puzzle as %s: %w", format, err)
		}

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s file: %w", format, err)
		}
	}

	return nil
}
