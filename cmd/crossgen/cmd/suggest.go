package cmd

import (
	"fmt"
	"strings"

	"github.com/crossgen/crossgen/pkg/dictionary"
	"github.com/crossgen/crossgen/pkg/matcher"
	"github.com/spf13/cobra"
)

var (
	suggestDict      string
	suggestPattern   string
	suggestMinRating int
	suggestMaxRating int
	suggestSort      string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "List dictionary words matching a fill pattern",
	Long: `List every dictionary word matching a pattern of letters and '_'
wildcards, the same lookup the autofill search performs for one entry.

Examples:
  # All 3-letter words matching A_T
  crossgen suggest --dict words.txt --pattern A_T

  # Only rated candidates, alphabetical order
  crossgen suggest --dict words.txt --pattern A_T --min-rating 1 --sort alpha`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVarP(&suggestDict, "dict", "w", "", "path to dictionary file (required)")
	suggestCmd.Flags().StringVarP(&suggestPattern, "pattern", "p", "", "fill pattern: letters and '_' wildcards (required)")
	suggestCmd.Flags().IntVar(&suggestMinRating, "min-rating", -1, "minimum rating a candidate must have (-1 means unset)")
	suggestCmd.Flags().IntVar(&suggestMaxRating, "max-rating", -1, "maximum rating a candidate must have (-1 means unset)")
	suggestCmd.Flags().StringVarP(&suggestSort, "sort", "s", "rating", "sort order: rating or alpha")

	suggestCmd.MarkFlagRequired("dict")
	suggestCmd.MarkFlagRequired("pattern")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	var order matcher.SortOrder
	switch strings.ToLower(suggestSort) {
	case "rating":
		order = matcher.RatingDesc
	case "alpha", "alphabetical":
		order = matcher.Alphabetical
	default:
		return fmt.Errorf("invalid sort order: %s (must be rating or alpha)", suggestSort)
	}

	dict, err := dictionary.Load(suggestDict)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	var filter matcher.RatingFilter
	if suggestMinRating >= 0 {
		filter.Min = &suggestMinRating
	}
	if suggestMaxRating >= 0 {
		filter.Max = &suggestMaxRating
	}

	m := matcher.New(dict)
	candidates := m.Candidates(strings.ToUpper(suggestPattern), filter, order)

	if len(candidates) == 0 {
		fmt.Println("No candidates found")
		return nil
	}

	for _, c := range candidates {
		if c.Rated {
			fmt.Printf("%s (rating %d)\n", c.Word, c.Rating)
		} else {
			fmt.Printf("%s\n", c.Word)
		}
	}
	return nil
}
