package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crossgen/crossgen/internal/models"
	"github.com/crossgen/crossgen/pkg/dictionary"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	statsDict   string
	statsGrid   string
	statsFormat string
)

// dictionaryStats reports Dictionary composition: entries per length and
// rated vs. unrated counts.
type dictionaryStats struct {
	TotalWords int         `yaml:"total_words"`
	Rated      int         `yaml:"rated"`
	Unrated    int         `yaml:"unrated"`
	ByLength   map[int]int `yaml:"by_length"`
}

// wordIndexStats reports WordIndex composition for one puzzle file: entry
// count, a length histogram, and how many entries fall under
// grid.MinWordLength.
type wordIndexStats struct {
	TotalEntries int         `yaml:"total_entries"`
	ShortEntries int         `yaml:"short_entries"`
	ByLength     map[int]int `yaml:"by_length"`
}

type statsReport struct {
	Dictionary *dictionaryStats `yaml:"dictionary,omitempty"`
	WordIndex  *wordIndexStats  `yaml:"word_index,omitempty"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report dictionary and puzzle statistics",
	Long: `Report composition statistics for a dictionary and, optionally, a
generated puzzle file.

Examples:
  # Dictionary composition only
  crossgen stats --dict words.txt

  # Dictionary plus a puzzle's word-index composition, as YAML
  crossgen stats --dict words.txt --grid puzzle.json --format yaml`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsDict, "dict", "w", "", "path to dictionary file (default: config wordlist_path)")
	statsCmd.Flags().StringVarP(&statsGrid, "grid", "g", "", "optional puzzle file (json, ipuz, or puz) to report word-index composition for")
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "text", "report format: text or yaml")
}

func runStats(cmd *cobra.Command, args []string) error {
	dictPath := statsDict
	if dictPath == "" {
		dictPath = config.WordlistPath
	}
	if dictPath == "" {
		return fmt.Errorf("--dict flag is required (or set wordlist_path in the config file)")
	}

	if verbosity > 0 {
		fmt.Printf("Reading dictionary: %s\n", dictPath)
	}

	dict, err := dictionary.Load(dictPath)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	report := statsReport{Dictionary: summarizeDictionary(dict)}

	if statsGrid != "" {
		puz, err := loadPuzzleFile(statsGrid)
		if err != nil {
			return fmt.Errorf("failed to load puzzle file: %w", err)
		}
		report.WordIndex = summarizeWordIndex(puz)
	}

	switch strings.ToLower(statsFormat) {
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to render yaml report: %w", err)
		}
		fmt.Print(string(out))
	case "text":
		printTextReport(report)
	default:
		return fmt.Errorf("invalid format: %s (must be text or yaml)", statsFormat)
	}

	return nil
}

func summarizeDictionary(dict *dictionary.Dictionary) *dictionaryStats {
	s := &dictionaryStats{ByLength: make(map[int]int)}
	for _, length := range dict.Lengths() {
		entries := dict.OfLength(length)
		s.ByLength[length] = len(entries)
		for _, e := range entries {
			if e.Rated {
				s.Rated++
			} else {
				s.Unrated++
			}
		}
	}
	s.TotalWords = dict.Size()
	return s
}

func summarizeWordIndex(puz *models.Puzzle) *wordIndexStats {
	s := &wordIndexStats{ByLength: make(map[int]int)}
	for _, clues := range [][]models.Clue{puz.CluesAcross, puz.CluesDown} {
		for _, c := range clues {
			s.TotalEntries++
			s.ByLength[c.Length]++
			if c.Length < grid.MinWordLength {
				s.ShortEntries++
			}
		}
	}
	return s
}

func loadPuzzleFile(path string) (*models.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return output.FromJSON(data)
	case ".ipuz":
		return output.FromIPuz(data)
	case ".puz":
		return output.ParsePuz(data)
	default:
		return nil, fmt.Errorf("unrecognized puzzle file extension: %s", filepath.Ext(path))
	}
}

func printTextReport(report statsReport) {
	if report.Dictionary != nil {
		d := report.Dictionary
		fmt.Println("Dictionary Statistics")
		fmt.Println("=====================")
		fmt.Printf("Total words: %d (rated: %d, unrated: %d)\n\n", d.TotalWords, d.Rated, d.Unrated)
		fmt.Println("By length:")
		for _, length := range sortedKeys(d.ByLength) {
			fmt.Printf("  %3d: %d\n", length, d.ByLength[length])
		}
		fmt.Println()
	}

	if report.WordIndex != nil {
		w := report.WordIndex
		fmt.Println("Word Index Statistics")
		fmt.Println("======================")
		fmt.Printf("Total entries: %d (short: %d)\n\n", w.TotalEntries, w.ShortEntries)
		fmt.Println("By length:")
		for _, length := range sortedKeys(w.ByLength) {
			fmt.Printf("  %3d: %d\n", length, w.ByLength[length])
		}
	}
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
