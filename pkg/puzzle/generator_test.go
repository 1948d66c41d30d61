package puzzle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/crossgen/crossgen/pkg/dictionary"
	"github.com/crossgen/crossgen/pkg/grid"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		shouldError bool
	}{
		{"valid config", Config{Rows: 15, Cols: 15, Difficulty: grid.Easy}, false},
		{"zero rows means default, not an error", Config{Rows: 0, Cols: 15}, false},
		{"negative rows", Config{Rows: -1, Cols: 15}, true},
		{"rows too large", Config{Rows: grid.MaxDimension + 1, Cols: 15}, true},
		{"invalid difficulty", Config{Rows: 15, Cols: 15, Difficulty: grid.Difficulty("impossible")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			if tt.shouldError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	result := setDefaults(Config{})

	if result.Rows != 15 || result.Cols != 15 {
		t.Errorf("expected default 15x15, got %dx%d", result.Rows, result.Cols)
	}
	if result.MaxVariations != 1 {
		t.Errorf("expected default MaxVariations 1, got %d", result.MaxVariations)
	}
	if !strings.HasPrefix(result.Title, "Crossword Puzzle - ") {
		t.Errorf("expected default title prefix, got %q", result.Title)
	}
	if result.Author != "crossgen" {
		t.Errorf("expected default author 'crossgen', got %q", result.Author)
	}

	custom := setDefaults(Config{Rows: 10, Cols: 12, Title: "Custom", Author: "Me"})
	if custom.Rows != 10 || custom.Cols != 12 {
		t.Errorf("custom dimensions not preserved: got %dx%d", custom.Rows, custom.Cols)
	}
	if custom.Title != "Custom" || custom.Author != "Me" {
		t.Errorf("custom title/author not preserved: got %q / %q", custom.Title, custom.Author)
	}
}

func TestGeneratePuzzleInvalidConfig(t *testing.T) {
	gen := NewGenerator(dictionary.New())

	_, err := gen.GeneratePuzzle(context.Background(), Config{Rows: -1, Cols: 15})
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGeneratePuzzleFillFailure(t *testing.T) {
	// An empty dictionary can never satisfy any entry.
	gen := NewGenerator(dictionary.New())

	_, err := gen.GeneratePuzzle(context.Background(), Config{
		Rows: 1, Cols: 5, BlackDensity: 0.001,
	})
	if err == nil {
		t.Fatal("expected fill failure with an empty dictionary")
	}
	if !errors.Is(err, ErrFillFailed) {
		t.Errorf("expected ErrFillFailed, got %v", err)
	}
}

func TestGeneratePuzzle_SingleRowSucceeds(t *testing.T) {
	// Rows: 1 has no down entries longer than 1 cell, so there are no
	// crossing constraints at all - the fill reduces to a single variable.
	dict := dictionary.New()
	dict.Add("APPLE", 100, true)

	gen := NewGenerator(dict)
	puz, err := gen.GeneratePuzzle(context.Background(), Config{
		Rows: 1, Cols: 5, BlackDensity: 0.001, Title: "Test", Author: "Tester",
	})
	if err != nil {
		t.Fatalf("GeneratePuzzle failed: %v", err)
	}

	if puz.Grid.Rows != 1 || puz.Grid.Cols != 5 {
		t.Fatalf("unexpected grid dimensions: %dx%d", puz.Grid.Rows, puz.Grid.Cols)
	}
	word := make([]rune, 5)
	for c := 0; c < 5; c++ {
		word[c] = puz.Grid.Cells[0][c].Letter
	}
	if string(word) != "APPLE" {
		t.Errorf("expected grid filled with APPLE, got %q", string(word))
	}

	if _, ok := puz.Clues["1A"]; !ok {
		t.Error("expected a seeded (empty) clue for entry 1A")
	}
	if puz.Metadata.Title != "Test" || puz.Metadata.Author != "Tester" {
		t.Errorf("metadata not set from config: %+v", puz.Metadata)
	}
	if puz.Metadata.ID == "" {
		t.Error("expected a generated metadata ID")
	}
}
