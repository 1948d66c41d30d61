package grid

import "testing"

func TestGetDifficultyDensity(t *testing.T) {
	tests := []struct {
		name       string
		difficulty Difficulty
		want       float64
	}{
		{"Easy difficulty", Easy, 0.06},
		{"Medium difficulty", Medium, 0.08},
		{"Hard difficulty", Hard, 0.10},
		{"Expert difficulty", Expert, 0.12},
		{"Unknown difficulty defaults to medium", Difficulty("unknown"), 0.08},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getDifficultyDensity(tt.difficulty)
			if got != tt.want {
				t.Errorf("getDifficultyDensity(%v) = %v, want %v", tt.difficulty, got, tt.want)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		config     GeneratorConfig
		validateFn func(*testing.T, *Grid)
	}{
		{
			name:   "Generate 15x15 grid with Easy difficulty",
			config: GeneratorConfig{Rows: 15, Cols: 15, Difficulty: Easy, Seed: 12345},
			validateFn: func(t *testing.T, g *Grid) {
				if g == nil {
					t.Fatal("expected non-nil grid")
				}
				if g.Rows != 15 || g.Cols != 15 {
					t.Errorf("expected 15x15, got %dx%d", g.Rows, g.Cols)
				}
				if !isConnected(g) {
					t.Error("expected grid to be connected")
				}
				if hasShortWords(g) {
					t.Error("expected grid to have no short words")
				}
			},
		},
		{
			name:   "Generate 15x15 grid with Medium difficulty",
			config: GeneratorConfig{Rows: 15, Cols: 15, Difficulty: Medium, Seed: 54321},
			validateFn: func(t *testing.T, g *Grid) {
				if g == nil || g.Rows != 15 {
					t.Errorf("expected 15x15 grid, got %v", g)
				}
			},
		},
		{
			name:   "Generate 15x15 grid with Hard difficulty",
			config: GeneratorConfig{Rows: 15, Cols: 15, Difficulty: Hard, Seed: 67890},
			validateFn: func(t *testing.T, g *Grid) {
				if g == nil || g.Rows != 15 {
					t.Errorf("expected 15x15 grid, got %v", g)
				}
			},
		},
		{
			name:   "Generate 15x15 grid with Expert difficulty",
			config: GeneratorConfig{Rows: 15, Cols: 15, Difficulty: Expert, Seed: 11111},
			validateFn: func(t *testing.T, g *Grid) {
				if g == nil || g.Rows != 15 {
					t.Errorf("expected 15x15 grid, got %v", g)
				}
			},
		},
		{
			name:   "Generate with custom black density",
			config: GeneratorConfig{Rows: 15, Cols: 15, BlackDensity: 0.08, Seed: 99999},
			validateFn: func(t *testing.T, g *Grid) {
				if g == nil {
					t.Fatal("expected non-nil grid")
				}
				blackCount := 0
				for row := 0; row < g.Rows; row++ {
					for col := 0; col < g.Cols; col++ {
						if g.Cells[row][col].IsBlack {
							blackCount++
						}
					}
				}
				totalCells := g.Rows * g.Cols
				actualDensity := float64(blackCount) / float64(totalCells)
				if actualDensity < 0.04 || actualDensity > 0.12 {
					t.Errorf("expected black density around 0.08, got %v", actualDensity)
				}
			},
		},
		{
			name:   "Generate 11x11 grid",
			config: GeneratorConfig{Rows: 11, Cols: 11, Difficulty: Medium, Seed: 22222},
			validateFn: func(t *testing.T, g *Grid) {
				if g == nil || g.Rows != 11 || g.Cols != 11 {
					t.Errorf("expected 11x11 grid, got %v", g)
				}
			},
		},
		{
			name:   "Generate 13x13 grid",
			config: GeneratorConfig{Rows: 13, Cols: 13, Difficulty: Medium, Seed: 33333},
			validateFn: func(t *testing.T, g *Grid) {
				if g == nil || g.Rows != 13 || g.Cols != 13 {
					t.Errorf("expected 13x13 grid, got %v", g)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generate(tt.config)
			if err != nil {
				t.Fatalf("generate() error = %v", err)
			}
			if tt.validateFn != nil {
				tt.validateFn(t, got)
			}
		})
	}
}

func TestGenerateValidatesAllSteps(t *testing.T) {
	config := GeneratorConfig{Rows: 15, Cols: 15, Difficulty: Medium, Seed: 42}

	g, err := generate(config)
	if err != nil {
		t.Fatalf("generate() failed: %v", err)
	}
	if g == nil {
		t.Fatal("expected non-nil grid")
	}

	blackCount := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col].IsBlack {
				blackCount++
			}
		}
	}
	if blackCount == 0 {
		t.Error("expected some black squares to be seeded")
	}

	if !isConnected(g) {
		t.Error("expected grid to be connected")
	}
	if hasShortWords(g) {
		t.Error("expected grid to have no short words")
	}
}

func TestGenerateRetryLogic(t *testing.T) {
	config := GeneratorConfig{Rows: 5, Cols: 5, BlackDensity: 0.50, Seed: 777}

	g, err := generate(config)

	if err != nil {
		if err != ErrGenerationFailed {
			t.Errorf("unexpected error: %v", err)
		}
	} else {
		if g == nil {
			t.Fatal("expected non-nil grid or error")
		}
		if !isConnected(g) || hasShortWords(g) {
			t.Error("generated grid failed validation")
		}
	}
}

func TestGenerateReproducibility(t *testing.T) {
	config := GeneratorConfig{Rows: 15, Cols: 15, Difficulty: Medium, Seed: 42424242}

	g1, err1 := generate(config)
	if err1 != nil {
		t.Fatalf("first generate() failed: %v", err1)
	}

	g2, err2 := generate(config)
	if err2 != nil {
		t.Fatalf("second generate() failed: %v", err2)
	}

	for row := 0; row < g1.Rows; row++ {
		for col := 0; col < g1.Cols; col++ {
			cell1 := g1.Cells[row][col]
			cell2 := g2.Cells[row][col]
			if cell1.IsBlack != cell2.IsBlack {
				t.Errorf("cells at (%d,%d) differ: g1.IsBlack=%v, g2.IsBlack=%v",
					row, col, cell1.IsBlack, cell2.IsBlack)
			}
		}
	}
}
