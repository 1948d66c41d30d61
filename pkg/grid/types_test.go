package grid

import "testing"

func TestDirection_String(t *testing.T) {
	if ACROSS.String() != "across" {
		t.Errorf("expected 'across', got %q", ACROSS.String())
	}
	if DOWN.String() != "down" {
		t.Errorf("expected 'down', got %q", DOWN.String())
	}
	if Direction(99).String() != "unknown" {
		t.Errorf("expected 'unknown' for invalid direction, got %q", Direction(99).String())
	}
}

func TestCell_Constructors(t *testing.T) {
	if !BlackCell().IsBlack {
		t.Error("expected BlackCell to be Black")
	}
	if !EmptyCell().IsEmpty() {
		t.Error("expected EmptyCell to be Empty")
	}
	c := LetterCell('a')
	if c.Letter != 'A' {
		t.Errorf("expected LetterCell to uppercase, got %c", c.Letter)
	}
	if !c.IsLetter() {
		t.Error("expected LetterCell to report IsLetter")
	}
}

func TestCell_IsEmptyIsLetterMutuallyExclusive(t *testing.T) {
	for _, c := range []Cell{BlackCell(), EmptyCell(), LetterCell('Z')} {
		if c.IsEmpty() && c.IsLetter() {
			t.Errorf("cell %+v reports both IsEmpty and IsLetter", c)
		}
	}
}

func TestGrid_InBounds(t *testing.T) {
	g, err := New(3, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{2, 4, true},
		{3, 0, false},
		{0, 5, false},
		{-1, 0, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.row, c.col); got != c.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
}

func TestGrid_Mirror(t *testing.T) {
	g, _ := New(4, 4)

	mr, mc, ok := g.mirror(0, 1, Rotational180)
	if !ok || mr != 3 || mc != 2 {
		t.Errorf("Rotational180 mirror of (0,1) in 4x4 = (%d,%d), want (3,2)", mr, mc)
	}

	mr, mc, ok = g.mirror(1, 0, MirrorVertical)
	if !ok || mr != 1 || mc != 3 {
		t.Errorf("MirrorVertical mirror of (1,0) in 4x4 = (%d,%d), want (1,3)", mr, mc)
	}

	mr, mc, ok = g.mirror(0, 2, MirrorHorizontal)
	if !ok || mr != 3 || mc != 2 {
		t.Errorf("MirrorHorizontal mirror of (0,2) in 4x4 = (%d,%d), want (3,2)", mr, mc)
	}

	if _, _, ok := g.mirror(0, 0, NoSymmetry); ok {
		t.Error("expected NoSymmetry mirror to report ok=false")
	}
}
