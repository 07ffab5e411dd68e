package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", c)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0) != blank {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.Fill('X')
	s.Clear()

	if strings.ContainsRune(s.String(), 'X') {
		t.Errorf("After Clear, screen still contains X:\n%s", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextColored(2, 0, "<->", ColorCyan)

	if s.Row(0) != "  <->     " {
		t.Errorf("Row(0) = %q, expected %q", s.Row(0), "  <->     ")
	}
	if s.GetCell(3, 0).Color != ColorCyan {
		t.Errorf("GetCell(3, 0).Color = %v, expected cyan", s.GetCell(3, 0).Color)
	}

	// Multibyte runes occupy one cell each
	s.Clear()
	s.DrawText(0, 0, "●─●")
	if s.Get(2, 0) != '●' {
		t.Errorf("Get(2, 0) = %q, expected '●'", s.Get(2, 0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "PAUSE")

	if s.Row(0) != "   PAUSE   " {
		t.Errorf("Row(0) = %q, expected centered text", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(Box{X: 0, Y: 0, W: 5, H: 3}, ColorGray)

	expected := "┌───┐\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox result:\n%s\nexpected:\n%s", s.String(), expected)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawRect(Box{X: 1, Y: 0, W: 2, H: 2}, '█', ColorBlue)

	if s.String() != " ██ \n ██ " {
		t.Errorf("DrawRect result:\n%s", s.String())
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(1, 1, 'o')
	s.Resize(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("Resize() dimensions = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != 'o' {
		t.Errorf("Resize() lost content at (1, 1)")
	}

	s.Resize(1, 1)
	if s.String() != " " {
		t.Errorf("Resize() shrink = %q, expected single space", s.String())
	}
}
