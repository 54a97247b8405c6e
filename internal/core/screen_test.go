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

	s.Set(5, 5, 'X', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A', ColorDefault)
	s.Set(100, 0, 'A', ColorDefault)
	s.Set(0, -1, 'A', ColorDefault)
	s.Set(0, 100, 'A', ColorDefault)

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'X', ColorDefault)
	s.Resize(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("Resize() gave %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(8, 0, "abc", ColorDefault)

	if got := strings.Split(s.String(), "\n")[0]; got != "        ab" {
		t.Errorf("DrawText should clip at the edge, row = %q", got)
	}

	s.DrawTextCentered(1, "hi", ColorDefault)
	if s.Get(4, 1) != 'h' || s.Get(5, 1) != 'i' {
		t.Errorf("DrawTextCentered misplaced text: %q", strings.Split(s.String(), "\n")[1])
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorDefault)

	expected := "┌───┐\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox() =\n%s\nexpected\n%s", s.String(), expected)
	}
}
