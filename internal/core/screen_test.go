package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColorClipsOutOfBounds(t *testing.T) {
	s := NewScreen(5, 5)

	s.SetColor(2, 3, 'X', ColorRed)
	if c := s.GetCell(2, 3); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(2, 3) = %+v, expected red X", c)
	}

	s.SetColor(-1, 0, 'A', ColorRed)
	s.SetColor(5, 0, 'A', ColorRed)
	s.SetColor(0, 9, 'A', ColorRed)
	if s.GetCell(-1, 0) != blankCell || s.GetCell(5, 0) != blankCell {
		t.Error("out of bounds GetCell should return a blank cell")
	}
}

func TestScreenTextPlacement(t *testing.T) {
	s := NewScreen(20, 3)

	s.DrawTextRight(20, 0, "Dash: Ready", ColorWhite)
	if got := strings.TrimSpace(strings.Split(s.String(), "\n")[0]); got != "Dash: Ready" {
		t.Errorf("right aligned row = %q", got)
	}
	if s.GetCell(19, 0).Rune != 'y' {
		t.Errorf("right aligned text should end at last column, got %q", s.GetCell(19, 0).Rune)
	}

	s.DrawTextCentered(1, "ab", ColorDefault)
	if s.GetCell(9, 1).Rune != 'a' || s.GetCell(10, 1).Rune != 'b' {
		t.Errorf("centered text misplaced:\n%s", s)
	}

	s.DrawTextColor(18, 2, "Hello", ColorGreen)
	if s.GetCell(18, 2).Rune != 'H' || s.GetCell(19, 2).Rune != 'e' {
		t.Errorf("clipped text misplaced:\n%s", s)
	}
	if s.GetCell(18, 2).Color != ColorGreen {
		t.Error("text should carry its color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorCyan)

	corners := map[[2]int]rune{
		{1, 1}: '╭',
		{5, 1}: '╮',
		{1, 4}: '╰',
		{5, 4}: '╯',
	}
	for pos, want := range corners {
		if got := s.GetCell(pos[0], pos[1]).Rune; got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	if s.GetCell(3, 1).Rune != '─' || s.GetCell(1, 2).Rune != '│' {
		t.Error("box edges not drawn")
	}
	if s.GetCell(3, 1).Color != ColorCyan {
		t.Error("box edges should carry the box color")
	}
	if s.GetCell(3, 2).Rune != ' ' {
		t.Error("box interior should be untouched")
	}
}

func TestScreenDrawBoxDegenerate(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawBox(NewRect(0, 0, 1, 3), ColorRed)

	for y := 0; y < 3; y++ {
		if s.GetCell(0, y).Rune != '█' {
			t.Errorf("thin box should be solid at y=%d, got %q", y, s.GetCell(0, y).Rune)
		}
	}
}

func TestScreenResizeAndString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawRect(NewRect(0, 0, 3, 1), '=', ColorDefault)

	if got := s.String(); got != "===\n   " {
		t.Errorf("String() = %q", got)
	}

	s.Resize(4, 1)
	if s.Width() != 4 || s.Height() != 1 {
		t.Fatalf("size after resize = %dx%d", s.Width(), s.Height())
	}
	if got := s.String(); got != "    " {
		t.Errorf("String() after resize = %q, expected blank", got)
	}
}

func TestHueColor(t *testing.T) {
	tests := []struct {
		hue    float64
		bright bool
		want   Color
	}{
		{0, false, ColorRed},
		{48, false, ColorYellow},
		{48, true, ColorBrightYellow},
		{200, false, ColorBlue},
		{200, true, ColorBrightBlue},
		{180, false, ColorCyan},
		{270, true, ColorBrightMagenta},
		{30, true, ColorOrange},
		{-10, false, ColorRed},
		{420, false, ColorYellow},
	}

	for _, tc := range tests {
		if got := HueColor(tc.hue, tc.bright); got != tc.want {
			t.Errorf("HueColor(%v, %v) = %d, expected %d", tc.hue, tc.bright, got, tc.want)
		}
	}
}
