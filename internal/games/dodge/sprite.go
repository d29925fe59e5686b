package dodge

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrBadSprite is returned for sprite files that do not match the player size.
var ErrBadSprite = errors.New("dodge: malformed sprite")

// Sprite is a small block of text drawn in place of the player.
// Spaces are transparent.
type Sprite struct {
	rows [][]rune
}

// LoadSprite reads a sprite that must be exactly w runes wide and h lines tall.
func LoadSprite(path string, w, h int) (*Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dodge: read sprite: %w", err)
	}
	return ParseSprite(data, w, h)
}

// ParseSprite parses sprite text. Trailing newlines are ignored.
func ParseSprite(data []byte, w, h int) (*Sprite, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrBadSprite)
	}
	var rows [][]rune
	sc := bufio.NewScanner(bytes.NewReader(bytes.TrimRight(data, "\r\n")))
	for sc.Scan() {
		line := []rune(string(bytes.TrimRight(sc.Bytes(), "\r")))
		if len(line) != w {
			return nil, fmt.Errorf("%w: line %d is %d wide, expected %d", ErrBadSprite, len(rows)+1, len(line), w)
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dodge: scan sprite: %w", err)
	}
	if len(rows) != h {
		return nil, fmt.Errorf("%w: %d lines, expected %d", ErrBadSprite, len(rows), h)
	}
	return &Sprite{rows: rows}, nil
}

// Size returns the sprite size in cells.
func (s *Sprite) Size() (int, int) {
	if len(s.rows) == 0 {
		return 0, 0
	}
	return len(s.rows[0]), len(s.rows)
}

// At returns the rune at (x, y) and whether it is opaque.
func (s *Sprite) At(x, y int) (rune, bool) {
	if y < 0 || y >= len(s.rows) || x < 0 || x >= len(s.rows[y]) {
		return 0, false
	}
	r := s.rows[y][x]
	return r, r != ' '
}
