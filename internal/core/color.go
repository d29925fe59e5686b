package core

import "math"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// HueColor maps an HSL hue in degrees to the nearest terminal color.
// Bright selects the high-intensity variant where one exists.
func HueColor(hue float64, bright bool) Color {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}

	var base Color
	switch {
	case h < 20 || h >= 340:
		base = ColorRed
	case h < 40:
		return ColorOrange
	case h < 70:
		base = ColorYellow
	case h < 160:
		base = ColorGreen
	case h < 195:
		base = ColorCyan
	case h < 255:
		base = ColorBlue
	default:
		base = ColorMagenta
	}

	if bright {
		return base + (ColorBrightRed - ColorRed)
	}
	return base
}
