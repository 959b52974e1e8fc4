package core

import "strings"

// Color represents a foreground color for entities and UI accents.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for entities.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPink
	ColorGray
	ColorCount // Sentinel value for iteration
)

// String returns the config name of a color.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorOrange:
		return "orange"
	case ColorPink:
		return "pink"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}

// ANSI returns the 256-color palette code used by the terminal renderer.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "9"
	case ColorGreen:
		return "10"
	case ColorYellow:
		return "11"
	case ColorBlue:
		return "12"
	case ColorMagenta:
		return "13"
	case ColorCyan:
		return "14"
	case ColorWhite:
		return "15"
	case ColorOrange:
		return "208"
	case ColorPink:
		return "218"
	case ColorGray:
		return "245"
	default:
		return "7"
	}
}

// ParseColor converts a config string to a Color.
// Returns ColorDefault and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "":
		return ColorDefault, true
	case "red":
		return ColorRed, true
	case "green":
		return ColorGreen, true
	case "yellow":
		return ColorYellow, true
	case "blue":
		return ColorBlue, true
	case "magenta", "purple":
		return ColorMagenta, true
	case "cyan":
		return ColorCyan, true
	case "white":
		return ColorWhite, true
	case "orange":
		return ColorOrange, true
	case "pink":
		return ColorPink, true
	case "gray", "grey":
		return ColorGray, true
	default:
		return ColorDefault, false
	}
}
