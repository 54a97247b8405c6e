package core

import (
	"fmt"
	"strings"
)

// Color represents a foreground color for a screen cell and a player's identity.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorBrown
	ColorCrimson
	ColorGray
	ColorWhite
	ColorSky
)

// PlayerColors lists the colors a player may choose, in menu order.
var PlayerColors = []Color{ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple}

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorOrange:  "orange",
	ColorYellow:  "yellow",
	ColorGreen:   "green",
	ColorBlue:    "blue",
	ColorPurple:  "purple",
	ColorBrown:   "brown",
	ColorCrimson: "crimson",
	ColorGray:    "gray",
	ColorWhite:   "white",
	ColorSky:     "sky",
}

// String returns the lowercase color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// Title returns the color name with its first letter capitalized ("Orange").
func (c Color) Title() string {
	name := c.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// ParseColor resolves a player color by name (case-insensitive).
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range PlayerColors {
		if c.String() == name {
			return c, nil
		}
	}
	return ColorDefault, fmt.Errorf("core: unknown player color %q", name)
}
