package list

import (
	"fmt"
	"strings"
)

// Color is the display color of a list. It serializes as an integer so
// documents written by older builds keep their value.
type Color int

// List colors, in document order. Gray is the zero value and the default
// for new lists.
const (
	ColorGray Color = iota
	ColorBlue
	ColorGreen
	ColorYellow
	ColorOrange
	ColorRed
)

var colorNames = [...]string{"gray", "blue", "green", "yellow", "orange", "red"}

// String returns the lowercase color name, or "unknown" for out-of-range values.
func (c Color) String() string {
	if c < ColorGray || int(c) >= len(colorNames) {
		return "unknown"
	}
	return colorNames[c]
}

// Valid reports whether c is one of the defined list colors.
func (c Color) Valid() bool {
	return c >= ColorGray && int(c) < len(colorNames)
}

// ParseColor converts a color name (case-insensitive) to a Color.
func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if strings.EqualFold(name, n) {
			return Color(i), nil
		}
	}
	return ColorGray, fmt.Errorf("unknown list color: %q", name)
}
