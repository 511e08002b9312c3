package core

// Color is a terminal color understood by the platform renderer: an ANSI
// 256-color index ("0".."255") or a "#RRGGBB" hex value. The empty Color
// means the terminal default.
type Color string

// Predefined colors for frame and HUD elements.
const (
	ColorDefault     Color = ""
	ColorBlack       Color = "0"
	ColorRed         Color = "9"
	ColorGreen       Color = "10"
	ColorYellow      Color = "11"
	ColorBlue        Color = "12"
	ColorMagenta     Color = "13"
	ColorCyan        Color = "14"
	ColorWhite       Color = "15"
	ColorGray        Color = "8"
	ColorDarkGray    Color = "236"
	ColorFieldShadow Color = "234"
)

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}
