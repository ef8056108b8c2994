package report

// Color is an RGB triple with components in 0..255.
type Color [3]int

// Common colors.
var (
	Black = Color{0, 0, 0}
	Blue  = Color{0, 0, 255}
)

// Valid reports whether every component is within 0..255.
func (c Color) Valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// Align selects the horizontal anchor of a text draw.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Style is the complete draw context for one step. Canvases apply every
// field, so a step never inherits font, color or line width from an earlier
// one.
type Style struct {
	Family    string
	Bold      bool
	Size      float64 // points
	TextColor Color
	DrawColor Color
	LineWidth float64 // document units
}

// FontFamily is the core PDF font used for all furniture text.
const FontFamily = "helvetica"

// baseStyle is black regular text with the template's line width.
func baseStyle(t Template) Style {
	return Style{
		Family:    FontFamily,
		Size:      t.FooterSize,
		TextColor: t.ContrastColor,
		DrawColor: t.ContrastColor,
		LineWidth: t.LineWidth,
	}
}
