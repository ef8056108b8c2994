// Package fonts provides embedded font faces for raster rendering.
//
// The Go font family is compiled into the binary through
// golang.org/x/image/font/gofont, so chart painting works on hosts with no
// system fonts installed.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects a face within the family.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// FontFamily is the name of the embedded family.
const FontFamily = "Go"

// Parsed fonts (computed once on first access).
var (
	regular   *truetype.Font
	bold      *truetype.Font
	parseErr  error
	parseOnce sync.Once
)

func load() error {
	parseOnce.Do(func() {
		if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		bold, parseErr = truetype.Parse(gobold.TTF)
	})
	return parseErr
}

// Face returns a new face of the given weight at size points.
//
// Faces hold glyph caches and are not safe for concurrent use, so every call
// returns a fresh one; the parsed font data is shared.
func Face(w Weight, size float64) (font.Face, error) {
	if err := load(); err != nil {
		return nil, fmt.Errorf("parse %s font: %w", FontFamily, err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	f := regular
	if w == Bold {
		f = bold
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
