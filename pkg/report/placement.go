package report

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRaster is returned by Place for non-positive dimensions.
var ErrInvalidRaster = errors.New("invalid raster dimensions")

// Rect is a placement rectangle in document units.
type Rect struct {
	X, Y, W, H float64
}

// Band describes the content band a snapshot is placed into.
//
// The fractions and the vertical offset are tuning values of the fixed report
// template. They are kept as data so a different template can supply its own.
type Band struct {
	WidthFraction  float64 `toml:"width_fraction" yaml:"width_fraction"`
	HeightFraction float64 `toml:"height_fraction" yaml:"height_fraction"`
	Margin         float64 `toml:"margin" yaml:"margin"`
	FooterHeight   float64 `toml:"footer_height" yaml:"footer_height"`
	VerticalOffset float64 `toml:"vertical_offset" yaml:"vertical_offset"`
}

// DefaultBand is the content band of the standard report.
var DefaultBand = Band{
	WidthFraction:  0.9,
	HeightFraction: 0.6,
	Margin:         10,
	FooterHeight:   15,
	VerticalOffset: 175,
}

// Place computes where a rasterW x rasterH snapshot goes on a page pageWidth
// units wide.
//
// The reference height is the snapshot scaled to the full page width, not the
// page's real height, so the band follows the chart's own proportions:
//
//	derived = rasterH * pageWidth / rasterW
//	H = derived * HeightFraction
//	W = pageWidth * WidthFraction
//	X = Margin
//	Y = derived - Margin - FooterHeight - H + VerticalOffset
func Place(rasterW, rasterH int, pageWidth float64, b Band) (Rect, error) {
	if rasterW <= 0 || rasterH <= 0 {
		return Rect{}, fmt.Errorf("%w: raster %dx%d", ErrInvalidRaster, rasterW, rasterH)
	}
	if pageWidth <= 0 || math.IsNaN(pageWidth) || math.IsInf(pageWidth, 0) {
		return Rect{}, fmt.Errorf("%w: page width %v", ErrInvalidRaster, pageWidth)
	}

	derived := float64(rasterH) * pageWidth / float64(rasterW)
	h := derived * b.HeightFraction
	return Rect{
		X: b.Margin,
		Y: derived - b.Margin - b.FooterHeight - h + b.VerticalOffset,
		W: pageWidth * b.WidthFraction,
		H: h,
	}, nil
}
