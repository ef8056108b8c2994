package chart

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/realassist/crimereport/pkg/integrations/crimestats"
)

// ErrInvalidData is returned when series and labels disagree in length.
var ErrInvalidData = errors.New("invalid chart data")

// Dataset colors used for the burglary series.
var (
	BurglaryBorder     = color.NRGBA{R: 53, G: 162, B: 235, A: 255}
	BurglaryBackground = color.NRGBA{R: 53, G: 162, B: 235, A: 128}
)

// Series is one plotted line.
type Series struct {
	Label           string
	Values          []float64
	BorderColor     color.NRGBA
	BackgroundColor color.NRGBA
}

// Data is the chart content: category labels along x and one or more series.
type Data struct {
	Labels []string
	Series []Series
}

// Validate checks that every series has one value per label.
func (d Data) Validate() error {
	for _, s := range d.Series {
		if len(s.Values) != len(d.Labels) {
			return fmt.Errorf("%w: series %q has %d values for %d labels",
				ErrInvalidData, s.Label, len(s.Values), len(d.Labels))
		}
	}
	return nil
}

// Max returns the largest value across all series, or 0 when empty.
func (d Data) Max() float64 {
	var m float64
	for _, s := range d.Series {
		for _, v := range s.Values {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Padding is the space in CSS pixels between the container edge and the plot.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Options controls chart appearance.
type Options struct {
	ShowLegend  bool
	ShowXGrid   bool
	BoldTicks   bool
	YMin        float64
	Padding     Padding
	LineWidth   float64
	PointRadius float64
	TickSize    float64
	YTicks      int
}

// DefaultOptions returns the dashboard styling.
func DefaultOptions() Options {
	return Options{
		ShowLegend:  false,
		ShowXGrid:   false,
		BoldTicks:   true,
		YMin:        0,
		Padding:     Padding{Top: 5, Right: 15, Bottom: 15, Left: 15},
		LineWidth:   3,
		PointRadius: 3,
		TickSize:    12,
		YTicks:      6,
	}
}

// FromRecords builds single-series chart data for offense, one point per
// record in record order.
func FromRecords(records []crimestats.Record, offense string) Data {
	labels := make([]string, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		labels[i] = strconv.Itoa(r.DataYear)
		values[i] = r.Value(offense)
	}
	return Data{
		Labels: labels,
		Series: []Series{{
			Label:           offense,
			Values:          values,
			BorderColor:     BurglaryBorder,
			BackgroundColor: BurglaryBackground,
		}},
	}
}
