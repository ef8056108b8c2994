package chart

import (
	"errors"
	"image/color"
	"testing"

	"github.com/fogleman/gg"

	"github.com/realassist/crimereport/pkg/capture"
)

func sampleData() Data {
	return Data{
		Labels: []string{"2012", "2013", "2014", "2015"},
		Series: []Series{{
			Label:           "Burglary",
			Values:          []float64{1200, 980, 1430, 1100},
			BorderColor:     BurglaryBorder,
			BackgroundColor: BurglaryBackground,
		}},
	}
}

func TestNewViewDefaults(t *testing.T) {
	v := NewView(sampleData())

	if v.Heading() != "Arrests" {
		t.Errorf("Heading() = %q, want Arrests", v.Heading())
	}
	w, h := v.Size()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size() = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
	if !v.Attached() {
		t.Error("new view should be attached")
	}
}

func TestViewOptions(t *testing.T) {
	v := NewView(sampleData(), WithSize(400, 300), WithHeading("Burglaries"), WithSize(-1, 5))

	if w, h := v.Size(); w != 400 || h != 300 {
		t.Errorf("Size() = %dx%d, want 400x300", w, h)
	}
	if v.Heading() != "Burglaries" {
		t.Errorf("Heading() = %q", v.Heading())
	}
}

func TestViewDetach(t *testing.T) {
	v := NewView(sampleData())
	v.Detach()
	v.Detach()

	if v.Attached() {
		t.Error("Attached() = true after Detach")
	}
	if w, h := v.Size(); w != 0 || h != 0 {
		t.Errorf("detached Size() = %dx%d, want 0x0", w, h)
	}

	_, err := capture.Await(capture.New().Capture(v))
	if !errors.Is(err, capture.ErrDetached) {
		t.Errorf("capture of detached view = %v, want ErrDetached", err)
	}
}

func TestViewPaint(t *testing.T) {
	v := NewView(sampleData(), WithSize(300, 200))
	dc := gg.NewContext(300, 200)

	if err := v.Paint(dc); err != nil {
		t.Fatalf("Paint() error: %v", err)
	}

	r, g, b, _ := dc.Image().At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("corner pixel = %v, want white background", color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff})
	}
}

func TestViewPaintInvalidData(t *testing.T) {
	d := sampleData()
	d.Series[0].Values = d.Series[0].Values[:2]

	err := NewView(d).Paint(gg.NewContext(10, 10))
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("Paint() = %v, want ErrInvalidData", err)
	}
}

func TestViewCapture(t *testing.T) {
	tests := []struct {
		name string
		data Data
		opts Options
	}{
		{"dashboard", sampleData(), DefaultOptions()},
		{"empty", Data{}, DefaultOptions()},
		{"legend and grid", sampleData(), func() Options {
			o := DefaultOptions()
			o.ShowLegend, o.ShowXGrid = true, true
			return o
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(tt.data, WithSize(320, 180), WithOptions(tt.opts))
			snap, err := capture.Await(capture.New(capture.WithScale(2)).Capture(v))
			if err != nil {
				t.Fatalf("capture error: %v", err)
			}
			if snap.Width() != 640 || snap.Height() != 360 {
				t.Errorf("snapshot = %dx%d, want 640x360", snap.Width(), snap.Height())
			}
		})
	}
}
