package chart

import (
	"sync"

	"github.com/fogleman/gg"

	"github.com/realassist/crimereport/pkg/capture"
)

// Container defaults, in CSS pixels.
const (
	DefaultWidth   = 900
	DefaultHeight  = 500
	DefaultHeading = "Arrests"
)

var _ capture.Element = (*View)(nil)

// ViewOption configures a View.
type ViewOption func(*View)

// WithSize sets the container size. Non-positive values keep the default.
func WithSize(w, h int) ViewOption {
	return func(v *View) {
		if w > 0 && h > 0 {
			v.width, v.height = w, h
		}
	}
}

// WithHeading replaces the "Arrests" heading. An empty heading hides it.
func WithHeading(h string) ViewOption {
	return func(v *View) { v.heading = h }
}

// WithOptions replaces the chart options.
func WithOptions(o Options) ViewOption {
	return func(v *View) { v.opts = o }
}

// View is a chart container that can be captured. Paint only reads the view,
// so a View can be captured while another goroutine checks Attached.
type View struct {
	heading string
	data    Data
	opts    Options
	width   int
	height  int

	mu       sync.RWMutex
	detached bool
}

// NewView creates an attached view over data.
func NewView(data Data, opts ...ViewOption) *View {
	v := &View{
		heading: DefaultHeading,
		data:    data,
		opts:    DefaultOptions(),
		width:   DefaultWidth,
		height:  DefaultHeight,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Data returns the plotted data.
func (v *View) Data() Data { return v.data }

// Heading returns the container heading.
func (v *View) Heading() string { return v.heading }

// Size implements capture.Element. A detached view has no size.
func (v *View) Size() (int, int) {
	if !v.Attached() {
		return 0, 0
	}
	return v.width, v.height
}

// Attached implements capture.Element.
func (v *View) Attached() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return !v.detached
}

// Detach removes the view from display. It is idempotent.
func (v *View) Detach() {
	v.mu.Lock()
	v.detached = true
	v.mu.Unlock()
}

// Paint implements capture.Element.
func (v *View) Paint(dc *gg.Context) error {
	if err := v.data.Validate(); err != nil {
		return err
	}
	p, err := newPainter(dc, v.opts)
	if err != nil {
		return err
	}
	return p.paint(v.heading, v.data, float64(v.width), float64(v.height))
}
