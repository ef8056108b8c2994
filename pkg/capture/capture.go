package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Defaults for Capturer.
const (
	DefaultScale   = 5.0
	DefaultQuality = 92

	// FormatJPEG is the only encoding produced.
	FormatJPEG = "JPEG"
)

// Sentinel errors for failed captures.
var (
	ErrDetached = errors.New("element is detached")
	ErrZeroSize = errors.New("element has zero size")
	ErrPaint    = errors.New("paint failed")
	ErrEncode   = errors.New("encode failed")
)

// Element is a settled, on-screen visual that can be rasterized.
type Element interface {
	// Size reports the element's on-screen size in CSS pixels.
	Size() (width, height int)

	// Attached reports whether the element is still part of the view tree.
	Attached() bool

	// Paint draws the element in CSS pixel coordinates. The context may be
	// scaled; implementations must not assume a 1:1 pixel mapping.
	Paint(dc *gg.Context) error
}

// Snapshot is an encoded raster image. It is immutable once created.
type Snapshot struct {
	width  int
	height int
	format string
	data   []byte
}

// NewSnapshot creates a snapshot from encoded bytes. data is copied.
func NewSnapshot(width, height int, format string, data []byte) Snapshot {
	return Snapshot{
		width:  width,
		height: height,
		format: format,
		data:   bytes.Clone(data),
	}
}

// Width returns the raster width in pixels.
func (s Snapshot) Width() int { return s.width }

// Height returns the raster height in pixels.
func (s Snapshot) Height() int { return s.height }

// Format returns the encoding name, e.g. "JPEG".
func (s Snapshot) Format() string { return s.format }

// Len returns the encoded payload size in bytes.
func (s Snapshot) Len() int { return len(s.data) }

// Reader returns a reader over the encoded payload.
func (s Snapshot) Reader() io.Reader { return bytes.NewReader(s.data) }

// Result is the single outcome of a capture: a snapshot or an error.
type Result struct {
	Snapshot Snapshot
	Err      error
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithScale sets the oversampling factor relative to on-screen size.
// Non-positive values keep the default.
func WithScale(s float64) Option {
	return func(c *Capturer) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithQuality sets the JPEG quality (1-100).
func WithQuality(q int) Option {
	return func(c *Capturer) {
		if q >= 1 && q <= 100 {
			c.quality = q
		}
	}
}

// Capturer rasterizes elements. It holds no per-capture state and is safe
// for concurrent use.
type Capturer struct {
	scale   float64
	quality int
}

// New creates a Capturer.
func New(opts ...Option) *Capturer {
	c := &Capturer{scale: DefaultScale, quality: DefaultQuality}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scale returns the configured oversampling factor.
func (c *Capturer) Scale() float64 { return c.scale }

// Capture starts rasterizing el and returns a channel that receives exactly
// one Result and is then closed.
func (c *Capturer) Capture(el Element) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		snap, err := c.capture(el)
		out <- Result{Snapshot: snap, Err: err}
	}()
	return out
}

// Await blocks until the capture started on ch resolves.
func Await(ch <-chan Result) (Snapshot, error) {
	res, ok := <-ch
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: capture channel closed without result", ErrPaint)
	}
	if res.Err != nil {
		return Snapshot{}, res.Err
	}
	return res.Snapshot, nil
}

func (c *Capturer) capture(el Element) (snap Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snap, err = Snapshot{}, fmt.Errorf("%w: %v", ErrPaint, r)
		}
	}()

	if el == nil || !el.Attached() {
		return Snapshot{}, ErrDetached
	}
	w, h := el.Size()
	pw, ph := scaled(w, c.scale), scaled(h, c.scale)
	if w <= 0 || h <= 0 || pw <= 0 || ph <= 0 {
		return Snapshot{}, fmt.Errorf("%w: %dx%d", ErrZeroSize, w, h)
	}

	dc := gg.NewContext(pw, ph)
	dc.Scale(float64(pw)/float64(w), float64(ph)/float64(h))
	if err := el.Paint(dc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrPaint, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dc.Image(), imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return Snapshot{width: pw, height: ph, format: FormatJPEG, data: buf.Bytes()}, nil
}

func scaled(n int, scale float64) int {
	return int(math.Round(float64(n) * scale))
}
