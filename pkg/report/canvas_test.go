package report

import (
	"github.com/realassist/crimereport/pkg/capture"
)

// op is one recorded canvas call.
type op struct {
	kind  string // "text", "line", "image"
	page  int
	style Style
	x, y  float64
	x2    float64
	y2    float64
	text  string
	align Align
}

// recordingCanvas records draw calls instead of rendering them.
type recordingCanvas struct {
	w, h     float64
	pages    int
	current  int
	style    Style
	ops      []op
	setPages []int
	imageErr error
	exported int
}

func newRecordingCanvas(pages int) *recordingCanvas {
	c := &recordingCanvas{w: 210, h: 297, pages: pages}
	if pages > 0 {
		c.current = pages
	}
	return c
}

func (c *recordingCanvas) PageSize() (float64, float64) { return c.w, c.h }
func (c *recordingCanvas) PageCount() int               { return c.pages }
func (c *recordingCanvas) CurrentPage() int             { return c.current }
func (c *recordingCanvas) Apply(s Style)                { c.style = s }

func (c *recordingCanvas) SetPage(n int) {
	c.setPages = append(c.setPages, n)
	if n >= 1 && n <= c.pages {
		c.current = n
	}
}

func (c *recordingCanvas) Text(x, y float64, s string, a Align) {
	c.ops = append(c.ops, op{kind: "text", page: c.current, style: c.style, x: x, y: y, text: s, align: a})
}

func (c *recordingCanvas) Line(x1, y1, x2, y2 float64) {
	c.ops = append(c.ops, op{kind: "line", page: c.current, style: c.style, x: x1, y: y1, x2: x2, y2: y2})
}

func (c *recordingCanvas) Image(_ capture.Snapshot, r Rect) error {
	if c.imageErr != nil {
		return c.imageErr
	}
	c.ops = append(c.ops, op{kind: "image", page: c.current, x: r.X, y: r.Y, x2: r.X + r.W, y2: r.Y + r.H})
	return nil
}

func (c *recordingCanvas) filter(kind string, pred func(op) bool) []op {
	var out []op
	for _, o := range c.ops {
		if o.kind == kind && (pred == nil || pred(o)) {
			out = append(out, o)
		}
	}
	return out
}
