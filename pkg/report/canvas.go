package report

import "github.com/realassist/crimereport/pkg/capture"

// Canvas is a paged drawing surface in document units.
type Canvas interface {
	// PageSize returns the width and height of a page.
	PageSize() (width, height float64)

	// PageCount returns the number of pages.
	PageCount() int

	// CurrentPage returns the 1-based page draws go to, or 0 with no pages.
	CurrentPage() int

	// SetPage selects the page subsequent draws go to.
	SetPage(n int)

	// Apply replaces the draw context.
	Apply(s Style)

	// Text draws s with its baseline at y. For AlignRight, x is the right edge.
	Text(x, y float64, s string, a Align)

	// Line draws a straight line using the current draw color and width.
	Line(x1, y1, x2, y2 float64)

	// Image embeds an encoded snapshot scaled into r.
	Image(snap capture.Snapshot, r Rect) error
}
