package report

import (
	"fmt"
	"time"
)

// DateLayout renders the footer date in long US form, e.g. "October 19, 2026".
const DateLayout = "January 2, 2006"

// FooterDate returns the footer left text for t.
func FooterDate(t time.Time) string {
	return "Report generated on " + t.Format(DateLayout)
}

// FooterPage returns the footer right text for page i of n.
func FooterPage(brand string, i, n int) string {
	return fmt.Sprintf("%s Report | Page %d of %d", brand, i, n)
}

// DrawFurniture stamps the page template onto c: headers, header separator,
// a footer on every existing page, the decorative rule and, last, the
// separator again. Drawing the separator twice leaves the page unchanged.
//
// Footers are stamped retroactively over all pages; afterwards the page that
// was current on entry is selected again. A canvas with no pages gets no
// footers and is not an error.
func DrawFurniture(c Canvas, t Template, now time.Time) {
	w, h := c.PageSize()
	entry := c.CurrentPage()
	base := baseStyle(t)

	left := base
	left.Size = t.HeaderSize
	c.Apply(left)
	c.Text(t.Margin, t.HeaderY, t.LeftHeader, AlignLeft)

	right := base
	right.Bold = true
	right.Size = t.RightHeaderSize
	c.Apply(right)
	c.Text(w-t.Margin, t.HeaderY, t.RightHeader, AlignRight)

	drawSeparator(c, t, w)

	date := base
	date.TextColor = t.DateColor
	page := base
	page.Bold = true

	n := c.PageCount()
	stamp := FooterDate(now)
	for i := 1; i <= n; i++ {
		c.SetPage(i)
		c.Apply(date)
		c.Text(t.Margin, h-t.FooterOffset, stamp, AlignLeft)
		c.Apply(page)
		c.Text(w-t.Margin, h-t.FooterOffset, FooterPage(t.Brand, i, n), AlignRight)
	}
	if entry > 0 {
		c.SetPage(entry)
	}

	drawRule(c, t, w, h)
	drawSeparator(c, t, w)
}

func drawSeparator(c Canvas, t Template, w float64) {
	c.Apply(baseStyle(t))
	c.Line(t.Margin, t.SeparatorY, w-t.Margin, t.SeparatorY)
}

func drawRule(c Canvas, t Template, w, h float64) {
	if len(t.RuleColors) == 0 {
		return
	}
	seg := (w - 2*t.Margin) / float64(len(t.RuleColors))
	y := h - t.RuleOffset
	for i, col := range t.RuleColors {
		s := baseStyle(t)
		s.DrawColor = col
		c.Apply(s)
		x := t.Margin + float64(i)*seg
		c.Line(x, y, x+seg, y)
	}
}
