package chart

import (
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/realassist/crimereport/pkg/fonts"
)

const (
	headingSize = 20
	headingBand = 40
	legendBand  = 24
	labelGap    = 8
)

var (
	gridColor    = [4]float64{0, 0, 0, 0.1}
	tickColor    = [3]float64{0.4, 0.4, 0.4}
	headingColor = [3]float64{0.13, 0.13, 0.13}
)

type painter struct {
	dc      *gg.Context
	opts    Options
	printer *message.Printer
	ticks   font.Face
	heading font.Face
}

func newPainter(dc *gg.Context, opts Options) (*painter, error) {
	weight := fonts.Regular
	if opts.BoldTicks {
		weight = fonts.Bold
	}
	size := opts.TickSize
	if size <= 0 {
		size = DefaultOptions().TickSize
	}
	ticks, err := fonts.Face(weight, size)
	if err != nil {
		return nil, err
	}
	heading, err := fonts.Face(fonts.Bold, headingSize)
	if err != nil {
		return nil, err
	}
	return &painter{
		dc:      dc,
		opts:    opts,
		printer: message.NewPrinter(language.AmericanEnglish),
		ticks:   ticks,
		heading: heading,
	}, nil
}

// plot is the data area in CSS pixels.
type plot struct {
	left, top, right, bottom float64
	yMin, yMax               float64
	n                        int
}

func (p plot) x(i int) float64 {
	if p.n <= 1 {
		return (p.left + p.right) / 2
	}
	return p.left + float64(i)*(p.right-p.left)/float64(p.n-1)
}

func (p plot) y(v float64) float64 {
	if p.yMax == p.yMin {
		return p.bottom
	}
	return p.bottom - (v-p.yMin)/(p.yMax-p.yMin)*(p.bottom-p.top)
}

func (p *painter) paint(heading string, data Data, width, height float64) error {
	dc := p.dc
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	pad := p.opts.Padding
	top := pad.Top
	if heading != "" {
		dc.SetFontFace(p.heading)
		dc.SetRGB(headingColor[0], headingColor[1], headingColor[2])
		dc.DrawStringAnchored(heading, pad.Left, top+headingBand/2, 0, 0.5)
		top += headingBand
	}
	if p.opts.ShowLegend && len(data.Series) > 0 {
		p.legend(data.Series, width, top)
		top += legendBand
	}

	ticks := niceTicks(p.opts.YMin, data.Max(), p.opts.YTicks)
	labels := make([]string, len(ticks))
	dc.SetFontFace(p.ticks)
	var labelW, labelH float64
	for i, t := range ticks {
		labels[i] = formatTick(p.printer, t)
		w, h := dc.MeasureString(labels[i])
		labelW = math.Max(labelW, w)
		labelH = math.Max(labelH, h)
	}

	pl := plot{
		left:   pad.Left + labelW + labelGap,
		top:    top + labelH/2,
		right:  width - pad.Right,
		bottom: height - pad.Bottom - labelH - labelGap,
		yMin:   ticks[0],
		yMax:   ticks[len(ticks)-1],
		n:      len(data.Labels),
	}

	p.grid(pl, ticks, labels)
	p.xLabels(pl, data.Labels)
	for _, s := range data.Series {
		p.series(pl, s)
	}
	return nil
}

func (p *painter) grid(pl plot, ticks []float64, labels []string) {
	dc := p.dc
	dc.SetLineWidth(1)
	for i, t := range ticks {
		y := pl.y(t)
		dc.SetRGBA(gridColor[0], gridColor[1], gridColor[2], gridColor[3])
		dc.DrawLine(pl.left, y, pl.right, y)
		dc.Stroke()

		dc.SetRGB(tickColor[0], tickColor[1], tickColor[2])
		dc.DrawStringAnchored(labels[i], pl.left-labelGap, y, 1, 0.35)
	}
	if !p.opts.ShowXGrid {
		return
	}
	dc.SetRGBA(gridColor[0], gridColor[1], gridColor[2], gridColor[3])
	for i := 0; i < pl.n; i++ {
		x := pl.x(i)
		dc.DrawLine(x, pl.top, x, pl.bottom)
		dc.Stroke()
	}
}

func (p *painter) xLabels(pl plot, labels []string) {
	dc := p.dc
	dc.SetFontFace(p.ticks)
	dc.SetRGB(tickColor[0], tickColor[1], tickColor[2])
	for i, l := range labels {
		dc.DrawStringAnchored(l, pl.x(i), pl.bottom+labelGap, 0.5, 1)
	}
}

func (p *painter) series(pl plot, s Series) {
	if len(s.Values) == 0 {
		return
	}
	dc := p.dc
	for i, v := range s.Values {
		if i == 0 {
			dc.MoveTo(pl.x(i), pl.y(v))
		} else {
			dc.LineTo(pl.x(i), pl.y(v))
		}
	}
	dc.SetColor(s.BorderColor)
	dc.SetLineWidth(p.opts.LineWidth)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.Stroke()

	if p.opts.PointRadius <= 0 {
		return
	}
	dc.SetLineWidth(1)
	for i, v := range s.Values {
		dc.DrawCircle(pl.x(i), pl.y(v), p.opts.PointRadius)
		dc.SetColor(s.BackgroundColor)
		dc.FillPreserve()
		dc.SetColor(s.BorderColor)
		dc.Stroke()
	}
}

func (p *painter) legend(series []Series, width, top float64) {
	const box = 12
	dc := p.dc
	dc.SetFontFace(p.ticks)

	var total float64
	for _, s := range series {
		w, _ := dc.MeasureString(s.Label)
		total += box + 6 + w + 16
	}
	x := (width - total) / 2
	y := top + legendBand/2
	for _, s := range series {
		dc.DrawRectangle(x, y-box/2, box, box)
		dc.SetColor(s.BackgroundColor)
		dc.FillPreserve()
		dc.SetColor(s.BorderColor)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetRGB(tickColor[0], tickColor[1], tickColor[2])
		dc.DrawStringAnchored(s.Label, x+box+6, y, 0, 0.35)
		w, _ := dc.MeasureString(s.Label)
		x += box + 6 + w + 16
	}
}

// niceTicks returns evenly spaced y axis ticks covering [from, to] on a
// 1-2-5 step ladder. At least two ticks are always returned.
func niceTicks(from, to float64, count int) []float64 {
	if count < 2 {
		count = 2
	}
	if to <= from {
		to = from + 1
	}
	step := niceNum((to - from) / float64(count-1))
	lo := math.Floor(from/step) * step
	hi := math.Ceil(to/step) * step
	n := int(math.Round((hi-lo)/step)) + 1

	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = lo + float64(i)*step
	}
	return ticks
}

func niceNum(x float64) float64 {
	exp := math.Floor(math.Log10(x))
	f := x/math.Pow(10, exp) - 1e-9
	var nf float64
	switch {
	case f <= 1:
		nf = 1
	case f <= 2:
		nf = 2
	case f <= 5:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

func formatTick(p *message.Printer, v float64) string {
	if v == math.Trunc(v) {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.1f", v)
}
