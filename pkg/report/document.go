package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/realassist/crimereport/pkg/capture"
)

// ErrFinalized is returned when a document is exported a second time.
var ErrFinalized = errors.New("document already exported")

// Metadata is stamped into the PDF info dictionary.
type Metadata struct {
	Title    string
	Author   string
	Creator  string
	Subject  string
	Keywords string
	Created  time.Time
}

// Document is an A4 portrait PDF measured in millimetres. It starts with one
// page and is exported exactly once.
type Document struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	images    int
	exported  bool
}

var _ Canvas = (*Document)(nil)

// pageA4 is A4 in millimetres. fpdf's built-in "A4" is converted from points and comes
// out a fraction of a millimetre larger.
var pageA4 = fpdf.SizeType{Wd: 210, Ht: 297}

// NewDocument creates a document with a single empty page.
func NewDocument(meta Metadata) *Document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           pageA4,
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator(meta.Creator, true)
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	if meta.Keywords != "" {
		pdf.SetKeywords(meta.Keywords, true)
	}
	if !meta.Created.IsZero() {
		pdf.SetCreationDate(meta.Created)
		pdf.SetModificationDate(meta.Created)
	}
	pdf.AddPage()

	return &Document{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// AddPage appends a page and makes it current.
func (d *Document) AddPage() {
	d.pdf.AddPage()
}

// PageSize implements Canvas.
func (d *Document) PageSize() (float64, float64) {
	return d.pdf.GetPageSize()
}

// PageCount implements Canvas.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// CurrentPage implements Canvas.
func (d *Document) CurrentPage() int {
	return d.pdf.PageNo()
}

// SetPage implements Canvas. Out-of-range pages are ignored.
func (d *Document) SetPage(n int) {
	if n >= 1 && n <= d.pdf.PageCount() {
		d.pdf.SetPage(n)
	}
}

// Apply implements Canvas.
func (d *Document) Apply(s Style) {
	style := ""
	if s.Bold {
		style = "B"
	}
	d.pdf.SetFont(s.Family, style, s.Size)
	d.pdf.SetTextColor(s.TextColor[0], s.TextColor[1], s.TextColor[2])
	d.pdf.SetDrawColor(s.DrawColor[0], s.DrawColor[1], s.DrawColor[2])
	d.pdf.SetLineWidth(s.LineWidth)
}

// Text implements Canvas.
func (d *Document) Text(x, y float64, s string, a Align) {
	if d.pdf.PageCount() == 0 {
		return
	}
	s = d.translate(s)
	if a == AlignRight {
		x -= d.pdf.GetStringWidth(s)
	}
	d.pdf.Text(x, y, s)
}

// Line implements Canvas.
func (d *Document) Line(x1, y1, x2, y2 float64) {
	if d.pdf.PageCount() == 0 {
		return
	}
	d.pdf.Line(x1, y1, x2, y2)
}

// Image implements Canvas. Only JPEG snapshots are accepted.
func (d *Document) Image(snap capture.Snapshot, r Rect) error {
	if snap.Format() != capture.FormatJPEG {
		return fmt.Errorf("unsupported snapshot format %q", snap.Format())
	}
	if snap.Len() == 0 {
		return errors.New("empty snapshot")
	}

	d.images++
	name := fmt.Sprintf("snapshot-%d", d.images)
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	d.pdf.RegisterImageOptionsReader(name, opts, snap.Reader())
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("register snapshot: %w", err)
	}
	d.pdf.ImageOptions(name, r.X, r.Y, r.W, r.H, false, opts, 0, "")
	return d.pdf.Error()
}

// Err returns the first error recorded by any draw call.
func (d *Document) Err() error {
	return d.pdf.Error()
}

// Export serializes the document to w. It can be called once; later calls
// return ErrFinalized.
func (d *Document) Export(w io.Writer) error {
	if d.exported {
		return ErrFinalized
	}
	d.exported = true
	if err := d.pdf.Error(); err != nil {
		return err
	}
	return d.pdf.Output(w)
}
