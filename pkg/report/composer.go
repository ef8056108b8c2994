package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/realassist/crimereport/pkg/buildinfo"
	"github.com/realassist/crimereport/pkg/capture"
	errs "github.com/realassist/crimereport/pkg/errors"
	"github.com/realassist/crimereport/pkg/observability"
)

// User-visible statuses for a finished attempt.
const (
	StatusExported = "PDF generated successfully."
	StatusFailed   = "Failed to generate PDF. Please try again later."
)

// ErrBusy is returned when Compose is called while a previous call on the
// same Composer is still running.
var ErrBusy = errors.New("report generation already in progress")

// Outcome is the result of one report attempt.
type Outcome struct {
	ID          string
	State       State
	Status      string
	FileName    string
	Size        int
	Placement   Rect
	Transitions []State
	Err         error
}

// OK reports whether the report was exported.
func (o Outcome) OK() bool { return o.State == Exported }

// document is the canvas a Composer draws on.
type document interface {
	Canvas
	Export(w io.Writer) error
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithCapturer replaces the capturer built from the template's capture scale.
func WithCapturer(c *capture.Capturer) ComposerOption {
	return func(cp *Composer) { cp.capturer = c }
}

// WithLogger sets the logger. State transitions are logged at debug level.
func WithLogger(l *log.Logger) ComposerOption {
	return func(cp *Composer) {
		if l != nil {
			cp.logger = l
		}
	}
}

// WithClock sets the time source used for the footer date.
func WithClock(now func() time.Time) ComposerOption {
	return func(cp *Composer) { cp.now = now }
}

// WithSubject sets the PDF subject, e.g. the queried region and years.
func WithSubject(s string) ComposerOption {
	return func(cp *Composer) { cp.subject = s }
}

// Composer turns a chart element into an exported report. One Composer runs
// one attempt at a time; each attempt gets its own Document.
type Composer struct {
	template Template
	capturer *capture.Capturer
	logger   *log.Logger
	now      func() time.Time
	subject  string

	newDocument func(Metadata) document
	running     atomic.Bool
}

// NewComposer creates a Composer for template t.
func NewComposer(t Template, opts ...ComposerOption) *Composer {
	c := &Composer{
		template: t,
		logger:   log.Default(),
		now:      time.Now,
		newDocument: func(m Metadata) document {
			return NewDocument(m)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.capturer == nil {
		c.capturer = capture.New(capture.WithScale(t.CaptureScale))
	}
	return c
}

// Template returns the composer's template.
func (c *Composer) Template() Template { return c.template }

// Compose runs one attempt: draw furniture, capture el, place and embed the
// snapshot, then deliver the serialized document to target.
//
// Failures are reported in the Outcome, never retried, and leave target
// untouched. ctx is passed to hooks and the target; a capture that has
// started is not cancelled.
func (c *Composer) Compose(ctx context.Context, el capture.Element, target Target) Outcome {
	if !c.running.CompareAndSwap(false, true) {
		return Outcome{
			State: Idle,
			Err:   errs.Wrap(errs.ErrCodeBusy, ErrBusy, "compose report"),
		}
	}
	defer c.running.Store(false)

	r := &attempt{
		c:       c,
		started: c.now(),
		out: Outcome{
			ID:          uuid.NewString(),
			State:       Idle,
			FileName:    c.template.FileName,
			Transitions: []State{Idle},
		},
	}
	r.run(ctx, el, target)

	observability.Pipeline().OnComposeComplete(ctx, r.out.ID, r.out.State.String(),
		r.out.Size, time.Since(r.started), r.out.Err)
	return r.out
}

type attempt struct {
	c       *Composer
	started time.Time
	out     Outcome
}

func (r *attempt) run(ctx context.Context, el capture.Element, target Target) {
	c, t := r.c, r.c.template

	doc := c.newDocument(Metadata{
		Title:    t.Brand + " Report",
		Author:   t.Brand,
		Creator:  buildinfo.Creator(),
		Subject:  c.subject,
		Keywords: "report-id " + r.out.ID,
		Created:  r.started,
	})
	DrawFurniture(doc, t, r.started)
	r.advance(FurnitureDrawn)

	r.advance(Capturing)
	hooks := observability.Pipeline()
	hooks.OnCaptureStart(ctx, r.out.ID)
	captureStart := time.Now()
	snap, err := capture.Await(c.capturer.Capture(el))
	hooks.OnCaptureComplete(ctx, r.out.ID, snap.Width(), snap.Height(), time.Since(captureStart), err)
	if err != nil {
		r.fail(errs.Wrap(errs.ErrCodeCapture, err, "capture chart"))
		return
	}

	r.advance(Composing)
	pageW, _ := doc.PageSize()
	rect, err := Place(snap.Width(), snap.Height(), pageW, t.Band)
	if err != nil {
		r.fail(errs.Wrap(errs.ErrCodeComposition, err, "place snapshot"))
		return
	}
	r.out.Placement = rect
	if err := doc.Image(snap, rect); err != nil {
		r.fail(errs.Wrap(errs.ErrCodeComposition, err, "embed snapshot"))
		return
	}

	var buf bytes.Buffer
	if err := doc.Export(&buf); err != nil {
		r.fail(errs.Wrap(errs.ErrCodeComposition, err, "serialize document"))
		return
	}
	if err := target.Deliver(ctx, t.FileName, buf.Bytes()); err != nil {
		r.fail(errs.Wrap(errs.ErrCodeComposition, err, "deliver %s", t.FileName))
		return
	}

	r.out.Size = buf.Len()
	r.out.Status = StatusExported
	r.advance(Exported)
}

func (r *attempt) advance(to State) {
	from := r.out.State
	if !from.CanTransition(to) {
		// Unreachable unless run is miswired.
		panic("report: invalid transition " + from.String() + " -> " + to.String())
	}
	r.out.State = to
	r.out.Transitions = append(r.out.Transitions, to)
	r.c.logger.Debug("report state", "id", r.out.ID, "from", from, "to", to)
}

func (r *attempt) fail(err error) {
	r.out.Err = err
	r.out.Status = StatusFailed
	r.c.logger.Warn("report failed", "id", r.out.ID, "state", r.out.State, "err", err)
	r.advance(Failed)
}
