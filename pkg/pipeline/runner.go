package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/realassist/crimereport/pkg/chart"
	errs "github.com/realassist/crimereport/pkg/errors"
	"github.com/realassist/crimereport/pkg/integrations/crimestats"
	"github.com/realassist/crimereport/pkg/observability"
	"github.com/realassist/crimereport/pkg/report"
)

// StatsSource returns yearly statistics for a query.
// *crimestats.Client implements it.
type StatsSource interface {
	Yearly(ctx context.Context, q crimestats.Query, refresh bool) ([]crimestats.Record, error)
}

// Runner encapsulates pipeline execution.
//
// A Runner accepts one run at a time: a call to Execute while another is in
// flight fails with a BUSY error instead of queueing, matching a disabled
// "generate" button.
type Runner struct {
	Source StatsSource
	Logger *log.Logger

	running atomic.Bool
}

// NewRunner creates a runner reading from src.
func NewRunner(src StatsSource, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source: src,
		Logger: logger,
	}
}

// Busy reports whether a run is in flight.
func (r *Runner) Busy() bool {
	return r.running.Load()
}

// Execute runs the complete fetch → chart → compose pipeline and delivers
// the report to target.
//
// When composition fails, the returned Result still carries the Outcome with
// the user-visible status alongside the error.
func (r *Runner) Execute(ctx context.Context, opts Options, target report.Target) (*Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, errs.Wrap(errs.ErrCodeBusy, report.ErrBusy, "report generation")
	}
	defer r.running.Store(false)

	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	records, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Records = records
	result.Stats.RecordCount = len(records)
	result.Stats.FetchTime = time.Since(fetchStart)

	opts.Logger.Info("fetched statistics",
		"query", opts.Query().String(),
		"records", len(records),
		"duration", result.Stats.FetchTime)

	// Stage 2: Chart
	view := BuildView(records, opts)
	result.View = view

	// Stage 3: Compose
	composeStart := time.Now()
	composer := report.NewComposer(opts.EffectiveTemplate(),
		report.WithLogger(opts.Logger),
		report.WithSubject(opts.Query().String()))
	outcome := composer.Compose(ctx, view, target)
	view.Detach()

	result.Outcome = outcome
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.ReportSize = outcome.Size

	if outcome.Err != nil {
		opts.Logger.Error("report failed",
			"id", outcome.ID,
			"state", outcome.State,
			"err", outcome.Err)
		return result, outcome.Err
	}

	opts.Logger.Info("composed report",
		"id", outcome.ID,
		"file", outcome.FileName,
		"size", outcome.Size,
		"duration", result.Stats.ComposeTime)
	return result, nil
}

// Fetch runs the fetch stage alone. Backend failures are wrapped as
// FETCH_FAILED with the user-visible fetch status as message.
func (r *Runner) Fetch(ctx context.Context, opts Options) ([]crimestats.Record, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	q := opts.Query()

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, q.Region)
	start := time.Now()
	records, err := r.Source.Yearly(ctx, q, opts.Refresh)
	hooks.OnFetchComplete(ctx, q.Region, len(records), time.Since(start), err)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFetch, err, "%s", crimestats.StatusFetchFailed)
	}
	return records, nil
}

// BuildView creates the chart view for records.
func BuildView(records []crimestats.Record, opts Options) *chart.View {
	return chart.NewView(
		chart.FromRecords(records, opts.Offense),
		chart.WithSize(opts.ChartWidth, opts.ChartHeight),
		chart.WithHeading(opts.Heading),
	)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
