// Package pipeline provides the report pipeline for crimereport.
//
// This package implements the complete fetch → chart → compose pipeline used
// by both `crimereport report` and `crimereport serve`, so the two entry
// points share defaults, validation and observability.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Query yearly statistics for a region and year range
//  2. Chart: Build the chart view over the fetched records
//  3. Compose: Capture the view and compose the branded PDF report
//
// After the compose stage reaches a terminal state the chart view is
// detached, whatever the outcome. Delivery is the [report.Target]'s job.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, logger)
//	opts := pipeline.Options{Region: "AK", From: 2012, To: 2022}
//	result, err := runner.Execute(ctx, opts, report.DirTarget{Dir: "."})
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/realassist/crimereport/pkg/chart"
	"github.com/realassist/crimereport/pkg/integrations/crimestats"
	"github.com/realassist/crimereport/pkg/report"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

const (
	// DefaultOffense is the charted offense column.
	DefaultOffense = crimestats.OffenseBurglary

	// DefaultChartWidth is the chart container width in CSS pixels.
	DefaultChartWidth = chart.DefaultWidth

	// DefaultChartHeight is the chart container height in CSS pixels.
	DefaultChartHeight = chart.DefaultHeight
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one report run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Fetch options
	Region  string `json:"state"`
	From    int    `json:"from"`
	To      int    `json:"to"`
	Offense string `json:"offense,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Chart options
	ChartWidth  int    `json:"chart_width,omitempty"`
	ChartHeight int    `json:"chart_height,omitempty"`
	Heading     string `json:"heading,omitempty"`

	// Compose options
	Scale float64 `json:"scale,omitempty"` // Overrides the template's capture scale

	// Runtime options (not serialized)
	Template *report.Template `json:"-"`
	Logger   *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Outcome is the composer's terminal result.
	Outcome report.Outcome

	// Records are the fetched statistics the chart was drawn from.
	Records []crimestats.Record

	// View is the chart container; detached once the run finishes.
	View *chart.View

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount int
	ReportSize  int
	FetchTime   time.Duration
	ComposeTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the query and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	q := o.Query()
	if q.Region == "" {
		q.Region = crimestats.DefaultRegion
	}
	if q.From == 0 && q.To == 0 {
		q.From, q.To = crimestats.DefaultFrom, crimestats.DefaultTo
	}
	if err := q.Validate(); err != nil {
		return err
	}
	o.Region, o.From, o.To = q.Region, q.From, q.To

	if o.Offense == "" {
		o.Offense = DefaultOffense
	}
	if o.ChartWidth <= 0 || o.ChartHeight <= 0 {
		o.ChartWidth, o.ChartHeight = DefaultChartWidth, DefaultChartHeight
	}
	if o.Heading == "" {
		o.Heading = chart.DefaultHeading
	}
	if o.Template == nil {
		t := report.DefaultTemplate()
		o.Template = &t
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Query returns the normalized statistics query.
func (o *Options) Query() crimestats.Query {
	return crimestats.Query{Region: o.Region, From: o.From, To: o.To}.Normalize()
}

// EffectiveTemplate returns the template with the scale override applied.
func (o *Options) EffectiveTemplate() report.Template {
	t := report.DefaultTemplate()
	if o.Template != nil {
		t = *o.Template
	}
	if o.Scale > 0 {
		t.CaptureScale = o.Scale
	}
	return t
}
