package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	errs "github.com/realassist/crimereport/pkg/errors"
	"github.com/realassist/crimereport/pkg/integrations/crimestats"
	"github.com/realassist/crimereport/pkg/pipeline"
	"github.com/realassist/crimereport/pkg/report"
)

// reportOpts holds the command-line flags for the report command.
type reportOpts struct {
	source   sourceFlags
	state    string  // two-letter state abbreviation
	from     int     // first year, inclusive
	to       int     // last year, inclusive
	output   string  // directory report.pdf is written to
	scale    float64 // capture oversampling factor
	template string  // branding overrides (.toml, .yaml)
	refresh  bool    // bypass the response cache
	tui      bool    // interactive print view
}

// reportCommand creates the report command.
func (c *CLI) reportCommand() *cobra.Command {
	opts := reportOpts{
		state:  crimestats.DefaultRegion,
		from:   crimestats.DefaultFrom,
		to:     crimestats.DefaultTo,
		output: ".",
		scale:  report.DefaultCaptureScale,
	}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate report.pdf for a state and year range",
		Long: `Fetch yearly burglary statistics, chart them and compose the branded
PDF report. The file is always named report.pdf and is only written once the
whole document has been composed.`,
		Example: `  crimereport report
  crimereport report --state TX --from 2015 --to 2020 -o out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(cmd.Context(), opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.state, "state", "s", opts.state, "state abbreviation")
	cmd.Flags().IntVar(&opts.from, "from", opts.from, "first year")
	cmd.Flags().IntVar(&opts.to, "to", opts.to, "last year")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "chart capture scale factor")
	cmd.Flags().StringVar(&opts.template, "template", "", "branding file (.toml or .yaml)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached statistics")
	cmd.Flags().BoolVarP(&opts.tui, "interactive", "i", false, "show a Print button instead of generating once")

	return cmd
}

func (c *CLI) runReport(ctx context.Context, opts reportOpts) error {
	logger := loggerFromContext(ctx)
	tmpl, err := report.LoadTemplate(opts.template)
	if err != nil {
		return err
	}

	runner, store, err := c.newRunner(ctx, opts.source)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	popts := pipeline.Options{
		Region:   opts.state,
		From:     opts.from,
		To:       opts.to,
		Refresh:  opts.refresh,
		Scale:    opts.scale,
		Template: &tmpl,
		Logger:   logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	target := report.DirTarget{Dir: opts.output}
	if opts.tui {
		return c.runInteractive(ctx, runner, popts, target)
	}

	start := time.Now()
	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating report for %s...", popts.Query()))
	spinner.Start()

	res, err := runner.Execute(ctx, popts, target)
	if err != nil {
		spinner.StopWithError(errs.UserMessage(err))
		if res != nil {
			printDetail("Report %s failed in state %s", res.Outcome.ID, res.Outcome.State)
		}
		return err
	}
	spinner.StopWithSuccess(res.Outcome.Status)

	path, _ := filepath.Abs(target.Path(res.Outcome.FileName))
	printFile(path)
	printStats(res.Stats.RecordCount, res.Stats.ReportSize, time.Since(start))
	if len(res.Records) == 0 {
		printWarning("No statistics for %s; the chart is empty", popts.Query())
	}
	prog.done(fmt.Sprintf("Composed %s", res.Outcome.FileName))
	logger.Debug("report written", "id", res.Outcome.ID, "path", path)
	return nil
}

// runInteractive serves the print view until the user quits. Logging is
// silenced so it does not tear the view; the returned error is the one of the
// last run.
func (c *CLI) runInteractive(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options, target report.DirTarget) error {
	popts.Logger = log.New(io.Discard)
	path, _ := filepath.Abs(target.Path(popts.EffectiveTemplate().FileName))

	m := NewPrintModel(ctx, fmt.Sprintf("Crime report for %s", popts.Query()), path,
		func(ctx context.Context) (*pipeline.Result, error) {
			return runner.Execute(ctx, popts, target)
		})

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	return final.(PrintModel).Err
}
