package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/realassist/crimereport/internal/server"
	"github.com/realassist/crimereport/pkg/observability"
	"github.com/realassist/crimereport/pkg/report"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	source   sourceFlags
	addr     string
	scale    float64
	template string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:  ":8080",
		scale: report.DefaultCaptureScale,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over HTTP",
		Long: `Serve GET /report?state=AK&from=2012&to=2022 as a report.pdf download,
plus /healthz and Prometheus /metrics. One report is composed at a time;
overlapping requests get 409 Conflict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "chart capture scale factor")
	cmd.Flags().StringVar(&opts.template, "template", "", "branding file (.toml or .yaml)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	tmpl, err := report.LoadTemplate(opts.template)
	if err != nil {
		return err
	}
	if opts.scale > 0 {
		tmpl.CaptureScale = opts.scale
	}

	runner, store, err := c.newRunner(ctx, opts.source)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.NewHandler(runner, tmpl, c.Logger, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	printInfo("Listening on %s", StyleLink.Render("http://localhost"+opts.addr))
	printKeyValue("Backend", opts.source.backend)
	printNextStep("Download a report", "curl -OJ http://localhost"+opts.addr+"/report")

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}
