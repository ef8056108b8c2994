package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/realassist/crimereport/pkg/buildinfo"
	"github.com/realassist/crimereport/pkg/cache"
	"github.com/realassist/crimereport/pkg/integrations/crimestats"
	"github.com/realassist/crimereport/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "crimereport"

	// statsTTL is how long backend responses are cached.
	statsTTL = cache.DefaultTTL
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "crimereport turns crime statistics into branded PDF reports",
		Long:         `crimereport fetches yearly crime statistics for a state, charts them and composes a branded, paginated PDF report (report.pdf).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.reportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Source Factory
// =============================================================================

// sourceFlags selects the statistics backend and its cache.
type sourceFlags struct {
	backend string
	noCache bool
	redis   string
	prefix  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "backend", crimestats.DefaultBaseURL, "statistics backend endpoint")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable response caching")
	cmd.Flags().StringVar(&f.redis, "redis", "", "cache responses in Redis at this address instead of on disk")
	cmd.Flags().StringVar(&f.prefix, "cache-prefix", "", "namespace prefix for cache keys (shared Redis deployments)")
}

// newRunner creates a pipeline runner for CLI use. The returned cache must
// be closed by the caller.
func (c *CLI) newRunner(ctx context.Context, f sourceFlags) (*pipeline.Runner, cache.Cache, error) {
	store, err := newCache(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	client := crimestats.NewClient(store, f.backend, statsTTL)
	if f.prefix != "" {
		client.WithKeyer(cache.NewScopedKeyer(nil, f.prefix))
	}
	return pipeline.NewRunner(client, c.Logger), store, nil
}

func newCache(ctx context.Context, f sourceFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.redis != "":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return cache.NewRedisCache(ctx, f.redis, os.Getenv("REDIS_PASSWORD"), 0)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/crimereport/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
