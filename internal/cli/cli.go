// Package cli implements the seatplan command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/buildinfo"
	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "seatplan"

	// envPrefix prefixes environment variables read through viper.
	envPrefix = "SEATPLAN"
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
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Seatplan allocates exam seats and prints seat plans and duty rosters",
		Long:         `Seatplan splits an exam's students across rooms, lays each room out as a numbered seat grid, assigns invigilators, and renders paginated seat plans and duty rosters as PDF, SVG, JSON or terminal text.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.seatPlanCommand())
	root.AddCommand(c.rosterCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerFlagCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheSettings selects the artifact cache backend.
type cacheSettings struct {
	noCache  bool
	memory   bool
	redisURL string
	dir      string
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cs cacheSettings, keyer cache.Keyer) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, cs)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache picks Redis when a URL is configured, an in-process cache when
// asked for one, the file cache otherwise, and no cache at all with
// --no-cache.
func (c *CLI) newCache(ctx context.Context, cs cacheSettings) (cache.Cache, error) {
	switch {
	case cs.noCache:
		return cache.NewNullCache(), nil
	case cs.redisURL != "":
		c.Logger.Debug("Using redis cache")
		return cache.NewRedisCache(ctx, cache.RedisOptions{URL: cs.redisURL})
	case cs.memory:
		c.Logger.Debug("Using in-memory cache")
		return cache.NewMemoryCache(), nil
	}

	dir := cs.dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("No cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
	}
	c.Logger.Debug("Using file cache", "dir", dir)
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/seatplan/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPDF}
	}
	return strings.Split(s, ",")
}
