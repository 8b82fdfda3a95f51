package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/internal/server"
	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/observability"
)

// apiKeyPrefix scopes API cache entries apart from CLI entries when both
// share a Redis instance.
const apiKeyPrefix = "api:"

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve seat plans and duty rosters over HTTP",
		Long: `Serve seat plans and duty rosters over HTTP.

Routes:
  GET  /healthz
  POST /v1/seat-plan?format=pdf|svg|json|txt
  POST /v1/duty-roster?format=pdf|svg|json|txt
  POST /v1/preview?kind=seat-plan|duty-roster

Request bodies are exam documents in TOML or JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			v := viperForCmd(cmd, logger)

			hooks := observability.NewLogHooks(logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)

			cs := cacheSettingsFrom(v)
			runner, err := c.newRunner(ctx, cs, cache.NewScopedKeyer(nil, apiKeyPrefix))
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := server.Config{
				Addr:           v.GetString(keyAddr),
				RequestTimeout: v.GetDuration(keyTimeout),
				Defaults:       pageOptions(v),
			}

			printInfo("Serving on %s", StyleLink.Render(cfg.Addr))
			printKeyValue("Page size", cfg.Defaults.PageSize)
			printKeyValue("Cache", cacheLabel(cs))

			return server.New(runner, cfg, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringP(keyAddr, "a", server.DefaultAddr, "HTTP listen address")
	cmd.Flags().Duration(keyTimeout, server.DefaultRequestTimeout, "per-request timeout")
	cmd.Flags().Bool(keyMemory, false, "keep artifacts in process memory instead of on disk")
	addPageFlags(cmd.Flags())
	addCacheFlags(cmd.Flags())

	return cmd
}

// cacheLabel describes the configured cache backend.
func cacheLabel(cs cacheSettings) string {
	switch {
	case cs.noCache:
		return "disabled"
	case cs.redisURL != "":
		return "redis"
	case cs.memory:
		return "memory"
	case cs.dir != "":
		return cs.dir
	}
	if dir, err := cacheDir(); err == nil {
		return dir
	}
	return "disabled"
}
