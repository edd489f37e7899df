package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/internal/metrics"
	"github.com/matzehuels/bandslicer/internal/server"
	"github.com/matzehuels/bandslicer/pkg/cache"
)

// apiKeyPrefix separates API cache entries from CLI ones in a shared backend.
const apiKeyPrefix = "api:"

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  POST /v1/slice    slice an inline mesh
  POST /v1/select   chain vertices of a band
  GET  /healthz     liveness
  GET  /metrics     Prometheus metrics

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, apiKeyPrefix)

			metrics.Install()
			srv := server.New(runner, c.Logger)
			srv.AllowedOrigins = origins
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins (repeatable)")

	return cmd
}
