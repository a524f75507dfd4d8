package cli

import (
	"github.com/msbuild-skills/msbuild-expert/engine/infra/server"
	"github.com/msbuild-skills/msbuild-expert/pkg/config"
	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
	"github.com/msbuild-skills/msbuild-expert/pkg/version"
	"github.com/spf13/cobra"
)

// ServeCmd returns the command that runs the gateway.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Copilot webhook gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			info := version.Get()
			logger.FromContext(ctx).Info("Starting msbuild-expert",
				"version", info.Version,
				"commit", info.CommitHash,
				"signature_required", cfg.SignatureRequired(),
			)
			srv, err := server.NewServer(ctx, cfg)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().String("host", "0.0.0.0", "Host interface to bind")
	cmd.Flags().Int("port", 3000, "Port to listen on")
	cmd.Flags().Int64("max-body-bytes", 1<<20, "Maximum accepted request body size")
	cmd.Flags().String("knowledge-dir", "knowledge", "Directory holding compiled *.lock.md bundles")
	cmd.Flags().Bool("monitoring", false, "Expose Prometheus metrics")
	cmd.Flags().String("monitoring-path", "/metrics", "Path of the metrics endpoint")
	return cmd
}
