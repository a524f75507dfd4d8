package cli

import (
	"github.com/msbuild-skills/msbuild-expert/engine/knowledge/store"
	"github.com/msbuild-skills/msbuild-expert/engine/mcptools"
	"github.com/msbuild-skills/msbuild-expert/pkg/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// MCPCmd returns the command serving the routing tools over stdio MCP.
// Logs go to stderr so stdout stays reserved for the protocol.
func MCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve domain check, intent and prompt tools over MCP stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			st, err := store.Load(ctx, afero.NewOsFs(), cfg.Knowledge.Dir)
			if err != nil {
				return err
			}
			return mcptools.ServeStdio(mcptools.NewServer(st))
		},
	}
	cmd.Flags().String("knowledge-dir", "knowledge", "Directory holding compiled *.lock.md bundles")
	return cmd
}
