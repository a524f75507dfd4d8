package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/msbuild-skills/msbuild-expert/pkg/config"
	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootCmd returns the msbuild-expert root command.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "msbuild-expert",
		Short: "MSBuild expert gateway and knowledge compiler",
		Long: `msbuild-expert augments Copilot chat requests with MSBuild expertise.
It serves the webhook gateway, compiles skill documents into knowledge
bundles, and exposes the routing pipeline as MCP tools.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
	}
	root.SetGlobalNormalizationFunc(normalizeFlagName)
	logger.AddFlags(root)
	root.PersistentFlags().String("env-file", ".env", "Path to environment file")
	root.AddCommand(
		ServeCmd(),
		CompileCmd(),
		AskCmd(),
		MCPCmd(),
		ConfigCmd(),
		VersionCmd(),
	)
	return root
}

// SetupGlobalConfig loads the env file, resolves configuration from defaults,
// environment and changed flags, configures logging, and stores both in the
// command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	flags := make(map[string]any)
	extractCLIFlags(cmd, flags)
	cfg, err := config.NewService().Load(ctx, config.NewCLISource(flags))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logSource, err := cmd.Flags().GetBool("log-source")
	if err != nil {
		return fmt.Errorf("failed to get log-source flag: %w", err)
	}
	logger.SetupLogger(cfg.Runtime.LogLevel, cfg.Runtime.LogJSON, logSource)
	ctx = logger.ContextWithLogger(ctx, logger.GetDefault())
	ctx = config.ContextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)
	return nil
}

// normalizeFlagName accepts snake_case spellings of dashed flags.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
