package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/msbuild-skills/msbuild-expert/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration diagnostics",
	}
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var (
		format      string
		showSources bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration values and their sources",
		Long: `Display the resolved configuration. With --sources each value is
annotated with the layer (default, env, cli) that provided it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := config.NewService()
			flags := make(map[string]any)
			extractCLIFlags(cmd, flags)
			cfg, err := svc.Load(cmd.Context(), config.NewCLISource(flags))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			entries := flattenConfig(cfg, svc)
			return formatConfigOutput(cmd.OutOrStdout(), entries, format, showSources)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (json, yaml, table)")
	cmd.Flags().BoolVarP(&showSources, "sources", "s", false, "Show configuration sources")
	return cmd
}

type configEntry struct {
	Key    string            `json:"key"    yaml:"key"`
	Value  any               `json:"value"  yaml:"value"`
	Source config.SourceType `json:"source" yaml:"source"`
}

func flattenConfig(cfg *config.Config, svc config.Service) []configEntry {
	fields := config.Fields()
	entries := make([]configEntry, 0, len(fields))
	for _, f := range fields {
		entries = append(entries, configEntry{Key: f.Path, Value: f.Value(cfg), Source: svc.GetSource(f.Path)})
	}
	return entries
}

func formatConfigOutput(w io.Writer, entries []configEntry, format string, showSources bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(configData(entries, showSources))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(configData(entries, showSources)); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if showSources {
			fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
		} else {
			fmt.Fprintln(tw, "KEY\tVALUE")
		}
		for _, e := range entries {
			if showSources {
				fmt.Fprintf(tw, "%s\t%v\t%s\n", e.Key, e.Value, e.Source)
			} else {
				fmt.Fprintf(tw, "%s\t%v\n", e.Key, e.Value)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func configData(entries []configEntry, showSources bool) any {
	if showSources {
		return entries
	}
	values := make(map[string]any, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	return values
}
