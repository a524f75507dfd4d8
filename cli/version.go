package cli

import (
	"encoding/json"
	"fmt"

	"github.com/msbuild-skills/msbuild-expert/pkg/version"
	"github.com/spf13/cobra"
)

// VersionCmd prints build information.
func VersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintf(out, "msbuild-expert %s (commit %s, built %s)\n",
				info.Version, info.CommitHash, info.BuildDate)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
