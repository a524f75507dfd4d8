package cli

import (
	"fmt"
	"io"

	"github.com/msbuild-skills/msbuild-expert/engine/knowledge/compiler"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CompileCmd returns the knowledge compiler command.
func CompileCmd() *cobra.Command {
	var (
		skillsDir   string
		targetsFile string
		outputRoot  string
	)
	cmd := &cobra.Command{
		Use:   "compile [target]",
		Short: "Compile skill documents into knowledge bundles",
		Long: `Compile concatenates the SKILL.md documents of each bundle into a
<bundle>.lock.md artifact, respecting each target's character budget.
Without a target argument every target is compiled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected string
			if len(args) == 1 {
				selected = args[0]
			}
			return runCompile(cmd, afero.NewOsFs(), skillsDir, targetsFile, outputRoot, selected)
		},
	}
	cmd.Flags().StringVar(&skillsDir, "skills-dir", "skills", "Directory containing <name>/SKILL.md documents")
	cmd.Flags().StringVar(&targetsFile, "targets", "", "YAML file overriding the built-in targets")
	cmd.Flags().StringVar(&outputRoot, "output-root", "", "Base directory for relative target output paths")
	return cmd
}

func runCompile(cmd *cobra.Command, fs afero.Fs, skillsDir, targetsFile, outputRoot, selected string) error {
	targets := compiler.BuiltinTargets()
	if targetsFile != "" {
		loaded, err := compiler.LoadTargets(fs, targetsFile)
		if err != nil {
			return err
		}
		targets = loaded
	}
	c := compiler.New(fs, skillsDir, compiler.WithOutputRoot(outputRoot))
	reports, err := c.Run(cmd.Context(), targets, selected)
	if err != nil {
		return err
	}
	printReports(cmd.OutOrStdout(), reports)
	return nil
}

func printReports(w io.Writer, reports []compiler.BundleReport) {
	p := message.NewPrinter(language.English)
	for i := range reports {
		r := &reports[i]
		flag := ""
		if r.Truncated() {
			flag = " (truncated)"
		}
		p.Fprintf(w, "%s/%s: %d/%d chars, %d documents -> %s%s\n",
			r.Target, r.Bundle, r.Chars, r.Budget,
			r.Count(compiler.StatusIncluded)+r.Count(compiler.StatusTruncated), r.Path, flag)
		for _, d := range r.Documents {
			if d.Status == compiler.StatusIncluded {
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", d.Name, d.Status)
		}
	}
}
