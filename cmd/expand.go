package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/mdinclude/internal/logging"
)

var expandCmd = &cobra.Command{
	Use:     "expand [TEMPLATE OUTPUT]",
	Aliases: []string{"e"},
	Short:   "Expand a template, or every configured job",
	Long: `Expand include pragmas in TEMPLATE and write the merged document to
OUTPUT. Without arguments every job listed in the configuration is expanded.

The output file is replaced atomically, and only when expansion succeeds.

Examples:
  mdinclude expand README.template.md README.md
  mdinclude expand --pristine docs/guide.src.md docs/guide.md
  mdinclude expand                # Run all configured jobs`,
	Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("expected TEMPLATE and OUTPUT, got only %q", args[0])
		}
		return nil
	}),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	jobs, err := rt.jobs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine := rt.engine()

	for _, job := range jobs {
		perf := logging.StartOperation(rt.logger, "expand")

		if _, err := engine.Expand(ctx, job.Template, job.Output); err != nil {
			perf.EndWithError(ctx, err)
			return err
		}

		perf.End(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Expanded %s -> %s\n", job.Template, job.Output)
	}

	return nil
}
