package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/conneroisu/mdinclude/internal/include"
)

var checkCmd = &cobra.Command{
	Use:   "check [TEMPLATE OUTPUT]",
	Short: "Verify generated files are up to date",
	Long: `Expand each job in memory and compare the result with the file on disk.
Nothing is written. The command fails, printing a unified diff, when any
output is missing or stale; this is meant for CI.

Examples:
  mdinclude check
  mdinclude check README.template.md README.md
  mdinclude check --quiet         # Only the exit status`,
	Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("expected TEMPLATE and OUTPUT, got only %q", args[0])
		}
		return nil
	}),
	RunE: runCheck,
}

var checkQuiet bool

// errStale is returned when at least one output differs from its expansion.
var errStale = errors.New("generated files are out of date; run 'mdinclude expand'")

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Do not print diffs")
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	out := cmd.OutOrStdout()
	stale := 0

	for _, job := range jobs {
		want, err := engine.Render(ctx, job.Template)
		if err != nil {
			return err
		}

		have, err := os.ReadFile(engine.Resolver().Abs(job.Output))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read output %s: %w", job.Output, err)
		}

		if string(have) == want {
			rt.logger.Debug(ctx, "Output is up to date", "output", job.Output)
			continue
		}

		stale++
		fmt.Fprintf(out, "✗ %s is out of date with %s\n", job.Output, job.Template)

		if !checkQuiet {
			diff, err := unifiedDiff(job.Output, string(have), want)
			if err != nil {
				return err
			}
			fmt.Fprint(out, diff)
		}
	}

	if stale > 0 {
		return errStale
	}

	fmt.Fprintf(out, "✓ %d generated file(s) up to date\n", len(jobs))

	return nil
}

func unifiedDiff(output, have, want string) (string, error) {
	name := filepath.ToSlash(output)

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        include.SplitLines(have),
		B:        include.SplitLines(want),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
}
