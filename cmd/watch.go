package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/mdinclude/internal/config"
	"github.com/conneroisu/mdinclude/internal/include"
	"github.com/conneroisu/mdinclude/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Re-expand configured jobs when their sources change",
	Long: `Expand every configured job, then watch the root for changes to files
matching watch.patterns (and not watch.ignore) and expand all jobs again
after each debounced batch of changes. Job outputs are never treated as
sources.

Examples:
  mdinclude watch
  mdinclude watch --verbose       # List every changed file`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchVerbose bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Verbose output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	if len(rt.cfg.Jobs) == 0 {
		return errors.New("no jobs configured; add jobs to .mdinclude.yml to watch them")
	}

	out := cmd.OutOrStdout()
	engine := rt.engine()

	fileWatcher, err := watcher.NewFileWatcher(rt.root, rt.cfg.Watch.Debounce, rt.logger)
	if err != nil {
		return err
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.PatternFilter(rt.cfg.Watch.Patterns, rt.cfg.Watch.Ignore))
	fileWatcher.AddFilter(watcher.ExcludeFilter(jobOutputs(engine.Resolver(), rt.cfg.Jobs)...))

	fileWatcher.AddHandler(func(ctx context.Context, events []watcher.ChangeEvent) error {
		if watchVerbose {
			fmt.Fprintln(out, "📁 File changes detected:")
			for _, event := range events {
				fmt.Fprintf(out, "   %s: %s\n", event.Type, event.Path)
			}
		} else {
			fmt.Fprintf(out, "📁 %d file(s) changed\n", len(events))
		}

		return expandJobs(ctx, engine, rt.cfg.Jobs, out)
	})

	if err := fileWatcher.AddRecursive(rt.root, watcher.IgnoreFilter(rt.cfg.Watch.Ignore)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", rt.root, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failing job is reported but does not stop the watch.
	if err := expandJobs(ctx, engine, rt.cfg.Jobs, out); err != nil {
		rt.logger.Error(ctx, err, "Initial expansion failed")
	}

	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	fmt.Fprintf(out, "👀 Watching %s for changes... (Press Ctrl+C to stop)\n", rt.root)

	<-ctx.Done()
	fmt.Fprintln(out, "\n🛑 Stopping file watcher...")

	return nil
}

// expandJobs runs every job and returns the joined failures.
func expandJobs(ctx context.Context, engine *include.Engine, jobs []config.Job, out io.Writer) error {
	var errs []error

	for _, job := range jobs {
		if _, err := engine.Expand(ctx, job.Template, job.Output); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Template, err))
			continue
		}
		fmt.Fprintf(out, "✓ %s -> %s\n", job.Template, job.Output)
	}

	return errors.Join(errs...)
}

// jobOutputs lists the jobs' outputs in the slash-separated root-relative
// form the watcher reports paths in.
func jobOutputs(resolver include.Resolver, jobs []config.Job) []string {
	outputs := make([]string, 0, len(jobs))
	for _, job := range jobs {
		outputs = append(outputs, filepath.ToSlash(resolver.Rel(job.Output)))
	}

	return outputs
}
