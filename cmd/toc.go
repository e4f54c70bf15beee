package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/mdinclude/internal/errors"
	"github.com/conneroisu/mdinclude/internal/include"
	"github.com/conneroisu/mdinclude/internal/toc"
)

var tocCmd = &cobra.Command{
	Use:   "toc FILE",
	Short: "Print a table of contents for a markdown file",
	Long: `Print a nested bullet list linking to every heading in FILE. Headings
inside fenced code, HTML comments and <pre> blocks are ignored. Anchors
follow GitHub's rules.

Examples:
  mdinclude toc README.md
  mdinclude toc --min-level 2 docs/guide.md`,
	Args: cobra.ExactArgs(1),
	RunE: runTOC,
}

var tocMinLevel int

func init() {
	rootCmd.AddCommand(tocCmd)

	tocCmd.Flags().IntVar(&tocMinLevel, "min-level", 1, "Skip headings shallower than this level")
}

func runTOC(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	path := include.NewResolver(rt.root).Abs(args[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewUnreadableTemplate(args[0], err)
	}

	headings := toc.ParseHeadings(include.SplitLines(string(data)))

	kept := headings[:0]
	for _, h := range headings {
		if h.Level >= tocMinLevel {
			kept = append(kept, h)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), strings.Join(toc.Render(kept), ""))

	return nil
}
