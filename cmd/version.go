package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/mdinclude/internal/version"
)

var (
	versionFormat string
	versionShort  bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for mdinclude.

Examples:
  mdinclude version              # Show short version
  mdinclude version --detailed   # Show detailed version info
  mdinclude version --format yaml # Output as YAML`,
	Args: cobra.NoArgs,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, yaml)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	detailed, _ := cmd.Flags().GetBool("detailed")
	info := version.Get()
	out := cmd.OutOrStdout()

	switch versionFormat {
	case "yaml":
		data, err := yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("failed to encode version: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "text":
		switch {
		case versionShort:
			fmt.Fprintln(out, info.Short())
		case detailed:
			fmt.Fprintln(out, info.Detailed())
		default:
			fmt.Fprintf(out, "mdinclude %s\n", info.Short())
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, yaml)", versionFormat)
	}
}
