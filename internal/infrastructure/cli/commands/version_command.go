package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rickhohler/cider-tool/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show cider build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Info()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			displayBuildInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print the version number only")
	return cmd
}

// displayBuildInfo prints the resolved build metadata, skipping unknown fields
func displayBuildInfo(out io.Writer, info version.BuildInfo) {
	fmt.Fprintf(out, "cider %s\n", info.Version)

	if info.Commit != "" {
		commit := info.Commit
		if info.Modified {
			commit += " (modified)"
		}
		fmt.Fprintf(out, "  commit:   %s\n", commit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(out, "  built:    %s\n", info.BuildDate)
	}
	fmt.Fprintf(out, "  go:       %s\n", info.GoVersion)
	fmt.Fprintf(out, "  platform: %s\n", info.Platform)
}
