package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rickhohler/cider-tool/internal/app"
	"github.com/rickhohler/cider-tool/internal/infrastructure/cli/commands"
	"github.com/rickhohler/cider-tool/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	return NewRootCmdWithContainer(container), nil
}

// NewRootCmdWithContainer builds the command tree around an existing container.
func NewRootCmdWithContainer(container *app.Container) *cobra.Command {
	root := &cobra.Command{
		Use:     "cider",
		Short:   "iOS build artefact helper",
		Long:    "cider amends and analyzes .xcarchive bundles and checks the local signing toolchain.",
		Version: version.Info().String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate("cider {{.Version}}\n")

	root.AddCommand(commands.NewAmendCommand(container))
	root.AddCommand(commands.NewAnalyzeCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}
