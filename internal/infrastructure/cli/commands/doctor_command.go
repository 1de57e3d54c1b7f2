package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rickhohler/cider-tool/internal/app"
	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/infrastructure/cli/helpers"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	var verbose, noVerbose bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Show information about the installed tooling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}
			report := container.DoctorService.Run(cmd.Context())

			renderer := helpers.NewRenderer(cmd.OutOrStdout(), container.Config.Output.Color)
			displayDoctorReport(renderer, report, verbose && !noVerbose)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose output")
	cmd.Flags().BoolVar(&noVerbose, "no-verbose", false, "Summary output only (default)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "no-verbose")

	return cmd
}

// displayDoctorReport prints one summary line per probe, then any details
func displayDoctorReport(r *helpers.Renderer, report domain.DoctorReport, verbose bool) {
	r.Line(MsgDoctorHeader)
	for _, probe := range report.Probes {
		r.Summary(probe.Status, probe.Summary)
		if verbose {
			r.Detail(probe.Success(), fmt.Sprintf("`%s`, exit %d", probe.Command, probe.Exit))
		}
		for _, item := range probe.Items {
			r.Detail(true, item)
		}
	}
}
