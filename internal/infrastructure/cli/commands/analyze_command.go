package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rickhohler/cider-tool/internal/app"
	"github.com/rickhohler/cider-tool/internal/domain"
)

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand(container *app.Container) *cobra.Command {
	var (
		bundle  string
		details bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze iOS app bundle. Displays relevant information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.AnalyzeService == nil {
				return errors.New(ErrAnalyzeServiceUnavailable)
			}
			out := cmd.OutOrStdout()

			meta, err := container.AnalyzeService.Metadata(bundle)
			if err != nil {
				return err
			}
			displayMetadata(out, meta)

			if details {
				displayDetails(out, container.AnalyzeService.Details(bundle, meta))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bundle, "bundle", "", "Path to app bundle")
	cmd.Flags().BoolVar(&details, "details", false, "Also inspect the embedded app executable and provisioning profile")

	return cmd
}

func displayMetadata(out io.Writer, meta domain.ArchiveMetadata) {
	fmt.Fprintf(out, "ApplicationPath:    %s\n", meta.ApplicationPath)
	fmt.Fprintf(out, "CFBundleIdentifier: %s\n", meta.BundleIdentifier)
	fmt.Fprintf(out, "SigningIdentity:    %s\n", meta.SigningIdentity)
	fmt.Fprintf(out, "Team:               %s\n", meta.Team)
}

func displayDetails(out io.Writer, d domain.BundleDetails) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Embedded Application")
	fmt.Fprintln(out, "--------------------")
	fmt.Fprintf(out, "Path:           %s\n", d.AppPath)
	fmt.Fprintf(out, "Executable:     %s\n", orNotFound(d.Executable))
	fmt.Fprintf(out, "Architectures:  %s\n", orNotFound(strings.Join(d.Architectures, ", ")))

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Embedded Provisioning Profile")
	fmt.Fprintln(out, "-----------------------------")
	if d.Profile == nil {
		fmt.Fprintln(out, "(not found)")
		return
	}
	fmt.Fprintf(out, "Name:           %s\n", d.Profile.Name)
	fmt.Fprintf(out, "Team ID:        %s\n", d.Profile.TeamID)
	fmt.Fprintf(out, "App ID:         %s\n", d.Profile.AppID)
	fmt.Fprintf(out, "UUID:           %s\n", d.Profile.UUID)
	fmt.Fprintf(out, "Expiration:     %s\n", d.Profile.ExpirationDate.Format("2006-01-02"))
	fmt.Fprintf(out, "Expired:        %v\n", d.Profile.Expired)
}

func orNotFound(value string) string {
	if value == "" {
		return "(not found)"
	}
	return value
}
