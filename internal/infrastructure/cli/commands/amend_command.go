package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rickhohler/cider-tool/internal/app"
	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/infrastructure/cli/helpers"
	"github.com/rickhohler/cider-tool/internal/pkg/filesystem"
)

// NewAmendCommand creates the amend command
func NewAmendCommand(container *app.Container) *cobra.Command {
	var (
		bundle          string
		bundleID        string
		signingIdentity string
		team            string
		identityFile    string
		password        string
		noInput         bool
	)

	cmd := &cobra.Command{
		Use:   "amend",
		Short: "Set bundle properties",
		Long: "Rewrite the bundle identifier, signing identity and team of an .xcarchive.\n" +
			"Values not given as flags are prompted for; a blank answer keeps the current value.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.AmendService == nil {
				return errors.New(ErrAmendServiceUnavailable)
			}
			out := cmd.OutOrStdout()

			req := domain.AmendRequest{
				Bundle:       bundle,
				NoInput:      noInput,
				IdentityFile: identityFile,
			}
			flags := cmd.Flags()
			if flags.Changed("bundle-id") {
				req.BundleID = &bundleID
			}
			if flags.Changed("signing-identity") {
				req.SigningIdentity = &signingIdentity
			}
			if flags.Changed("team") {
				req.Team = &team
			}
			if identityFile != "" {
				req.IdentityPassword = resolvePassword(container, flags.Changed("password"), password)
			}

			svc := *container.AmendService
			svc.Prompter = helpers.NewFieldPrompter(cmd.InOrStdin(), out)

			result, err := svc.Run(cmd.Context(), req)
			if errors.Is(err, domain.ErrInvalidBundle) {
				fmt.Fprintln(out, invalidBundleMessage(bundle))
				return nil
			}
			displayAmendResult(out, result)
			return err
		},
	}

	cmd.Flags().StringVar(&bundle, "bundle", "", "Path to xcarchive bundle")
	cmd.Flags().StringVar(&bundleID, "bundle-id", "", "New bundle identifier (skips the prompt)")
	cmd.Flags().StringVar(&signingIdentity, "signing-identity", "", "New signing identity (skips the prompt)")
	cmd.Flags().StringVar(&team, "team", "", "New Apple developer team id (skips the prompt)")
	cmd.Flags().StringVar(&identityFile, "identity", "", "PKCS#12 file whose certificate supplies signing identity and team")
	cmd.Flags().StringVar(&password, "password", "", "Password for --identity (defaults to $CIDER_P12_PASSWORD or ~/.cider/.env)")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never prompt; fields without a flag stay unchanged")

	return cmd
}

func resolvePassword(container *app.Container, explicit bool, password string) string {
	if explicit || container.ConfigLoader == nil {
		return password
	}
	return container.ConfigLoader.Secret(container.Config.Identity.PasswordEnv)
}

func invalidBundleMessage(bundle string) string {
	if bundle != "" && filesystem.IsDir(bundle) {
		return MsgBundleNotArchive
	}
	return MsgBundleNotFound
}

// displayAmendResult prints one confirmation line per applied change
func displayAmendResult(out io.Writer, result domain.AmendResult) {
	for _, change := range result.Changes {
		fmt.Fprintf(out, "+ Changed %s from '%s' to '%s'\n", change.Field, change.OldValue, change.NewValue)
	}
}
