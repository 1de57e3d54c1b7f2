package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rickhohler/cider-tool/internal/app"
	configinfra "github.com/rickhohler/cider-tool/internal/infrastructure/config"
)

const (
	msgConfigurationValid       = "Configuration valid"
	msgNoDifferencesFromDefault = "No differences from default configuration."
	errConfigLoaderUnavailable  = "config loader unavailable"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect cider configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
		newConfigValidateCommand(container),
		newConfigInitCommand(container),
		newConfigDiffCommand(container),
	)

	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.ConfigLoader == nil {
				return errors.New(errConfigLoaderUnavailable)
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.ConfigLoader == nil {
				return errors.New(errConfigLoaderUnavailable)
			}
			if _, err := container.ConfigLoader.Load(cmd.Context()); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msgConfigurationValid)
			return nil
		},
	}
}

// newConfigInitCommand creates the 'config init' subcommand
func newConfigInitCommand(container *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeDefaultConfiguration(cmd.OutOrStdout(), container, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (a backup is kept)")
	return cmd
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigurationDiff(cmd.OutOrStdout(), container)
		},
	}
}

// showConfiguration displays the effective configuration in YAML format
func showConfiguration(out io.Writer, container *app.Container) error {
	data, err := yaml.Marshal(container.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// writeDefaultConfiguration creates the config file from the built-in defaults
func writeDefaultConfiguration(out io.Writer, container *app.Container, force bool) error {
	loader := container.ConfigLoader
	if loader == nil {
		return errors.New(errConfigLoaderUnavailable)
	}

	path := loader.Path()
	if _, err := os.Stat(path); err == nil {
		if !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		backup, err := loader.Backup()
		if err != nil {
			return fmt.Errorf("failed to back up configuration: %w", err)
		}
		fmt.Fprintf(out, "Backed up existing configuration to %s\n", backup)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := loader.Save(configinfra.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	fmt.Fprintf(out, "Configuration written to %s\n", path)
	return nil
}

// showConfigurationDiff shows the difference between current and default configuration
func showConfigurationDiff(out io.Writer, container *app.Container) error {
	diff := cmp.Diff(configinfra.DefaultConfig(), container.Config)

	if diff == "" {
		fmt.Fprintln(out, msgNoDifferencesFromDefault)
		return nil
	}

	fmt.Fprintln(out, diff)
	return nil
}
