package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/skyreg/internal/config"
	"github.com/muurk/skyreg/internal/ui"
)

var forceInit bool

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Replace an existing settings file without asking")

	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with default values",
	Example: `  # Create the default settings file
  skyreg config init

  # Write settings somewhere else
  skyreg config init --config ./skyreg.yaml`,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	force := forceInit
	err = config.Init(path, force)
	if errors.Is(err, config.ErrConfigExists) && ui.IsTerminal(os.Stdin) {
		if !ui.ConfirmOverwrite(os.Stdin, cmd.OutOrStdout(), path) {
			return nil
		}
		err = config.Init(path, true)
	}
	if err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to replace it)", err)
		}
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Settings written", ui.Param{Key: "Path", Value: path})
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		data, err := settings.Marshal()
		if err != nil {
			return err
		}

		source := path
		if _, statErr := os.Stat(path); statErr != nil {
			source = path + " (not found, showing defaults)"
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("Settings", "skyreg config show", ui.Param{Key: "File", Value: source})
		p.PrintListing("config.yaml", string(data))
		return nil
	},
}
