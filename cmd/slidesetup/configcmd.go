package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/slidesetup/internal/config"
)

var configInitOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the slidesetup configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with the default settings",
	Long: `Write a configuration file with the default settings.

The file is written to the given path, the --config path, or
~/.config/slidesetup/config.toml. An existing file is only replaced
with --force.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configPathCmd)

	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false,
		"Overwrite an existing configuration file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := globalOpts.configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = config.ConfigPath()
	}
	path, err := absPath(path)
	if err != nil {
		return err
	}

	if err := initConfig(path, configInitOpts.force); err != nil {
		return err
	}
	logger.Info("wrote config", "path", path)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

// initConfig writes the default configuration to path.
func initConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return config.DefaultConfig().Save(path)
}
