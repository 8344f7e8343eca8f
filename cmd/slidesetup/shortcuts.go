package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/slidesetup/internal/adapter/output"
	"github.com/jmylchreest/slidesetup/internal/shortcut"
)

var shortcutsOpts struct {
	input   string
	format  string
	exclude []string
}

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Filter the host's keyboard shortcut list",
	Long: `Read the host's shortcut list and print it without the light/dark
toggle (and any names configured in shortcuts.exclude).

The input is a JSON array of objects with at least a "name" field; other
fields are passed through unchanged. Without --input the host's default
list is used. Use "--input -" to read from stdin.

Examples:
  # Show the resulting key help
  slidesetup shortcuts --format text

  # Filter a list produced by the host
  slidesetup shortcuts --input shortcuts.json > filtered.json`,
	RunE: runShortcuts,
}

func init() {
	rootCmd.AddCommand(shortcutsCmd)

	shortcutsCmd.Flags().StringVarP(&shortcutsOpts.input, "input", "i", "",
		"Shortcut list file (JSON array, - for stdin; default: host defaults)")
	shortcutsCmd.Flags().StringVarP(&shortcutsOpts.format, "format", "f", "",
		"Output format: json, yaml, text")
	shortcutsCmd.Flags().StringSliceVar(&shortcutsOpts.exclude, "exclude", nil,
		"Additional shortcut names to remove")
}

func runShortcuts(cmd *cobra.Command, args []string) error {
	formatName := cfg.Output.Format
	if shortcutsOpts.format != "" {
		formatName = shortcutsOpts.format
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	base, err := readShortcuts(shortcutsOpts.input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result := shortcut.Setup(nil, base)
	extra := append(append([]string{}, cfg.Shortcuts.Exclude...), shortcutsOpts.exclude...)
	if len(extra) > 0 {
		result = shortcut.Exclude(result, extra...)
	}
	logger.Debug("filtered shortcuts", "input", len(base), "output", len(result))

	return output.WriteShortcuts(cmd.OutOrStdout(), format, result)
}

// readShortcuts loads the base list from a file, stdin, or the defaults.
func readShortcuts(input string, stdin io.Reader) ([]shortcut.Shortcut, error) {
	var data []byte
	var err error

	switch input {
	case "":
		return shortcut.Defaults(), nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, fmt.Errorf("read shortcuts: %w", err)
	}

	return shortcut.Decode(data)
}
