package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/slidesetup/internal/adapter/output"
	"github.com/jmylchreest/slidesetup/internal/config"
	"github.com/jmylchreest/slidesetup/internal/theme"
)

var themesOpts struct {
	dir         string
	hostVersion string
	loader      string
	format      string
	watch       bool
	list        bool
	dump        string
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Resolve the dark and light syntax-highlighting themes",
	Long: `Resolve the dark and light themes and print the configuration the
host consumes.

The host version selects the result shape: {"themes": {...}} for current
hosts and {"theme": {...}} for hosts older than ` + theme.ThemesShapeSince + `.

Loader strategies:
  auto       use the host loader when the themes live in a directory
  delegated  always hand the file path to the host loader
  raw        read and parse the definitions directly

Examples:
  # Print the bundled tokyonight/tokyolight pair
  slidesetup themes

  # Resolve from a deck's setup directory for an older host
  slidesetup themes --dir ./slides/setup --host-version 0.47.0

  # Summarize and keep re-resolving while editing the definitions
  slidesetup themes --dir ./slides/setup --format text --watch

  # Copy a bundled definition into a deck to customize it
  slidesetup themes --list
  slidesetup themes --dump tokyonight.json > ./slides/setup/tokyonight.json`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().StringVar(&themesOpts.dir, "dir", "",
		"Theme directory (default: themes.dir from config, or the bundled definitions)")
	themesCmd.Flags().StringVar(&themesOpts.hostVersion, "host-version", "",
		"Host version used to select the result shape")
	themesCmd.Flags().StringVar(&themesOpts.loader, "loader", "",
		"Loader strategy: auto, delegated, raw")
	themesCmd.Flags().StringVarP(&themesOpts.format, "format", "f", "",
		"Output format: json, yaml, text")
	themesCmd.Flags().BoolVarP(&themesOpts.watch, "watch", "w", false,
		"Keep running and re-resolve when a definition changes")
	themesCmd.Flags().BoolVar(&themesOpts.list, "list", false,
		"List the bundled definition files and exit")
	themesCmd.Flags().StringVar(&themesOpts.dump, "dump", "",
		"Print a bundled definition file verbatim and exit")
	themesCmd.MarkFlagsMutuallyExclusive("list", "dump", "watch")
}

func runThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if themesOpts.list {
		return listBundled(out)
	}
	if themesOpts.dump != "" {
		return dumpBundled(out, themesOpts.dump)
	}

	if themesOpts.dir != "" {
		cfg.Themes.Dir = themesOpts.dir
		// Flag paths are relative to where the user typed them.
		if abs, err := absPath(themesOpts.dir); err == nil {
			cfg.Themes.Dir = abs
		}
	}
	if themesOpts.hostVersion != "" {
		cfg.Host.Version = themesOpts.hostVersion
	}
	if themesOpts.loader != "" {
		cfg.Themes.Loader = themesOpts.loader
	}
	if themesOpts.format != "" {
		cfg.Output.Format = themesOpts.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	base, err := cfg.ThemeBase()
	if err != nil {
		return err
	}
	host := hostFor(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := theme.Setup(ctx, host, base, logger)
	if err != nil {
		return err
	}

	// The text summary and the watcher need the resolver's locations.
	var resolver *theme.Resolver
	if format == output.FormatText || themesOpts.watch {
		if resolver, err = theme.NewHostResolver(host, base, logger); err != nil {
			return err
		}
	}

	var entries []output.ThemeEntry
	if resolver != nil {
		entries = output.ThemeEntries(resolver, conf)
	}
	if err := output.WriteThemes(out, format, conf, entries); err != nil {
		return err
	}

	if !themesOpts.watch {
		return nil
	}
	return watchThemes(ctx, resolver, format, out)
}

// hostFor describes this process as the host calling the theme setup hook.
func hostFor(c *config.Config) theme.Host {
	return theme.Host{
		Version:   c.Host.Version,
		LoadTheme: hostLoadTheme,
		DarkFile:  c.Themes.Dark,
		LightFile: c.Themes.Light,
		Strategy:  theme.Strategy(c.Themes.Loader),
	}
}

func listBundled(w io.Writer) error {
	for _, file := range theme.BundledFiles() {
		if _, err := fmt.Fprintln(w, file); err != nil {
			return err
		}
	}
	return nil
}

func dumpBundled(w io.Writer, file string) error {
	data, ok := theme.GetEmbeddedTheme(file)
	if !ok {
		return fmt.Errorf("no bundled definition %q (see --list)", file)
	}
	_, err := w.Write(data)
	return err
}

// watchThemes re-prints the configuration whenever a definition changes,
// until interrupted.
func watchThemes(ctx context.Context, resolver *theme.Resolver, format output.FormatType, out io.Writer) error {
	w, err := theme.NewWatcher(resolver, logger)
	if err != nil {
		return err
	}
	w.SetDebounce(cfg.Watch.Debounce.Duration())
	w.SetChangeCallback(printOnChange(resolver, format, out))

	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return err
	}
	logger.Info("watching theme definitions", "dir", resolver.Base().Dir())

	<-ctx.Done()
	return w.Stop()
}

// printOnChange returns the watcher callback writing each re-resolved
// configuration to out. Failures go to the log.
func printOnChange(resolver *theme.Resolver, format output.FormatType, out io.Writer) func(*theme.Configuration, error) {
	return func(conf *theme.Configuration, err error) {
		if err != nil {
			logger.Error("failed to re-resolve themes", "error", err)
			return
		}
		if err := output.WriteThemes(out, format, conf, output.ThemeEntries(resolver, conf)); err != nil {
			logger.Warn("failed to write themes", "error", err)
		}
	}
}
