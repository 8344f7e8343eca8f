// Package output writes theme configurations and shortcut lists for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/slidesetup/internal/shortcut"
	"github.com/jmylchreest/slidesetup/internal/theme"
)

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON FormatType = "json"
	FormatYAML FormatType = "yaml"
	FormatText FormatType = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (use json, yaml, or text)", s)
	}
}

// Encode writes v as indented JSON or as YAML.
func Encode(w io.Writer, format FormatType, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	default:
		return fmt.Errorf("format %s cannot encode values", format)
	}
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(7)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ThemeEntry describes one resolved theme for text output.
type ThemeEntry struct {
	Name     theme.Name
	Location string
	Size     int64 // -1 when unknown
	Asset    theme.Asset
}

// ThemeEntries builds the text-output entries for a configuration
// resolved by r.
func ThemeEntries(r *theme.Resolver, cfg *theme.Configuration) []ThemeEntry {
	entries := make([]ThemeEntry, 0, 2)
	for _, name := range theme.Names() {
		loc := r.Location(name)
		size, err := loc.Size()
		if err != nil {
			size = -1
		}
		entries = append(entries, ThemeEntry{
			Name:     name,
			Location: loc.String(),
			Size:     size,
			Asset:    cfg.Get(name),
		})
	}
	return entries
}

// WriteThemes writes a configuration. Text output is a short summary per
// theme; JSON and YAML write the host-shaped configuration.
func WriteThemes(w io.Writer, format FormatType, cfg *theme.Configuration, entries []ThemeEntry) error {
	if format != FormatText {
		return Encode(w, format, cfg)
	}

	for _, e := range entries {
		line := labelStyle.Render(string(e.Name)) + " " + nameStyle.Render(describeAsset(e.Asset))
		size := "?"
		if e.Size >= 0 {
			size = humanize.Bytes(uint64(e.Size))
		}
		line += " " + dimStyle.Render(fmt.Sprintf("%s (%s)", e.Location, size))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// describeAsset summarizes well-known fields of an editor-style theme
// definition, falling back to the number of top-level keys.
func describeAsset(a theme.Asset) string {
	var parts []string
	if name, ok := a["name"].(string); ok && name != "" {
		parts = append(parts, name)
	}
	if kind, ok := a["type"].(string); ok && kind != "" {
		parts = append(parts, "["+kind+"]")
	}
	if tokens, ok := a["tokenColors"].([]any); ok {
		parts = append(parts, fmt.Sprintf("%d token rules", len(tokens)))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d keys", len(a))
	}
	return strings.Join(parts, " ")
}

// WriteShortcuts writes a shortcut list. Text output is the full key help
// view.
func WriteShortcuts(w io.Writer, format FormatType, list []shortcut.Shortcut) error {
	if format != FormatText {
		return Encode(w, format, list)
	}

	h := help.New()
	h.ShowAll = true
	_, err := fmt.Fprintln(w, h.View(shortcut.NewKeyMap(list)))
	return err
}
