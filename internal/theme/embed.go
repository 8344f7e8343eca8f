package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// EmbeddedThemes contains all bundled theme definitions.
//
//go:embed themes/*.json
var EmbeddedThemes embed.FS

// embeddedDir is the directory inside EmbeddedThemes holding the definitions.
const embeddedDir = "themes"

// Default definition files backing the dark and light themes.
const (
	DefaultDarkFile  = "tokyonight.json"
	DefaultLightFile = "tokyolight.json"
)

// GetEmbeddedTheme retrieves a bundled theme definition by file name.
// Returns the raw content and whether it was found.
func GetEmbeddedTheme(file string) ([]byte, bool) {
	data, err := EmbeddedThemes.ReadFile(embeddedDir + "/" + file)
	if err != nil {
		return nil, false
	}
	return data, true
}

// BundledFiles returns the file names of all embedded theme definitions,
// sorted.
func BundledFiles() []string {
	var files []string

	entries, err := fs.ReadDir(EmbeddedThemes, embeddedDir)
	if err != nil {
		return []string{DefaultDarkFile, DefaultLightFile}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		if isDefinitionFile(name) {
			files = append(files, name)
		}
	}

	slices.Sort(files)
	return files
}

// isDefinitionFile reports whether name has an extension RawLoader can parse.
func isDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
