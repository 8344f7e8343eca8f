package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/slidesetup/internal/theme"
)

// hostLoadTheme is the loader this CLI offers as the host. YAML is a
// superset of JSON, so one decoder covers both definition formats.
func hostLoadTheme(path string) (theme.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var asset theme.Asset
	if err := yaml.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if asset == nil {
		return nil, fmt.Errorf("decode %s: definition is empty", path)
	}
	return asset, nil
}
