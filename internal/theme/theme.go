package theme

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

// Name is a logical theme slot the host renders with.
type Name string

const (
	NameDark  Name = "dark"
	NameLight Name = "light"
)

// Names returns the logical theme names in resolution order.
func Names() []Name {
	return []Name{NameDark, NameLight}
}

// Asset is a decoded theme definition. Its schema belongs to the host;
// the resolver hands it through unchanged.
type Asset map[string]any

// Shape selects the key the host expects the theme pair under.
type Shape string

const (
	// ShapeThemes is {"themes": {"dark": ..., "light": ...}}.
	ShapeThemes Shape = "themes"
	// ShapeTheme is {"theme": {"dark": ..., "light": ...}}, used by older hosts.
	ShapeTheme Shape = "theme"
)

// ThemesShapeSince is the first host version expecting ShapeThemes.
const ThemesShapeSince = "v0.48.0"

// ShapeFor returns the result shape for a host version. Empty or
// unparseable versions are treated as current hosts.
func ShapeFor(version string) Shape {
	if version == "" {
		return ShapeThemes
	}
	v := version
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ShapeThemes
	}
	if semver.Compare(v, ThemesShapeSince) < 0 {
		return ShapeTheme
	}
	return ShapeThemes
}

// Configuration is the resolved theme pair handed to the host.
// Both entries are populated in every Configuration returned by Resolve.
type Configuration struct {
	Dark  Asset
	Light Asset
	Shape Shape
}

// Get returns the asset for a logical name.
func (c *Configuration) Get(name Name) Asset {
	switch name {
	case NameDark:
		return c.Dark
	case NameLight:
		return c.Light
	default:
		return nil
	}
}

// MarshalJSON encodes the configuration in the shape the host expects.
func (c *Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.hostValue())
}

// MarshalYAML encodes the configuration in the shape the host expects.
func (c *Configuration) MarshalYAML() (any, error) {
	return c.hostValue(), nil
}

func (c *Configuration) hostValue() map[string]map[Name]Asset {
	key := c.Shape
	if key == "" {
		key = ShapeThemes
	}
	return map[string]map[Name]Asset{
		string(key): {
			NameDark:  c.Dark,
			NameLight: c.Light,
		},
	}
}

// Error kinds surfaced by theme resolution.
var (
	ErrAssetNotFound = errors.New("theme asset not found")
	ErrAssetParse    = errors.New("theme asset is not valid structured data")
)

// AssetError describes a failed theme load.
type AssetError struct {
	Theme    Name
	Location string
	Kind     error // ErrAssetNotFound or ErrAssetParse
	Err      error
}

func (e *AssetError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s theme (%s): %v", e.Theme, e.Location, e.Kind)
	}
	return fmt.Sprintf("%s theme (%s): %v: %v", e.Theme, e.Location, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *AssetError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
