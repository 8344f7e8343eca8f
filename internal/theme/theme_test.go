package theme

import (
	"encoding/json"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestShapeFor(t *testing.T) {
	tests := []struct {
		version  string
		expected Shape
	}{
		{"", ShapeThemes},
		{"0.48.0", ShapeThemes},
		{"v0.49.29", ShapeThemes},
		{"51.0.0", ShapeThemes},
		{"0.47.5", ShapeTheme},
		{"v0.42.0", ShapeTheme},
		{"0.48.0-beta.1", ShapeTheme},
		{"not-a-version", ShapeThemes},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShapeFor(tt.version))
		})
	}
}

func TestConfiguration_MarshalJSON_Shapes(t *testing.T) {
	cfg := &Configuration{
		Dark:  Asset{"name": "tokyonight"},
		Light: Asset{"name": "tokyolight"},
	}

	t.Run("default themes", func(t *testing.T) {
		data, err := json.Marshal(cfg)
		require.NoError(t, err)
		assert.JSONEq(t, `{"themes":{"dark":{"name":"tokyonight"},"light":{"name":"tokyolight"}}}`, string(data))
	})

	t.Run("legacy theme", func(t *testing.T) {
		legacy := *cfg
		legacy.Shape = ShapeTheme
		data, err := json.Marshal(&legacy)
		require.NoError(t, err)
		assert.JSONEq(t, `{"theme":{"dark":{"name":"tokyonight"},"light":{"name":"tokyolight"}}}`, string(data))
	})
}

func TestConfiguration_MarshalYAML(t *testing.T) {
	cfg := &Configuration{
		Dark:  Asset{"name": "tokyonight"},
		Light: Asset{"name": "tokyolight"},
		Shape: ShapeThemes,
	}

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var decoded map[string]map[string]map[string]string
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "tokyonight", decoded["themes"]["dark"]["name"])
	assert.Equal(t, "tokyolight", decoded["themes"]["light"]["name"])
}

func TestConfiguration_Get(t *testing.T) {
	cfg := &Configuration{Dark: Asset{"a": 1.0}, Light: Asset{"b": 2.0}}

	assert.Equal(t, cfg.Dark, cfg.Get(NameDark))
	assert.Equal(t, cfg.Light, cfg.Get(NameLight))
	assert.Nil(t, cfg.Get("sepia"))
}

func TestAssetError_Is(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "x.json", Err: fs.ErrNotExist}
	err := &AssetError{Theme: NameDark, Location: "/t/x.json", Kind: ErrAssetNotFound, Err: cause}

	assert.ErrorIs(t, err, ErrAssetNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrAssetParse)
	assert.Contains(t, err.Error(), "dark theme (/t/x.json)")

	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr bool
	}{
		{"json object", "a.json", `{"name":"x","colors":{}}`, false},
		{"yaml object", "a.yaml", "name: x\ncolors: {}\n", false},
		{"yml extension", "a.yml", "name: x\n", false},
		{"unknown extension parsed as json", "a.theme", `{"name":"x"}`, false},
		{"truncated json", "a.json", `{"name":`, true},
		{"json array", "a.json", `[1,2]`, true},
		{"json null", "a.json", `null`, true},
		{"trailing data", "a.json", `{"a":1} {"b":2}`, true},
		{"stray brace", "a.json", `{"a":1}}`, true},
		{"stray bracket", "a.json", `{"a":1}]`, true},
		{"trailing whitespace", "a.json", "{\"name\":\"x\"}\n\n", false},
		{"empty", "a.json", ``, true},
		{"empty yaml", "a.yaml", ``, true},
		{"yaml list", "a.yaml", "- a\n- b\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := Parse(tt.file, []byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, asset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "x", asset["name"])
		})
	}
}
