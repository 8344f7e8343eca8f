package theme

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	darkJSON  = `{"name":"tokyonight","type":"dark"}`
	lightJSON = `{"name":"tokyolight","type":"light"}`
)

// writeThemes writes a dark/light pair into a fresh directory.
func writeThemes(t *testing.T, dark, light string) string {
	t.Helper()
	dir := t.TempDir()
	if dark != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultDarkFile), []byte(dark), 0644))
	}
	if light != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultLightFile), []byte(light), 0644))
	}
	return dir
}

func TestResolve_EmbeddedBase(t *testing.T) {
	cfg, err := NewResolver(EmbeddedBase()).Resolve(context.Background())
	require.NoError(t, err)

	require.NotNil(t, cfg.Dark)
	require.NotNil(t, cfg.Light)
	assert.Equal(t, "tokyonight", cfg.Dark["name"])
	assert.Equal(t, "tokyolight", cfg.Light["name"])
	assert.Equal(t, ShapeThemes, cfg.Shape)
}

func TestResolve_DirBase(t *testing.T) {
	dir := writeThemes(t, darkJSON, lightJSON)
	base, err := DirBase(dir)
	require.NoError(t, err)

	cfg, err := NewResolver(base).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Dark["type"])
	assert.Equal(t, "light", cfg.Light["type"])
}

func TestResolve_FSBase(t *testing.T) {
	fsys := fstest.MapFS{
		"night.yaml": {Data: []byte("name: night\n")},
		"day.json":   {Data: []byte(`{"name":"day"}`)},
	}

	r := NewResolver(FSBase(fsys, "mem"), WithFiles("night.yaml", "day.json"))
	cfg, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "night", cfg.Dark["name"])
	assert.Equal(t, "day", cfg.Light["name"])
}

func TestResolve_MissingAsset(t *testing.T) {
	tests := []struct {
		name      string
		dark      string
		light     string
		wantTheme Name
	}{
		{"dark missing", "", lightJSON, NameDark},
		{"light missing", darkJSON, "", NameLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := DirBase(writeThemes(t, tt.dark, tt.light))
			require.NoError(t, err)

			cfg, err := NewResolver(base).Resolve(context.Background())
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAssetNotFound)

			var assetErr *AssetError
			require.True(t, errors.As(err, &assetErr))
			assert.Equal(t, tt.wantTheme, assetErr.Theme)
		})
	}
}

func TestResolve_MalformedAsset(t *testing.T) {
	base, err := DirBase(writeThemes(t, darkJSON, `{"name": "tokyolight",`))
	require.NoError(t, err)

	cfg, err := NewResolver(base).Resolve(context.Background())
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrAssetParse)
	assert.NotErrorIs(t, err, ErrAssetNotFound)
}

func TestResolve_IndependentOfWorkingDirectory(t *testing.T) {
	themesDir := writeThemes(t, darkJSON, lightJSON)
	decoyDir := writeThemes(t, `{"name":"decoy"}`, `{"name":"decoy"}`)

	// A relative base is captured against the working directory at construction.
	t.Chdir(filepath.Dir(themesDir))
	base, err := DirBase(filepath.Base(themesDir))
	require.NoError(t, err)
	r := NewResolver(base)

	first, err := r.Resolve(context.Background())
	require.NoError(t, err)

	t.Chdir(decoyDir)
	second, err := r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "tokyonight", second.Dark["name"])
	assert.True(t, filepath.IsAbs(r.Location(NameDark).Path))
}

func TestResolve_FreshAssetsPerInvocation(t *testing.T) {
	dir := writeThemes(t, darkJSON, lightJSON)
	base, err := DirBase(dir)
	require.NoError(t, err)
	r := NewResolver(base)

	first, err := r.Resolve(context.Background())
	require.NoError(t, err)
	first.Dark["name"] = "mutated"

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultLightFile), []byte(`{"name":"updated"}`), 0644))

	second, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tokyonight", second.Dark["name"])
	assert.Equal(t, "updated", second.Light["name"])
}

func TestResolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg, err := NewResolver(EmbeddedBase()).Resolve(ctx)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelegatedLoader(t *testing.T) {
	dir := writeThemes(t, darkJSON, lightJSON)
	base, err := DirBase(dir)
	require.NoError(t, err)

	var calls atomic.Int32
	loader := DelegatedLoader{LoadTheme: func(path string) (Asset, error) {
		calls.Add(1)
		return Asset{"path": path}, nil
	}}

	cfg, err := NewResolver(base, WithLoader(loader)).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	assert.Equal(t, filepath.Join(dir, DefaultDarkFile), cfg.Dark["path"])
	assert.Equal(t, filepath.Join(dir, DefaultLightFile), cfg.Light["path"])
}

func TestDelegatedLoader_Errors(t *testing.T) {
	dir := writeThemes(t, darkJSON, "")
	base, err := DirBase(dir)
	require.NoError(t, err)

	t.Run("missing file is not passed to host", func(t *testing.T) {
		var called []string
		loader := DelegatedLoader{LoadTheme: func(path string) (Asset, error) {
			called = append(called, path)
			return Asset{}, nil
		}}
		_, err := loader.Load(context.Background(), base.Locate(DefaultLightFile))
		assert.ErrorIs(t, err, ErrAssetNotFound)
		assert.Empty(t, called)
	})

	t.Run("host error becomes parse error", func(t *testing.T) {
		loader := DelegatedLoader{LoadTheme: func(string) (Asset, error) {
			return nil, errors.New("bad theme")
		}}
		_, err := loader.Load(context.Background(), base.Locate(DefaultDarkFile))
		assert.ErrorIs(t, err, ErrAssetParse)
		assert.Contains(t, err.Error(), "bad theme")
	})

	t.Run("nil asset becomes parse error", func(t *testing.T) {
		loader := DelegatedLoader{LoadTheme: func(string) (Asset, error) { return nil, nil }}
		_, err := loader.Load(context.Background(), base.Locate(DefaultDarkFile))
		assert.ErrorIs(t, err, ErrAssetParse)
	})

	t.Run("embedded base has no path", func(t *testing.T) {
		loader := DelegatedLoader{LoadTheme: func(string) (Asset, error) { return Asset{}, nil }}
		_, err := loader.Load(context.Background(), EmbeddedBase().Locate(DefaultDarkFile))
		assert.ErrorIs(t, err, ErrAssetNotFound)
	})

	t.Run("directory is not a definition", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))
		loader := DelegatedLoader{LoadTheme: func(string) (Asset, error) { return Asset{}, nil }}
		_, err := loader.Load(context.Background(), base.Locate("sub.json"))
		assert.ErrorIs(t, err, ErrAssetNotFound)
	})
}

func TestDelegatedLoader_RejectsEscapingPaths(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "outside.json"), []byte(darkJSON), 0644))
	dir := filepath.Join(parent, "themes")
	require.NoError(t, os.Mkdir(dir, 0755))
	base, err := DirBase(dir)
	require.NoError(t, err)

	var called []string
	loader := DelegatedLoader{LoadTheme: func(path string) (Asset, error) {
		called = append(called, path)
		return Asset{"name": "outside"}, nil
	}}

	asset, err := loader.Load(context.Background(), base.Locate("../outside.json"))
	assert.ErrorIs(t, err, ErrAssetNotFound)
	assert.Nil(t, asset)
	assert.Empty(t, called)
}

func TestRawLoader_RejectsEscapingPaths(t *testing.T) {
	base, err := DirBase(writeThemes(t, darkJSON, lightJSON))
	require.NoError(t, err)

	_, err = RawLoader{}.Load(context.Background(), base.Locate("../outside.json"))
	assert.ErrorIs(t, err, ErrAssetNotFound)
}
