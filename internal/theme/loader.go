package theme

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader turns a located definition into an Asset.
// Failures are reported as *AssetError with Kind ErrAssetNotFound or
// ErrAssetParse.
type Loader interface {
	Load(ctx context.Context, loc Location) (Asset, error)
}

// RawLoader reads definition bytes through the base filesystem and parses
// them itself. JSON is used unless the file has a YAML extension.
type RawLoader struct{}

// Load implements Loader.
func (RawLoader) Load(ctx context.Context, loc Location) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := loc.ReadFile()
	if err != nil {
		return nil, &AssetError{Location: loc.String(), Kind: ErrAssetNotFound, Err: err}
	}

	asset, err := Parse(loc.File, data)
	if err != nil {
		return nil, &AssetError{Location: loc.String(), Kind: ErrAssetParse, Err: err}
	}
	return asset, nil
}

// Parse decodes a definition. The format is chosen by the file extension
// of name; the top level must be an object.
func Parse(name string, data []byte) (Asset, error) {
	var asset Asset

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &asset); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&asset); err != nil {
			return nil, err
		}
		// Anything after the top-level value, even a stray delimiter, is an error.
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected data after top-level object")
		}
	}

	if asset == nil {
		return nil, errors.New("definition is empty or not an object")
	}
	return asset, nil
}

// LoadFunc is a host-supplied theme loader taking a filesystem path.
type LoadFunc func(path string) (Asset, error)

// DelegatedLoader hands the resolved filesystem path to the host, which
// owns the definition format. Only bases backed by a directory can be
// used with it.
type DelegatedLoader struct {
	LoadTheme LoadFunc
}

// Load implements Loader. Missing files are reported before the host
// function is called; any error the host returns is treated as a parse
// failure unless it already carries a kind.
func (d DelegatedLoader) Load(ctx context.Context, loc Location) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.LoadTheme == nil {
		return nil, errors.New("delegated loader has no host LoadTheme function")
	}
	if !fs.ValidPath(loc.File) {
		return nil, &AssetError{
			Location: loc.String(),
			Kind:     ErrAssetNotFound,
			Err:      &fs.PathError{Op: "open", Path: loc.File, Err: fs.ErrInvalid},
		}
	}
	if loc.Path == "" {
		return nil, &AssetError{
			Location: loc.String(),
			Kind:     ErrAssetNotFound,
			Err:      errors.New("location has no filesystem path"),
		}
	}

	info, err := os.Stat(loc.Path)
	if err != nil {
		return nil, &AssetError{Location: loc.String(), Kind: ErrAssetNotFound, Err: err}
	}
	if info.IsDir() {
		return nil, &AssetError{
			Location: loc.String(),
			Kind:     ErrAssetNotFound,
			Err:      fmt.Errorf("%s is a directory", loc.Path),
		}
	}

	asset, err := d.LoadTheme(loc.Path)
	if err != nil {
		var assetErr *AssetError
		if errors.As(err, &assetErr) {
			return nil, assetErr
		}
		kind := ErrAssetParse
		if errors.Is(err, os.ErrNotExist) {
			kind = ErrAssetNotFound
		}
		return nil, &AssetError{Location: loc.String(), Kind: kind, Err: err}
	}
	if asset == nil {
		return nil, &AssetError{
			Location: loc.String(),
			Kind:     ErrAssetParse,
			Err:      errors.New("host loader returned no theme"),
		}
	}
	return asset, nil
}
