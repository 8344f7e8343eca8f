package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Base is the deployment location theme definitions are resolved against.
// It is captured once at construction; the process working directory is
// never consulted afterwards.
type Base struct {
	fsys fs.FS
	dir  string // absolute directory on disk, empty when not backed by one
	desc string
}

// DirBase returns a Base rooted at dir. A relative dir is made absolute
// immediately, so later changes of the working directory have no effect.
func DirBase(dir string) (Base, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Base{}, fmt.Errorf("resolve theme directory %q: %w", dir, err)
	}
	return Base{
		fsys: os.DirFS(abs),
		dir:  abs,
		desc: abs,
	}, nil
}

// EmbeddedBase returns the Base holding the definitions bundled with this
// package.
func EmbeddedBase() Base {
	sub, err := fs.Sub(EmbeddedThemes, embeddedDir)
	if err != nil {
		// embeddedDir is a compile-time constant matching the embed pattern.
		panic(err)
	}
	return Base{fsys: sub, desc: "embedded:" + embeddedDir}
}

// FSBase returns a Base reading through fsys. It has no filesystem path,
// so it can only be used with loaders that read through fs.FS.
func FSBase(fsys fs.FS, desc string) Base {
	if desc == "" {
		desc = "fs"
	}
	return Base{fsys: fsys, desc: desc}
}

// Dir returns the absolute directory backing the base, or "" if none.
func (b Base) Dir() string {
	return b.dir
}

// HasPath reports whether locations under this base map to filesystem paths.
func (b Base) HasPath() bool {
	return b.dir != ""
}

func (b Base) String() string {
	return b.desc
}

// Locate resolves a sibling definition file against the base.
func (b Base) Locate(file string) Location {
	loc := Location{
		File: path.Clean(filepath.ToSlash(file)),
		fsys: b.fsys,
		base: b.desc,
	}
	if b.dir != "" {
		loc.Path = filepath.Join(b.dir, filepath.FromSlash(loc.File))
	}
	return loc
}

// Location identifies one theme definition under a Base.
type Location struct {
	File string // slash-separated, relative to the base
	Path string // absolute filesystem path, empty for non-disk bases

	fsys fs.FS
	base string
}

// ReadFile reads the raw definition through the base's filesystem.
func (l Location) ReadFile() ([]byte, error) {
	if l.fsys == nil {
		return nil, fs.ErrNotExist
	}
	if !fs.ValidPath(l.File) {
		return nil, &fs.PathError{Op: "open", Path: l.File, Err: fs.ErrInvalid}
	}
	return fs.ReadFile(l.fsys, l.File)
}

// Size returns the size in bytes of the definition file.
func (l Location) Size() (int64, error) {
	if l.fsys == nil {
		return 0, fs.ErrNotExist
	}
	info, err := fs.Stat(l.fsys, l.File)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (l Location) String() string {
	if l.Path != "" {
		return l.Path
	}
	return l.base + "/" + l.File
}
