package theme

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

// Resolver resolves the dark/light theme pair against a fixed Base.
// It holds no loaded state: every Resolve call loads fresh assets.
type Resolver struct {
	base   Base
	loader Loader
	files  map[Name]string
	shape  Shape
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLoader sets the loader strategy. Defaults to RawLoader.
func WithLoader(l Loader) Option {
	return func(r *Resolver) {
		if l != nil {
			r.loader = l
		}
	}
}

// WithFiles overrides the definition files backing each theme.
// Empty names keep the defaults.
func WithFiles(dark, light string) Option {
	return func(r *Resolver) {
		if dark != "" {
			r.files[NameDark] = dark
		}
		if light != "" {
			r.files[NameLight] = light
		}
	}
}

// WithShape sets the result shape stamped on each Configuration.
func WithShape(s Shape) Option {
	return func(r *Resolver) {
		if s != "" {
			r.shape = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver for the given base.
func NewResolver(base Base, opts ...Option) *Resolver {
	r := &Resolver{
		base:   base,
		loader: RawLoader{},
		files: map[Name]string{
			NameDark:  DefaultDarkFile,
			NameLight: DefaultLightFile,
		},
		shape:  ShapeThemes,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Base returns the base the resolver was constructed with.
func (r *Resolver) Base() Base {
	return r.base
}

// Location returns where the definition for name is resolved.
func (r *Resolver) Location(name Name) Location {
	return r.base.Locate(r.files[name])
}

// Resolve loads both themes and returns the combined configuration.
// The two loads run concurrently; the first failure cancels the other and
// is returned as-is, and no configuration is returned with it.
func (r *Resolver) Resolve(ctx context.Context) (*Configuration, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, err
	}
	logger := r.logger.With("invocation", id.String(), "base", r.base.String())
	logger.Debug("resolving themes")

	names := Names()
	assets := make([]Asset, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			loc := r.Location(name)
			asset, err := r.loader.Load(gctx, loc)
			if err != nil {
				var assetErr *AssetError
				if errors.As(err, &assetErr) {
					assetErr.Theme = name
				}
				return err
			}
			logger.Debug("loaded theme", "theme", name, "location", loc.String())
			assets[i] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("theme resolution failed", "error", err)
		return nil, err
	}

	return &Configuration{
		Dark:  assets[0],
		Light: assets[1],
		Shape: r.shape,
	}, nil
}
