package theme

import (
	"context"
	"fmt"
	"log/slog"
)

// Strategy names how definitions are turned into assets.
type Strategy string

const (
	// StrategyAuto uses the host loader when it is available and the base
	// is a directory, and RawLoader otherwise.
	StrategyAuto Strategy = "auto"
	// StrategyRaw always reads and parses definitions directly.
	StrategyRaw Strategy = "raw"
	// StrategyDelegated always hands the file path to the host loader.
	StrategyDelegated Strategy = "delegated"
)

// Host is the capability object the presentation host passes to its
// theme setup hook.
type Host struct {
	// Version is the host version, used to pick the result shape.
	Version string
	// LoadTheme is the host's own definition loader. Nil when the host
	// has no loader facility.
	LoadTheme LoadFunc
	// DarkFile and LightFile override the default definition files.
	DarkFile  string
	LightFile string
	// Strategy forces a loader. Empty means StrategyAuto.
	Strategy Strategy
}

// SelectLoader picks the loader for a host and base. Under StrategyAuto
// the host's own loader is preferred; RawLoader is the fallback for hosts
// without one and for bases that have no filesystem path.
func SelectLoader(host Host, base Base) (Loader, error) {
	switch host.Strategy {
	case StrategyRaw:
		return RawLoader{}, nil
	case StrategyDelegated:
		if host.LoadTheme == nil {
			return nil, fmt.Errorf("delegated loader needs a host LoadTheme function")
		}
		if !base.HasPath() {
			return nil, fmt.Errorf("delegated loader needs a theme directory, %s has no filesystem path", base)
		}
		return DelegatedLoader{LoadTheme: host.LoadTheme}, nil
	case "", StrategyAuto:
		if host.LoadTheme != nil && base.HasPath() {
			return DelegatedLoader{LoadTheme: host.LoadTheme}, nil
		}
		return RawLoader{}, nil
	default:
		return nil, fmt.Errorf("unknown loader strategy %q", host.Strategy)
	}
}

// NewHostResolver builds the resolver the setup hook uses for host and
// base. Callers that re-resolve, such as a Watcher, share it.
func NewHostResolver(host Host, base Base, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loader, err := SelectLoader(host, base)
	if err != nil {
		return nil, err
	}
	shape := ShapeFor(host.Version)
	logger.Debug("theme setup", "host_version", host.Version, "shape", shape, "loader", loaderName(loader))

	return NewResolver(base,
		WithLoader(loader),
		WithFiles(host.DarkFile, host.LightFile),
		WithShape(shape),
		WithLogger(logger),
	), nil
}

// Setup is the theme setup hook: it resolves the dark/light pair relative
// to base and returns it in the shape the host version expects. Errors
// are returned unmodified so the host aborts startup.
func Setup(ctx context.Context, host Host, base Base, logger *slog.Logger) (*Configuration, error) {
	r, err := NewHostResolver(host, base, logger)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx)
}

func loaderName(l Loader) string {
	switch l.(type) {
	case DelegatedLoader:
		return "delegated"
	case RawLoader:
		return "raw"
	default:
		return "custom"
	}
}
