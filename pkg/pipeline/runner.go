package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/symwriter/pkg/cache"
	"github.com/matzehuels/symwriter/pkg/manifest"
	"github.com/matzehuels/symwriter/pkg/observability"
	"github.com/matzehuels/symwriter/pkg/symbol"
	"github.com/matzehuels/symwriter/pkg/symbolfile"
)

// Runner executes generation runs with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedUnit is the cache encoding of a UnitResult.
type cachedUnit struct {
	Content []byte              `json:"content"`
	Deps    []symbol.Dependency `json:"deps"`
}

// Generate writes every unit of f and aggregates their dependencies.
//
// Units are generated concurrently, at most opts.Parallelism at a time. The
// first failing unit cancels the run and its error is returned.
func (r *Runner) Generate(ctx context.Context, f *symbolfile.File, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	runID := uuid.NewString()
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, runID, len(f.Units))
	defer func() {
		hooks.OnGenerateComplete(ctx, runID, len(f.Units), time.Since(start), err)
	}()

	sourceHash := cache.Hash(f.Source)
	units := make([]UnitResult, len(f.Units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for i, u := range f.Units {
		g.Go(func() error {
			unitStart := time.Now()
			res, err := r.unit(gctx, f, u, sourceHash, opts)
			hooks.OnUnitComplete(gctx, runID, u.Path, u.Language, res.Cached, time.Since(unitStart), err)
			if err != nil {
				return err
			}
			units[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result = &Result{
		RunID:     runID,
		Units:     units,
		Manifests: make(map[string][]byte),
	}
	sources := make([]symbol.DependencyContainer, len(units))
	for i, u := range units {
		sources[i] = u
		if u.Cached {
			result.Stats.CacheHits++
		}
	}
	result.Dependencies = manifest.Collect(sources...)

	if err := r.manifests(f.Module, result); err != nil {
		return nil, err
	}

	result.Stats.Units = len(units)
	result.Stats.Duration = time.Since(start)
	r.Logger.Info("generated units",
		"run", runID,
		"units", result.Stats.Units,
		"cached", result.Stats.CacheHits,
		"dependencies", len(result.Dependencies),
		"duration", result.Stats.Duration)

	return result, nil
}

// unit generates one unit, serving it from the cache when possible.
// Cache failures are logged and never fail the unit.
func (r *Runner) unit(ctx context.Context, f *symbolfile.File, u symbolfile.Unit, sourceHash string, opts Options) (UnitResult, error) {
	if err := ctx.Err(); err != nil {
		return UnitResult{Path: u.Path, Language: u.Language}, err
	}

	key := r.Keyer.UnitKey(sourceHash, cache.UnitKeyOpts{
		Path:      u.Path,
		Language:  u.Language,
		Generator: opts.Generator,
		Unbounded: opts.Unbounded,
		Header:    unitHeader(u, opts),
	})
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		var data []byte
		var hit bool
		err := cache.RetryWithBackoff(ctx, func() (err error) {
			data, hit, err = r.Cache.Get(ctx, key)
			return err
		})
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "unit", u.Path, "error", err)
		case hit:
			var cu cachedUnit
			if err := json.Unmarshal(data, &cu); err == nil {
				cacheHooks.OnCacheHit(ctx, "unit")
				return UnitResult{
					Path:     u.Path,
					Language: u.Language,
					Content:  cu.Content,
					Deps:     cu.Deps,
					Cached:   true,
				}, nil
			}
			r.Logger.Debug("discarding undecodable cache entry", "unit", u.Path)
		}
		cacheHooks.OnCacheMiss(ctx, "unit")
	}

	res, err := GenerateUnit(f, u, opts, r.Logger)
	if err != nil {
		return res, err
	}

	if data, err := json.Marshal(cachedUnit{Content: res.Content, Deps: res.Deps}); err == nil {
		err := cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, key, data, cache.TTLUnit)
		})
		if err != nil {
			r.Logger.Warn("cache write failed", "unit", u.Path, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "unit", len(data))
		}
	}
	return res, nil
}

// manifests renders go.mod and package.json into result when the module
// declares them and the run produced dependencies of their type.
func (r *Runner) manifests(m symbolfile.Module, result *Result) error {
	deps := result.Dependencies

	if m.Path != "" && len(manifest.ByType(deps, symbol.DependencyGo)) > 0 {
		data, err := manifest.GoMod(m.Path, m.Go, deps)
		if err != nil {
			return fmt.Errorf("render %s: %w", ManifestGoMod, err)
		}
		result.Manifests[ManifestGoMod] = data
	}

	if m.Name != "" && len(manifest.ByType(deps, symbol.DependencyNpm, symbol.DependencyNpmDev)) > 0 {
		data, err := manifest.PackageJSON(m.Name, m.Version, deps)
		if err != nil {
			return fmt.Errorf("render %s: %w", ManifestPackageJSON, err)
		}
		result.Manifests[ManifestPackageJSON] = data
	}
	return nil
}

// Close closes the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
