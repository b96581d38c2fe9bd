package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/symwriter/pkg/cache"
	"github.com/matzehuels/symwriter/pkg/observability"
	"github.com/matzehuels/symwriter/pkg/render"
	"github.com/matzehuels/symwriter/pkg/symbolfile"
)

// GraphOptions configures Runner.Graph.
type GraphOptions struct {
	Format   string // FormatDOT or FormatSVG
	Detailed bool   // show dependencies and properties in node labels

	// Refresh skips cache reads.
	Refresh bool

	// Generator is the symwriter version, part of the cache key.
	Generator string
}

// Graph renders the reference graph of every symbol in f as DOT or SVG.
// SVG output is cached; DOT is cheap enough to always rebuild.
func (r *Runner) Graph(ctx context.Context, f *symbolfile.File, opts GraphOptions) (out []byte, err error) {
	format, detailed := opts.Format, opts.Detailed
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	symbols := f.Symbols()
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format, len(symbols))
	defer func() { hooks.OnRenderComplete(ctx, format, time.Since(start), err) }()

	dot := render.ToDOT(symbols, render.Options{Detailed: detailed})
	if format == FormatDOT {
		return []byte(dot), nil
	}

	key := r.Keyer.GraphKey(cache.Hash(f.Source), cache.GraphKeyOpts{
		Format:    format,
		Detailed:  detailed,
		Generator: opts.Generator,
	})
	cacheHooks := observability.Cache()
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "graph")
			return data, nil
		}
		cacheHooks.OnCacheMiss(ctx, "graph")
	}

	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, svg, cache.TTLGraph); err != nil {
		r.Logger.Warn("cache write failed", "graph", format, "error", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "graph", len(svg))
	}
	return svg, nil
}
