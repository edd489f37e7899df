package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"

	"github.com/matzehuels/bandslicer/pkg/cache"
	"github.com/matzehuels/bandslicer/pkg/httputil"
	"github.com/matzehuels/bandslicer/pkg/mesh"
	"github.com/matzehuels/bandslicer/pkg/observability"
	"github.com/matzehuels/bandslicer/pkg/render"
	"github.com/matzehuels/bandslicer/pkg/slicer"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher *httputil.Fetcher // downloads InputPath when it is a URL
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
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: httputil.NewFetcher(),
	}
}

// Execute runs the complete load → slice → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", result.RunID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	m, meshHash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Mesh = m
	result.MeshHash = meshHash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Vertices = len(m.Vertices)
	result.Stats.Edges = len(m.Edges)

	logger.Debug("loaded mesh",
		"vertices", len(m.Vertices),
		"edges", len(m.Edges),
		"duration", result.Stats.LoadTime)

	// Stage 2: Slice
	sliceStart := time.Now()
	res, resultKey, sliceHit, err := r.SliceWithCacheInfo(ctx, m, meshHash, opts)
	if err != nil {
		return nil, fmt.Errorf("slice: %w", err)
	}
	result.Slices = res
	result.Stats.SliceTime = time.Since(sliceStart)
	result.CacheInfo.SliceHit = sliceHit

	st := res.Stats()
	result.Stats.Bands = st.Bands
	result.Stats.Subsets = st.Subsets
	result.Stats.ChainVertices = st.ChainVertices
	result.Stats.Unclaimed = st.Unclaimed

	logger.Info("sliced mesh",
		"bands", st.Bands,
		"subsets", st.Subsets,
		"chain_vertices", st.ChainVertices,
		"unclaimed", st.Unclaimed,
		"cached", sliceHit,
		"duration", result.Stats.SliceTime)

	if opts.Highlight != nil {
		ids, err := res.Select(opts.Highlight.Band, opts.Highlight.Subsets...)
		if err != nil {
			return nil, fmt.Errorf("highlight: %w", err)
		}
		result.Selected = ids
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, m, resultKey, result.Selected, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Debug("rendered outputs",
		"formats", strings.Join(opts.Formats, ","),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the mesh input of opts and returns it with its content hash.
func (r *Runner) Load(ctx context.Context, opts Options) (*mesh.Mesh, string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", err
	}

	source := opts.InputPath
	switch {
	case opts.MeshData != nil:
		source = "request"
	case opts.Sample != nil:
		source = "sample:" + string(opts.Sample.Shape)
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)
	m, hash, err := r.load(ctx, opts)
	vertices := 0
	if m != nil {
		vertices = len(m.Vertices)
	}
	observability.Pipeline().OnLoadComplete(ctx, source, vertices, time.Since(start), err)
	return m, hash, err
}

func (r *Runner) load(ctx context.Context, opts Options) (*mesh.Mesh, string, error) {
	switch {
	case httputil.IsURL(opts.InputPath):
		format, err := mesh.FormatFromPath(httputil.FileName(opts.InputPath))
		if err != nil {
			return nil, "", err
		}
		data, err := r.Fetcher.Fetch(ctx, opts.InputPath)
		if err != nil {
			return nil, "", err
		}
		m, err := mesh.Decode(data, format)
		if err != nil {
			return nil, "", err
		}
		return m, cache.Hash(data), nil
	case opts.InputPath != "":
		m, data, err := mesh.ReadFile(opts.InputPath)
		if err != nil {
			return nil, "", err
		}
		return m, cache.Hash(data), nil
	case len(opts.MeshData) > 0:
		m, err := mesh.Decode(opts.MeshData, mesh.Format(opts.MeshFormat))
		if err != nil {
			return nil, "", err
		}
		return m, cache.Hash(opts.MeshData), nil
	default:
		m, err := mesh.Sample(*opts.Sample)
		if err != nil {
			return nil, "", err
		}
		spec, _ := json.Marshal(opts.Sample)
		return m, cache.Hash(append([]byte("sample:"), spec...)), nil
	}
}

// SliceWithCacheInfo slices m, consulting the cache first. It returns the
// result, its cache key and whether it came from the cache.
func (r *Runner) SliceWithCacheInfo(ctx context.Context, m *mesh.Mesh, meshHash string, opts Options) (*slicer.Result, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}
	key := r.Keyer.ResultKey(meshHash, opts.ResultKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if res, err := render.FromJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				return res, key, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("result cache read failed", "error", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "result")

	start := time.Now()
	observability.Pipeline().OnSliceStart(ctx, len(m.Vertices))
	d := opts.Direction
	res, err := slicer.Slice(ctx, m.Vertices, m.Edges, slicer.Options{
		Direction: v3.Vec{X: d[0], Y: d[1], Z: d[2]},
		Prefix:    opts.Prefix,
	})
	bands, subsets := 0, 0
	if res != nil {
		st := res.Stats()
		bands, subsets = st.Bands, st.Subsets
	}
	observability.Pipeline().OnSliceComplete(ctx, bands, subsets, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	if data, err := json.Marshal(res); err == nil {
		r.store(ctx, "result", key, data, opts.ResultTTL)
	}
	return res, key, false, nil
}

// Slice is a convenience wrapper that calls SliceWithCacheInfo and discards
// the cache information.
func (r *Runner) Slice(ctx context.Context, m *mesh.Mesh, meshHash string, opts Options) (*slicer.Result, error) {
	res, _, _, err := r.SliceWithCacheInfo(ctx, m, meshHash, opts)
	return res, err
}

// RenderWithCacheInfo exports res in every requested format and reports
// whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *slicer.Result, m *mesh.Mesh, resultKey string, highlight []int, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	for _, name := range opts.Formats {
		key := r.Keyer.ArtifactKey(resultKey, opts.ArtifactKeyOpts(name, highlight))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[name] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allCached = false

		format, _ := render.ParseFormat(name)
		data, err := render.Render(ctx, res, m, format, render.Options{Highlight: highlight})
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, fmt.Errorf("%s: %w", name, err)
		}
		artifacts[name] = data
		r.store(ctx, "artifact", key, data, opts.ArtifactTTL)
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allCached, nil
}

// store writes to the cache, retrying transient backend failures. Cache
// write failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
