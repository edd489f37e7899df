// Package pipeline provides the load → slice → render pipeline for bandslicer.
//
// The CLI and the HTTP API both run meshes through a [Runner], so caching,
// logging and instrumentation behave the same regardless of entry point.
//
// # Stages
//
//  1. Load: read a mesh file, decode inline mesh bytes or generate a sample
//  2. Slice: run [slicer.Slice] over the mesh
//  3. Render: export the result in the requested formats
//
// Slicing results are cached under a key derived from the mesh content hash,
// the direction and the prefix; rendered artifacts are cached under the result
// key plus format and highlight selection.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    InputPath: "bunny.obj",
//	    Direction: [3]float64{0, 0, 1},
//	    Formats:   []string{"json", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
//
// [slicer.Slice]: github.com/matzehuels/bandslicer/pkg/slicer.Slice
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bandslicer/pkg/cache"
	"github.com/matzehuels/bandslicer/pkg/errors"
	"github.com/matzehuels/bandslicer/pkg/mesh"
	"github.com/matzehuels/bandslicer/pkg/render"
	"github.com/matzehuels/bandslicer/pkg/slicer"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultResultTTL is how long slicing results stay cached.
	DefaultResultTTL = 7 * 24 * time.Hour

	// DefaultArtifactTTL is how long rendered artifacts stay cached.
	DefaultArtifactTTL = 24 * time.Hour
)

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{string(render.FormatJSON)}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON decoding for API
// requests; the mesh input itself is supplied out of band.
type Options struct {
	// Input: exactly one of InputPath, MeshData or Sample.
	InputPath  string              `json:"-"`
	MeshData   []byte              `json:"-"`
	MeshFormat string              `json:"mesh_format,omitempty"` // format of MeshData, default json
	Sample     *mesh.SampleOptions `json:"-"`

	// Slice options
	Direction [3]float64 `json:"direction"`
	Prefix    string     `json:"prefix,omitempty"`

	// Highlight selects chain vertices to report and emphasize in renders.
	Highlight *Selection `json:"highlight,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cached results and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Cache lifetimes. Zero uses the defaults.
	ResultTTL   time.Duration `json:"-"`
	ArtifactTTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Selection names a band and optionally some of its subsets.
type Selection struct {
	Band    int   `json:"band"`
	Subsets []int `json:"subsets,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs and API responses.
	RunID string

	Mesh *mesh.Mesh

	// MeshHash is the content hash of the mesh input.
	MeshHash string

	// Slices is the slicing result.
	Slices *slicer.Result

	// Selected holds the highlighted vertex ids when Options.Highlight is set.
	Selected []int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices      int
	Edges         int
	Bands         int
	Subsets       int
	ChainVertices int
	Unclaimed     int
	LoadTime      time.Duration
	SliceTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	SliceHit  bool // Whether the slicing result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormats checks that all formats are known export formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	inputs := 0
	if o.InputPath != "" {
		inputs++
	}
	if len(o.MeshData) > 0 {
		inputs++
	}
	if o.Sample != nil {
		inputs++
	}
	if inputs != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of input path, mesh data or sample is required (got %d)", inputs)
	}
	if len(o.MeshData) > 0 {
		if o.MeshFormat == "" {
			o.MeshFormat = string(mesh.FormatJSON)
		}
		if _, err := mesh.ParseFormat(o.MeshFormat); err != nil {
			return err
		}
	}

	if o.Direction == ([3]float64{}) {
		o.Direction = [3]float64{0, 0, 1}
	}
	if err := errors.ValidateDirection(o.Direction); err != nil {
		return err
	}
	if o.Prefix == "" {
		o.Prefix = slicer.DefaultPrefix
	}
	if err := errors.ValidatePrefix(o.Prefix); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.ResultTTL == 0 {
		o.ResultTTL = DefaultResultTTL
	}
	if o.ArtifactTTL == 0 {
		o.ArtifactTTL = DefaultArtifactTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ResultKeyOpts returns cache key options for the slicing result.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{Direction: o.Direction, Prefix: o.Prefix}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string, highlight []int) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Highlight: highlight}
}
