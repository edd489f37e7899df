package slicer

import (
	"context"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

// DefaultPrefix is the band name prefix used when none is given.
const DefaultPrefix = "slice"

// DefaultDirection slices along +Z.
var DefaultDirection = v3.Vec{X: 0, Y: 0, Z: 1}

// Options configures a slicing run.
type Options struct {
	// Direction is the slicing axis. A non-unit direction is normalized
	// before use.
	Direction v3.Vec
	// Prefix is prepended to band indices to form band names.
	Prefix string
}

// Slice runs graph construction, classification and partitioning with
// reduction over a mesh given as vertex coordinates and undirected edges.
//
// Input errors are fatal: no partial result is returned. The context is
// checked between passes.
func Slice(ctx context.Context, coords []v3.Vec, edges [][2]int, opts Options) (*Result, error) {
	if err := errors.ValidatePrefix(opts.Prefix); err != nil {
		return nil, err
	}
	g, err := NewGraph(coords, edges, opts.Direction)
	if err != nil {
		return nil, err
	}
	return SliceGraph(ctx, g, opts.Prefix)
}

// SliceGraph runs classification and partitioning over an already built graph.
func SliceGraph(ctx context.Context, g *Graph, prefix string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	order := g.Order()
	bands := Classify(g.Vertices, order, g.Threshold)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := Partition(g.Vertices, bands, order)

	return newResult(g, prefix, bands, p), nil
}
