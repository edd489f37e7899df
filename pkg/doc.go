// Package pkg provides the core libraries for Bandslicer.
//
// # Overview
//
// Bandslicer partitions the vertices of a 3D mesh into bands along a slicing
// direction, splits each band into connected subsets and reduces every subset
// to the chain of vertices bordering other bands. The pkg directory is
// organized into four areas:
//
//  1. [slicer] - Domain logic (graph, band classification, partition, reduction)
//  2. [mesh] - Mesh input (JSON and OBJ codecs, vertex welding, sample meshes)
//  3. [render] - Exports of a result (JSON, DOT, SVG, OBJ)
//  4. [pipeline] - Orchestration (load → slice → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	mesh file / URL / request body / sample
//	         ↓
//	    [mesh] package (decode, weld duplicate positions)
//	         ↓
//	    [slicer] package (bands → subsets → chains)
//	         ↓
//	    [render] package (json, dot, svg, obj)
//
// # Quick Start
//
//	m, _, _ := mesh.ReadFile("bunny.obj")
//	res, _ := slicer.Slice(ctx, m.Vertices, m.Edges, slicer.Options{
//	    Direction: slicer.DefaultDirection,
//	    Prefix:    slicer.DefaultPrefix,
//	})
//	ids, _ := res.Select(2)
//	dot := render.ToDOT(res, render.Options{Highlight: ids})
//
// # Supporting Packages
//
// [cache] - Content-addressed result and artifact caching with file, Redis
// and null backends.
//
// [config] - TOML configuration with XDG default locations.
//
// [errors] - Structured errors with machine-readable codes.
//
// [httputil] - Remote mesh downloads with retry and backoff.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information stamped at build time.
//
// [slicer]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/slicer
// [mesh]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/mesh
// [render]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bandslicer/pkg/buildinfo
package pkg
