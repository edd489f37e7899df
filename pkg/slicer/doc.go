// Package slicer partitions a triangulated closed surface into ordered bands
// along a direction vector and extracts, per band, boundary chains that
// approximate where the band meets its neighbors.
//
// # Overview
//
// A run is four strictly sequential passes over an arena of [Vertex] records:
//
//  1. [NewGraph] builds per-vertex adjacency from an edge list, projects every
//     vertex onto the slicing direction and derives the spacing threshold.
//  2. [Classify] walks vertices in ascending projection order and greedily
//     groups them into bands relative to a floating anchor.
//  3. [Partition] discovers, per band, connected subsets of same-band vertices
//     seeded at vertices that touch another band (breadth-first, FIFO).
//  4. [Subset.Reduce] reduces each subset to an ordered chain immediately after
//     its creation, keeping members that are not the local projection extremum
//     among their cross-subset neighbors.
//
// [Slice] runs all four passes and returns a [Result].
//
// # Basic Usage
//
//	res, err := slicer.Slice(ctx, coords, edges, slicer.Options{
//	    Direction: v3.Vec{Z: 1},
//	    Prefix:    "slice",
//	})
//	if err != nil {
//	    return err
//	}
//	ids, err := res.Select(3) // every chain vertex of band 3
//
// # Pass Ownership
//
// Each mutable label has exactly one writer. Band labels are produced by
// [Classify] and read-only afterward. Subset labels are written at most once
// and the visited set is monotonic; both belong to the partition pass.
//
// # Known Artifacts
//
// The per-vertex extremal test can admit a few vertices forming short
// triangular excursions off the main chain, and a boundary seed is listed
// twice when it is itself a transition vertex. Both are kept as observable
// behavior; chains are approximations, not simple closed polylines.
//
// # Concurrency
//
// A run is single-threaded. A [Result] is immutable once returned and safe
// for concurrent reads.
package slicer
