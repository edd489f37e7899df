package slicer

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// boxMesh returns a triangulated unit-square prism of height h: four
// vertices at z=0 (ids 0-3) and four at z=h (ids 4-7). The first edge joins
// vertex 0 to vertex 1, so the spacing unit is 1.
func boxMesh(h float64) ([]v3.Vec, [][2]int) {
	coords := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: h}, {X: 1, Y: 0, Z: h}, {X: 0, Y: 1, Z: h}, {X: 1, Y: 1, Z: h},
	}
	edges := [][2]int{
		// bottom and top squares
		{0, 1}, {1, 3}, {3, 2}, {2, 0},
		{4, 5}, {5, 7}, {7, 6}, {6, 4},
		// verticals
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
		// face diagonals
		{0, 3}, {4, 7}, {0, 5}, {1, 7}, {3, 6}, {2, 4},
	}
	return coords, edges
}

// tubeMesh returns an open tube of rings stacked along +Z. Each ring has
// segments vertices with unit chord length; rings are dz apart and joined by
// vertical and diagonal edges.
func tubeMesh(segments, rings int, dz float64) ([]v3.Vec, [][2]int) {
	r := 1 / (2 * math.Sin(math.Pi/float64(segments)))
	var coords []v3.Vec
	var edges [][2]int
	id := func(ring, seg int) int { return ring*segments + (seg % segments) }

	for k := 0; k < rings; k++ {
		for s := 0; s < segments; s++ {
			a := 2 * math.Pi * float64(s) / float64(segments)
			coords = append(coords, v3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a), Z: float64(k) * dz})
		}
	}
	for k := 0; k < rings; k++ {
		for s := 0; s < segments; s++ {
			edges = append(edges, [2]int{id(k, s), id(k, s+1)})
			if k+1 < rings {
				edges = append(edges, [2]int{id(k, s), id(k+1, s)})
				edges = append(edges, [2]int{id(k, s), id(k+1, s+1)})
			}
		}
	}
	return coords, edges
}

// pathMesh returns vertices 0..n-1 on the Z axis step apart, joined in a path.
func pathMesh(n int, step float64) ([]v3.Vec, [][2]int) {
	coords := make([]v3.Vec, n)
	edges := make([][2]int, 0, n-1)
	for i := range coords {
		coords[i] = v3.Vec{Z: float64(i) * step}
		if i > 0 {
			edges = append(edges, [2]int{i - 1, i})
		}
	}
	return coords, edges
}

func contains(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
