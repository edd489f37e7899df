package mesh

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultWeldTolerance is the coordinate quantum used by [Weld] when none is given.
const DefaultWeldTolerance = 1e-6

// Weld turns a triangle soup into an indexed mesh. Corners whose coordinates
// agree after quantization to tol are merged, and ids are assigned in
// first-seen order. Triangles that collapse to fewer than three distinct
// vertices are dropped.
func Weld(tris [][3]v3.Vec, tol float64) *Mesh {
	if tol <= 0 {
		tol = DefaultWeldTolerance
	}
	ids := make(map[[3]int64]int)
	m := &Mesh{}

	index := func(c v3.Vec) int {
		k := [3]int64{
			int64(math.Round(c.X / tol)),
			int64(math.Round(c.Y / tol)),
			int64(math.Round(c.Z / tol)),
		}
		if id, ok := ids[k]; ok {
			return id
		}
		id := len(m.Vertices)
		ids[k] = id
		m.Vertices = append(m.Vertices, c)
		return id
	}

	for _, t := range tris {
		a, b, c := index(t[0]), index(t[1]), index(t[2])
		if a == b || b == c || a == c {
			continue
		}
		m.Faces = append(m.Faces, []int{a, b, c})
	}
	m.Edges = EdgesFromFaces(m.Faces)
	return m
}
