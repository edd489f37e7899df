package slicer

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

// unitTolerance is how far a direction's length may stray from 1 before
// NewGraph rescales it.
const unitTolerance = 1e-9

// Vertex is one mesh vertex in the graph arena, addressed by its index.
type Vertex struct {
	Coordinates v3.Vec
	// Neighbors lists adjacent vertex ids in edge insertion order.
	// Duplicates are kept when the edge list repeats an edge.
	Neighbors []int
	// Projection is Coordinates · direction, fixed at construction.
	Projection float64
}

// Graph is the vertex adjacency graph of a mesh, projected onto a slicing
// direction. The zero value is not usable; use [NewGraph].
type Graph struct {
	Vertices  []Vertex
	Direction v3.Vec

	// SpacingUnit is the distance between vertex 0 and its first neighbor.
	SpacingUnit float64
	// Threshold is SpacingUnit·√3, the diagonal of a cube of that spacing,
	// used as the maximum projection spread from a band anchor.
	Threshold float64
}

// NewGraph builds the adjacency graph for coords and edges and projects every
// vertex onto direction. A direction within unitTolerance of unit length is
// used as given; any other is normalized first.
//
// For every edge (u, v), v is appended to u's neighbors and u to v's.
// It returns a DEGENERATE_INPUT error when coords or edges are empty or when
// vertex 0 has no neighbor, and INVALID_INPUT when an edge references a
// vertex outside coords or joins a vertex to itself.
func NewGraph(coords []v3.Vec, edges [][2]int, direction v3.Vec) (*Graph, error) {
	if len(coords) == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateInput, "vertex list is empty")
	}
	if len(edges) == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateInput, "edge list is empty")
	}
	if err := errors.ValidateDirection([3]float64{direction.X, direction.Y, direction.Z}); err != nil {
		return nil, err
	}
	if math.Abs(direction.Length()-1) > unitTolerance {
		direction = direction.Normalize()
	}

	g := &Graph{
		Vertices:  make([]Vertex, len(coords)),
		Direction: direction,
	}
	for i, c := range coords {
		g.Vertices[i] = Vertex{Coordinates: c, Projection: c.Dot(direction)}
	}

	for i, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= len(coords) || v < 0 || v >= len(coords) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"edge %d (%d, %d) references a vertex outside [0, %d)", i, u, v, len(coords))
		}
		if u == v {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d is a self-loop on vertex %d", i, u)
		}
		g.Vertices[u].Neighbors = append(g.Vertices[u].Neighbors, v)
		g.Vertices[v].Neighbors = append(g.Vertices[v].Neighbors, u)
	}

	if err := g.computeSpacing(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) computeSpacing() error {
	first := g.Vertices[0]
	if len(first.Neighbors) == 0 {
		return errors.New(errors.ErrCodeDegenerateInput, "vertex 0 has no neighbors, spacing is undefined")
	}
	g.SpacingUnit = first.Coordinates.Sub(g.Vertices[first.Neighbors[0]].Coordinates).Length()
	g.Threshold = g.SpacingUnit * math.Sqrt(3)
	return nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.Vertices) }

// Order returns all vertex ids sorted ascending by projection. The sort is
// stable, so vertices with equal projections keep their id order.
func (g *Graph) Order() []int {
	order := make([]int, len(g.Vertices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return g.Vertices[order[a]].Projection < g.Vertices[order[b]].Projection
	})
	return order
}
