package slicer

import (
	"math"
	"slices"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

func TestNewGraph(t *testing.T) {
	coords, edges := boxMesh(1)
	g, err := NewGraph(coords, edges, v3.Vec{Z: 1})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}

	if g.Len() != 8 {
		t.Errorf("Len() = %d, want 8", g.Len())
	}
	if g.SpacingUnit != 1 {
		t.Errorf("SpacingUnit = %v, want 1", g.SpacingUnit)
	}
	if math.Abs(g.Threshold-math.Sqrt(3)) > 1e-12 {
		t.Errorf("Threshold = %v, want %v", g.Threshold, math.Sqrt(3))
	}

	// Neighbor lists follow edge insertion order.
	if got, want := g.Vertices[0].Neighbors, []int{1, 2, 4, 3, 5}; !slices.Equal(got, want) {
		t.Errorf("Neighbors(0) = %v, want %v", got, want)
	}
	if got, want := g.Vertices[7].Neighbors, []int{5, 6, 3, 4, 1}; !slices.Equal(got, want) {
		t.Errorf("Neighbors(7) = %v, want %v", got, want)
	}

	for i, v := range g.Vertices {
		if v.Projection != coords[i].Z {
			t.Errorf("Projection(%d) = %v, want %v", i, v.Projection, coords[i].Z)
		}
	}
}

func TestNewGraphKeepsDuplicateEdges(t *testing.T) {
	coords := []v3.Vec{{}, {X: 1}}
	g, err := NewGraph(coords, [][2]int{{0, 1}, {1, 0}}, v3.Vec{X: 1})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if got := g.Vertices[0].Neighbors; !slices.Equal(got, []int{1, 1}) {
		t.Errorf("Neighbors(0) = %v, want [1 1]", got)
	}
}

func TestNewGraphNormalizesDirection(t *testing.T) {
	coords, edges := boxMesh(1)
	g, err := NewGraph(coords, edges, v3.Vec{Z: 5})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if g.Direction != (v3.Vec{Z: 1}) {
		t.Errorf("Direction = %v, want (0,0,1)", g.Direction)
	}
	if g.Vertices[4].Projection != 1 {
		t.Errorf("Projection(4) = %v, want 1", g.Vertices[4].Projection)
	}
}

func TestNewGraphKeepsUnitDirection(t *testing.T) {
	coords, edges := boxMesh(2)
	// One float step short of unit length; normalizing would round each
	// component up to 0.7071067811865476.
	d := v3.Vec{X: 0.7071067811865475, Z: 0.7071067811865475}
	g, err := NewGraph(coords, edges, d)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if g.Direction != d {
		t.Errorf("Direction = %v, want %v", g.Direction, d)
	}
	for i, c := range coords {
		if got, want := g.Vertices[i].Projection, c.Dot(d); got != want {
			t.Errorf("Projection(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestNewGraphErrors(t *testing.T) {
	coords, edges := boxMesh(1)

	tests := []struct {
		name   string
		coords []v3.Vec
		edges  [][2]int
		dir    v3.Vec
		code   errors.Code
	}{
		{"no vertices", nil, edges, v3.Vec{Z: 1}, errors.ErrCodeDegenerateInput},
		{"no edges", coords, nil, v3.Vec{Z: 1}, errors.ErrCodeDegenerateInput},
		{"vertex 0 isolated", coords, [][2]int{{1, 2}}, v3.Vec{Z: 1}, errors.ErrCodeDegenerateInput},
		{"edge out of range", coords, [][2]int{{0, 8}}, v3.Vec{Z: 1}, errors.ErrCodeInvalidInput},
		{"negative edge", coords, [][2]int{{-1, 0}}, v3.Vec{Z: 1}, errors.ErrCodeInvalidInput},
		{"self loop", coords, [][2]int{{0, 0}}, v3.Vec{Z: 1}, errors.ErrCodeInvalidInput},
		{"zero direction", coords, edges, v3.Vec{}, errors.ErrCodeInvalidDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.coords, tt.edges, tt.dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if g != nil {
				t.Error("graph must be nil on error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOrderIsStable(t *testing.T) {
	coords, edges := boxMesh(2)
	g, err := NewGraph(coords, edges, v3.Vec{Z: 1})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if got, want := g.Order(), []int{0, 1, 2, 3, 4, 5, 6, 7}; !slices.Equal(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}

	g, err = NewGraph(coords, edges, v3.Vec{Z: -1})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if got, want := g.Order(), []int{4, 5, 6, 7, 0, 1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Order() reversed = %v, want %v", got, want)
	}
}
