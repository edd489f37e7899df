package mesh

import (
	"path/filepath"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

// Mesh is an indexed surface mesh.
type Mesh struct {
	Vertices []v3.Vec
	// Edges are undirected vertex id pairs. Order is significant: it fixes
	// neighbor order in the slicing graph.
	Edges [][2]int
	// Faces are optional polygons, kept so exporters can write them back.
	Faces [][]int
}

// Format identifies a mesh encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatOBJ  Format = "obj"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".obj":
		return FormatOBJ, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unknown mesh format for %q (want .json or .obj)", path)
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatOBJ:
		return FormatOBJ, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unknown mesh format %q (want json or obj)", s)
	}
}

// Validate checks that every edge and face references an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, e := range m.Edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d (%d, %d) references a vertex outside [0, %d)", i, e[0], e[1], n)
		}
	}
	for i, f := range m.Faces {
		if len(f) < 3 {
			return errors.New(errors.ErrCodeInvalidInput, "face %d has %d vertices, want at least 3", i, len(f))
		}
		for _, id := range f {
			if id < 0 || id >= n {
				return errors.New(errors.ErrCodeInvalidInput, "face %d references vertex %d outside [0, %d)", i, id, n)
			}
		}
	}
	return nil
}

// EdgesFromFaces returns the boundary edges of faces in winding order. An
// edge shared by two faces is emitted once, with the orientation of its
// first occurrence.
func EdgesFromFaces(faces [][]int) [][2]int {
	var set edgeSet
	for _, f := range faces {
		for i := range f {
			set.add(f[i], f[(i+1)%len(f)])
		}
	}
	return set.edges
}

// edgeSet collects undirected edges in insertion order without duplicates.
// Degenerate edges (u == v) are dropped.
type edgeSet struct {
	seen  map[[2]int]bool
	edges [][2]int
}

func (s *edgeSet) add(u, v int) {
	if u == v {
		return
	}
	if s.seen == nil {
		s.seen = make(map[[2]int]bool)
	}
	k := [2]int{min(u, v), max(u, v)}
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	s.edges = append(s.edges, [2]int{u, v})
}
