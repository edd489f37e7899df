package mesh

import (
	"encoding/json"
	"fmt"
	"io"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

type document struct {
	Vertices [][]float64 `json:"vertices"`
	Edges    [][2]int     `json:"edges,omitempty"`
	Faces    [][]int      `json:"faces,omitempty"`
}

// ReadJSON decodes a JSON mesh document from r.
//
// When "edges" is absent or empty, edges are derived from "faces". The
// decoded mesh is validated; ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Mesh, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode mesh JSON")
	}

	m := &Mesh{
		Vertices: make([]v3.Vec, len(doc.Vertices)),
		Edges:    doc.Edges,
		Faces:    doc.Faces,
	}
	for i, c := range doc.Vertices {
		if len(c) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "vertex %d has %d coordinates, want 3", i, len(c))
		}
		m.Vertices[i] = v3.Vec{X: c[0], Y: c[1], Z: c[2]}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(m.Edges) == 0 {
		m.Edges = EdgesFromFaces(m.Faces)
	}
	return m, nil
}

// WriteJSON encodes m as an indented JSON mesh document.
func WriteJSON(w io.Writer, m *Mesh) error {
	doc := document{
		Vertices: make([][]float64, len(m.Vertices)),
		Edges:    m.Edges,
		Faces:    m.Faces,
	}
	for i, c := range m.Vertices {
		doc.Vertices[i] = []float64{c.X, c.Y, c.Z}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode mesh: %w", err)
	}
	return nil
}
