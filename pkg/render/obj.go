package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/bandslicer/pkg/errors"
	"github.com/matzehuels/bandslicer/pkg/mesh"
	"github.com/matzehuels/bandslicer/pkg/slicer"
)

// ToOBJ writes every reduced chain as a Wavefront OBJ polyline.
//
// All mesh vertices are emitted so chain ids map to OBJ indices id+1; each
// subset becomes a group named after it with a single l record. Chains of one
// vertex have no polyline and only produce their group line.
func ToOBJ(res *slicer.Result, m *mesh.Mesh) ([]byte, error) {
	if len(m.Vertices) != len(res.BandOf) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"mesh has %d vertices, result has %d", len(m.Vertices), len(res.BandOf))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# bands %d\n", len(res.Bands))
	for _, v := range m.Vertices {
		fmt.Fprintf(&buf, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, b := range res.Bands {
		for _, s := range b.Subsets {
			fmt.Fprintf(&buf, "g %s\n", s.Name)
			chain := dedupAdjacent(s.Chain)
			if len(chain) < 2 {
				continue
			}
			buf.WriteString("l")
			for _, id := range chain {
				fmt.Fprintf(&buf, " %d", id+1)
			}
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// dedupAdjacent drops consecutive repeats, which OBJ polylines cannot express.
func dedupAdjacent(ids []int) []int {
	out := make([]int, 0, len(ids))
	for i, id := range ids {
		if i > 0 && id == ids[i-1] {
			continue
		}
		out = append(out, id)
	}
	return out
}
