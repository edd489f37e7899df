package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

// ReadOBJ decodes the geometry of a Wavefront OBJ file.
//
// Only v, f and l records are interpreted; everything else (normals,
// texture coordinates, groups, materials) is ignored. Face and line indices
// are 1-based, may be negative (relative to the vertices read so far) and
// may carry texture/normal references in a/b/c form.
//
// Edges come from face boundaries first, then from line records, without
// duplicates.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	var edges edgeSet

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines [][]int
	for lineNo := 1; sc.Scan(); lineNo++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", lineNo)
			}
			m.Vertices = append(m.Vertices, v)
		case "f", "l":
			ids, err := parseRefs(fields[1:], len(m.Vertices))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", lineNo)
			}
			if fields[0] == "f" {
				if len(ids) < 3 {
					return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: face needs at least 3 vertices", lineNo)
				}
				m.Faces = append(m.Faces, ids)
			} else {
				if len(ids) < 2 {
					return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: line needs at least 2 vertices", lineNo)
				}
				lines = append(lines, ids)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	for _, f := range m.Faces {
		for i := range f {
			edges.add(f[i], f[(i+1)%len(f)])
		}
	}
	for _, l := range lines {
		for i := 1; i < len(l); i++ {
			edges.add(l[i-1], l[i])
		}
	}
	m.Edges = edges.edges
	return m, nil
}

func parseVertex(fields []string) (v3.Vec, error) {
	if len(fields) < 3 {
		return v3.Vec{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return v3.Vec{}, fmt.Errorf("vertex coordinate %q: %w", fields[i], err)
		}
		c[i] = f
	}
	return v3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseRefs resolves OBJ vertex references to 0-based ids. n is the number
// of vertices defined so far.
func parseRefs(fields []string, n int) ([]int, error) {
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		ref, _, _ := strings.Cut(f, "/")
		i, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("vertex reference %q: %w", f, err)
		}
		switch {
		case i > 0:
			i--
		case i < 0:
			i += n
		default:
			return nil, fmt.Errorf("vertex reference 0 is invalid")
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("vertex reference %q out of range (%d vertices)", f, n)
		}
		ids = append(ids, i)
	}
	return ids, nil
}

// WriteOBJ writes m as v and f records, or l records when m has no faces.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	if len(m.Faces) > 0 {
		for _, f := range m.Faces {
			bw.WriteString("f")
			for _, id := range f {
				fmt.Fprintf(bw, " %d", id+1)
			}
			bw.WriteString("\n")
		}
	} else {
		for _, e := range m.Edges {
			fmt.Fprintf(bw, "l %d %d\n", e[0]+1, e[1]+1)
		}
	}
	return bw.Flush()
}
