package mesh

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

func TestEdgesFromFaces(t *testing.T) {
	// The last face repeats vertex 2: 2-2 is dropped and 4-2 duplicates 2-4.
	faces := [][]int{{0, 1, 2}, {1, 3, 2}, {2, 2, 4}}
	want := [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 3}, {3, 2}, {2, 4}}
	if got := EdgesFromFaces(faces); !reflect.DeepEqual(got, want) {
		t.Errorf("EdgesFromFaces = %v, want %v", got, want)
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Mesh
	}{
		{
			name:  "explicit edges",
			input: `{"vertices": [[0,0,0],[1,0,0],[0,1,0]], "edges": [[0,1],[1,2]]}`,
			want: &Mesh{
				Vertices: []v3.Vec{{}, {X: 1}, {Y: 1}},
				Edges:    [][2]int{{0, 1}, {1, 2}},
			},
		},
		{
			name:  "edges from faces",
			input: `{"vertices": [[0,0,0],[1,0,0],[0,1,0],[1,1,0]], "faces": [[0,1,2],[1,3,2]]}`,
			want: &Mesh{
				Vertices: []v3.Vec{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
				Edges:    [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 3}, {3, 2}},
				Faces:    [][]int{{0, 1, 2}, {1, 3, 2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			if !reflect.DeepEqual(m, tt.want) {
				t.Errorf("ReadJSON = %+v, want %+v", m, tt.want)
			}
		})
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"vertices": [`, errors.ErrCodeInvalidFormat},
		{"edge out of range", `{"vertices": [[0,0,0]], "edges": [[0,1]]}`, errors.ErrCodeInvalidInput},
		{"short face", `{"vertices": [[0,0,0],[1,0,0]], "faces": [[0,1]]}`, errors.ErrCodeInvalidInput},
		{"face out of range", `{"vertices": [[0,0,0],[1,0,0],[0,1,0]], "faces": [[0,1,3]]}`, errors.ErrCodeInvalidInput},
		{"two coordinates", `{"vertices": [[0,0,0],[1,0]], "edges": [[0,1]]}`, errors.ErrCodeInvalidInput},
		{"four coordinates", `{"vertices": [[0,0,0],[1,0,0,1]], "edges": [[0,1]]}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	m := &Mesh{
		Vertices: []v3.Vec{{}, {X: 0.5}, {Y: 0.25, Z: -1}},
		Edges:    [][2]int{{0, 1}, {1, 2}, {2, 0}},
		Faces:    [][]int{{0, 1, 2}},
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, m); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(m, back) {
		t.Errorf("round trip = %+v, want %+v", back, m)
	}
}

const squareOBJ = `# two triangles and a diagonal line
o square
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f -3 4 -2
l 1 4
`

func TestReadOBJ(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(squareOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}

	want := &Mesh{
		Vertices: []v3.Vec{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
		Edges:    [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 3}, {3, 2}, {0, 3}},
		Faces:    [][]int{{0, 1, 2}, {1, 3, 2}},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("ReadOBJ = %+v, want %+v", m, want)
	}
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v a b c\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"short line", "v 0 0 0\nl 1\n"},
		{"bad reference", "v 0 0 0\nl 1 x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestOBJRoundTrip(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(squareOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	back, err := ReadOBJ(&buf)
	if err != nil {
		t.Fatalf("ReadOBJ (written): %v", err)
	}
	if !reflect.DeepEqual(m.Vertices, back.Vertices) || !reflect.DeepEqual(m.Faces, back.Faces) {
		t.Errorf("round trip = %+v, want %+v", back, m)
	}
}

func TestWeld(t *testing.T) {
	soup := [][3]v3.Vec{
		{{}, {X: 1}, {Y: 1}},
		{{X: 1 + 1e-9}, {X: 1, Y: 1}, {Y: 1}},
		{{}, {}, {X: 1}}, // collapses
	}
	m := Weld(soup, 0)

	if len(m.Vertices) != 4 {
		t.Fatalf("len(Vertices) = %d, want 4", len(m.Vertices))
	}
	if want := [][]int{{0, 1, 2}, {1, 3, 2}}; !reflect.DeepEqual(m.Faces, want) {
		t.Errorf("Faces = %v, want %v", m.Faces, want)
	}
	if want := [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 3}, {3, 2}}; !reflect.DeepEqual(m.Edges, want) {
		t.Errorf("Edges = %v, want %v", m.Edges, want)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"mesh.json", FormatJSON, true},
		{"dir/MESH.OBJ", FormatOBJ, true},
		{"mesh.stl", "", false},
		{"mesh", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "square.obj")
	if err := os.WriteFile(path, []byte(squareOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	m, data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(m.Vertices) != 4 || string(data) != squareOBJ {
		t.Errorf("ReadFile returned %d vertices, %d bytes", len(m.Vertices), len(data))
	}

	out := filepath.Join(dir, "square.json")
	if err := WriteFile(out, m); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, _, err := ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile(json): %v", err)
	}
	if !reflect.DeepEqual(m, back) {
		t.Errorf("json copy = %+v, want %+v", back, m)
	}

	if _, _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
	if _, _, err := ReadFile(filepath.Join(dir, "mesh.stl")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unknown extension: %v", err)
	}
}
