package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bandslicer/pkg/errors"
	"github.com/matzehuels/bandslicer/pkg/slicer"
)

const boxJSON = `{
  "vertices": [[0,0,0],[1,0,0],[0,1,0],[1,1,0],[0,0,2],[1,0,2],[0,1,2],[1,1,2]],
  "edges": [[0,1],[1,3],[3,2],[2,0],[4,5],[5,7],[7,6],[6,4],
            [0,4],[1,5],[2,6],[3,7],[0,3],[4,7],[0,5],[1,7],[3,6],[2,4]]
}`

// isolate points config and cache lookups at empty temporary directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

// runCLI executes the root command with args and returns what the command
// wrote to its output stream.
func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readResult(t *testing.T, path string) *slicer.Result {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var res slicer.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return &res
}

func TestSliceWritesDerivedPaths(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "box.json", boxJSON)

	if _, err := runCLI(t, nil, "slice", input, "-f", "json,dot", "--table"); err != nil {
		t.Fatalf("slice: %v", err)
	}

	res := readResult(t, filepath.Join(dir, "box.bands.json"))
	if len(res.Bands) != 2 || res.Bands[0].Name != "slice0" {
		t.Errorf("bands = %+v", res.Bands)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "box.bands.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "graph G {") {
		t.Errorf("dot output = %q", dot)
	}
}

func TestSliceStdin(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "stdin.json")

	if _, err := runCLI(t, strings.NewReader(boxJSON), "slice", "-", "-o", out, "-p", "layer"); err != nil {
		t.Fatalf("slice: %v", err)
	}
	res := readResult(t, out)
	if res.Prefix != "layer" || res.Bands[1].Name != "layer1" {
		t.Errorf("prefix = %q, bands = %+v", res.Prefix, res.Bands)
	}
}

func TestSliceDirectionFlag(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "box.json", boxJSON)
	out := filepath.Join(dir, "down.json")

	if _, err := runCLI(t, nil, "slice", input, "-d", "0,0,-2", "-o", out); err != nil {
		t.Fatalf("slice: %v", err)
	}
	res := readResult(t, out)
	if res.Direction != [3]float64{0, 0, -1} {
		t.Errorf("direction = %v, want normalized -Z", res.Direction)
	}
	// Slicing downward puts the top face in band 0.
	if res.BandOf[4] != 0 || res.BandOf[0] != 1 {
		t.Errorf("BandOf = %v", res.BandOf)
	}
}

func TestSliceErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "box.json", boxJSON)
	degenerate := writeFile(t, dir, "point.json", `{"vertices": [[0,0,0]]}`)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"short direction", []string{"slice", input, "-d", "0,0"}, errors.ErrCodeInvalidDirection},
		{"zero direction", []string{"slice", input, "-d", "0,0,0"}, errors.ErrCodeInvalidDirection},
		{"bad format", []string{"slice", input, "-f", "png"}, errors.ErrCodeUnsupported},
		{"missing file", []string{"slice", filepath.Join(dir, "none.obj")}, errors.ErrCodeFileNotFound},
		{"unknown extension", []string{"slice", filepath.Join(dir, "mesh.stl")}, errors.ErrCodeUnsupported},
		{"degenerate", []string{"slice", degenerate}, errors.ErrCodeDegenerateInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, nil, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestHighlightPlain(t *testing.T) {
	isolate(t)
	input := writeFile(t, t.TempDir(), "box.json", boxJSON)

	out, err := runCLI(t, nil, "highlight", input, "--band", "1", "--plain")
	if err != nil {
		t.Fatalf("highlight: %v", err)
	}
	if out != "4\n5\n6\n7\n" {
		t.Errorf("output = %q", out)
	}
}

func TestHighlightOutOfRange(t *testing.T) {
	isolate(t)
	input := writeFile(t, t.TempDir(), "box.json", boxJSON)

	tests := [][]string{
		{"highlight", input, "--band", "7"},
		{"highlight", input, "--band", "-1"},
		{"highlight", input, "--band", "0", "--subsets", "0,4"},
	}
	for _, args := range tests {
		_, err := runCLI(t, nil, args...)
		if !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
			t.Errorf("%v: error = %v, want INDEX_OUT_OF_RANGE", args[2:], err)
		}
	}
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "box.json", boxJSON)
	cfg := writeFile(t, dir, "config.toml", `
[slice]
prefix = "tier"

[cache]
backend = "none"
`)
	out := filepath.Join(dir, "out.json")

	if _, err := runCLI(t, nil, "--config", cfg, "slice", input, "-o", out); err != nil {
		t.Fatalf("slice: %v", err)
	}
	if res := readResult(t, out); res.Bands[0].Name != "tier0" {
		t.Errorf("band name = %q, want tier0", res.Bands[0].Name)
	}
	if n := countFiles(t, filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)); n != 0 {
		t.Errorf("backend none wrote %d cache files", n)
	}

	// The flag wins over the file.
	if _, err := runCLI(t, nil, "--config", cfg, "slice", input, "-o", out, "-p", "flag"); err != nil {
		t.Fatalf("slice: %v", err)
	}
	if res := readResult(t, out); res.Bands[0].Name != "flag0" {
		t.Errorf("band name = %q, want flag0", res.Bands[0].Name)
	}
}

func TestSliceUnreachableRedisDegrades(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "box.json", boxJSON)
	cfg := writeFile(t, dir, "config.toml", "[cache]\nbackend = \"redis\"\nredis_addr = \"127.0.0.1:1\"\n")
	out := filepath.Join(dir, "out.json")

	if _, err := runCLI(t, nil, "--config", cfg, "slice", input, "-o", out); err != nil {
		t.Fatalf("slice: %v", err)
	}
	if res := readResult(t, out); len(res.Bands) != 2 {
		t.Errorf("len(Bands) = %d, want 2", len(res.Bands))
	}
}

func TestConfigFileErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "box.json", boxJSON)
	bad := writeFile(t, dir, "bad.toml", "[slice]\ncolour = \"red\"\n")

	if _, err := runCLI(t, nil, "--config", bad, "slice", input); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown key: error = %v, want INVALID_FORMAT", err)
	}
	if _, err := runCLI(t, nil, "--config", filepath.Join(dir, "none.toml"), "slice", input); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config: error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSampleSliceRender(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	meshPath := filepath.Join(dir, "cube.obj")

	if _, err := runCLI(t, nil, "sample", "box", "--cells", "8", "-o", meshPath); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if _, err := runCLI(t, nil, "slice", meshPath); err != nil {
		t.Fatalf("slice: %v", err)
	}

	resultPath := filepath.Join(dir, "cube.bands.json")
	dotPath := filepath.Join(dir, "band0.dot")
	if _, err := runCLI(t, nil, "render", resultPath, "-f", "dot", "-o", dotPath, "--band", "0"); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "#f4a261") {
		t.Error("highlighted band not emphasized")
	}

	objPath := filepath.Join(dir, "chains.obj")
	if _, err := runCLI(t, nil, "render", resultPath, "-f", "obj", "-o", objPath); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("obj without mesh: error = %v, want INVALID_INPUT", err)
	}
	if _, err := runCLI(t, nil, "render", resultPath, "-f", "obj", "-o", objPath, "--mesh", meshPath); err != nil {
		t.Fatalf("render obj: %v", err)
	}
	obj, err := os.ReadFile(objPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(obj), "g slice0.0\n") {
		t.Error("obj output missing first subset group")
	}
}

func TestSampleUnknownShape(t *testing.T) {
	isolate(t)
	if _, err := runCLI(t, nil, "sample", "torus"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
