package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "bunny.obj", "bunny.bands"},
		{"", "dir/bunny.json", "dir/bunny.bands"},
		{"", "bunny.bands.json", "bunny.bands"},
		{"", "-", "bands"},
		{"", "", "bands"},
		{"", "https://example.com/meshes/bunny.obj", "bunny.bands"},
		{"", "https://example.com/", "bands"},
		{"out.svg", "bunny.obj", "out"},
		{"out.json", "bunny.obj", "out"},
		{"out", "bunny.obj", "out"},
		{"out.txt", "bunny.obj", "out.txt"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPaths(t *testing.T) {
	got := artifactPaths([]string{"json"}, "bunny.obj", "result.txt")
	if got["json"] != "result.txt" {
		t.Errorf("single format path = %q", got["json"])
	}

	got = artifactPaths([]string{"json", "dot"}, "bunny.obj", "")
	if got["json"] != "bunny.bands.json" || got["dot"] != "bunny.bands.dot" {
		t.Errorf("paths = %v", got)
	}

	got = artifactPaths([]string{"json", "svg"}, "bunny.obj", "out/res.svg")
	if got["json"] != "out/res.json" || got["svg"] != "out/res.svg" {
		t.Errorf("paths = %v", got)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mesh.obj")
	artifacts := map[string][]byte{
		"json": []byte(`{"bands":[]}`),
		"dot":  []byte("graph G {}\n"),
	}

	written, err := writeArtifacts(artifacts, []string{"json", "dot"}, input, "")
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{filepath.Join(dir, "mesh.bands.json"), filepath.Join(dir, "mesh.bands.dot")}
	if !slices.Equal(written, want) {
		t.Errorf("written = %v, want %v", written, want)
	}
	for i, f := range []string{"json", "dot"} {
		data, err := os.ReadFile(want[i])
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != string(artifacts[f]) {
			t.Errorf("%s content = %q", f, data)
		}
	}

	if _, err := writeArtifacts(artifacts, []string{"json"}, input, filepath.Join(dir, "missing", "x.json")); err == nil {
		t.Error("expected error for missing directory")
	}
}
