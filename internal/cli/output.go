package cli

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/bandslicer/pkg/httputil"
	"github.com/matzehuels/bandslicer/pkg/render"
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input and appends
// ".bands" unless already present, so an OBJ export never overwrites its
// source mesh.
// A URL input contributes only its file name, so results land in the
// working directory. If output has a format extension (.json, .svg, ...),
// it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if httputil.IsURL(input) {
			input = httputil.FileName(input)
		}
		if input == "" || input == stdoutPath {
			return "bands"
		}
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if !strings.HasSuffix(base, ".bands") {
			base += ".bands"
		}
		return base
	}
	ext := filepath.Ext(output)
	if slices.Contains(render.Formats, render.Format(strings.TrimPrefix(ext, "."))) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPaths returns the destination of every format. A single format
// writes to output verbatim when it is set.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes each requested artifact and returns the written
// file paths in format order. Output "-" with a single format writes to
// stdout and returns no paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := artifactPaths(formats, input, output)
	var written []string
	for _, f := range formats {
		path := paths[f]
		out, err := openOutput(path)
		if err != nil {
			return written, err
		}
		_, err = out.Write(artifacts[f])
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, err
		}
		if path != stdoutPath {
			written = append(written, path)
		}
	}
	return written, nil
}

// openOutput opens path for writing; "-" is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
