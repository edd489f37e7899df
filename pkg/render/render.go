package render

import (
	"context"
	"strings"

	"github.com/matzehuels/bandslicer/pkg/errors"
	"github.com/matzehuels/bandslicer/pkg/mesh"
	"github.com/matzehuels/bandslicer/pkg/slicer"
)

// Format is an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatOBJ  Format = "obj"
)

// Formats lists every export format.
var Formats = []Format{FormatJSON, FormatDOT, FormatSVG, FormatOBJ}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string { return string(f) }

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown output format %q (want json, dot, svg or obj)", s)
}

// Options configures rendering.
type Options struct {
	// Highlight lists vertex ids to emphasize in DOT and SVG output.
	Highlight []int
}

// Render exports res in format. m supplies vertex coordinates and is only
// required for FormatOBJ.
func Render(ctx context.Context, res *slicer.Result, m *mesh.Mesh, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(res)
	case FormatDOT:
		return []byte(ToDOT(res, opts)), nil
	case FormatSVG:
		return RenderSVG(ctx, res, opts)
	case FormatOBJ:
		if m == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "obj export needs the source mesh")
		}
		return ToOBJ(res, m)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported output format %q", format)
	}
}
