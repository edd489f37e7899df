package mesh

import (
	"fmt"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

// Shape names a sample solid.
type Shape string

const (
	ShapeSphere   Shape = "sphere"
	ShapeBox      Shape = "box"
	ShapeCylinder Shape = "cylinder"
)

// Shapes lists every sample solid.
var Shapes = []Shape{ShapeSphere, ShapeBox, ShapeCylinder}

// DefaultSampleCells is the marching-cubes resolution along the longest axis.
const DefaultSampleCells = 24

// SampleOptions configures [Sample].
type SampleOptions struct {
	Shape Shape
	// Size is the sphere radius, the box edge or the cylinder height.
	// The cylinder radius is half its height. Zero means 1.
	Size float64
	// Cells is the grid resolution. Zero means DefaultSampleCells.
	Cells int
}

// ParseShape validates a shape name.
func ParseShape(s string) (Shape, error) {
	for _, sh := range Shapes {
		if string(sh) == strings.ToLower(s) {
			return sh, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown shape %q (want sphere, box or cylinder)", s)
}

// Sample renders a solid with a uniform marching-cubes grid and welds the
// triangles into an indexed mesh.
func Sample(opts SampleOptions) (*Mesh, error) {
	size := opts.Size
	if size == 0 {
		size = 1
	}
	if size < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sample size must be positive, got %g", size)
	}
	cells := opts.Cells
	if cells == 0 {
		cells = DefaultSampleCells
	}
	if cells < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sample needs at least 2 cells, got %d", cells)
	}

	solid, err := solidFor(opts.Shape, size)
	if err != nil {
		return nil, err
	}

	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))
	soup := make([][3]v3.Vec, 0, len(triangles))
	for _, tri := range triangles {
		soup = append(soup, [3]v3.Vec{tri[0], tri[1], tri[2]})
	}

	m := Weld(soup, size*DefaultWeldTolerance)
	if len(m.Edges) == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateInput, "%s sample produced no geometry at %d cells", opts.Shape, cells)
	}
	return m, nil
}

func solidFor(shape Shape, size float64) (sdf.SDF3, error) {
	var (
		s   sdf.SDF3
		err error
	)
	switch shape {
	case ShapeSphere:
		s, err = sdf.Sphere3D(size)
	case ShapeBox:
		s, err = sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, 0)
	case ShapeCylinder:
		s, err = sdf.Cylinder3D(size, size/2, 0)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown shape %q", shape)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", shape, err)
	}
	return s, nil
}
