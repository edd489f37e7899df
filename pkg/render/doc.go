// Package render exports slicing results.
//
// # Formats
//
//   - [FormatJSON]: the full [slicer.Result] document
//   - [FormatDOT]: Graphviz source with one cluster per band and one path per
//     reduced chain
//   - [FormatSVG]: the DOT graph laid out and drawn by Graphviz
//   - [FormatOBJ]: Wavefront OBJ polylines, one group per subset, for loading
//     chains back into a 3D tool next to the source mesh
//
// [Render] dispatches on the format:
//
//	data, err := render.Render(ctx, res, m, render.FormatSVG, render.Options{})
//
// # Highlighting
//
// [Options.Highlight] marks vertex ids (typically the output of
// [slicer.Result.Select]) so they stand out in DOT and SVG output.
//
// [slicer.Result]: github.com/matzehuels/bandslicer/pkg/slicer.Result
// [slicer.Result.Select]: github.com/matzehuels/bandslicer/pkg/slicer.Result.Select
package render
