// Package mesh loads and generates the vertex/edge meshes consumed by
// [slicer.Slice].
//
// # Formats
//
// Two on-disk formats are supported:
//
//   - JSON: {"vertices": [[x,y,z], ...], "edges": [[u,v], ...], "faces": [[a,b,c], ...]}
//   - Wavefront OBJ: v, f and l records
//
// Vertex ids are 0-based positions in the vertex list. When a document has
// faces but no explicit edges, edges are derived from the face boundaries
// with [EdgesFromFaces].
//
// # Samples
//
// [Sample] renders simple solids (sphere, box, cylinder) with a uniform
// marching-cubes grid and welds the resulting triangle soup into an indexed
// mesh. The result has the quasi-uniform vertex spacing the band threshold
// heuristic expects, which makes samples the natural inputs for trying the
// slicer out.
//
// [slicer.Slice]: github.com/matzehuels/bandslicer/pkg/slicer.Slice
package mesh
