package slicer

import "math"

// Bands is the band labeling produced by [Classify].
type Bands struct {
	// Labels holds the band index of every vertex. All entries are set.
	Labels []int
	// Anchors holds, per band, the anchor vertex that was active while the
	// band's members were labeled. A band never has more than one anchor
	// because an anchor reset always opens a new band.
	Anchors []int
	// Sizes holds the member count of every band.
	Sizes []int
}

// Count returns the number of bands.
func (b *Bands) Count() int { return len(b.Anchors) }

// Same reports whether vertices u and v carry the same band label.
func (b *Bands) Same(u, v int) bool { return b.Labels[u] == b.Labels[v] }

// Classify groups vertices into bands. order must list every vertex id
// ascending by projection (see [Graph.Order]).
//
// The first vertex of order is the initial anchor. A vertex whose projection
// lies within threshold of the current anchor joins the current band;
// otherwise a new band is opened and the vertex becomes its anchor. The spread
// of a band is therefore bounded relative to its anchor, not by a fixed grid.
func Classify(vertices []Vertex, order []int, threshold float64) *Bands {
	b := &Bands{Labels: make([]int, len(vertices))}
	if len(order) == 0 {
		return b
	}

	anchor := order[0]
	band := 0
	b.Anchors = append(b.Anchors, anchor)
	b.Sizes = append(b.Sizes, 0)

	for _, id := range order {
		if math.Abs(vertices[anchor].Projection-vertices[id].Projection) > threshold {
			band++
			anchor = id
			b.Anchors = append(b.Anchors, anchor)
			b.Sizes = append(b.Sizes, 0)
		}
		b.Labels[id] = band
		b.Sizes[band]++
	}
	return b
}
