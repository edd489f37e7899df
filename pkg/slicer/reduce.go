package slicer

import "fmt"

// Strategy selects which projection extremum the reducer treats as "the
// outward side" of a subset.
type Strategy int

const (
	// PickMaximum selects the candidate with the largest projection.
	PickMaximum Strategy = iota
	// PickMinimum selects the candidate with the smallest projection.
	PickMinimum
)

// String returns "max" or "min".
func (s Strategy) String() string {
	if s == PickMinimum {
		return "min"
	}
	return "max"
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "max":
		*s = PickMaximum
	case "min":
		*s = PickMinimum
	default:
		return fmt.Errorf("unknown strategy %q", text)
	}
	return nil
}

// ChooseStrategy decides the reduction direction for a subset from its seed
// alone: PickMinimum if the seed has a neighbor with strictly smaller
// projection in a different band, PickMaximum otherwise. The local slope at
// the seed is assumed to represent the whole subset.
func ChooseStrategy(vertices []Vertex, bands *Bands, seed int) Strategy {
	sv := vertices[seed]
	for _, n := range sv.Neighbors {
		if vertices[n].Projection < sv.Projection && !bands.Same(n, seed) {
			return PickMinimum
		}
	}
	return PickMaximum
}

// pick returns the candidate with extremal projection. Ties resolve to the
// first candidate encountered.
func (s Strategy) pick(vertices []Vertex, candidates []int) int {
	best := candidates[0]
	for _, c := range candidates[1:] {
		p, bp := vertices[c].Projection, vertices[best].Projection
		if (s == PickMinimum && p < bp) || (s == PickMaximum && p > bp) {
			best = c
		}
	}
	return best
}

// Reduce appends the boundary chain of s to s.Chain.
//
// The seed is placed first when the chain is empty. Then every unvisited
// member, in discovery order, is marked visited and compared with its
// neighbors outside s (unclaimed vertices count as outside). A member with
// no such neighbor is interior and skipped. Otherwise the member is kept
// unless it is itself the strategy's extremum among those neighbors and
// itself, with the member considered last.
//
// Members already in visited are skipped, so reducing a fully visited
// subset again leaves the chain unchanged.
func (s *Subset) Reduce(vertices []Vertex, subsetOf []SubsetKey, visited *Visited, strategy Strategy) {
	if len(s.Chain) == 0 {
		s.Chain = append(s.Chain, s.Seed)
	}

	var candidates []int
	for _, id := range s.Members {
		if visited.Has(id) {
			continue
		}
		visited.Mark(id)

		candidates = candidates[:0]
		for _, n := range vertices[id].Neighbors {
			if subsetOf[n] != s.Key {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		candidates = append(candidates, id)

		if strategy.pick(vertices, candidates) != id {
			s.Chain = append(s.Chain, id)
		}
	}
}
