package slicer

// SubsetKey identifies a subset by band index and 0-based subset index
// within that band.
type SubsetKey struct {
	Band  int `json:"band"`
	Index int `json:"index"`
}

// NoSubset marks a vertex that no subset has claimed.
var NoSubset = SubsetKey{Band: -1, Index: -1}

// Subset is a connected region of same-band vertices discovered by
// breadth-first search from a boundary seed, together with its reduced chain.
type Subset struct {
	Key SubsetKey
	// Seed is the vertex whose cross-band neighbor triggered the subset.
	Seed int
	// Members lists vertex ids in BFS discovery order, seed first.
	Members []int
	// Chain is the reduced boundary chain, seed first. It is a subsequence
	// of Members except that the seed may appear twice.
	Chain []int
	// Strategy is the extremal direction used to reduce this subset.
	Strategy Strategy
}

// Partitioning is the output of the partition pass.
type Partitioning struct {
	// SubsetOf holds the subset label of every vertex, NoSubset when the
	// vertex was never claimed. Each entry is written at most once.
	SubsetOf []SubsetKey
	// Subsets holds, per band index, the subsets in creation order. Every
	// band has an entry, possibly empty.
	Subsets [][]*Subset
	// Visited is the run-scoped set of vertices the reducer has examined.
	Visited *Visited
}

// Partition discovers and reduces the subsets of every band. order must be
// the same ascending-projection order that was passed to [Classify].
//
// Vertices are scanned in order. An unclaimed vertex with at least one
// neighbor in a different band seeds a new subset: a breadth-first search
// from it claims every unclaimed same-band vertex reachable through unclaimed
// same-band vertices, and the subset is reduced before the scan continues.
// Unclaimed vertices without a cross-band neighbor are skipped; they may be
// claimed later by another search or stay unclaimed.
func Partition(vertices []Vertex, bands *Bands, order []int) *Partitioning {
	p := &Partitioning{
		SubsetOf: make([]SubsetKey, len(vertices)),
		Subsets:  make([][]*Subset, bands.Count()),
		Visited:  NewVisited(len(vertices)),
	}
	for i := range p.SubsetOf {
		p.SubsetOf[i] = NoSubset
	}

	for _, id := range order {
		if p.SubsetOf[id] != NoSubset || !touchesOtherBand(vertices, bands, id) {
			continue
		}
		band := bands.Labels[id]
		s := &Subset{
			Key:  SubsetKey{Band: band, Index: len(p.Subsets[band])},
			Seed: id,
		}
		p.grow(s, vertices, bands)
		s.Strategy = ChooseStrategy(vertices, bands, id)
		s.Reduce(vertices, p.SubsetOf, p.Visited, s.Strategy)
		p.Subsets[band] = append(p.Subsets[band], s)
	}
	return p
}

// Claimed returns the number of vertices that belong to some subset.
func (p *Partitioning) Claimed() int {
	n := 0
	for _, k := range p.SubsetOf {
		if k != NoSubset {
			n++
		}
	}
	return n
}

func touchesOtherBand(vertices []Vertex, bands *Bands, id int) bool {
	for _, n := range vertices[id].Neighbors {
		if !bands.Same(n, id) {
			return true
		}
	}
	return false
}

// grow runs the FIFO breadth-first search that populates s.Members.
func (p *Partitioning) grow(s *Subset, vertices []Vertex, bands *Bands) {
	p.SubsetOf[s.Seed] = s.Key
	s.Members = append(s.Members, s.Seed)

	queue := []int{s.Seed}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, n := range vertices[u].Neighbors {
			if p.SubsetOf[n] != NoSubset || !bands.Same(n, s.Seed) {
				continue
			}
			p.SubsetOf[n] = s.Key
			s.Members = append(s.Members, n)
			queue = append(queue, n)
		}
	}
}

// Visited is a fixed-size bitset over vertex ids. Bits are only ever set.
type Visited struct {
	words []uint64
}

// NewVisited returns an empty set for n vertices.
func NewVisited(n int) *Visited {
	return &Visited{words: make([]uint64, (n+63)/64)}
}

// Has reports whether id has been marked.
func (v *Visited) Has(id int) bool {
	return v.words[id/64]&(1<<(uint(id)%64)) != 0
}

// Mark sets id.
func (v *Visited) Mark(id int) {
	v.words[id/64] |= 1 << (uint(id) % 64)
}

// MarkAll sets every id in ids.
func (v *Visited) MarkAll(ids []int) {
	for _, id := range ids {
		v.Mark(id)
	}
}
