package slicer

import (
	"fmt"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

// Result is the outcome of a slicing run. It is the serialization format
// used for JSON export, caching and the HTTP API.
type Result struct {
	Prefix      string     `json:"prefix"`
	Direction   [3]float64 `json:"direction"`
	SpacingUnit float64    `json:"spacing_unit"`
	Threshold   float64    `json:"threshold"`

	// BandOf holds the band index of every vertex.
	BandOf []int `json:"band_of"`
	// SubsetOf holds the subset label of every vertex, NoSubset if unclaimed.
	SubsetOf []SubsetKey `json:"subset_of"`
	// Bands lists every band in ascending projection order.
	Bands []Band `json:"bands"`
}

// Band is one projection band with its subsets.
type Band struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	// Anchor is the vertex whose projection bounds the band's spread.
	Anchor  int            `json:"anchor"`
	Size    int            `json:"size"`
	Subsets []SubsetResult `json:"subsets"`
}

// SubsetResult is the serialized form of a [Subset].
type SubsetResult struct {
	Key      SubsetKey `json:"key"`
	Name     string    `json:"name"`
	Seed     int       `json:"seed"`
	Strategy Strategy  `json:"strategy"`
	Members  []int     `json:"members"`
	Chain    []int     `json:"chain"`
}

// Stats summarizes a result.
type Stats struct {
	Vertices      int
	Bands         int
	Subsets       int
	ChainVertices int // distinct vertices present in some chain
	Unclaimed     int // vertices outside every subset
}

// BandName returns the display name of band index under prefix.
func BandName(prefix string, band int) string {
	return fmt.Sprintf("%s%d", prefix, band)
}

// SubsetName returns the display name of a subset. Names are for display
// only; lookups always go through [SubsetKey].
func SubsetName(prefix string, key SubsetKey) string {
	return fmt.Sprintf("%s.%d", BandName(prefix, key.Band), key.Index)
}

func newResult(g *Graph, prefix string, bands *Bands, p *Partitioning) *Result {
	r := &Result{
		Prefix:      prefix,
		Direction:   [3]float64{g.Direction.X, g.Direction.Y, g.Direction.Z},
		SpacingUnit: g.SpacingUnit,
		Threshold:   g.Threshold,
		BandOf:      bands.Labels,
		SubsetOf:    p.SubsetOf,
		Bands:       make([]Band, bands.Count()),
	}
	for i := range r.Bands {
		b := Band{
			Index:   i,
			Name:    BandName(prefix, i),
			Anchor:  bands.Anchors[i],
			Size:    bands.Sizes[i],
			Subsets: make([]SubsetResult, 0, len(p.Subsets[i])),
		}
		for _, s := range p.Subsets[i] {
			b.Subsets = append(b.Subsets, SubsetResult{
				Key:      s.Key,
				Name:     SubsetName(prefix, s.Key),
				Seed:     s.Seed,
				Strategy: s.Strategy,
				Members:  s.Members,
				Chain:    s.Chain,
			})
		}
		r.Bands[i] = b
	}
	return r
}

// Band returns the band at index i or an INDEX_OUT_OF_RANGE error.
func (r *Result) Band(i int) (*Band, error) {
	if i < 0 || i >= len(r.Bands) {
		return nil, errors.New(errors.ErrCodeIndexOutOfRange,
			"band %d does not exist (have %d bands)", i, len(r.Bands))
	}
	return &r.Bands[i], nil
}

// Subset returns the subset for key or an INDEX_OUT_OF_RANGE error.
func (r *Result) Subset(key SubsetKey) (*SubsetResult, error) {
	b, err := r.Band(key.Band)
	if err != nil {
		return nil, err
	}
	if key.Index < 0 || key.Index >= len(b.Subsets) {
		return nil, errors.New(errors.ErrCodeIndexOutOfRange,
			"subset %d does not exist in band %s (have %d subsets)", key.Index, b.Name, len(b.Subsets))
	}
	return &b.Subsets[key.Index], nil
}

// Select returns the chain vertices of band, in chain order with duplicates
// removed. With no subset indices every subset of the band contributes;
// otherwise only the listed ones do, in the order given.
//
// An unknown band or subset index yields INDEX_OUT_OF_RANGE and nothing is
// returned. The result is never modified.
func (r *Result) Select(band int, subsets ...int) ([]int, error) {
	b, err := r.Band(band)
	if err != nil {
		return nil, err
	}

	chosen := make([]*SubsetResult, 0, len(b.Subsets))
	if len(subsets) == 0 {
		for i := range b.Subsets {
			chosen = append(chosen, &b.Subsets[i])
		}
	} else {
		for _, idx := range subsets {
			s, err := r.Subset(SubsetKey{Band: band, Index: idx})
			if err != nil {
				return nil, err
			}
			chosen = append(chosen, s)
		}
	}

	seen := make(map[int]bool)
	ids := []int{}
	for _, s := range chosen {
		for _, id := range s.Chain {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// ByName maps band names to their subsets.
func (r *Result) ByName() map[string][]SubsetResult {
	m := make(map[string][]SubsetResult, len(r.Bands))
	for _, b := range r.Bands {
		m[b.Name] = b.Subsets
	}
	return m
}

// Stats computes summary counts.
func (r *Result) Stats() Stats {
	st := Stats{Vertices: len(r.BandOf), Bands: len(r.Bands)}
	inChain := make(map[int]bool)
	for _, b := range r.Bands {
		st.Subsets += len(b.Subsets)
		for _, s := range b.Subsets {
			for _, id := range s.Chain {
				inChain[id] = true
			}
		}
	}
	st.ChainVertices = len(inChain)
	for _, k := range r.SubsetOf {
		if k == NoSubset {
			st.Unclaimed++
		}
	}
	return st
}
