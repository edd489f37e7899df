package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/matzehuels/bandslicer/pkg/slicer"
)

const highlightColor = "#f4a261"

// chainGraph is the node-link view of a result shared by the DOT and SVG
// exporters.
type chainGraph struct {
	clusters []cluster
	links    [][2]int
}

type cluster struct {
	band  int
	name  string
	nodes []int
}

// buildChainGraph places every chain vertex in the cluster of the first band
// that lists it and links consecutive chain vertices, skipping repeats.
func buildChainGraph(res *slicer.Result) chainGraph {
	var cg chainGraph
	placed := make(map[int]bool)
	for _, b := range res.Bands {
		c := cluster{band: b.Index, name: b.Name}
		for _, s := range b.Subsets {
			for i, id := range s.Chain {
				if i > 0 && s.Chain[i-1] != id {
					cg.links = append(cg.links, [2]int{s.Chain[i-1], id})
				}
				if !placed[id] {
					placed[id] = true
					c.nodes = append(c.nodes, id)
				}
			}
		}
		cg.clusters = append(cg.clusters, c)
	}
	return cg
}

func highlightSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// ToDOT converts the reduced chains of res to an undirected Graphviz graph.
//
// Each band becomes a cluster labeled with its name, listed bottom band
// first. Each chain vertex becomes a node named v<id>; consecutive chain
// vertices are joined by an edge, except where the chain repeats a vertex.
// A vertex shared by chains of different subsets appears once, in the
// cluster of the band that lists it first.
func ToDOT(res *slicer.Result, opts Options) string {
	cg := buildChainGraph(res)
	highlight := highlightSet(opts.Highlight)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")

	for _, c := range cg.clusters {
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", c.band)
		fmt.Fprintf(&buf, "    label=%q;\n", c.name)
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, id := range c.nodes {
			attrs := fmt.Sprintf("label=\"%d\"", id)
			if highlight[id] {
				attrs += fmt.Sprintf(", fillcolor=%q", highlightColor)
			}
			fmt.Fprintf(&buf, "    v%d [%s];\n", id, attrs)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, l := range cg.links {
		fmt.Fprintf(&buf, "  v%d -- v%d;\n", l[0], l[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out the chains of res with Graphviz and draws them as SVG.
// The graph has the same clusters, nodes and edges as [ToDOT].
func RenderSVG(ctx context.Context, res *slicer.Result, opts Options) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := gv.Graph(graphviz.WithName("G"), graphviz.WithDirectedType(graphviz.UnDirected))
	if err != nil {
		return nil, fmt.Errorf("create graph: %w", err)
	}
	defer g.Close()
	g.SetRankDir(cgraph.BTRank).SetBackgroundColor("transparent")

	cg := buildChainGraph(res)
	highlight := highlightSet(opts.Highlight)
	nodes := make(map[int]*cgraph.Node)
	for _, c := range cg.clusters {
		sub, err := g.CreateSubGraphByName(fmt.Sprintf("cluster_%d", c.band))
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", c.band, err)
		}
		sub.SetLabel(c.name).SetStyle(cgraph.GraphStyle("rounded,dashed"))
		for _, id := range c.nodes {
			n, err := sub.CreateNodeByName(fmt.Sprintf("v%d", id))
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", id, err)
			}
			fill := "white"
			if highlight[id] {
				fill = highlightColor
			}
			n.SetLabel(fmt.Sprint(id)).
				SetShape(cgraph.CircleShape).
				SetStyle(cgraph.FilledNodeStyle).
				SetFillColor(fill).
				SetFontSize(10).
				SetWidth(0.3).
				SetFixedSize(true)
			nodes[id] = n
		}
	}
	for i, l := range cg.links {
		e, err := g.CreateEdgeByName(fmt.Sprintf("e%d", i), nodes[l[0]], nodes[l[1]])
		if err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", l[0], l[1], err)
		}
		e.SetPenWidth(1.5)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
