// Package graph holds the committed citation graph: the node and edge
// sets that survive a crawl and feed the exporter, plus the
// low-connectivity pruner that trims them first.
package graph

import "sort"

// Stub is a committed node: a paper as known from a reference list.
// The id may be empty when the upstream never resolved the paper.
// Stubs are compared by full value, so two stubs sharing an id but
// differing in title or URL are distinct nodes.
type Stub struct {
	ID    string
	Title string
	URL   string
}

// Edge is a committed referencer→referencee pair. Self-loops are legal.
type Edge struct {
	From string
	To   string
}

// Graph accumulates committed nodes and edges with set semantics. The
// sets only grow during a crawl; only the pruner shrinks them.
type Graph struct {
	nodes map[Stub]struct{}
	edges map[Edge]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[Stub]struct{}),
		edges: make(map[Edge]struct{}),
	}
}

// Commit unions one round's nodes and edges into the committed sets.
func (g *Graph) Commit(nodes []Stub, edges []Edge) {
	for _, n := range nodes {
		g.nodes[n] = struct{}{}
	}
	for _, e := range edges {
		g.edges[e] = struct{}{}
	}
}

// NodeCount reports the number of committed nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount reports the number of committed edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// HasNode reports whether the exact stub is committed.
func (g *Graph) HasNode(n Stub) bool {
	_, ok := g.nodes[n]
	return ok
}

// HasEdge reports whether the edge is committed.
func (g *Graph) HasEdge(e Edge) bool {
	_, ok := g.edges[e]
	return ok
}

// Nodes returns the committed nodes sorted by id, then title, then URL.
func (g *Graph) Nodes() []Stub {
	nodes := make([]Stub, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].ID != nodes[j].ID {
			return nodes[i].ID < nodes[j].ID
		}
		if nodes[i].Title != nodes[j].Title {
			return nodes[i].Title < nodes[j].Title
		}
		return nodes[i].URL < nodes[j].URL
	})
	return nodes
}

// Edges returns the committed edges sorted by from, then to.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for e := range g.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}
