package graph

// DefaultPrunePasses bounds the peeling loop. Each pass is monotone
// (sets only shrink), so this is a safety bound rather than a
// convergence guarantee; use PruneToFixedPoint for exactness.
const DefaultPrunePasses = 10

// Prune runs up to the given number of low-connectivity elimination
// passes over the graph, stopping early once a pass changes nothing.
// Each pass removes every node with an id whose incoming and outgoing
// edge counts are both at most 1, then drops edges that lost an
// endpoint. Nodes without an id have no degree to measure and are
// never removed. Pruning is total: it cannot fail, including on the
// empty graph.
func (g *Graph) Prune(passes int) {
	for i := 0; i < passes; i++ {
		if !g.prunePass() {
			return
		}
	}
}

// PruneToFixedPoint runs pruning passes until a pass changes nothing,
// and returns the number of passes that made a change.
func (g *Graph) PruneToFixedPoint() int {
	n := 0
	for g.prunePass() {
		n++
	}
	return n
}

// prunePass runs one elimination pass and reports whether anything was
// removed.
func (g *Graph) prunePass() bool {
	incoming := make(map[string]int)
	outgoing := make(map[string]int)
	for e := range g.edges {
		outgoing[e.From]++
		incoming[e.To]++
	}

	changed := false
	for n := range g.nodes {
		if n.ID == "" {
			continue
		}
		if incoming[n.ID] <= 1 && outgoing[n.ID] <= 1 {
			delete(g.nodes, n)
			changed = true
		}
	}

	surviving := make(map[string]struct{}, len(g.nodes))
	for n := range g.nodes {
		if n.ID != "" {
			surviving[n.ID] = struct{}{}
		}
	}
	for e := range g.edges {
		_, fromOK := surviving[e.From]
		_, toOK := surviving[e.To]
		if !fromOK || !toOK {
			delete(g.edges, e)
			changed = true
		}
	}
	return changed
}
