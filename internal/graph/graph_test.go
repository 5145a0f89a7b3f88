package graph

import (
	"reflect"
	"testing"
)

func TestCommitSetSemantics(t *testing.T) {
	g := New()

	n := Stub{ID: "a", Title: "A"}
	e := Edge{From: "a", To: "b"}
	g.Commit([]Stub{n, n}, []Edge{e, e})
	g.Commit([]Stub{n}, []Edge{e})

	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestStubsWithSameIDAreDistinctNodes(t *testing.T) {
	g := New()
	g.Commit([]Stub{
		{ID: "a", Title: "one spelling"},
		{ID: "a", Title: "another spelling"},
	}, nil)

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2 (stubs differ by title)", g.NodeCount())
	}
}

func TestSelfLoopEdgesAreLegal(t *testing.T) {
	g := New()
	g.Commit(nil, []Edge{{From: "a", To: "a"}})
	if !g.HasEdge(Edge{From: "a", To: "a"}) {
		t.Error("self-loop edge not committed")
	}
}

func TestNodesAndEdgesAreSorted(t *testing.T) {
	g := New()
	g.Commit(
		[]Stub{{ID: "b"}, {ID: "a", Title: "z"}, {ID: "a", Title: "y"}},
		[]Edge{{From: "b", To: "a"}, {From: "a", To: "b"}, {From: "a", To: "a"}},
	)

	wantNodes := []Stub{{ID: "a", Title: "y"}, {ID: "a", Title: "z"}, {ID: "b"}}
	if got := g.Nodes(); !reflect.DeepEqual(got, wantNodes) {
		t.Errorf("Nodes() = %v, want %v", got, wantNodes)
	}

	wantEdges := []Edge{{From: "a", To: "a"}, {From: "a", To: "b"}, {From: "b", To: "a"}}
	if got := g.Edges(); !reflect.DeepEqual(got, wantEdges) {
		t.Errorf("Edges() = %v, want %v", got, wantEdges)
	}
}
