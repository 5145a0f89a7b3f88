// Package dot renders a committed citation graph as a Graphviz DOT
// digraph: one line per node, one line per edge.
package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/fporter/citegraph/internal/graph"
)

// escaper rewrites a string for use inside a double-quoted DOT string:
// a backslash becomes \\ and a double quote becomes \". Nothing else
// is escaped.
var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Escape escapes a string for a double-quoted DOT context.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Write renders the graph to w. Every committed node becomes one node
// statement carrying the escaped title as its label and the paper URL,
// and every committed edge becomes one edge statement.
func Write(w io.Writer, g *graph.Graph) error {
	if _, err := fmt.Fprintln(w, "digraph {"); err != nil {
		return err
	}
	for _, n := range g.Nodes() {
		_, err := fmt.Fprintf(w, "    \"%s\" [label=\"%s\",URL=\"%s\"];\n", n.ID, Escape(n.Title), n.URL)
		if err != nil {
			return err
		}
	}
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(w, "    %q -> %q;\n", e.From, e.To); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
