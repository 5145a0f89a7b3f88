package dot

import (
	"strings"
	"testing"

	"github.com/fporter/citegraph/internal/graph"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "quotes and backslashes", input: `asdf "foo" \aaa`, want: `asdf \"foo\" \\aaa`},
		{name: "nothing to escape", input: "plain title", want: "plain title"},
		{name: "empty", input: "", want: ""},
		{name: "backslash before quote", input: `\"`, want: `\\\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.input); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	g := graph.New()
	g.Commit(
		[]graph.Stub{
			{ID: "a", Title: `say "hi"`, URL: "https://example.org/a"},
			{ID: "b", Title: "plain"},
		},
		[]graph.Edge{{From: "a", To: "b"}},
	)

	var sb strings.Builder
	if err := Write(&sb, g); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	want := `digraph {
    "a" [label="say \"hi\"",URL="https://example.org/a"];
    "b" [label="plain",URL=""];
    "a" -> "b";
}
`
	if sb.String() != want {
		t.Errorf("Write() =\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestWriteEmptyGraph(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, graph.New()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if sb.String() != "digraph {\n}\n" {
		t.Errorf("Write() on empty graph = %q", sb.String())
	}
}
