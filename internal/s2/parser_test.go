package s2

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   PaperID
		wantOK bool
	}{
		{
			name:   "bare doi",
			input:  "10.1016/j.jterra.2024.100989",
			want:   DOI("10.1016/j.jterra.2024.100989"),
			wantOK: true,
		},
		{
			name:   "doi.org url",
			input:  "https://doi.org/10.1016/j.jterra.2024.100989",
			want:   DOI("10.1016/j.jterra.2024.100989"),
			wantOK: true,
		},
		{
			name:   "uppercase doi suffix",
			input:  "10.1109/TRO.2023.3343608",
			want:   DOI("10.1109/TRO.2023.3343608"),
			wantOK: true,
		},
		{
			name:   "semantic scholar url",
			input:  "https://www.semanticscholar.org/paper/0123456789abcdef",
			want:   S2ID("0123456789abcdef"),
			wantOK: true,
		},
		{
			name:   "semantic scholar url without scheme",
			input:  "semanticscholar.org/paper/deadbeef",
			want:   S2ID("deadbeef"),
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			input:  "  10.1234/abc  ",
			want:   DOI("10.1234/abc"),
			wantOK: true,
		},
		{
			name:   "registrant code too short",
			input:  "10.123/abc",
			wantOK: false,
		},
		{
			name:   "publisher landing page",
			input:  "https://www.sciencedirect.com/science/article/pii/S0022489824000989",
			wantOK: false,
		},
		{
			name:   "empty string",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveAllDropsUnrecognized(t *testing.T) {
	ids := ResolveAll([]string{
		"10.1234/first",
		"not an identifier",
		"10.1234/second",
	})
	if len(ids) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(ids))
	}
}

func TestPaperIDWireForm(t *testing.T) {
	tests := []struct {
		name string
		id   PaperID
		want string
	}{
		{name: "doi gets a prefix", id: DOI("10.1234/abc"), want: "DOI:10.1234/abc"},
		{name: "native id is bare", id: S2ID("deadbeef"), want: "deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
