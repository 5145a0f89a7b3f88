package pdfdoi

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare doi in text",
			text: "Journal of Terramechanics\n10.1016/j.jterra.2024.100989\nAbstract",
			want: "10.1016/j.jterra.2024.100989",
		},
		{
			name: "doi url",
			text: "available at https://doi.org/10.1109/TRO.2023.3343608 online",
			want: "10.1109/TRO.2023.3343608",
		},
		{
			name: "trailing period trimmed",
			text: "See 10.1234/abc.def. For details,",
			want: "10.1234/abc.def",
		},
		{
			name: "trailing comma trimmed",
			text: "doi 10.1234/xyz, published 2024",
			want: "10.1234/xyz",
		},
		{
			name: "no doi",
			text: "This page has no identifier on it at all.",
			want: "",
		},
		{
			name: "registrant code too short",
			text: "10.99/notadoi",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
