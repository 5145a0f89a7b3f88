package bib

import (
	"strings"
	"testing"
)

const sampleBib = `
@article{smith2024,
  title = {An Important Result},
  author = {Smith, Jane},
  doi = {10.1016/j.jterra.2024.100989},
  url = {https://example.org/should-not-win},
}

@inproceedings{jones2023,
  title = {Conference Findings},
  url = "https://doi.org/10.1109/TRO.2023.3343608",
}

@misc{nobody2022,
  title = {No Identifiers At All},
  author = {Nobody},
}
`

func TestParse(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleBib))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	wantIDs := []string{
		"10.1016/j.jterra.2024.100989",
		"https://doi.org/10.1109/TRO.2023.3343608",
	}
	if len(res.IDs) != len(wantIDs) {
		t.Fatalf("IDs = %v, want %v", res.IDs, wantIDs)
	}
	for i, want := range wantIDs {
		if res.IDs[i] != want {
			t.Errorf("IDs[%d] = %q, want %q", i, res.IDs[i], want)
		}
	}

	if len(res.Missing) != 1 || res.Missing[0].Key != "nobody2022" {
		t.Errorf("Missing = %v, want just nobody2022", res.Missing)
	}
}

func TestParseDOIBeatsURL(t *testing.T) {
	src := `@article{both2024,
  url = {https://example.org/landing},
  doi = {10.1234/abc},
}`
	res, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(res.IDs) != 1 || res.IDs[0] != "10.1234/abc" {
		t.Errorf("IDs = %v, want the DOI regardless of field order", res.IDs)
	}
}

func TestParseEmptyInput(t *testing.T) {
	res, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(res.IDs) != 0 || len(res.Missing) != 0 {
		t.Errorf("Parse(\"\") = %+v, want empty result", res)
	}
}

func TestWarn(t *testing.T) {
	res := &Result{Missing: []MissingKey{
		{Key: "a2020", Reason: "no doi or url field"},
		{Key: "b2021", Reason: "no doi or url field"},
	}}
	got := res.Warn()
	if !strings.Contains(got, "a2020") || !strings.Contains(got, "b2021") {
		t.Errorf("Warn() = %q, missing keys not named", got)
	}

	if (&Result{}).Warn() != "" {
		t.Error("Warn() on a clean result should be empty")
	}
}
