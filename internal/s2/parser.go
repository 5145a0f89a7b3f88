package s2

import (
	"regexp"
	"strings"
)

// doiPattern is adapted from the crossref recommendation for matching
// modern DOIs. It is anchored at the end of the input so DOIs embedded
// in URLs (https://doi.org/10.x/y) resolve to just the DOI.
var doiPattern = regexp.MustCompile(`(?i)(10\.\d{4,9}/[-._;()/:a-z0-9]+)$`)

// s2URLPattern matches a semanticscholar.org paper URL and captures the
// native paper id.
var s2URLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?semanticscholar\.org/paper/([0-9a-f]+)$`)

// Resolve parses a freeform identifier string (a bare DOI, a doi.org or
// semanticscholar.org URL) into a PaperID. The second return is false
// when the string is not a recognized identifier.
func Resolve(raw string) (PaperID, bool) {
	raw = strings.TrimSpace(raw)
	if m := doiPattern.FindStringSubmatch(raw); m != nil {
		return DOI(m[1]), true
	}
	if m := s2URLPattern.FindStringSubmatch(raw); m != nil {
		return S2ID(m[1]), true
	}
	return PaperID{}, false
}

// ResolveAll resolves a list of freeform identifier strings, silently
// dropping any that are not recognized.
func ResolveAll(raw []string) []PaperID {
	ids := make([]PaperID, 0, len(raw))
	for _, r := range raw {
		if id, ok := Resolve(r); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
