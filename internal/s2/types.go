// Package s2 provides identifier handling and a batch client for the
// Semantic Scholar Academic Graph API (or a proxy speaking the same
// protocol, see cmd/s2proxy).
package s2

// IDKind discriminates the supported paper identifier forms.
type IDKind int

const (
	// KindDOI is a canonical DOI, sent to the API as "DOI:<value>".
	KindDOI IDKind = iota
	// KindS2 is a native Semantic Scholar paper id, sent bare.
	KindS2
)

// PaperID identifies a paper to the batch API.
type PaperID struct {
	Kind  IDKind
	Value string
}

// DOI constructs a DOI identifier.
func DOI(value string) PaperID {
	return PaperID{Kind: KindDOI, Value: value}
}

// S2ID constructs a native Semantic Scholar identifier.
func S2ID(value string) PaperID {
	return PaperID{Kind: KindS2, Value: value}
}

// String renders the identifier in the wire form the batch API expects.
func (id PaperID) String() string {
	if id.Kind == KindDOI {
		return "DOI:" + id.Value
	}
	return id.Value
}

// Ref is a paper known only from another paper's reference list.
// The upstream may omit the id, in which case the ref can never be
// fetched or deduplicated by id.
type Ref struct {
	ID    string `json:"paperId"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Paper is a fully resolved record from the batch endpoint.
type Paper struct {
	ID         string `json:"paperId"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	References []Ref  `json:"references"`
}
