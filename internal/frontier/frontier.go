// Package frontier implements the staging area of the crawl: every
// discovered-but-not-yet-expanded paper lives here together with an
// approximate citation count that decides whether it is worth expanding
// at the current depth.
package frontier

import (
	"math"
	"sort"

	"github.com/fporter/citegraph/internal/s2"
)

// Entry is a staged paper plus its accumulated citation signal.
type Entry struct {
	// Citations approximates how many already-fetched papers
	// reference this one. Starts at 1 and only grows while the entry
	// is staged. It undercounts: expanded entries are gone and can no
	// longer be incremented, and only references seen alongside each
	// round's fetches are counted.
	Citations int
	Paper     s2.Paper
}

// Expansion is the result of selecting one staged entry for expansion.
type Expansion struct {
	// ID of the expanded paper.
	ID string
	// Refs is the paper's full reference-stub list.
	Refs []s2.Ref
	// RefIDs are the ids of the references that have one, to be
	// fetched next.
	RefIDs []string
}

// Store is the crawl's staging area, keyed by paper id. A given id has
// at most one live entry, and once expanded it can never be restaged:
// expansion is a one-shot, destructive transition.
type Store struct {
	entries  map[string]*Entry
	expanded map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries:  make(map[string]*Entry),
		expanded: make(map[string]struct{}),
	}
}

// Len reports the number of staged entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Signal reports the citation signal for a staged id, or 0 if the id is
// not staged.
func (s *Store) Signal(id string) int {
	if e, ok := s.entries[id]; ok {
		return e.Citations
	}
	return 0
}

// Expanded reports whether the id has already been expanded.
func (s *Store) Expanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

// Papers returns the currently staged papers in id order.
func (s *Store) Papers() []s2.Paper {
	papers := make([]s2.Paper, 0, len(s.entries))
	for _, e := range s.entries {
		papers = append(papers, e.Paper)
	}
	sort.Slice(papers, func(i, j int) bool { return papers[i].ID < papers[j].ID })
	return papers
}

// Seed stages the initial batch of papers, each with a citation signal
// of 1. Reinserting an id keeps the larger of the existing signal and
// 1, so a reseed can never lower a signal.
func (s *Store) Seed(papers []s2.Paper) {
	for _, p := range papers {
		s.stage(p)
	}
}

// Accumulate folds one round's fetched papers into the store. Papers
// not yet present (and never expanded) are staged with a signal of 1.
// Then every reference with a non-empty id across all of this round's
// fetched papers increments the signal of its staged entry, if one
// exists. Increments land on the freshly staged entries too.
func (s *Store) Accumulate(papers []s2.Paper) {
	for _, p := range papers {
		if _, done := s.expanded[p.ID]; done {
			continue
		}
		s.stage(p)
	}
	for _, p := range papers {
		for _, ref := range p.References {
			if ref.ID == "" {
				continue
			}
			if e, ok := s.entries[ref.ID]; ok {
				e.Citations++
			}
		}
	}
}

// stage inserts a paper, keeping any existing signal (never below 1).
func (s *Store) stage(p s2.Paper) {
	if e, ok := s.entries[p.ID]; ok {
		if e.Citations < 1 {
			e.Citations = 1
		}
		e.Paper = p
		return
	}
	s.entries[p.ID] = &Entry{Citations: 1, Paper: p}
}

// Threshold is the minimum citation signal required for expansion at a
// 0-indexed round: floor(connectivity^round). Round 0 yields 1, so the
// whole seed set expands; for connectivity > 1 the bar then grows
// geometrically with depth, which is what keeps the crawl bounded on
// dense citation networks. Once the power exceeds the int range the
// threshold saturates at the int maximum rather than wrapping.
func Threshold(round int, connectivity float64) int {
	t := math.Floor(math.Pow(connectivity, float64(round)))
	if t >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(t)
}

// SelectForExpansion removes every staged entry whose citation signal
// meets Threshold(round, connectivity) and returns one Expansion per
// selected entry, in id order. Entries below the bar stay staged; the
// bar only grows, so an entry that never accumulates further signal
// starves and is simply never expanded. Selected ids are remembered so
// a later Accumulate cannot resurrect them.
func (s *Store) SelectForExpansion(round int, connectivity float64) []Expansion {
	threshold := Threshold(round, connectivity)

	var selected []string
	for id, e := range s.entries {
		if e.Citations >= threshold {
			selected = append(selected, id)
		}
	}
	sort.Strings(selected)

	expansions := make([]Expansion, 0, len(selected))
	for _, id := range selected {
		e := s.entries[id]
		delete(s.entries, id)
		s.expanded[id] = struct{}{}

		exp := Expansion{ID: id, Refs: e.Paper.References}
		for _, ref := range e.Paper.References {
			if ref.ID != "" {
				exp.RefIDs = append(exp.RefIDs, ref.ID)
			}
		}
		expansions = append(expansions, exp)
	}
	return expansions
}
