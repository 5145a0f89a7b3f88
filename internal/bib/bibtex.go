// Package bib extracts seed paper identifiers from a Bib(La)TeX
// bibliography. Each entry contributes its doi field, or its url field
// when no DOI is present; entries with neither are reported but do not
// stop the import.
package bib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Regex patterns for the line-oriented scan.
var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`@\w+\{([^,]+),`)
	// Match doi = {value} or doi = "value"
	doiFieldRegex = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[{"]([^}"]+)[}"]`)
	// Match url = {value} or url = "value"
	urlFieldRegex = regexp.MustCompile(`(?i)^\s*url\s*=\s*[{"]([^}"]+)[}"]`)
)

// MissingKey records a bibliography entry that yielded no identifier.
type MissingKey struct {
	Key    string
	Reason string
}

// Result holds the identifier strings extracted from a bibliography,
// plus the entries that had neither a DOI nor a URL.
type Result struct {
	IDs     []string
	Missing []MissingKey
}

// ParseFile extracts identifiers from a .bib file on disk.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse extracts identifiers from BibTeX source. Per entry the doi
// field wins; url is the fallback. The scan is line-oriented and
// tolerant: anything that doesn't look like an entry start or a
// doi/url field is ignored.
func Parse(r io.Reader) (*Result, error) {
	res := &Result{}

	var key string
	var doi, url string
	flush := func() {
		if key == "" {
			return
		}
		switch {
		case doi != "":
			res.IDs = append(res.IDs, doi)
		case url != "":
			res.IDs = append(res.IDs, url)
		default:
			res.Missing = append(res.Missing, MissingKey{Key: key, Reason: "no doi or url field"})
		}
		key, doi, url = "", "", ""
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := entryStartRegex.FindStringSubmatch(line); m != nil {
			flush()
			key = strings.TrimSpace(m[1])
			continue
		}
		if m := doiFieldRegex.FindStringSubmatch(line); m != nil && doi == "" {
			doi = strings.TrimSpace(m[1])
			continue
		}
		if m := urlFieldRegex.FindStringSubmatch(line); m != nil && url == "" {
			url = strings.TrimSpace(m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}
	flush()

	return res, nil
}

// Warn formats the missing-key report the way the crawl commands print
// it: one line naming every entry that was skipped.
func (r *Result) Warn() string {
	if len(r.Missing) == 0 {
		return ""
	}
	parts := make([]string, len(r.Missing))
	for i, m := range r.Missing {
		parts[i] = fmt.Sprintf("%s (%s)", m.Key, m.Reason)
	}
	return "these keys didn't have a DOI or URL: " + strings.Join(parts, ", ")
}
