// Package pdfdoi pulls a DOI out of a PDF so a paper on disk can seed
// a crawl without a bibliography.
package pdfdoi

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// doiPattern matches a DOI in free text: 10.NNNN/suffix with a 4-9
// digit registrant code.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// maxPages bounds how deep into the document the scan goes.
const maxPages = 3

// Extract returns the first DOI found in the first pages of the PDF,
// or "" when none is found (which is not an error).
func Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// The DOI is almost always on the first page; a few publishers
	// put it on a cover sheet, so scan a couple more.
	pages := maxPages
	if r.NumPage() < pages {
		pages = r.NumPage()
	}

	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := FindDOI(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// FindDOI scans free text for a DOI, trimming punctuation that
// publishers typeset after it but that is not part of the DOI.
func FindDOI(text string) string {
	match := doiPattern.FindString(text)
	return strings.TrimRight(match, ".,;)")
}
