package crawler

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// textCleaner normalizes text read from the page. Every string is
// whitespace-collapsed and brought to NFC before it is stored or compared.
type textCleaner struct {
	fold cases.Caser
}

func newTextCleaner() *textCleaner {
	return &textCleaner{fold: cases.Fold()}
}

// line collapses every run of whitespace, including line breaks, into a
// single space.
func (t *textCleaner) line(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// block trims surrounding whitespace but keeps inner line breaks, for
// multi-line biography blocks.
func (t *textCleaner) block(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			kept = append(kept, l)
		}
	}
	return norm.NFC.String(strings.Join(kept, "\n"))
}

// contains reports whether s contains marker, ignoring case.
func (t *textCleaner) contains(s, marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(t.fold.String(norm.NFC.String(s)), t.fold.String(norm.NFC.String(marker)))
}

// resolveURL resolves ref against base. Unparseable references are returned
// unchanged.
func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return r.String()
	}

	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ref
	}
	return b.ResolveReference(r).String()
}

// subsectionCode extracts the identifier following marker in href, cut at
// the next query parameter or fragment. It returns false when href does not
// contain marker.
func subsectionCode(href, marker string) (string, bool) {
	_, after, found := strings.Cut(href, marker)
	if !found {
		return "", false
	}
	if i := strings.IndexAny(after, "&#"); i >= 0 {
		after = after[:i]
	}
	return after, true
}
