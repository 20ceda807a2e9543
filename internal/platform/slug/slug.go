package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9_\s-]`)
	separators = regexp.MustCompile(`[-\s]+`)
)

// Make converts s into a URL slug: accents are folded to ASCII, anything that
// is not a letter, digit, underscore, space or dash is dropped, and runs of
// spaces/dashes collapse into a single dash.
func Make(s string) string {
	folded, _, err := transform.String(transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	), s)
	if err != nil {
		folded = s
	}
	out := disallowed.ReplaceAllString(strings.ToLower(folded), "")
	out = separators.ReplaceAllString(out, "-")
	return strings.Trim(out, "-_")
}

// Valid reports whether s is already in slug form.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
