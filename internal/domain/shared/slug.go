package shared

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	slugInvalid   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify converts a display name into a URL slug: lower case, whitespace
// runs become "-", accents are folded and anything outside [a-z0-9-] is
// dropped. "Gorkha Tool Kit" becomes "gorkha-tool-kit".
func Slugify(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}
	s := strings.ToLower(strings.TrimSpace(folded))
	s = whitespaceRun.ReplaceAllString(s, "-")
	return slugInvalid.ReplaceAllString(s, "")
}
