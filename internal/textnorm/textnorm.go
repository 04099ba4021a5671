// Package textnorm canonicalizes storefront markup for pattern matching.
// Romanian pages mix diacritic and plain spellings ("închis" vs "inchis"),
// so every normalized string also gets an ASCII-folded shadow that the same
// pattern can match.
package textnorm

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// availabilityInfoSelector identifies the UI block whose text most reliably
// narrates open/closed state on a storefront page.
const availabilityInfoSelector = `[data-testid="screens.Provider.MenuHeader.availabilityInfo"]`

var whitespaceRe = regexp.MustCompile(`\s+`)

var asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns a lower-cased, entity-decoded, whitespace-collapsed form
// of s, plus the same text with diacritics stripped to plain ASCII.
func Normalize(s string) (plain, ascii string) {
	plain = html.UnescapeString(s)
	plain = strings.ToLower(plain)
	plain = strings.ReplaceAll(plain, " ", " ")
	plain = strings.TrimSpace(whitespaceRe.ReplaceAllString(plain, " "))
	return plain, FoldASCII(plain)
}

// FoldASCII strips combining marks and drops any rune still outside ASCII.
func FoldASCII(s string) string {
	folded, _, err := transform.String(asciiFolder, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AvailabilityInfo extracts the normalized inner text of the availability
// info block, or ok=false if the document has no such block.
func AvailabilityInfo(htmlDoc string) (text string, ok bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc))
	if err != nil {
		return "", false
	}
	sel := doc.Find(availabilityInfoSelector)
	if sel.Length() == 0 {
		return "", false
	}
	plain, _ := Normalize(sel.First().Text())
	return plain, true
}
