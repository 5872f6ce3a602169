// Package normalize provides slug and sort-key normalization for book
// titles and genre names.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any run of non-alphanumeric characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a URL-safe slug.
// "Science Fiction" -> "science-fiction".
// "Sci-Fi/Fantasy" -> "sci-fi-fantasy".
// "Émile Zola" -> "emile-zola".
func Slugify(s string) string {
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SortTitle produces a case-folded, article-stripped key for ordering
// book titles: "The Hobbit" -> "hobbit", "A Wizard of Earthsea" ->
// "wizard of earthsea".
func SortTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(stripDiacritics(title)))

	for _, article := range []string{"the ", "an ", "a "} {
		if strings.HasPrefix(s, article) {
			s = s[len(article):]
			break
		}
	}

	return strings.TrimSpace(s)
}

// stripDiacritics decomposes accented characters and drops the
// combining marks, then removes any remaining non-ASCII runes.
func stripDiacritics(s string) string {
	s = norm.NFKD.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) || r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}
