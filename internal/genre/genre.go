// Package genre maps free-form genre input to canonical shelf slugs.
package genre

import "github.com/leaflogapp/leaflog-server/internal/normalize"

// aliases maps common variations to the canonical slug. Input is
// slugified before lookup, so keys are slugs too.
var aliases = map[string]string{
	// Science fiction variations
	"sci-fi":  "science-fiction",
	"scifi":   "science-fiction",
	"sf":      "science-fiction",
	"syfy":    "science-fiction",
	"hard-sf": "hard-sci-fi",

	// Fantasy variations
	"high-fantasy":      "epic-fantasy",
	"sword-and-sorcery": "sword-and-sorcery",
	"s-s":               "sword-and-sorcery",
	"romantic-fantasy":  "romantasy",
	"cultivation":       "progression-fantasy",
	"gamelit":           "litrpg",
	"lit-rpg":           "litrpg",

	// Young adult variations
	"ya":          "young-adult",
	"teen":        "young-adult",
	"teen-and-ya": "young-adult",

	// Mystery/thriller
	"suspense":  "thriller",
	"whodunit":  "mystery",
	"detective": "mystery",

	// Non-fiction variations
	"selfhelp":             "self-help",
	"personal-development": "self-help",
	"bio":                  "biography",
	"memoirs":              "memoir",
	"autobio":              "autobiography",
	"business":             "business-finance",
	"finance":              "business-finance",

	// Romance variations
	"modern-romance": "contemporary-romance",
	"pnr":            "paranormal-romance",

	// Historical
	"historical": "historical-fiction",

	// Horror
	"scary": "horror",
}

// Canonical converts a raw genre string to its canonical slug.
// "Sci-Fi" -> "science-fiction", "YA" -> "young-adult". Input without a
// known alias just gets slugified, so new genres work without a mapping.
func Canonical(raw string) string {
	slug := normalize.Slugify(raw)
	if canonical, ok := aliases[slug]; ok {
		return canonical
	}
	return slug
}
