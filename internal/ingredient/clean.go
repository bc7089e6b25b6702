// Package ingredient provides name cleaning, store-section categorization and
// "to taste" classification for recipe ingredient names.
package ingredient

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// descriptivePrefixes are state, preparation and freshness words that do not
// change what is bought.
//
//nolint:gochecknoglobals // Static lookup table for name cleaning
var descriptivePrefixes = []string{
	"canned", "fresh", "frozen", "dried", "chopped", "diced", "minced",
	"sliced", "shredded", "grated", "crushed", "ground", "whole", "raw",
	"cooked", "roasted", "grilled", "baked", "fried", "steamed", "boiled",
	"organic", "natural", "pure", "plain", "unsalted", "salted", "unsweetened",
	"sweetened", "light", "low-fat", "fat-free", "reduced-fat", "full-fat",
	"boneless", "skinless", "bone-in", "skin-on", "lean", "extra-lean",
	"thick-cut", "thin-sliced", "large", "medium", "small", "extra-large",
	"warm", "cold", "hot", "room temperature", "melted", "softened",
}

var (
	// Matches one descriptive prefix at the head of a name.
	prefixPattern = leadingWords(descriptivePrefixes)
	// Extra prefixes implied by a "can" unit.
	canPattern = leadingWords([]string{"canned", "cans"})
	// Extra prefix implied by a "frozen" unit.
	frozenPattern = leadingWords([]string{"frozen"})
)

// leadingWords compiles a case-insensitive pattern matching any of words as a
// whole leading word followed by whitespace. Longer words are tried first.
func leadingWords(words []string) *regexp.Regexp {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)^\s*(?:` + strings.Join(quoted, "|") + `)\s+`)
}

// Clean strips descriptive prefixes from an ingredient name and capitalizes
// the first letter. The unit is a hint: "can" units also strip "canned" and
// "cans", "frozen" units strip "frozen".
// "Canned Tuna" (can) -> "Tuna".
// "fresh chopped basil" -> "Basil".
// "Room temperature butter" -> "Butter".
func Clean(name string, unit units.Unit) string {
	cleaned := strings.TrimSpace(norm.NFC.String(name))

	patterns := []*regexp.Regexp{prefixPattern}
	hint := strings.ToLower(string(unit))
	if strings.Contains(hint, "can") {
		patterns = append(patterns, canPattern)
	}
	if strings.Contains(hint, "frozen") {
		patterns = append(patterns, frozenPattern)
	}

	// Strip until no pattern matches so the result is a fixed point.
	for stripped := true; stripped; {
		stripped = false
		for _, p := range patterns {
			if loc := p.FindStringIndex(cleaned); loc != nil {
				cleaned = strings.TrimSpace(cleaned[loc[1]:])
				stripped = true
			}
		}
	}

	return capitalizeFirst(cleaned)
}

// Key returns the consolidation identity of a cleaned name.
func Key(cleaned string) string {
	return strings.ToLower(strings.TrimSpace(cleaned))
}

// capitalizeFirst upper-cases the first rune and keeps the rest as is.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
