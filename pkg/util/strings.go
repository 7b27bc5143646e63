package util

import (
	"strings"
	"unicode"
)

// TitleCase upper-cases the first letter of every word, where a word starts
// after any non-letter. "usd-coin" becomes "Usd-Coin". Used as the display
// fallback for coin identifiers with no metadata row.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
