package alphabet

import "strings"

// harakāt, tanwīn, shadda and sukūn
func isDiacritic(r rune) bool {
	return r >= 'ً' && r <= 'ْ'
}

// HasDiacritics reports whether s carries any short-vowel or gemination marks
func HasDiacritics(s string) bool {
	return strings.IndexFunc(s, isDiacritic) >= 0
}

// StripDiacritics removes the marks recognised by HasDiacritics
func StripDiacritics(s string) string {
	return strings.Map(func(r rune) rune {
		if isDiacritic(r) {
			return -1
		}
		return r
	}, s)
}
