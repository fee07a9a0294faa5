package i18n

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize turns an identifier into a label for messages:
// "firstName" and "first_name" become "First name", "userID" becomes "User ID".
// Path suffixes are dropped, so "items[0].unitPrice" becomes "Unit price".
func Humanize(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	words := splitWords(name)
	if len(words) == 0 {
		return name
	}

	lower := cases.Lower(language.Und)
	for i, w := range words {
		if isAcronym(w) {
			continue
		}
		words[i] = lower.String(w)
	}
	if !isAcronym(words[0]) {
		words[0] = cases.Title(language.Und).String(words[0])
	}
	return strings.Join(words, " ")
}

// splitWords splits on separators and case changes.
func splitWords(s string) []string {
	var (
		words []string
		cur   []rune
	)
	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func isAcronym(w string) bool {
	if len([]rune(w)) < 2 {
		return false
	}
	for _, r := range w {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
