package mask

import (
	"strings"
	"unicode"
)

// Mask placeholders. Any other rune in a mask is a literal.
const (
	Digit        = '9'
	Letter       = 'a'
	Alphanumeric = '*'
)

// Apply formats input with mask, as a text field does while the user types.
// Input runes that do not fit the next placeholder are skipped. Literals are
// written only while input remains, so a partial input yields a partial
// result:
//
//	Apply("(999) 999-9999", "6502530000") // "(650) 253-0000"
//	Apply("(999) 999-9999", "650")        // "(650"
func Apply(mask, input string) string {
	in := []rune(input)
	out := make([]rune, 0, len(mask))
	filled := 0

	i := 0
	for _, m := range mask {
		if i >= len(in) {
			break
		}
		if !isPlaceholder(m) {
			out = append(out, m)
			if in[i] == m {
				i++
			}
			continue
		}
		for i < len(in) && !fits(m, in[i]) {
			i++
		}
		if i >= len(in) {
			break
		}
		out = append(out, in[i])
		filled = len(out)
		i++
	}
	return string(out[:filled])
}

// Unmask returns the runes of value that sit under placeholders of mask,
// dropping literals. Without a mask it keeps letters and digits.
func Unmask(mask, value string) string {
	var b strings.Builder
	if mask == "" {
		for _, r := range value {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		return b.String()
	}

	m := []rune(mask)
	j := 0
	for _, r := range value {
		for j < len(m) && !isPlaceholder(m[j]) && m[j] != r {
			j++
		}
		if j < len(m) && !isPlaceholder(m[j]) {
			j++
			continue
		}
		if j < len(m) && fits(m[j], r) {
			b.WriteRune(r)
		}
		j++
	}
	return b.String()
}

// Placeholders counts the input runes mask accepts.
func Placeholders(mask string) int {
	n := 0
	for _, r := range mask {
		if isPlaceholder(r) {
			n++
		}
	}
	return n
}

func isPlaceholder(r rune) bool {
	return r == Digit || r == Letter || r == Alphanumeric
}

func fits(placeholder, r rune) bool {
	switch placeholder {
	case Digit:
		return unicode.IsDigit(r)
	case Letter:
		return unicode.IsLetter(r)
	case Alphanumeric:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}
