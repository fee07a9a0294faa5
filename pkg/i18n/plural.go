package i18n

import (
	"golang.org/x/text/language"
)

// PluralRule maps a count to a CLDR plural category.
type PluralRule func(n int) string

// CLDR plural categories. Languages use different subsets.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// EnglishPluralRule: one (1), other.
func EnglishPluralRule(n int) string {
	if abs(n) == 1 {
		return PluralOne
	}
	return PluralOther
}

// SlavicPluralRule covers Russian, Ukrainian and Belarusian: one (1, 21,
// 31...), few (2-4, 22-24...), many (everything else).
func SlavicPluralRule(n int) string {
	n = abs(n)
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return PluralOne
	case slavicFew(mod10, mod100):
		return PluralFew
	default:
		return PluralMany
	}
}

// PolishPluralRule: one (1 only), few (2-4, 22-24...), many (everything
// else, 21 and 31 included).
func PolishPluralRule(n int) string {
	n = abs(n)
	switch {
	case n == 1:
		return PluralOne
	case slavicFew(n%10, n%100):
		return PluralFew
	default:
		return PluralMany
	}
}

// BalkanPluralRule covers Croatian, Serbian and Bosnian: one (1, 21...),
// few (2-4, 22-24...), other.
func BalkanPluralRule(n int) string {
	n = abs(n)
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return PluralOne
	case slavicFew(mod10, mod100):
		return PluralFew
	default:
		return PluralOther
	}
}

func slavicFew(mod10, mod100 int) bool {
	return mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14)
}

// RomancePluralRule covers French and Brazilian Portuguese, where 0 is
// singular: one (0, 1), many (millions), other.
func RomancePluralRule(n int) string {
	n = abs(n)
	switch {
	case n <= 1:
		return PluralOne
	case n >= 1_000_000 && n%1_000_000 == 0:
		return PluralMany
	default:
		return PluralOther
	}
}

// SpanishPluralRule covers Spanish, Catalan, Italian and European
// Portuguese: one (1), many (millions), other.
func SpanishPluralRule(n int) string {
	n = abs(n)
	switch {
	case n == 1:
		return PluralOne
	case n >= 1_000_000 && n%1_000_000 == 0:
		return PluralMany
	default:
		return PluralOther
	}
}

// InvariantPluralRule is for languages without plural forms (Japanese, Chinese, Korean...).
func InvariantPluralRule(int) string {
	return PluralOther
}

// ArabicPluralRule uses all six categories.
func ArabicPluralRule(n int) string {
	n = abs(n)
	mod100 := n % 100
	switch {
	case n == 0:
		return PluralZero
	case n == 1:
		return PluralOne
	case n == 2:
		return PluralTwo
	case mod100 >= 3 && mod100 <= 10:
		return PluralFew
	case mod100 >= 11:
		return PluralMany
	default:
		return PluralOther
	}
}

var pluralRules = map[string]PluralRule{
	"en": EnglishPluralRule, "de": EnglishPluralRule, "nl": EnglishPluralRule,
	"sv": EnglishPluralRule, "da": EnglishPluralRule, "no": EnglishPluralRule,
	"nb": EnglishPluralRule, "fi": EnglishPluralRule, "et": EnglishPluralRule,
	"el": EnglishPluralRule, "hu": EnglishPluralRule, "tr": EnglishPluralRule,

	"ru": SlavicPluralRule, "uk": SlavicPluralRule, "be": SlavicPluralRule,
	"pl": PolishPluralRule,
	"hr": BalkanPluralRule, "sr": BalkanPluralRule, "bs": BalkanPluralRule,

	"fr": RomancePluralRule, "pt": RomancePluralRule,
	"es": SpanishPluralRule, "ca": SpanishPluralRule, "it": SpanishPluralRule,

	"ja": InvariantPluralRule, "zh": InvariantPluralRule, "ko": InvariantPluralRule,
	"th": InvariantPluralRule, "vi": InvariantPluralRule, "id": InvariantPluralRule,
	"ms": InvariantPluralRule,

	"ar": ArabicPluralRule,
}

// PluralRuleFor returns the plural rule for a language tag such as "en",
// "pt-BR" or "sr-Latn". Portuguese uses the Brazilian rule unless the tag
// names Portugal. Unknown languages use EnglishPluralRule.
func PluralRuleFor(lang string) PluralRule {
	tag, err := language.Parse(lang)
	if err != nil {
		return EnglishPluralRule
	}
	base, _ := tag.Base()
	if base.String() == "pt" {
		if region, conf := tag.Region(); conf == language.Exact && region.String() == "PT" {
			return SpanishPluralRule
		}
	}
	if rule, ok := pluralRules[base.String()]; ok {
		return rule
	}
	return EnglishPluralRule
}

// pluralCandidates lists the keys N tries, most specific first. "zero" is
// tried for 0 in every language so that "No items" style messages work even
// where CLDR has no zero category.
func pluralCandidates(lang string, n int) []string {
	category := PluralRuleFor(lang)(n)
	out := make([]string, 0, 3)
	if n == 0 && category != PluralZero {
		out = append(out, PluralZero)
	}
	out = append(out, category)
	if category != PluralOther {
		out = append(out, PluralOther)
	}
	return out
}
