package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is requested or none matches.
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the header size accepted by ParseAcceptLanguage.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage picks the supported language that best matches an
// Accept-Language value ("fr-CH, fr;q=0.9, en;q=0.8"), honouring quality
// values. Regional variants match their base language ("en-GB" -> "en").
// defaultLang is returned when nothing matches.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return defaultLang
	}
	return match(tags, supported, defaultLang)
}

// MatchLanguage returns the supported language closest to lang, or
// defaultLang when lang is malformed or nothing matches.
func MatchLanguage(lang string, supported []string, defaultLang string) string {
	tag, err := language.Parse(lang)
	if err != nil || len(supported) == 0 {
		return defaultLang
	}
	return match([]language.Tag{tag}, supported, defaultLang)
}

func match(want []language.Tag, supported []string, defaultLang string) string {
	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, s)
	}
	if len(tags) == 0 {
		return defaultLang
	}

	_, idx, conf := language.NewMatcher(tags).Match(want...)
	if conf == language.No {
		return defaultLang
	}
	return names[idx]
}

// NormalizeLanguage returns the canonical BCP 47 form of lang ("EN_us" -> "en-US").
// Malformed tags are returned unchanged.
func NormalizeLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	return tag.String()
}
