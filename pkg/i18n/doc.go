// Package i18n loads translations and renders localised messages.
//
// Translations are nested maps keyed by language, loaded through a
// TranslationAdapter from a map, a single file or a directory of YAML/JSON
// files. Keys use dot notation and templates use %{name} placeholders.
//
//	adapter := i18n.NewDirectoryAdapter(nil, "./translations")
//	tr, err := i18n.NewTranslator(ctx, adapter, i18n.WithDefaultLanguage("en"))
//	if err != nil {
//		return err
//	}
//
//	tr.T("en", "welcome", "name", "Ada") // "Welcome, Ada!"
//	tr.N("ru", "items", 3)               // uses items.few
//
// # Plurals
//
// N selects a plural form with the CLDR rule of the language (see
// PluralRuleFor). A plural key is a map of forms:
//
//	items:
//	  zero: No items
//	  one: "%{count} item"
//	  other: "%{count} items"
//
// # Locale in context
//
// SetLocale stores the caller's language in a context; Tc, Nc and Translate
// read it back. Translate takes values of any type and reports whether a
// translation exists, which makes *Translator usable as the message
// translator of the validator package.
//
// # Language matching
//
// ParseAcceptLanguage and MatchLanguage pick the best supported language
// for a header or a tag using golang.org/x/text/language.
//
// # Labels
//
// Humanize turns property names such as "firstName" or "user_id" into
// labels ("First name", "User ID").
package i18n
