package i18n

import (
	"context"
)

type localeContextKey struct{}

// SetLocale stores the locale used by Tc, Nc and Translate.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale stored in ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if ctx == nil {
		return DefaultLanguage
	}
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

// LocaleKey returns the context key used by SetLocale, for logging
// extractors such as logger.WithContextValue.
func LocaleKey() any {
	return localeContextKey{}
}
