// Package i18n holds locale negotiation for the storefront's three
// languages and the single localized-field picker used by every read path.
package i18n

import "golang.org/x/text/language"

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleNL Locale = "nl"
	LocaleFR Locale = "fr"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Dutch,
	language.French,
})

// Negotiate resolves a locale from a raw value, typically a query parameter
// or an Accept-Language header. Anything unrecognized falls back to English.
func Negotiate(raw string) Locale {
	if raw == "" {
		return LocaleEN
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return LocaleEN
	}
	_, idx, _ := matcher.Match(tags...)
	switch idx {
	case 1:
		return LocaleNL
	case 2:
		return LocaleFR
	default:
		return LocaleEN
	}
}

// Pick selects the field for the locale, falling back to English when the
// localized value is empty.
func Pick(en, nl, fr string, loc Locale) string {
	var v string
	switch loc {
	case LocaleNL:
		v = nl
	case LocaleFR:
		v = fr
	default:
		v = en
	}
	if v == "" {
		return en
	}
	return v
}
