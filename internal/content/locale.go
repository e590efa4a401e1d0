package content

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported site language.
type Locale string

const (
	English Locale = "en"
	Persian Locale = "fa"
)

// DefaultLocale is served at unprefixed routes.
const DefaultLocale = English

// Locales lists every supported locale, default first.
var Locales = []Locale{English, Persian}

// ErrUnknownLocale is returned for locale codes the site does not serve.
var ErrUnknownLocale = errors.New("unknown locale")

var matcher = language.NewMatcher([]language.Tag{language.English, language.Persian})

// ParseLocale validates a locale code. An empty code yields DefaultLocale.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultLocale, nil
	case English:
		return English, nil
	case Persian:
		return Persian, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
}

// Negotiate picks the best locale for an Accept-Language header value.
func Negotiate(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(Locales) {
		return DefaultLocale
	}
	return Locales[idx]
}

// RTL reports whether the locale is written right to left.
func (l Locale) RTL() bool { return l == Persian }

// Dir returns the HTML dir attribute value.
func (l Locale) Dir() string {
	if l.RTL() {
		return "rtl"
	}
	return "ltr"
}

// Prefix is the route prefix of the locale; the default locale has none.
func (l Locale) Prefix() string {
	if l == DefaultLocale || l == "" {
		return ""
	}
	return "/" + string(l)
}

// Tag is the upper-case code used in file names.
func (l Locale) Tag() string { return strings.ToUpper(string(l)) }

func (l Locale) String() string { return string(l) }
