package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the site's supported languages.
type Locale string

const (
	English Locale = "en"
	Spanish Locale = "es"

	// Fallback is consulted whenever the requested locale misses a key.
	Fallback = English
)

// ErrUnsupportedLocale is returned for values outside the supported set.
var ErrUnsupportedLocale = errors.New("i18n: unsupported locale")

var supported = []Locale{English, Spanish}

// Supported lists the supported locales in preference order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// ParseLocale accepts exactly the supported locale codes, case-insensitively.
func ParseLocale(value string) (Locale, error) {
	v := Locale(strings.ToLower(strings.TrimSpace(value)))
	for _, l := range supported {
		if v == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, value)
}

// IsSupported reports whether l is in the supported set.
func (l Locale) IsSupported() bool {
	_, err := ParseLocale(string(l))
	return err == nil
}

func (l Locale) String() string { return string(l) }

var matcher = language.NewMatcher([]language.Tag{language.English, language.Spanish})

// Detect picks a locale from an Accept-Language header. Regional variants
// match their base language (es-AR -> es). It returns false when nothing
// supported was requested.
func Detect(acceptLanguage string) (Locale, bool) {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(supported) {
		return "", false
	}
	return supported[idx], true
}
