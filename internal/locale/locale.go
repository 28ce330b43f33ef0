// Package locale defines the two display languages Aastha ships with and the
// small helper every page uses to pick its inlined strings.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a display language.
type Locale string

const (
	English Locale = "en"
	Punjabi Locale = "pa"
)

// All lists the supported locales in selection order.
var All = []Locale{English, Punjabi}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("pa"),
})

// Parse resolves a user supplied language name or BCP 47 tag ("pa-IN",
// "en-GB", "punjabi") to a supported locale. The second result is false when
// nothing matched; the returned locale is then English.
func Parse(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return English, false
	case "english":
		return English, true
	case "punjabi", "panjabi", "ਪੰਜਾਬੀ":
		return Punjabi, true
	}

	tag, err := language.Parse(s)
	if err != nil {
		return English, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English, false
	}
	return All[idx], true
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	return l == English || l == Punjabi
}

// IsEnglish reports whether English strings should be shown.
func (l Locale) IsEnglish() bool {
	return l != Punjabi
}

// Name returns the language's own name for itself.
func (l Locale) Name() string {
	if l == Punjabi {
		return "ਪੰਜਾਬੀ"
	}
	return "English"
}

func (l Locale) String() string {
	return string(l)
}

// Text is one inlined string in both languages.
type Text struct {
	EN string
	PA string
}

// In returns the string for l. Missing Punjabi text falls back to English.
func (t Text) In(l Locale) string {
	if l == Punjabi && t.PA != "" {
		return t.PA
	}
	return t.EN
}
