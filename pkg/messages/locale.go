package messages

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Locale selects a message catalog.
type Locale string

// Supported locales.
const (
	Korean  Locale = "ko"
	English Locale = "en"
	// Silent suppresses every message.
	Silent Locale = "silent"
)

// DefaultLocale is used when nothing is configured.
const DefaultLocale = Korean

var supported = []language.Tag{language.Korean, language.English}

var matcher = language.NewMatcher(supported)

// ParseLocale maps a BCP 47 tag (or "silent") to a Locale. Regional variants
// such as "en-GB" resolve to their base catalog; anything unrecognised falls
// back to DefaultLocale.
func ParseLocale(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return DefaultLocale
	case "silent", "off", "none", "quiet":
		return Silent
	}

	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLocale
	}
	if supported[idx] == language.English {
		return English
	}
	return Korean
}

// Tag returns the language tag for l. Silent maps to the default language.
func (l Locale) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Korean
}

// IsSilent reports whether l suppresses output.
func (l Locale) IsSilent() bool { return l == Silent }

// String implements fmt.Stringer.
func (l Locale) String() string { return string(l) }

// Collator returns a collator ordering strings the way l's readers expect.
// Collators are not safe for concurrent use; create one per sort.
func (l Locale) Collator() *collate.Collator {
	return collate.New(l.Tag())
}
