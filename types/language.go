package types

import "strings"

// LanguageCode selects which lexicon/template set a stage uses.
// "und" means the language could not be determined.
type LanguageCode string

const (
	LangEnglish      LanguageCode = "en"
	LangSpanish      LanguageCode = "es"
	LangFrench       LanguageCode = "fr"
	LangGerman       LanguageCode = "de"
	LangTamil        LanguageCode = "ta"
	LangUndetermined LanguageCode = "und"
)

// Normalize lower-cases, trims, and strips a regional suffix ("en-US" -> "en").
func (l LanguageCode) Normalize() LanguageCode {
	s := strings.ToLower(strings.TrimSpace(string(l)))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	return LanguageCode(s)
}

// Equal compares two codes case-insensitively after trimming, ignoring
// regional suffixes.
func (l LanguageCode) Equal(other LanguageCode) bool {
	return l.Normalize() == other.Normalize()
}

// LanguageNameToCode maps a human language name to its code. Unrecognized
// names default to English, matching the UI spinner behavior.
func LanguageNameToCode(name string) LanguageCode {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "spanish"):
		return LangSpanish
	case strings.Contains(n, "french"):
		return LangFrench
	case strings.Contains(n, "german"):
		return LangGerman
	case strings.Contains(n, "tamil"):
		return LangTamil
	default:
		return LangEnglish
	}
}

// LanguageCodeToName maps a code back to a display name.
func LanguageCodeToName(code LanguageCode) string {
	switch code.Normalize() {
	case LangSpanish:
		return "Spanish"
	case LangFrench:
		return "French"
	case LangGerman:
		return "German"
	case LangTamil:
		return "Tamil"
	default:
		return "English"
	}
}
