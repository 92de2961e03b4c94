// Package langdetect guesses the language of a short chat message from
// script blocks, accented characters, and high-frequency keywords.
package langdetect

import (
	"strings"

	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

var spanishKeywords = []string{
	"hola", "gracias", "por favor", "buenos dias", "buenas noches",
	"lo siento", "te quiero", "felicidades", "amigo", "mucho",
}

var frenchKeywords = []string{
	"bonjour", "bonsoir", "salut", "merci", "s'il vous plaît",
	"désolé", "je t'aime", "félicitations", "beaucoup", "au revoir",
}

// Detect guesses the message language. It recognizes Tamil, Spanish, and
// French; anything else is reported as undetermined.
func Detect(text string) types.LanguageCode {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.LangUndetermined
	}

	for _, r := range trimmed {
		if r >= 0x0B80 && r <= 0x0BFF { // Tamil block
			return types.LangTamil
		}
	}

	lower := strings.ToLower(trimmed)

	// French first: its accent set is disjoint from the Spanish one except
	// for é, which stays a Spanish cue.
	if strings.ContainsAny(lower, "àâçèêëîïôùûœ") || containsAnyWord(lower, frenchKeywords) {
		return types.LangFrench
	}
	if strings.ContainsAny(lower, "¿¡ñáéíóú") || containsAnyWord(lower, spanishKeywords) {
		return types.LangSpanish
	}
	return types.LangUndetermined
}

// DetectWithFallback returns the detected language, or the fallback when the
// language cannot be determined.
func DetectWithFallback(text string, fallback types.LanguageCode) types.LanguageCode {
	if lang := Detect(text); lang != types.LangUndetermined {
		return lang
	}
	return fallback
}

func containsAnyWord(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
