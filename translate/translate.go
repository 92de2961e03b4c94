// Package translate carries the styled reply into the recipient's language.
// Translators only ever see pairs that actually need translating; same and
// unsupported language pairs pass through unchanged.
package translate

import (
	"context"

	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// Translator converts text between two languages.
type Translator interface {
	Translate(ctx context.Context, text string, from, to types.LanguageCode) (string, error)
}

// supported lists the languages translators are expected to handle.
var supported = map[types.LanguageCode]bool{
	types.LangEnglish: true,
	types.LangSpanish: true,
	types.LangFrench:  true,
	types.LangTamil:   true,
}

// Supported reports whether a language is in the translatable set.
func Supported(lang types.LanguageCode) bool {
	return supported[lang.Normalize()]
}

// Needed reports whether a (from, to) pair requires a translator call.
// Same-language and unsupported pairs do not.
func Needed(from, to types.LanguageCode) bool {
	return !from.Equal(to) && Supported(from) && Supported(to)
}

// Identity returns its input unchanged. It is the default translator and the
// explicit choice for deployments without an outbound provider.
type Identity struct{}

func (Identity) Translate(_ context.Context, text string, _, _ types.LanguageCode) (string, error) {
	return text, nil
}
