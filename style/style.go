// Package style renders the user's draft reply in the resolved intent and
// tone. Rich languages get curated templates for the emotional intents and a
// light decoration pass for everything else; other languages only receive an
// emoji tail.
package style

import (
	"strings"
	"unicode/utf8"

	"github.com/Nackshayan/MultilingualChatAssistant/lexicon"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// decorationLimit is the longest reply, in runes, that still gets punctuation
// and emoji decoration. Longer replies pass through untouched.
const decorationLimit = 80

// Engine styles replies from the template tables.
type Engine struct {
	tables *lexicon.Tables
}

// NewEngine creates a style engine, defaulting to the embedded lexicon when
// tables is nil.
func NewEngine(tables *lexicon.Tables) *Engine {
	if tables == nil {
		tables = lexicon.Default()
	}
	return &Engine{tables: tables}
}

// templated reports whether an intent has curated template coverage.
func templated(intent types.Intent) bool {
	switch intent {
	case types.IntentGreeting, types.IntentThanks, types.IntentApology,
		types.IntentCongrats, types.IntentLove:
		return true
	}
	return false
}

// Style produces the styled reply in the user's own language.
func (e *Engine) Style(text string, lang types.LanguageCode, intent types.Intent, tone types.Tone) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if !e.tables.IsRich(lang) {
		return e.emojiOnly(text, intent, tone)
	}

	// A bare "hi"-style message with no recognized intent still deserves a
	// greeting reply.
	if intent == types.IntentUnknown {
		lower := strings.ToLower(strings.TrimSpace(text))
		if e.tables.GreetingPattern(lang).MatchString(lower) {
			intent = types.IntentGreeting
		}
	}

	if templated(intent) {
		if tpl, ok := e.tables.Template(lang, intent, tone); ok {
			return tpl
		}
	}

	return e.decorate(text, intent, tone)
}

// decorate lightly adjusts punctuation for the tone family and appends one
// emoji, intent emoji first, then tone emoji.
func (e *Engine) decorate(text string, intent types.Intent, tone types.Tone) string {
	base := strings.TrimSpace(text)
	if base == "" || utf8.RuneCountInString(base) > decorationLimit {
		return base
	}

	switch {
	case tone.CasualFamily():
		if !strings.HasSuffix(base, "!") && !strings.HasSuffix(base, "?") {
			base += "!"
		}
	default:
		if !hasTerminalPunct(base) {
			base += "."
		}
	}

	if emoji := e.tables.EmojiFor(intent, tone); emoji != "" && !strings.Contains(base, emoji) {
		base += " " + emoji
	}
	return base
}

// emojiOnly is the fallback for languages without template coverage.
func (e *Engine) emojiOnly(text string, intent types.Intent, tone types.Tone) string {
	base := strings.TrimSpace(text)
	if base == "" {
		return base
	}
	if emoji := e.tables.EmojiFor(intent, tone); emoji != "" && !strings.Contains(base, emoji) {
		base += " " + emoji
	}
	return base
}

func hasTerminalPunct(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}
