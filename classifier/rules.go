package classifier

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Nackshayan/MultilingualChatAssistant/lexicon"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// RuleEngine labels text with the multilingual keyword tables. It is always
// confident, so it terminates every chain.
type RuleEngine struct {
	tables *lexicon.Tables
}

// NewRuleEngine creates a rule engine over the given tables, defaulting to
// the embedded lexicon when tables is nil.
func NewRuleEngine(tables *lexicon.Tables) *RuleEngine {
	if tables == nil {
		tables = lexicon.Default()
	}
	return &RuleEngine{tables: tables}
}

// ClassifyIntent walks the ordered rule groups and returns the first match.
// Empty input and input matching no group both resolve to unknown.
func (e *RuleEngine) ClassifyIntent(_ context.Context, text string) (types.Intent, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return types.IntentUnknown, true
	}
	for gi := range e.tables.Intents {
		g := &e.tables.Intents[gi]
		for pi := range g.Patterns {
			if g.Patterns[pi].Matches(lower) {
				return g.Intent, true
			}
		}
	}
	return types.IntentUnknown, true
}

// ClassifyTone scores the text against the tone signal lists.
func (e *RuleEngine) ClassifyTone(_ context.Context, text string) (types.Tone, bool) {
	if strings.TrimSpace(text) == "" {
		return types.ToneNeutral, true
	}

	lower := strings.ToLower(text)
	sig := e.tables.Tones

	positive := containsAny(lower, sig.Positive)
	negative := containsAny(lower, sig.Negative)
	apology := containsAny(lower, sig.Apology)
	support := containsAny(lower, sig.Support)
	laugh := containsAny(lower, sig.Laugh)
	slang := containsAny(lower, sig.SlangMarkers)

	emoji := ContainsEmoji(text)
	exclaim := strings.Contains(text, "!")

	switch {
	case e.FormalityScore(text) >= formalThreshold:
		return types.ToneFormal, true
	case negative && (exclaim || isShouting(text)):
		return types.ToneAngry, true
	case negative && !positive:
		return types.ToneSad, true
	case apology || support:
		return types.ToneEmpathetic, true
	case emoji && laugh:
		return types.ToneHumorous, true
	case slang || emoji || exclaim:
		return types.ToneCasual, true
	case positive:
		return types.ToneFriendly, true
	}
	return types.ToneNeutral, true
}

// formalThreshold is the formality score at or above which a message is
// treated as formal.
const formalThreshold = 6

// FormalityScore rates the register of a message on a 0..10 scale.
func (e *RuleEngine) FormalityScore(text string) int {
	lower := strings.ToLower(text)
	sig := e.tables.Tones

	slang := containsAny(lower, sig.SlangMarkers)
	emoji := ContainsEmoji(text)

	score := 0
	if containsAny(lower, sig.FormalMarkers) {
		score += 4
	}
	if utf8.RuneCountInString(text) > 40 && !slang {
		score += 2
	}
	if emoji {
		score -= 2
	} else {
		score++
	}
	if slang {
		score -= 3
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "?") || strings.HasSuffix(trimmed, "!") {
		score++
	}

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score
}

// IsLikelyFormal reports whether the message reads as formal register.
func (e *RuleEngine) IsLikelyFormal(text string) bool {
	return e.FormalityScore(text) >= formalThreshold
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// isShouting reports whether the text contains an all-caps word longer than
// two runes.
func isShouting(text string) bool {
	for _, word := range strings.Fields(text) {
		letters, lower := 0, false
		for _, r := range word {
			if unicode.IsLetter(r) {
				letters++
				if unicode.IsLower(r) {
					lower = true
					break
				}
			}
		}
		if !lower && letters > 2 {
			return true
		}
	}
	return false
}

// ContainsEmoji reports whether the text contains an emoji codepoint.
func ContainsEmoji(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
			return true
		case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
			return true
		case r == 0x2764: // heavy black heart
			return true
		case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
			return true
		}
	}
	return false
}
