package types

import "strings"

// Intent is the discrete communicative purpose of a message.
type Intent string

const (
	IntentGreeting  Intent = "greeting"
	IntentFarewell  Intent = "farewell"
	IntentThanks    Intent = "thanks"
	IntentApology   Intent = "apology"
	IntentLove      Intent = "love"
	IntentCongrats  Intent = "congrats"
	IntentHate      Intent = "hate"
	IntentSmalltalk Intent = "smalltalk"
	IntentQuestion  Intent = "question"
	IntentUnknown   Intent = "unknown"
)

// AllIntents lists every valid intent label.
var AllIntents = []Intent{
	IntentGreeting, IntentFarewell, IntentThanks, IntentApology,
	IntentLove, IntentCongrats, IntentHate, IntentSmalltalk,
	IntentQuestion, IntentUnknown,
}

// ParseIntent maps a free-form label to an Intent, or IntentUnknown.
func ParseIntent(s string) Intent {
	v := Intent(strings.ToLower(strings.TrimSpace(s)))
	for _, it := range AllIntents {
		if v == it {
			return it
		}
	}
	// legacy label from older template tables
	if v == "congratulations" {
		return IntentCongrats
	}
	return IntentUnknown
}

// Tone is the discrete emotional/register quality of a message.
type Tone string

const (
	ToneFormal     Tone = "formal"
	ToneFriendly   Tone = "friendly"
	ToneHumorous   Tone = "humorous"
	ToneEmpathetic Tone = "empathetic"
	ToneCasual     Tone = "casual"
	ToneNeutral    Tone = "neutral"
	ToneAngry      Tone = "angry"
	ToneSad        Tone = "sad"

	// ToneAuto is a request-side sentinel asking the pipeline to use the
	// detected tone. It never appears in a ReplyResult.
	ToneAuto Tone = "auto"
)

// AllTones lists every concrete tone label (ToneAuto excluded).
var AllTones = []Tone{
	ToneFormal, ToneFriendly, ToneHumorous, ToneEmpathetic,
	ToneCasual, ToneNeutral, ToneAngry, ToneSad,
}

// ParseTone maps a free-form label to a Tone. Unrecognized values and the
// empty string resolve to ToneAuto so callers degrade to auto-detection.
func ParseTone(s string) Tone {
	v := Tone(strings.ToLower(strings.TrimSpace(s)))
	if v == ToneAuto || v == "" {
		return ToneAuto
	}
	for _, t := range AllTones {
		if v == t {
			return t
		}
	}
	return ToneAuto
}

// CasualFamily reports whether the tone belongs to the casual family used by
// slang injection gates (casual, friendly, humorous).
func (t Tone) CasualFamily() bool {
	return t == ToneCasual || t == ToneFriendly || t == ToneHumorous
}
