package classifier

import (
	"context"
	"testing"

	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

func TestRuleEngineClassifyIntent(t *testing.T) {
	engine := NewRuleEngine(nil)
	ctx := context.Background()

	tests := []struct {
		text string
		want types.Intent
	}{
		{"", types.IntentUnknown},
		{"   ", types.IntentUnknown},
		{"hello there", types.IntentGreeting},
		{"HELLO", types.IntentGreeting},
		{"hi, bye", types.IntentGreeting}, // greeting outranks farewell
		{"ok bye now", types.IntentFarewell},
		{"gracias amigo", types.IntentThanks},
		{"merci beaucoup", types.IntentThanks},
		{"sorry I was late", types.IntentApology},
		{"congrats on the new job", types.IntentCongrats},
		{"i love you so much", types.IntentLove},
		{"i hate you", types.IntentHate},
		{"what is the plan", types.IntentQuestion},
		{"do you know the time?", types.IntentQuestion},
		{"¿dónde estás?", types.IntentQuestion},
		{"long time no see", types.IntentSmalltalk},
		{"zzz unrelated text", types.IntentUnknown},
		{"வணக்கம் நண்பா", types.IntentGreeting},
	}

	for _, tt := range tests {
		got, ok := engine.ClassifyIntent(ctx, tt.text)
		if !ok {
			t.Errorf("ClassifyIntent(%q) not confident, rules must always be", tt.text)
		}
		if got != tt.want {
			t.Errorf("ClassifyIntent(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRuleEngineClassifyTone(t *testing.T) {
	engine := NewRuleEngine(nil)
	ctx := context.Background()

	tests := []struct {
		text string
		want types.Tone
	}{
		{"", types.ToneNeutral},
		{"the meeting is at three", types.ToneNeutral},
		{"Could you kindly review the attached document at your convenience.", types.ToneFormal},
		{"i hate this!", types.ToneAngry},
		{"I AM SO ANGRY RIGHT NOW", types.ToneAngry},
		{"i am so tired and disappointed", types.ToneSad},
		{"sorry about the mix-up", types.ToneEmpathetic},
		{"i'm here for you, take your time", types.ToneEmpathetic},
		{"haha that was hilarious 😂", types.ToneHumorous},
		{"wassup bro", types.ToneCasual},
		{"see you there!", types.ToneCasual},
		{"gracias amigo", types.ToneFriendly},
		{"that is awesome news", types.ToneFriendly},
	}

	for _, tt := range tests {
		got, ok := engine.ClassifyTone(ctx, tt.text)
		if !ok {
			t.Errorf("ClassifyTone(%q) not confident, rules must always be", tt.text)
		}
		if got != tt.want {
			t.Errorf("ClassifyTone(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFormalityScore(t *testing.T) {
	engine := NewRuleEngine(nil)

	formal := "I would appreciate it if you could review the report before Monday."
	if score := engine.FormalityScore(formal); score < formalThreshold {
		t.Errorf("FormalityScore(%q) = %d, want >= %d", formal, score, formalThreshold)
	}
	if !engine.IsLikelyFormal(formal) {
		t.Error("formal request should read as formal")
	}

	slangy := "ngl that was lit 🔥"
	if engine.IsLikelyFormal(slangy) {
		t.Error("slang with emoji should never read as formal")
	}
	if score := engine.FormalityScore(slangy); score != 0 {
		t.Errorf("FormalityScore(%q) = %d, want 0 after clamping", slangy, score)
	}
}

func TestContainsEmoji(t *testing.T) {
	if !ContainsEmoji("nice 😄") {
		t.Error("should detect 😄")
	}
	if !ContainsEmoji("love ❤️") {
		t.Error("should detect ❤️")
	}
	if ContainsEmoji("plain text only.") {
		t.Error("should not detect emoji in plain text")
	}
}
