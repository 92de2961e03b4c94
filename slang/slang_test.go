package slang

import (
	"strings"
	"testing"

	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

type stubRand struct {
	f float64
	n int
}

func (s stubRand) Float64() float64 { return s.f }
func (s stubRand) Intn(int) int     { return s.n }

func TestNormalize(t *testing.T) {
	tr := New(nil, stubRand{})

	tests := []struct {
		lang types.LanguageCode
		in   string
		want string
	}{
		{"en", "thx bro", "thanks bro"},
		{"en", "BRB in five", "be right back in five"},
		{"en", "ngl gonna be late", "honestly going to be late"},
		// whole words only: "saffron" keeps its letters
		{"en", "saffron is expensive", "saffron is expensive"},
		// "fr fr" is replaced before the single "fr" entry
		{"en", "that was wild fr fr", "that was wild for real"},
		{"en", "fr tho", "for real tho"},
		{"es", "tqm pana", "te quiero mucho amigo"},
		{"fr", "slt, jsp", "salut, je ne sais pas"},
		{"en", "", ""},
	}

	for _, tt := range tests {
		if got := tr.Normalize(tt.in, tt.lang); got != tt.want {
			t.Errorf("Normalize(%q, %s) = %q, want %q", tt.in, tt.lang, got, tt.want)
		}
	}
}

func TestInjectNeverTouchesFormal(t *testing.T) {
	// Float64 of 0 would otherwise always pass the probability gate.
	tr := New(nil, stubRand{f: 0})

	text := "Thank you for your assistance."
	for _, intent := range types.AllIntents {
		if got := tr.Inject(text, "en", intent, types.ToneFormal); got != text {
			t.Errorf("formal reply changed for intent %s: %q", intent, got)
		}
	}
}

func TestInjectProbabilityGate(t *testing.T) {
	text := "thanks a ton"

	// gate passes
	tr := New(nil, stubRand{f: 0, n: 0})
	got := tr.Inject(text, "en", types.IntentThanks, types.ToneCasual)
	if got == text {
		t.Fatal("expected an injected phrase when the gate passes")
	}
	if !strings.HasPrefix(got, text+" ") {
		t.Errorf("injection must append, got %q", got)
	}

	// gate blocks
	tr = New(nil, stubRand{f: 0.99})
	if got := tr.Inject(text, "en", types.IntentThanks, types.ToneCasual); got != text {
		t.Errorf("expected no injection when the draw misses, got %q", got)
	}
}

func TestInjectToneFamilies(t *testing.T) {
	tr := New(nil, stubRand{f: 0, n: 0})

	// thanks rule is casual-family only
	if got := tr.Inject("thanks", "en", types.IntentThanks, types.ToneNeutral); got != "thanks" {
		t.Errorf("neutral tone should not inject, got %q", got)
	}
	if got := tr.Inject("thanks", "en", types.IntentThanks, types.ToneFriendly); got == "thanks" {
		t.Error("friendly tone is in the casual family and should inject")
	}

	// apology rule fires on empathetic
	got := tr.Inject("so sorry", "en", types.IntentApology, types.ToneEmpathetic)
	if got != "so sorry for real, my bad 🙏" {
		t.Errorf("empathetic apology injection = %q", got)
	}
}

func TestInjectContextPoolAlwaysFires(t *testing.T) {
	// Float64 of 0.99 would block the probability gate; context must bypass it.
	tr := New(nil, stubRand{f: 0.99, n: 0})

	got := tr.Inject("love you bro", "en", types.IntentLove, types.ToneCasual)
	if got != "love you bro fr" {
		t.Errorf("context injection = %q, want %q", got, "love you bro fr")
	}

	// no context word: the blocked gate leaves the text alone
	if got := tr.Inject("love you", "en", types.IntentLove, types.ToneCasual); got != "love you" {
		t.Errorf("expected no injection, got %q", got)
	}
}

func TestInjectDefaultRule(t *testing.T) {
	tr := New(nil, stubRand{f: 0, n: 0})

	got := tr.Inject("see you soon", "en", types.IntentFarewell, types.ToneCasual)
	if got != "see you soon ngl" {
		t.Errorf("default rule injection = %q", got)
	}
}

func TestInjectAtMostOnePhrase(t *testing.T) {
	tr := New(nil, stubRand{f: 0, n: 0})

	got := tr.Inject("thanks a ton", "en", types.IntentThanks, types.ToneCasual)
	extra := strings.TrimPrefix(got, "thanks a ton")
	if strings.Count(extra, "ngl") > 1 {
		t.Errorf("more than one phrase injected: %q", got)
	}
}

func TestSeededRandIsDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed should produce the same sequence")
		}
	}
}
