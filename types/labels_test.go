package types

import "testing"

func TestParseIntent(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"greeting", IntentGreeting},
		{" THANKS ", IntentThanks},
		{"congratulations", IntentCongrats},
		{"congrats", IntentCongrats},
		{"", IntentUnknown},
		{"nonsense", IntentUnknown},
	}

	for _, tt := range tests {
		if got := ParseIntent(tt.input); got != tt.want {
			t.Errorf("ParseIntent(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseTone(t *testing.T) {
	tests := []struct {
		input string
		want  Tone
	}{
		{"formal", ToneFormal},
		{" Casual ", ToneCasual},
		{"auto", ToneAuto},
		{"", ToneAuto},
		{"shouty", ToneAuto},
	}

	for _, tt := range tests {
		if got := ParseTone(tt.input); got != tt.want {
			t.Errorf("ParseTone(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCasualFamily(t *testing.T) {
	for _, tone := range []Tone{ToneCasual, ToneFriendly, ToneHumorous} {
		if !tone.CasualFamily() {
			t.Errorf("%q should be in the casual family", tone)
		}
	}
	for _, tone := range []Tone{ToneFormal, ToneNeutral, ToneAngry, ToneSad, ToneEmpathetic} {
		if tone.CasualFamily() {
			t.Errorf("%q should not be in the casual family", tone)
		}
	}
}

func TestLanguageCodeNormalize(t *testing.T) {
	tests := []struct {
		input LanguageCode
		want  LanguageCode
	}{
		{"EN", "en"},
		{"en-US", "en"},
		{"es_MX", "es"},
		{" fr ", "fr"},
	}

	for _, tt := range tests {
		if got := tt.input.Normalize(); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if !LanguageCode("en-GB").Equal("EN") {
		t.Error("en-GB should equal EN")
	}
}

func TestLanguageNameMapping(t *testing.T) {
	if got := LanguageNameToCode("Spanish"); got != LangSpanish {
		t.Errorf("LanguageNameToCode(Spanish) = %q", got)
	}
	if got := LanguageNameToCode("Klingon"); got != LangEnglish {
		t.Errorf("unknown names should default to English, got %q", got)
	}
	if got := LanguageCodeToName(LangTamil); got != "Tamil" {
		t.Errorf("LanguageCodeToName(ta) = %q", got)
	}
}
