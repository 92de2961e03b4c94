package reply

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nackshayan/MultilingualChatAssistant/slang"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

type spyTranslator struct {
	out   string
	err   error
	calls int
	last  struct {
		text     string
		from, to types.LanguageCode
	}
}

func (s *spyTranslator) Translate(_ context.Context, text string, from, to types.LanguageCode) (string, error) {
	s.calls++
	s.last.text, s.last.from, s.last.to = text, from, to
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

// neverRand blocks every probability gate so injection stays out of the way.
type neverRand struct{}

func (neverRand) Float64() float64 { return 0.99 }
func (neverRand) Intn(int) int     { return 0 }

func quietEngine(extra ...Option) *Engine {
	opts := append([]Option{WithSlang(slang.New(nil, neverRand{}))}, extra...)
	return NewEngine(opts...)
}

func TestGenerateReplySameLanguageSkipsTranslator(t *testing.T) {
	spy := &spyTranslator{out: "unused"}
	engine := quietEngine(WithTranslator(spy))

	// casing and regional variants still count as the same language
	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		IncomingText: "hello there",
		UserReply:    "thanks a lot",
		UserLang:     "EN",
		SendLang:     "en-US",
	})
	if err != nil {
		t.Fatal(err)
	}
	if spy.calls != 0 {
		t.Errorf("translator called %d times for a same-language run", spy.calls)
	}
	if res.SendLang != "en" {
		t.Errorf("send lang = %q, want the normalized user language", res.SendLang)
	}
	if res.Intent != types.IntentThanks {
		t.Errorf("intent = %q, want thanks", res.Intent)
	}
	if res.FinalReply != res.StyledReply {
		t.Errorf("final %q should match styled %q without translation or injection", res.FinalReply, res.StyledReply)
	}
}

func TestGenerateReplyTranslates(t *testing.T) {
	spy := &spyTranslator{out: "thanks friend"}
	engine := quietEngine(WithTranslator(spy))

	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		IncomingText: "Hola amigo",
		UserReply:    "gracias amigo",
		UserLang:     "es",
		SendLang:     "en",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != types.IntentThanks {
		t.Errorf("intent = %q, want thanks", res.Intent)
	}
	if res.Tone != types.ToneFriendly {
		t.Errorf("tone = %q, want friendly", res.Tone)
	}
	if spy.calls != 1 {
		t.Fatalf("translator called %d times, want 1", spy.calls)
	}
	if spy.last.from != "es" || spy.last.to != "en" {
		t.Errorf("translated %s->%s, want es->en", spy.last.from, spy.last.to)
	}
	if spy.last.text != res.StyledReply {
		t.Errorf("translator should receive the styled reply, got %q", spy.last.text)
	}
	if res.FinalReply != "thanks friend" {
		t.Errorf("final = %q, want the translated text", res.FinalReply)
	}
	if res.SendLang != "en" || res.TranslationDegraded {
		t.Errorf("send lang = %q, degraded = %v", res.SendLang, res.TranslationDegraded)
	}
}

func TestGenerateReplyAbsorbsTranslatorFailure(t *testing.T) {
	spy := &spyTranslator{err: errors.New("provider down")}
	engine := quietEngine(WithTranslator(spy))

	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		IncomingText: "hello",
		UserReply:    "thank you for your help",
		UserLang:     "en",
		SendLang:     "es",
		ToneOverride: types.ToneFormal,
	})
	if err != nil {
		t.Fatalf("a translator failure must not fail the run: %v", err)
	}
	if !res.TranslationDegraded {
		t.Error("result should be marked degraded")
	}
	if res.SendLang != "en" {
		t.Errorf("send lang should fall back to the user's language, got %q", res.SendLang)
	}
	if res.FinalReply != res.StyledReply {
		t.Errorf("final %q should be the untranslated styled reply %q", res.FinalReply, res.StyledReply)
	}
}

func TestGenerateReplyToneOverride(t *testing.T) {
	engine := quietEngine()

	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		IncomingText: "wassup bro",
		UserReply:    "thanks for the invite",
		UserLang:     "en",
		ToneOverride: types.ToneFormal,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tone != types.ToneFormal {
		t.Errorf("tone = %q, override should win", res.Tone)
	}
}

func TestGenerateReplyEmptyReplyUsesIncoming(t *testing.T) {
	engine := quietEngine()

	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		IncomingText: "hello there",
		UserReply:    "",
		UserLang:     "en",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != types.IntentGreeting {
		t.Errorf("intent should come from the incoming message, got %q", res.Intent)
	}
	if res.Tone != types.ToneNeutral {
		t.Errorf("tone = %q, an empty reply is neutral", res.Tone)
	}
	if res.FinalReply != "" {
		t.Errorf("empty draft should stay empty, got %q", res.FinalReply)
	}
}

func TestGenerateReplyToneReadsOnlyTheReply(t *testing.T) {
	engine := quietEngine()

	// the incoming message carries the intent, never the tone
	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		IncomingText: "I am so sorry I missed your call",
		UserReply:    "",
		UserLang:     "en",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != types.IntentApology {
		t.Errorf("intent = %q, want apology from the incoming message", res.Intent)
	}
	if res.Tone != types.ToneNeutral {
		t.Errorf("tone = %q, want neutral for an empty reply", res.Tone)
	}
}

func TestGenerateReplyDefaultLanguages(t *testing.T) {
	engine := quietEngine()

	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		UserReply: "see you tomorrow",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.UserLang != types.LangEnglish || res.SendLang != types.LangEnglish {
		t.Errorf("languages = %s/%s, want en/en", res.UserLang, res.SendLang)
	}
}

func TestGenerateReplyConfiguredDefaultLanguages(t *testing.T) {
	spy := &spyTranslator{out: "à demain"}
	engine := quietEngine(
		WithTranslator(spy),
		WithDefaultLanguages(types.LangSpanish, types.LangFrench),
	)

	// undetectable text resolves to the configured defaults
	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		UserReply: "see you tomorrow",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.UserLang != types.LangSpanish {
		t.Errorf("user lang = %s, want the configured default es", res.UserLang)
	}
	if res.SendLang != types.LangFrench {
		t.Errorf("send lang = %s, want the configured default fr", res.SendLang)
	}
	if spy.calls != 1 || spy.last.from != "es" || spy.last.to != "fr" {
		t.Errorf("translated %s->%s in %d calls, want es->fr once", spy.last.from, spy.last.to, spy.calls)
	}
}

func TestGenerateReplyDetectsUserLanguage(t *testing.T) {
	engine := quietEngine()

	res, err := engine.GenerateReply(context.Background(), types.ReplyRequest{
		IncomingText: "Hola amigo",
		UserReply:    "gracias amigo, nos vemos mañana",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.UserLang != types.LangSpanish {
		t.Errorf("user lang = %s, want detected es", res.UserLang)
	}
	if res.SendLang != types.LangSpanish {
		t.Errorf("send lang = %s, should follow the detected language", res.SendLang)
	}
}

type sinkRecorder struct {
	events []*types.RunEvent
}

func (s *sinkRecorder) BroadcastEvent(e *types.RunEvent) { s.events = append(s.events, e) }

func TestGenerateReplyEmitsRunEvent(t *testing.T) {
	sink := &sinkRecorder{}
	engine := quietEngine(WithEventSink(sink))

	if _, err := engine.GenerateReply(context.Background(), types.ReplyRequest{UserReply: "thanks"}); err != nil {
		t.Fatal(err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Type != types.EventTypeRun || ev.Result == nil {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestGenerateReplyAsync(t *testing.T) {
	engine := quietEngine()

	done := make(chan *types.ReplyResult, 1)
	engine.GenerateReplyAsync(context.Background(), types.ReplyRequest{UserReply: "thanks"}, func(res *types.ReplyResult, err error) {
		if err != nil {
			t.Errorf("async run failed: %v", err)
		}
		done <- res
	})

	select {
	case res := <-done:
		if res == nil || res.Intent != types.IntentThanks {
			t.Errorf("unexpected async result %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
}
