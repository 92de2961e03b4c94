// Package reply orchestrates the full pipeline: slang normalization, intent
// and tone classification, styling, translation, and slang injection.
package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Nackshayan/MultilingualChatAssistant/classifier"
	"github.com/Nackshayan/MultilingualChatAssistant/langdetect"
	"github.com/Nackshayan/MultilingualChatAssistant/lexicon"
	"github.com/Nackshayan/MultilingualChatAssistant/logger"
	"github.com/Nackshayan/MultilingualChatAssistant/slang"
	"github.com/Nackshayan/MultilingualChatAssistant/style"
	"github.com/Nackshayan/MultilingualChatAssistant/translate"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// EventSink receives one event per pipeline run, typically the websocket hub.
type EventSink interface {
	BroadcastEvent(event *types.RunEvent)
}

// Engine runs the reply pipeline. All collaborators have working defaults,
// so NewEngine() alone yields a usable engine with identity translation.
type Engine struct {
	tables     *lexicon.Tables
	chain      *classifier.Chain
	slang      *slang.Transformer
	style      *style.Engine
	translator translate.Translator
	sink       EventSink
	log        *logger.Logger

	defaultUserLang types.LanguageCode
	defaultSendLang types.LanguageCode
}

// Option configures an Engine.
type Option func(*Engine)

// WithTables replaces the embedded lexicon.
func WithTables(t *lexicon.Tables) Option {
	return func(e *Engine) { e.tables = t }
}

// WithChain replaces the classification chain.
func WithChain(c *classifier.Chain) Option {
	return func(e *Engine) { e.chain = c }
}

// WithSlang replaces the slang transformer.
func WithSlang(s *slang.Transformer) Option {
	return func(e *Engine) { e.slang = s }
}

// WithStyle replaces the style engine.
func WithStyle(s *style.Engine) Option {
	return func(e *Engine) { e.style = s }
}

// WithTranslator sets the outbound translator.
func WithTranslator(t translate.Translator) Option {
	return func(e *Engine) { e.translator = t }
}

// WithEventSink sets the per-run event receiver.
func WithEventSink(s EventSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithDefaultLanguages sets the fallbacks used when a request names no
// languages: user is the language assumed when detection is inconclusive,
// send overrides the reply-in-the-user's-language default. Either may be
// empty to keep the built-in behavior.
func WithDefaultLanguages(user, send types.LanguageCode) Option {
	return func(e *Engine) {
		e.defaultUserLang = user.Normalize()
		e.defaultSendLang = send.Normalize()
	}
}

// NewEngine builds a pipeline engine. Unset collaborators fall back to the
// embedded lexicon, the rules-only chain, and identity translation.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log: logger.GetLogger().WithField("component", "reply-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.tables == nil {
		e.tables = lexicon.Default()
	}
	if e.chain == nil {
		e.chain = classifier.NewChain(classifier.NewRuleEngine(e.tables))
	}
	if e.slang == nil {
		e.slang = slang.New(e.tables, nil)
	}
	if e.style == nil {
		e.style = style.NewEngine(e.tables)
	}
	if e.translator == nil {
		e.translator = translate.Identity{}
	}
	if e.defaultUserLang == "" {
		e.defaultUserLang = types.LangEnglish
	}
	return e
}

// GenerateReply runs the pipeline once. A translator failure never fails the
// run: the reply falls back to the user's language and the result is marked
// degraded. Only an internal stage fault produces an error.
func (e *Engine) GenerateReply(ctx context.Context, req types.ReplyRequest) (result *types.ReplyResult, err error) {
	runID := uuid.New().String()
	log := e.log.WithField("run_id", runID)

	defer func() {
		if r := recover(); r != nil {
			perr := types.NewPipelineError(types.ErrCodeStageFault, "pipeline",
				fmt.Sprintf("stage panic: %v", r), runID)
			log.Error("pipeline stage fault", perr)
			e.emit(types.NewRunEvent(types.EventTypeError, runID, "reply-engine", perr.Message))
			result, err = nil, perr
		}
	}()

	userLang := req.UserLang.Normalize()
	if userLang == "" || userLang == types.LangUndetermined {
		sample := req.UserReply
		if strings.TrimSpace(sample) == "" {
			sample = req.IncomingText
		}
		userLang = langdetect.DetectWithFallback(sample, e.defaultUserLang)
	}
	sendLang := req.SendLang.Normalize()
	if sendLang == "" {
		sendLang = e.defaultSendLang
	}
	if sendLang == "" {
		sendLang = userLang
	}

	normIncoming := e.slang.Normalize(req.IncomingText, userLang)
	normReply := e.slang.Normalize(req.UserReply, userLang)

	// Intent basis: the user's own words when present, the incoming message
	// otherwise. Tone only ever reads the reply, so an empty draft stays
	// neutral.
	basis := normReply
	if strings.TrimSpace(basis) == "" {
		basis = normIncoming
	}

	intent := e.chain.ClassifyIntent(ctx, basis)
	tone := e.chain.ResolveTone(ctx, normReply, req.ToneOverride)

	// Styling starts from what the user actually typed; normalization only
	// feeds classification.
	styled := e.style.Style(req.UserReply, userLang, intent, tone)

	final := styled
	degraded := false
	if !sendLang.Equal(userLang) {
		translated, terr := e.translator.Translate(ctx, styled, userLang, sendLang)
		if terr != nil {
			// Absorbed: the reply ships in the user's own language instead.
			log.Warnf("translation %s->%s failed, sending untranslated: %v", userLang, sendLang, terr)
			sendLang = userLang
			degraded = true
		} else {
			final = translated
		}
	}

	final = e.slang.Inject(final, sendLang, intent, tone)

	result = &types.ReplyResult{
		Intent:              intent,
		Tone:                tone,
		UserLang:            userLang,
		SendLang:            sendLang,
		StyledReply:         styled,
		FinalReply:          final,
		TranslationDegraded: degraded,
	}

	log.WithFields(map[string]interface{}{
		"intent": intent,
		"tone":   tone,
		"lang":   fmt.Sprintf("%s->%s", userLang, sendLang),
	}).Info("reply generated")

	event := types.NewRunEvent(types.EventTypeRun, runID, "reply-engine", "reply generated")
	event.Result = result
	e.emit(event)

	return result, nil
}

// GenerateReplyAsync runs the pipeline in a goroutine and delivers the
// outcome through cb exactly once.
func (e *Engine) GenerateReplyAsync(ctx context.Context, req types.ReplyRequest, cb func(*types.ReplyResult, error)) {
	go func() {
		cb(e.GenerateReply(ctx, req))
	}()
}

func (e *Engine) emit(event *types.RunEvent) {
	if e.sink != nil {
		e.sink.BroadcastEvent(event)
	}
}
