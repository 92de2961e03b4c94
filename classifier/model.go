package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Nackshayan/MultilingualChatAssistant/llm"
	"github.com/Nackshayan/MultilingualChatAssistant/logger"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// ModelStrategy asks a chat model for labels. It is deliberately lenient
// about the model's output and reports ok=false on any doubt so the rule
// engine behind it decides.
type ModelStrategy struct {
	client llm.Client
	log    *logger.Logger

	// minConfidence rejects low-confidence model answers.
	minConfidence float64
}

// NewModelStrategy wraps an LLM client as a classification strategy.
func NewModelStrategy(client llm.Client) *ModelStrategy {
	return &ModelStrategy{
		client:        client,
		log:           logger.GetLogger().WithField("component", "model-classifier"),
		minConfidence: 0.5,
	}
}

var modelJSONRe = regexp.MustCompile(`(?s)\{.*\}`)

const intentSystemPrompt = `You are an intent classifier for short chat messages in any language.
Return a single JSON object: {"intent": "<label>", "confidence": <0..1>}.
Labels: greeting, farewell, thanks, apology, love, congrats, hate, smalltalk, question, unknown.`

const toneSystemPrompt = `You are a tone classifier for short chat messages in any language.
Return a single JSON object: {"tone": "<label>", "confidence": <0..1>}.
Labels: formal, friendly, humorous, empathetic, casual, neutral, angry, sad.`

// ClassifyIntent asks the model for an intent label.
func (m *ModelStrategy) ClassifyIntent(ctx context.Context, text string) (types.Intent, bool) {
	if m.client == nil || strings.TrimSpace(text) == "" {
		return types.IntentUnknown, false
	}

	out, err := m.client.Chat(ctx, intentSystemPrompt, m.userPayload(text))
	if err != nil || strings.TrimSpace(out) == "" {
		m.log.Debugf("intent model unavailable: %v", err)
		return types.IntentUnknown, false
	}

	var parsed struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	_ = json.Unmarshal([]byte(modelJSONRe.FindString(out)), &parsed)

	intent := types.ParseIntent(parsed.Intent)
	if intent == types.IntentUnknown || parsed.Confidence < m.minConfidence {
		return intent, false
	}
	return intent, true
}

// ClassifyTone asks the model for a tone label.
func (m *ModelStrategy) ClassifyTone(ctx context.Context, text string) (types.Tone, bool) {
	if m.client == nil || strings.TrimSpace(text) == "" {
		return types.ToneNeutral, false
	}

	out, err := m.client.Chat(ctx, toneSystemPrompt, m.userPayload(text))
	if err != nil || strings.TrimSpace(out) == "" {
		m.log.Debugf("tone model unavailable: %v", err)
		return types.ToneNeutral, false
	}

	var parsed struct {
		Tone       string  `json:"tone"`
		Confidence float64 `json:"confidence"`
	}
	_ = json.Unmarshal([]byte(modelJSONRe.FindString(out)), &parsed)

	tone := types.ParseTone(parsed.Tone)
	if tone == types.ToneAuto || parsed.Confidence < m.minConfidence {
		return types.ToneNeutral, false
	}
	return tone, true
}

func (m *ModelStrategy) userPayload(text string) string {
	b, _ := json.Marshal(map[string]string{"text": text})
	return fmt.Sprintf("Classify: %s", b)
}
