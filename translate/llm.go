package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nackshayan/MultilingualChatAssistant/llm"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// LLMTranslator translates with a chat model. Useful when no dedicated
// translation endpoint is available but an LLM key is.
type LLMTranslator struct {
	client llm.Client
}

// NewLLM wraps an LLM client as a translator.
func NewLLM(client llm.Client) (*LLMTranslator, error) {
	if client == nil {
		return nil, errors.New("translate: llm client is required")
	}
	return &LLMTranslator{client: client}, nil
}

const llmTranslateSystem = `You are a translation engine for short chat messages.
Translate the user's message exactly, preserving emoji and informal register.
Output only the translated text, nothing else.`

func (t *LLMTranslator) Translate(ctx context.Context, text string, from, to types.LanguageCode) (string, error) {
	if strings.TrimSpace(text) == "" || !Needed(from, to) {
		return text, nil
	}

	user := fmt.Sprintf("Translate from %s to %s:\n%s",
		types.LanguageCodeToName(from), types.LanguageCodeToName(to), text)

	out, err := t.client.Chat(ctx, llmTranslateSystem, user)
	if err != nil {
		return "", fmt.Errorf("translate: llm: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("translate: llm returned empty text")
	}
	return out, nil
}
