// Package classifier labels a message with an intent and a tone. Strategies
// are chained: an optional model-backed strategy runs first and the keyword
// rules always terminate the chain with a definite answer.
package classifier

import (
	"context"
	"strings"

	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// Strategy is one way of labeling text. ok=false means the strategy is not
// confident and the next one in the chain should be consulted.
type Strategy interface {
	ClassifyIntent(ctx context.Context, text string) (types.Intent, bool)
	ClassifyTone(ctx context.Context, text string) (types.Tone, bool)
}

// Chain consults strategies in order and returns the first confident answer.
// The last strategy's answer is used even when it is not confident.
type Chain struct {
	strategies []Strategy
}

// NewChain builds a classification chain. At least one strategy is required;
// callers normally finish the chain with a RuleEngine.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Default returns the standard rules-only chain over the embedded lexicon.
func Default() *Chain {
	return NewChain(NewRuleEngine(nil))
}

// ClassifyIntent labels the communicative purpose of the text.
func (c *Chain) ClassifyIntent(ctx context.Context, text string) types.Intent {
	var last types.Intent = types.IntentUnknown
	for _, s := range c.strategies {
		intent, ok := s.ClassifyIntent(ctx, text)
		if ok {
			return intent
		}
		last = intent
	}
	return last
}

// ClassifyTone labels the emotional register of the text.
func (c *Chain) ClassifyTone(ctx context.Context, text string) types.Tone {
	var last types.Tone = types.ToneNeutral
	for _, s := range c.strategies {
		tone, ok := s.ClassifyTone(ctx, text)
		if ok {
			return tone
		}
		last = tone
	}
	return last
}

// ResolveTone applies a tone override, falling back to detection for
// ToneAuto. The result is never ToneAuto.
func (c *Chain) ResolveTone(ctx context.Context, text string, override types.Tone) types.Tone {
	if override != types.ToneAuto && override != "" {
		return override
	}
	return c.ClassifyTone(ctx, text)
}

// Package-level shortcuts running the rule engine over the embedded lexicon.

func ClassifyIntent(text string) types.Intent {
	intent, _ := NewRuleEngine(nil).ClassifyIntent(context.Background(), text)
	return intent
}

// ClassifyIntentPair classifies two related texts as one message, joined with
// a single space. Either side may be empty.
func ClassifyIntentPair(incoming, reply string) types.Intent {
	joined := strings.TrimSpace(strings.TrimSpace(incoming) + " " + strings.TrimSpace(reply))
	return ClassifyIntent(joined)
}

func ClassifyTone(text string) types.Tone {
	tone, _ := NewRuleEngine(nil).ClassifyTone(context.Background(), text)
	return tone
}

func IsLikelyFormal(text string) bool {
	return NewRuleEngine(nil).IsLikelyFormal(text)
}
