// Package slang normalizes slang out of incoming messages and injects a
// casual phrase back into outgoing ones.
package slang

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Nackshayan/MultilingualChatAssistant/lexicon"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// Rand is the randomness source used by the injection gate. It exists so
// tests can make injection deterministic.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// NewRand returns a locked randomness source. seed 0 means time-seeded.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

// Transformer applies a language's slang lexicon in both directions.
type Transformer struct {
	tables *lexicon.Tables
	rnd    Rand

	mu         sync.Mutex
	normalized map[types.LanguageCode][]normalizeRule
}

type normalizeRule struct {
	re      *regexp.Regexp
	meaning string
}

// New creates a transformer over the given tables. A nil tables uses the
// embedded lexicon; a nil rnd uses a time-seeded source.
func New(tables *lexicon.Tables, rnd Rand) *Transformer {
	if tables == nil {
		tables = lexicon.Default()
	}
	if rnd == nil {
		rnd = NewRand(0)
	}
	return &Transformer{
		tables:     tables,
		rnd:        rnd,
		normalized: make(map[types.LanguageCode][]normalizeRule),
	}
}

// Normalize replaces whole-word slang occurrences with their canonical
// meaning, applying lexicon entries in list order.
func (t *Transformer) Normalize(text string, lang types.LanguageCode) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	for _, rule := range t.rulesFor(lang) {
		text = rule.re.ReplaceAllString(text, rule.meaning)
	}
	return text
}

func (t *Transformer) rulesFor(lang types.LanguageCode) []normalizeRule {
	key := lang.Normalize()

	t.mu.Lock()
	defer t.mu.Unlock()
	if rules, ok := t.normalized[key]; ok {
		return rules
	}

	entries := t.tables.SlangFor(key).Entries
	rules := make([]normalizeRule, 0, len(entries))
	for _, e := range entries {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(e.Slang) + `\b`)
		if err != nil {
			continue
		}
		rules = append(rules, normalizeRule{re: re, meaning: e.Meaning})
	}
	t.normalized[key] = rules
	return rules
}

// Inject may append at most one slang phrase to an outgoing reply. Formal
// replies are never touched. When the reply hits a rule's context words the
// context pool always fires; otherwise injection is gated on the rule's tone
// family and probability.
func (t *Transformer) Inject(text string, lang types.LanguageCode, intent types.Intent, tone types.Tone) string {
	if strings.TrimSpace(text) == "" || tone == types.ToneFormal {
		return text
	}

	rule := t.ruleForIntent(lang, intent)
	if rule == nil {
		return text
	}

	lower := strings.ToLower(text)
	if len(rule.Context) > 0 && len(rule.ContextPool) > 0 {
		for _, w := range rule.Context {
			if strings.Contains(lower, w) {
				return text + " " + rule.ContextPool[t.rnd.Intn(len(rule.ContextPool))]
			}
		}
	}

	if !toneAllowed(rule.Tones, tone) {
		return text
	}
	if len(rule.Pool) == 0 || t.rnd.Float64() >= rule.Probability {
		return text
	}
	return text + " " + rule.Pool[t.rnd.Intn(len(rule.Pool))]
}

// ruleForIntent picks the intent-specific rule, falling back to "default".
func (t *Transformer) ruleForIntent(lang types.LanguageCode, intent types.Intent) *lexicon.InjectRule {
	rules := t.tables.SlangFor(lang).Inject

	var fallback *lexicon.InjectRule
	for i := range rules {
		switch rules[i].Intent {
		case string(intent):
			return &rules[i]
		case "default":
			fallback = &rules[i]
		}
	}
	return fallback
}

func toneAllowed(rule string, tone types.Tone) bool {
	switch rule {
	case "any":
		return true
	case "empathetic":
		return tone == types.ToneEmpathetic
	case "casual":
		return tone.CasualFamily()
	default:
		return false
	}
}
