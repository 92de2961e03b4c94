// Package lexicon holds the static per-language keyword, slang, and template
// tables consumed by every pipeline stage. Tables live in embedded YAML
// files, are validated against JSON Schemas at load time, and are immutable
// once loaded.
package lexicon

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

//go:embed data/*.yaml
var dataFS embed.FS

// PatternKind selects how an intent pattern is matched.
type PatternKind string

const (
	PatternSubstring PatternKind = "substring"
	PatternPrefix    PatternKind = "prefix"
	PatternRegex     PatternKind = "regex"
)

// Pattern is one intent match rule. An empty Kind means substring.
type Pattern struct {
	Kind  PatternKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Value string      `yaml:"value" json:"value"`

	re *regexp.Regexp
}

// Matches reports whether the lower-cased text matches this pattern.
func (p *Pattern) Matches(lower string) bool {
	switch p.Kind {
	case PatternPrefix:
		return strings.HasPrefix(lower, p.Value)
	case PatternRegex:
		return p.re != nil && p.re.MatchString(lower)
	default:
		return strings.Contains(lower, p.Value)
	}
}

// IntentRuleGroup maps an ordered set of patterns to one intent label.
type IntentRuleGroup struct {
	Intent   types.Intent `yaml:"intent" json:"intent"`
	Patterns []Pattern    `yaml:"patterns" json:"patterns"`
}

type intentsDoc struct {
	Groups []IntentRuleGroup `yaml:"groups" json:"groups"`
}

// ToneSignals holds the multilingual keyword lists feeding tone detection.
type ToneSignals struct {
	Positive      []string `yaml:"positive" json:"positive"`
	Negative      []string `yaml:"negative" json:"negative"`
	Apology       []string `yaml:"apology" json:"apology"`
	Support       []string `yaml:"support" json:"support"`
	Laugh         []string `yaml:"laugh" json:"laugh"`
	SlangMarkers  []string `yaml:"slang_markers" json:"slang_markers"`
	FormalMarkers []string `yaml:"formal_markers" json:"formal_markers"`
}

// InjectRule is one slang-injection rule for a (language, intent) pair.
type InjectRule struct {
	Intent      string   `yaml:"intent" json:"intent"`
	Tones       string   `yaml:"tones" json:"tones"` // "casual", "empathetic", "any"
	Probability float64  `yaml:"probability" json:"probability"`
	Pool        []string `yaml:"pool" json:"pool"`
	Context     []string `yaml:"context,omitempty" json:"context,omitempty"`
	ContextPool []string `yaml:"context_pool,omitempty" json:"context_pool,omitempty"`
}

// LanguageSlang bundles a language's normalization entries and inject rules.
type LanguageSlang struct {
	Entries []types.SlangEntry `yaml:"entries" json:"entries"`
	Inject  []InjectRule       `yaml:"inject" json:"inject"`
}

type slangDoc struct {
	Languages map[string]LanguageSlang `yaml:"languages" json:"languages"`
}

// Templates holds the rich-language reply tables and emoji fallbacks.
type Templates struct {
	Rich             map[string]map[string]map[string]string `yaml:"rich" json:"rich"`
	GreetingPatterns map[string]string                       `yaml:"greeting_patterns" json:"greeting_patterns"`
	IntentEmoji      map[string]string                       `yaml:"intent_emoji" json:"intent_emoji"`
	ToneEmoji        map[string]string                       `yaml:"tone_emoji" json:"tone_emoji"`

	greetingRe map[types.LanguageCode]*regexp.Regexp
}

// Tables is the complete immutable lexicon.
type Tables struct {
	Intents   []IntentRuleGroup
	Tones     ToneSignals
	Slang     map[types.LanguageCode]LanguageSlang
	Templates Templates
}

// Load reads, validates, and compiles all embedded tables.
func Load() (*Tables, error) {
	t := &Tables{}

	var intents intentsDoc
	if err := loadDoc("data/intents.yaml", intentsSchema, &intents); err != nil {
		return nil, err
	}
	for gi := range intents.Groups {
		g := &intents.Groups[gi]
		if types.ParseIntent(string(g.Intent)) != g.Intent {
			return nil, fmt.Errorf("lexicon: unknown intent label %q", g.Intent)
		}
		for pi := range g.Patterns {
			p := &g.Patterns[pi]
			if p.Kind == PatternRegex {
				re, err := regexp.Compile(p.Value)
				if err != nil {
					return nil, fmt.Errorf("lexicon: bad intent pattern %q: %w", p.Value, err)
				}
				p.re = re
			}
		}
	}
	t.Intents = intents.Groups

	if err := loadDoc("data/tones.yaml", tonesSchema, &t.Tones); err != nil {
		return nil, err
	}

	var slang slangDoc
	if err := loadDoc("data/slang.yaml", slangSchema, &slang); err != nil {
		return nil, err
	}
	t.Slang = make(map[types.LanguageCode]LanguageSlang, len(slang.Languages))
	for code, ls := range slang.Languages {
		t.Slang[types.LanguageCode(code).Normalize()] = ls
	}

	if err := loadDoc("data/templates.yaml", templatesSchema, &t.Templates); err != nil {
		return nil, err
	}
	t.Templates.greetingRe = make(map[types.LanguageCode]*regexp.Regexp, len(t.Templates.GreetingPatterns))
	for code, pat := range t.Templates.GreetingPatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("lexicon: bad greeting pattern for %s: %w", code, err)
		}
		t.Templates.greetingRe[types.LanguageCode(code).Normalize()] = re
	}

	return t, nil
}

func loadDoc(path, schema string, out interface{}) error {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("lexicon: parse %s: %w", path, err)
	}
	if err := validate(schema, out); err != nil {
		return fmt.Errorf("lexicon: %s: %w", path, err)
	}
	return nil
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the process-wide tables, loading them on first use.
// The data is embedded, so a load failure is a build defect; it panics.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultTables
}

// SlangFor returns the slang set for a language, falling back to English
// for languages without their own table.
func (t *Tables) SlangFor(lang types.LanguageCode) LanguageSlang {
	if ls, ok := t.Slang[lang.Normalize()]; ok {
		return ls
	}
	return t.Slang[types.LangEnglish]
}

// IsRich reports whether a language has full template coverage.
func (t *Tables) IsRich(lang types.LanguageCode) bool {
	_, ok := t.Templates.Rich[string(lang.Normalize())]
	return ok
}

// Template resolves the curated reply for (language, intent, tone).
// "friendly" shares the "casual" entry; any other missing tone resolves to
// "neutral". ok is false when the language or intent has no table.
func (t *Tables) Template(lang types.LanguageCode, intent types.Intent, tone types.Tone) (string, bool) {
	byIntent, ok := t.Templates.Rich[string(lang.Normalize())]
	if !ok {
		return "", false
	}
	byTone, ok := byIntent[string(intent)]
	if !ok {
		return "", false
	}
	key := tone
	if key == types.ToneFriendly {
		key = types.ToneCasual
	}
	if s, ok := byTone[string(key)]; ok {
		return s, true
	}
	s, ok := byTone[string(types.ToneNeutral)]
	return s, ok
}

// GreetingPattern returns the compiled minimal-greeting regexp for a rich
// language, defaulting to the English pattern.
func (t *Tables) GreetingPattern(lang types.LanguageCode) *regexp.Regexp {
	if re, ok := t.Templates.greetingRe[lang.Normalize()]; ok {
		return re
	}
	return t.Templates.greetingRe[types.LangEnglish]
}

// EmojiFor picks the decoration emoji by intent first, then tone, or "".
func (t *Tables) EmojiFor(intent types.Intent, tone types.Tone) string {
	if e, ok := t.Templates.IntentEmoji[string(intent)]; ok {
		return e
	}
	if e, ok := t.Templates.ToneEmoji[string(tone)]; ok {
		return e
	}
	return ""
}
