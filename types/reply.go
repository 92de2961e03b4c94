package types

import (
	"encoding/json"
	"time"
)

// SlangEntry is a (slang phrase, canonical meaning) pair scoped to one
// language. Entry order inside a lexicon list is significant: normalization
// applies entries in list order.
type SlangEntry struct {
	Slang   string `yaml:"slang" json:"slang"`
	Meaning string `yaml:"meaning" json:"meaning"`
}

// ReplyRequest carries one pipeline run's inputs.
type ReplyRequest struct {
	IncomingText string       `json:"incomingText"`
	UserReply    string       `json:"userReply"`
	UserLang     LanguageCode `json:"userLang"`
	SendLang     LanguageCode `json:"sendLang"`
	// ToneOverride is a concrete tone or ToneAuto.
	ToneOverride Tone `json:"toneOverride,omitempty"`
}

// ReplyResult is the pipeline's output. StyledReply is always in the user's
// own language; FinalReply is what should be pasted into the foreign chat.
// Tone is the final resolved tone, never ToneAuto.
type ReplyResult struct {
	Intent      Intent       `json:"intent"`
	Tone        Tone         `json:"tone"`
	UserLang    LanguageCode `json:"userLang"`
	SendLang    LanguageCode `json:"sendLang"`
	StyledReply string       `json:"styledReply"`
	FinalReply  string       `json:"finalReply"`
	// TranslationDegraded is set when the translation collaborator failed and
	// the pipeline fell back to the user language.
	TranslationDegraded bool `json:"translationDegraded,omitempty"`
}

// RunEvent is published over the websocket feed once per pipeline run.
type RunEvent struct {
	Type      string       `json:"type"` // "run", "error", "status"
	RunID     string       `json:"runId"`
	Component string       `json:"component"`
	Message   string       `json:"message,omitempty"`
	Result    *ReplyResult `json:"result,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// NewRunEvent creates a RunEvent stamped with the current time.
func NewRunEvent(eventType, runID, component, message string) *RunEvent {
	return &RunEvent{
		Type:      eventType,
		RunID:     runID,
		Component: component,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// ToJSON converts the event to JSON for broadcasting.
func (e *RunEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Websocket event types.
const (
	EventTypeRun    = "run"
	EventTypeError  = "error"
	EventTypeStatus = "status"
)
