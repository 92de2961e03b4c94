package types

import (
	"fmt"
	"time"
)

// PipelineError represents an unexpected fault inside a pipeline stage.
// Translation failures are recovered internally and never produce one.
type PipelineError struct {
	Code      string    `json:"code"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	RunID     string    `json:"runId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error [%s] at %s: %s", e.Code, e.Stage, e.Message)
}

// NewPipelineError creates a stage fault with the current timestamp.
func NewPipelineError(code, stage, message, runID string) *PipelineError {
	return &PipelineError{
		Code:      code,
		Stage:     stage,
		Message:   message,
		RunID:     runID,
		Timestamp: time.Now(),
	}
}

// Pipeline error codes.
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeStageFault    = "STAGE_FAULT"
	ErrCodeLexiconBroken = "LEXICON_BROKEN"
)
