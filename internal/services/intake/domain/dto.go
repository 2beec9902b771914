// Package domain holds DTOs for intake http and service contracts
package domain

import (
	"quando/internal/core/temporal"
	tasksdom "quando/internal/services/tasks/domain"
)

// ParseInput is the free text payload for task intake
type ParseInput struct {
	Text   string `json:"text" validate:"required,min=1,max=2000" example:"submit report by end of next week"`
	Source string `json:"source,omitempty" validate:"omitempty,oneof=api chat import" example:"api"`
}

// TemporalResult echoes what the phrase engine extracted
type TemporalResult struct {
	Matched    bool                 `json:"matched"`
	ResolvedAt string               `json:"resolved_at,omitempty"`
	HasDate    bool                 `json:"has_date"`
	HasTime    bool                 `json:"has_time"`
	Recurrence *temporal.Recurrence `json:"recurrence,omitempty"`
}

// ParseResult is the intake response: the created task plus how the
// temporal fields were derived
type ParseResult struct {
	Task     tasksdom.Task  `json:"task"`
	Temporal TemporalResult `json:"temporal"`
	LLMUsed  bool           `json:"llm_used"`
}
