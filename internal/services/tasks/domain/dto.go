package domain

import "time"

// CreateInput is the payload for creating a task
type CreateInput struct {
	Title             string         `json:"title" validate:"required,min=1,max=500" example:"Prepare quarterly report"`
	Description       string         `json:"description,omitempty" validate:"omitempty,max=5000"`
	Priority          Priority       `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	PriorityReasoning string         `json:"priority_reasoning,omitempty" validate:"omitempty,max=2000"`
	Status            Status         `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED BLOCKED"`
	DueDate           *time.Time     `json:"due_date,omitempty"`
	StartDate         *time.Time     `json:"start_date,omitempty"`
	Reminder          *time.Time     `json:"reminder,omitempty"`
	Recurrence        map[string]any `json:"recurrence,omitempty"`
	Tags              []string       `json:"tags,omitempty" validate:"omitempty,max=32,dive,min=1,max=64"`
	Dependencies      []string       `json:"dependencies,omitempty" validate:"omitempty,dive,uuid4"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// GetInput selects a single task by id
type GetInput struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// UpdateInput carries partial updates; nil fields are left untouched
type UpdateInput struct {
	ID                string          `json:"id" validate:"required,uuid4"`
	Title             *string         `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description       *string         `json:"description,omitempty" validate:"omitempty,max=5000"`
	Priority          *Priority       `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	PriorityReasoning *string         `json:"priority_reasoning,omitempty" validate:"omitempty,max=2000"`
	Status            *Status         `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED BLOCKED"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	Reminder          *time.Time      `json:"reminder,omitempty"`
	Recurrence        *map[string]any `json:"recurrence,omitempty"`
	Tags              *[]string       `json:"tags,omitempty" validate:"omitempty,max=32,dive,min=1,max=64"`
	Dependencies      *[]string       `json:"dependencies,omitempty" validate:"omitempty,dive,uuid4"`
	Metadata          *map[string]any `json:"metadata,omitempty"`
}

// DeleteInput selects a single task for removal
type DeleteInput struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// ListInput filters the task listing
type ListInput struct {
	Status   Status   `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED BLOCKED"`
	Priority Priority `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	Tag      string   `json:"tag,omitempty" validate:"omitempty,min=1,max=64"`
	DueAfter *time.Time `json:"due_after,omitempty"`
	DueBefore *time.Time `json:"due_before,omitempty"`
	Limit    int      `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
	Offset   int      `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// BulkStatusInput moves a set of tasks to one status in a single call
type BulkStatusInput struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=200,dive,uuid4"`
	Status Status   `json:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED BLOCKED"`
}

// BulkStatusResult reports how many rows the bulk update touched
type BulkStatusResult struct {
	Updated int64 `json:"updated"`
}

// DeleteResult confirms a removal
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}
