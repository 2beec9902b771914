// Package domain holds task types and contracts
package domain

import "time"

// Priority is the task urgency band
type Priority string

// Priority values, ordered Low to Critical
const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Status is the task lifecycle state
type Status string

// Status values
const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusBlocked    Status = "BLOCKED"
)

// Task is the stored task record
type Task struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description,omitempty"`
	Priority          Priority       `json:"priority"`
	PriorityReasoning string         `json:"priority_reasoning,omitempty"`
	Status            Status         `json:"status"`
	DueDate           *time.Time     `json:"due_date,omitempty"`
	StartDate         *time.Time     `json:"start_date,omitempty"`
	CompletionDate    *time.Time     `json:"completion_date,omitempty"`
	Reminder          *time.Time     `json:"reminder,omitempty"`
	ReminderSent      bool           `json:"reminder_sent,omitempty"`
	Recurrence        map[string]any `json:"recurrence,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	Dependencies      []string       `json:"dependencies,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	LastModified      time.Time      `json:"last_modified"`
}
