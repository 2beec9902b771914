// Package domain holds notification types and contracts
package domain

import "time"

// Type classifies a notification
type Type string

// Notification types
const (
	TypeTaskCreated         Type = "TASK_CREATED"
	TypeTaskUpdated         Type = "TASK_UPDATED"
	TypeTaskDeleted         Type = "TASK_DELETED"
	TypePriorityChanged     Type = "PRIORITY_CHANGED"
	TypeDeadlineApproaching Type = "DEADLINE_APPROACHING"
)

// Notification is a single feed entry
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	TaskID    string    `json:"task_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
