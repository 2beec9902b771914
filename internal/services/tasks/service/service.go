// Package service contains task workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quando/internal/modkit/repokit"
	perr "quando/internal/platform/errors"
	ptime "quando/internal/platform/time"
	notifydom "quando/internal/services/notify/domain"
	"quando/internal/services/tasks/domain"
	"quando/internal/services/tasks/repo"
)

// Service defines the service contract for tasks
type Service interface {
	domain.ServicePort

	// DueForReminder and MarkReminded back the reminder worker
	DueForReminder(ctx context.Context, until time.Time, limit int) ([]domain.Task, error)
	MarkReminded(ctx context.Context, ids []string) error
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	notify notifydom.Publisher
	clock  func() time.Time
}

// New creates a new tasks service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("tasks.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("tasks.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, clock: time.Now}
}

// WithClock overrides the wall clock, test hook only
func (s *Svc) WithClock(fn func() time.Time) *Svc { s.clock = fn; return s }

// WithNotifier attaches the notification feed; without one, task changes
// stay silent (the worker binaries run this way)
func (s *Svc) WithNotifier(p notifydom.Publisher) *Svc { s.notify = p; return s }

func (s *Svc) publish(ctx context.Context, typ notifydom.Type, msg, taskID string) {
	if s.notify == nil {
		return
	}
	s.notify.Publish(ctx, typ, msg, taskID)
}

// Create persists a new task, filling defaults for priority and status
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Task, error) {
	now := s.clock().UTC()
	t := domain.Task{
		ID:                uuid.NewString(),
		Title:             in.Title,
		Description:       in.Description,
		Priority:          in.Priority,
		PriorityReasoning: in.PriorityReasoning,
		Status:            in.Status,
		DueDate:           in.DueDate,
		StartDate:         in.StartDate,
		Reminder:          in.Reminder,
		Recurrence:        in.Recurrence,
		Tags:              in.Tags,
		Dependencies:      in.Dependencies,
		Metadata:          in.Metadata,
		CreatedAt:         now,
		LastModified:      now,
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.Status == "" {
		t.Status = domain.StatusTodo
	}
	if err := s.Repo.Insert(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Get fetches a single task
func (s *Svc) Get(ctx context.Context, in domain.GetInput) (domain.Task, error) {
	return s.Repo.Get(ctx, in.ID)
}

// Update applies the non nil fields of in and refreshes last_modified.
// Moving a task into COMPLETED stamps completion_date; moving it out clears it
func (s *Svc) Update(ctx context.Context, in domain.UpdateInput) (domain.Task, error) {
	var out domain.Task
	var priorityFrom domain.Priority
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		repo := s.binder.Bind(q)
		t, err := repo.Get(ctx, in.ID)
		if err != nil {
			return err
		}
		priorityFrom = t.Priority
		now := s.clock().UTC()

		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Priority != nil {
			t.Priority = *in.Priority
		}
		if in.PriorityReasoning != nil {
			t.PriorityReasoning = *in.PriorityReasoning
		}
		if in.Status != nil && *in.Status != t.Status {
			t.Status = *in.Status
			if t.Status == domain.StatusCompleted {
				t.CompletionDate = ptime.Ptr(now)
			} else {
				t.CompletionDate = nil
			}
		}
		if in.DueDate != nil {
			t.DueDate = in.DueDate
			t.ReminderSent = false
		}
		if in.StartDate != nil {
			t.StartDate = in.StartDate
		}
		if in.Reminder != nil {
			t.Reminder = in.Reminder
			t.ReminderSent = false
		}
		if in.Recurrence != nil {
			t.Recurrence = *in.Recurrence
		}
		if in.Tags != nil {
			t.Tags = *in.Tags
		}
		if in.Dependencies != nil {
			t.Dependencies = *in.Dependencies
		}
		if in.Metadata != nil {
			t.Metadata = *in.Metadata
		}
		t.LastModified = now

		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	s.publish(ctx, notifydom.TypeTaskUpdated, "Task updated: "+out.Title, out.ID)
	if out.Priority != priorityFrom {
		s.publish(ctx, notifydom.TypePriorityChanged,
			"Priority changed from "+string(priorityFrom)+" to "+string(out.Priority)+": "+out.Title, out.ID)
	}
	return out, nil
}

// Delete removes a task; the lookup first gives the notification a title
func (s *Svc) Delete(ctx context.Context, in domain.DeleteInput) (domain.DeleteResult, error) {
	t, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	ok, err := s.Repo.Delete(ctx, in.ID)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if !ok {
		return domain.DeleteResult{}, perr.NotFoundf("task %s not found", in.ID)
	}
	s.publish(ctx, notifydom.TypeTaskDeleted, "Task deleted: "+t.Title, t.ID)
	return domain.DeleteResult{Deleted: true}, nil
}

// List returns tasks matching the filters, newest first
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Task, error) {
	return s.Repo.List(ctx, in)
}

// BulkStatus moves every listed task to one status in a single statement
func (s *Svc) BulkStatus(ctx context.Context, in domain.BulkStatusInput) (domain.BulkStatusResult, error) {
	now := s.clock().UTC()
	var completion *time.Time
	if in.Status == domain.StatusCompleted {
		completion = ptime.Ptr(now)
	}
	n, err := s.Repo.BulkStatus(ctx, in.IDs, in.Status, completion, now)
	if err != nil {
		return domain.BulkStatusResult{}, err
	}
	return domain.BulkStatusResult{Updated: n}, nil
}

// DueForReminder lists tasks ready for a deadline notification
func (s *Svc) DueForReminder(ctx context.Context, until time.Time, limit int) ([]domain.Task, error) {
	return s.Repo.DueForReminder(ctx, until, limit)
}

// MarkReminded records that notifications went out for the given tasks
func (s *Svc) MarkReminded(ctx context.Context, ids []string) error {
	return s.Repo.MarkReminded(ctx, ids)
}
