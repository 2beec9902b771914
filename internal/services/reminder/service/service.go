// Package service contains the reminder scan workflow
package service

import (
	"context"
	"fmt"
	"time"

	"quando/internal/platform/logger"
	notifydom "quando/internal/services/notify/domain"
	taskssvc "quando/internal/services/tasks/service"
)

// Options tune the reminder scan loop
type Options struct {
	// Interval between scans
	Interval time.Duration

	// Lookahead is how far ahead of now a reminder or due date may sit
	// and still trigger a notification
	Lookahead time.Duration

	// BatchSize caps how many tasks one scan announces
	BatchSize int
}

// Defaults fills unset options
func (o Options) Defaults() Options {
	if o.Interval <= 0 {
		o.Interval = time.Minute
	}
	if o.Lookahead <= 0 {
		o.Lookahead = 15 * time.Minute
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	return o
}

// Service is the reminder worker surface
type Service interface {
	Run(ctx context.Context) error
	ScanOnce(ctx context.Context) (int, error)
}

// Svc implements the Service interface
type Svc struct {
	tasks  taskssvc.Service
	notify notifydom.Publisher
	opts   Options
	clock  func() time.Time
}

// New creates a reminder worker over the tasks and notify ports
func New(tasks taskssvc.Service, notify notifydom.Publisher, opts Options) *Svc {
	if tasks == nil {
		panic("reminder.Service requires a non nil tasks service")
	}
	if notify == nil {
		panic("reminder.Service requires a non nil notify publisher")
	}
	return &Svc{tasks: tasks, notify: notify, opts: opts.Defaults(), clock: time.Now}
}

// WithClock overrides the wall clock, test hook only
func (s *Svc) WithClock(fn func() time.Time) *Svc { s.clock = fn; return s }

// Run scans on an interval until the context is cancelled
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("reminder-worker")
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := s.ScanOnce(ctx)
			if err != nil {
				log.Error().Err(err).Msg("reminder scan failed")
				continue
			}
			if n > 0 {
				log.Info().Int("announced", n).Msg("reminders sent")
			}
		}
	}
}

// ScanOnce announces every task whose reminder or due date falls inside
// the lookahead window, then marks them so they fire once
func (s *Svc) ScanOnce(ctx context.Context) (int, error) {
	cutoff := s.clock().UTC().Add(s.opts.Lookahead)
	due, err := s.tasks.DueForReminder(ctx, cutoff, s.opts.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(due))
	for _, t := range due {
		when := t.Reminder
		if when == nil {
			when = t.DueDate
		}
		msg := "Deadline approaching: " + t.Title
		if when != nil {
			msg = fmt.Sprintf("Deadline approaching: %s (due %s)", t.Title, when.UTC().Format(time.RFC3339))
		}
		s.notify.Publish(ctx, notifydom.TypeDeadlineApproaching, msg, t.ID)
		ids = append(ids, t.ID)
	}
	if err := s.tasks.MarkReminded(ctx, ids); err != nil {
		return len(ids), err
	}
	return len(ids), nil
}
