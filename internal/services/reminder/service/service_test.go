package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"quando/internal/platform/testkit"
	notifydom "quando/internal/services/notify/domain"
	notifysvc "quando/internal/services/notify/service"
	tasksdom "quando/internal/services/tasks/domain"
)

type fakeTasks struct {
	due      []tasksdom.Task
	dueErr   error
	cutoff   time.Time
	limit    int
	reminded []string
}

func (f *fakeTasks) DueForReminder(_ context.Context, until time.Time, limit int) ([]tasksdom.Task, error) {
	f.cutoff = until
	f.limit = limit
	return f.due, f.dueErr
}

func (f *fakeTasks) MarkReminded(_ context.Context, ids []string) error {
	f.reminded = append(f.reminded, ids...)
	return nil
}

func (f *fakeTasks) Create(context.Context, tasksdom.CreateInput) (tasksdom.Task, error) {
	return tasksdom.Task{}, nil
}
func (f *fakeTasks) Get(context.Context, tasksdom.GetInput) (tasksdom.Task, error) {
	return tasksdom.Task{}, nil
}
func (f *fakeTasks) Update(context.Context, tasksdom.UpdateInput) (tasksdom.Task, error) {
	return tasksdom.Task{}, nil
}
func (f *fakeTasks) Delete(context.Context, tasksdom.DeleteInput) (tasksdom.DeleteResult, error) {
	return tasksdom.DeleteResult{}, nil
}
func (f *fakeTasks) List(context.Context, tasksdom.ListInput) ([]tasksdom.Task, error) {
	return nil, nil
}
func (f *fakeTasks) BulkStatus(context.Context, tasksdom.BulkStatusInput) (tasksdom.BulkStatusResult, error) {
	return tasksdom.BulkStatusResult{}, nil
}

type fakeNotify struct {
	published []notifydom.Notification
}

func (f *fakeNotify) Publish(_ context.Context, typ notifydom.Type, msg, taskID string) notifydom.Notification {
	n := notifydom.Notification{Type: typ, Message: msg, TaskID: taskID}
	f.published = append(f.published, n)
	return n
}

func TestNew_PanicsOnNilDeps(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { New(nil, &fakeNotify{}, Options{}) })
	testkit.MustPanic(t, func() { New(&fakeTasks{}, nil, Options{}) })
}

func TestOptions_Defaults(t *testing.T) {
	t.Parallel()

	o := Options{}.Defaults()
	if o.Interval != time.Minute || o.Lookahead != 15*time.Minute || o.BatchSize != 100 {
		t.Fatalf("defaults: %+v", o)
	}
	// explicit values survive
	o = Options{Interval: time.Second, Lookahead: time.Hour, BatchSize: 5}.Defaults()
	if o.Interval != time.Second || o.Lookahead != time.Hour || o.BatchSize != 5 {
		t.Fatalf("explicit options overwritten: %+v", o)
	}
}

func TestScanOnce_AnnouncesAndMarks(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	due := time.Date(2025, 6, 1, 9, 10, 0, 0, time.UTC)
	tasks := &fakeTasks{due: []tasksdom.Task{
		{ID: "t1", Title: "submit report", DueDate: &due},
		{ID: "t2", Title: "standup"},
	}}
	notify := &fakeNotify{}
	s := New(tasks, notify, Options{Lookahead: 15 * time.Minute, BatchSize: 10})
	s.WithClock(func() time.Time { return now })

	n, err := s.ScanOnce(context.Background())
	if err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}
	if n != 2 {
		t.Fatalf("announced = %d, want 2", n)
	}
	if want := now.Add(15 * time.Minute); !tasks.cutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", tasks.cutoff, want)
	}
	if tasks.limit != 10 {
		t.Fatalf("limit = %d, want 10", tasks.limit)
	}

	if len(notify.published) != 2 {
		t.Fatalf("published = %d, want 2", len(notify.published))
	}
	first := notify.published[0]
	if first.Type != notifydom.TypeDeadlineApproaching || first.TaskID != "t1" {
		t.Fatalf("first notification: %+v", first)
	}
	if !strings.Contains(first.Message, "submit report") || !strings.Contains(first.Message, "2025-06-01T09:10:00Z") {
		t.Fatalf("message = %q", first.Message)
	}
	// no due date or reminder still announces, without the timestamp suffix
	if got := notify.published[1].Message; got != "Deadline approaching: standup" {
		t.Fatalf("second message = %q", got)
	}

	if len(tasks.reminded) != 2 || tasks.reminded[0] != "t1" || tasks.reminded[1] != "t2" {
		t.Fatalf("reminded = %v", tasks.reminded)
	}
}

func TestScanOnce_PrefersReminderOverDueDate(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	rem := time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)
	tasks := &fakeTasks{due: []tasksdom.Task{{ID: "t1", Title: "x", DueDate: &due, Reminder: &rem}}}
	notify := &fakeNotify{}
	s := New(tasks, notify, Options{})

	if _, err := s.ScanOnce(context.Background()); err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}
	if !strings.Contains(notify.published[0].Message, "2025-06-01T09:05:00Z") {
		t.Fatalf("message = %q, want reminder time", notify.published[0].Message)
	}
}

func TestScanOnce_EmptyWindowIsQuiet(t *testing.T) {
	t.Parallel()

	tasks := &fakeTasks{}
	notify := &fakeNotify{}
	s := New(tasks, notify, Options{})

	n, err := s.ScanOnce(context.Background())
	if err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}
	if n != 0 || len(notify.published) != 0 || len(tasks.reminded) != 0 {
		t.Fatalf("empty scan had side effects: n=%d published=%d reminded=%d",
			n, len(notify.published), len(tasks.reminded))
	}
}

func TestScanOnce_PropagatesLookupError(t *testing.T) {
	t.Parallel()

	tasks := &fakeTasks{dueErr: errors.New("db down")}
	s := New(tasks, &fakeNotify{}, Options{})

	if _, err := s.ScanOnce(context.Background()); err == nil {
		t.Fatal("ScanOnce swallowed the lookup error")
	}
}

// a scan against the real feed service: whatever the worker announces must
// be readable through the same feed the HTTP surface lists
func TestScanOnce_AnnouncementsReadableFromFeed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	due := now.Add(5 * time.Minute)
	tasks := &fakeTasks{due: []tasksdom.Task{
		{ID: "t-1", Title: "standup", DueDate: &due},
	}}
	feed := notifysvc.New(10)

	svc := New(tasks, feed, Options{}).WithClock(func() time.Time { return now })
	n, err := svc.ScanOnce(context.Background())
	if err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}
	if n != 1 {
		t.Fatalf("announced = %d, want 1", n)
	}

	out, err := feed.List(context.Background(), notifydom.ListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("feed entries = %d, want 1", len(out))
	}
	got := out[0]
	if got.Type != notifydom.TypeDeadlineApproaching {
		t.Fatalf("type = %q, want %q", got.Type, notifydom.TypeDeadlineApproaching)
	}
	if got.TaskID != "t-1" || !strings.Contains(got.Message, "standup") {
		t.Fatalf("unexpected notification: %+v", got)
	}
}
