package service

import (
	"context"
	"fmt"
	"testing"

	"quando/internal/services/notify/domain"
)

func TestPublish_EvictsOldestAtCapacity(t *testing.T) {
	t.Parallel()

	s := New(3)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Publish(ctx, domain.TypeTaskCreated, fmt.Sprintf("task %d", i), "")
	}

	got, err := s.List(ctx, domain.ListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// newest first; "task 0" and "task 1" evicted
	want := []string{"task 4", "task 3", "task 2"}
	for i, w := range want {
		if got[i].Message != w {
			t.Fatalf("got[%d] = %q, want %q", i, got[i].Message, w)
		}
	}
}

func TestList_UnreadOnlyAndLimit(t *testing.T) {
	t.Parallel()

	s := New(0) // default capacity
	ctx := context.Background()
	a := s.Publish(ctx, domain.TypeTaskCreated, "a", "")
	s.Publish(ctx, domain.TypeTaskUpdated, "b", "")
	s.Publish(ctx, domain.TypeTaskDeleted, "c", "")

	if _, err := s.MarkRead(ctx, domain.MarkReadInput{IDs: []string{a.ID}}); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	got, err := s.List(ctx, domain.ListInput{UnreadOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unread len = %d, want 2", len(got))
	}
	for _, n := range got {
		if n.ID == a.ID {
			t.Fatal("read entry leaked into unread listing")
		}
	}

	got, err = s.List(ctx, domain.ListInput{Limit: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Message != "c" {
		t.Fatalf("limited list = %+v, want single newest entry", got)
	}
}

func TestMarkRead_EmptySelectionMarksAll(t *testing.T) {
	t.Parallel()

	s := New(10)
	ctx := context.Background()
	s.Publish(ctx, domain.TypeTaskCreated, "a", "")
	s.Publish(ctx, domain.TypeTaskCreated, "b", "")

	res, err := s.MarkRead(ctx, domain.MarkReadInput{})
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if res.Marked != 2 {
		t.Fatalf("Marked = %d, want 2", res.Marked)
	}

	// second pass is a no-op
	res, err = s.MarkRead(ctx, domain.MarkReadInput{})
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if res.Marked != 0 {
		t.Fatalf("Marked = %d, want 0 on second pass", res.Marked)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := New(10)
	ctx := context.Background()
	s.Publish(ctx, domain.TypeDeadlineApproaching, "due soon", "t1")

	res, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if res.Cleared != 1 {
		t.Fatalf("Cleared = %d, want 1", res.Cleared)
	}
	got, err := s.List(ctx, domain.ListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("feed not empty after Clear: %d entries", len(got))
	}
}
