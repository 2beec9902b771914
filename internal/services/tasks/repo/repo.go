// Package repo provides postgres access for tasks
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quando/internal/modkit/repokit"
	perr "quando/internal/platform/errors"
	"quando/internal/platform/store"
	"quando/internal/services/tasks/domain"
)

// Repo defines the repository contract for tasks
type Repo interface {
	Insert(ctx context.Context, t domain.Task) error
	Get(ctx context.Context, id string) (domain.Task, error)
	Update(ctx context.Context, t domain.Task) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, in domain.ListInput) ([]domain.Task, error)
	BulkStatus(ctx context.Context, ids []string, status domain.Status, completion *time.Time, now time.Time) (int64, error)
	DueForReminder(ctx context.Context, until time.Time, limit int) ([]domain.Task, error)
	MarkReminded(ctx context.Context, ids []string) error
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const taskCols = `id::text, title, description, priority::text, priority_reasoning, status::text,
due_date, start_date, completion_date, reminder, reminder_sent,
recurrence::text, tags, dependencies, metadata::text, created_at, last_modified`

func (r *queries) Insert(ctx context.Context, t domain.Task) error {
	const sql = `
insert into tasks
	(id, title, description, priority, priority_reasoning, status,
	due_date, start_date, completion_date, reminder, reminder_sent,
	recurrence, tags, dependencies, metadata, created_at, last_modified)
values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12::jsonb,$13,$14,$15::jsonb,$16,$17)
`
	_, err := r.q.Exec(ctx, sql,
		t.ID, t.Title, t.Description, string(t.Priority), t.PriorityReasoning, string(t.Status),
		t.DueDate, t.StartDate, t.CompletionDate, t.Reminder, t.ReminderSent,
		jsonArg(t.Recurrence), t.Tags, t.Dependencies, jsonArg(t.Metadata),
		t.CreatedAt, t.LastModified,
	)
	return perr.FromPostgres(err, "insert task")
}

func (r *queries) Get(ctx context.Context, id string) (domain.Task, error) {
	t, err := store.One(ctx, r.q, taskRow, `select `+taskCols+` from tasks where id = $1`, id)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return domain.Task{}, perr.NotFoundf("task %s not found", id)
		}
		return domain.Task{}, perr.FromPostgres(err, "get task")
	}
	return t, nil
}

func (r *queries) Update(ctx context.Context, t domain.Task) error {
	const sql = `
update tasks set
	title = $2, description = $3, priority = $4, priority_reasoning = $5, status = $6,
	due_date = $7, start_date = $8, completion_date = $9, reminder = $10, reminder_sent = $11,
	recurrence = $12::jsonb, tags = $13, dependencies = $14, metadata = $15::jsonb,
	last_modified = $16
where id = $1
`
	tag, err := r.q.Exec(ctx, sql,
		t.ID, t.Title, t.Description, string(t.Priority), t.PriorityReasoning, string(t.Status),
		t.DueDate, t.StartDate, t.CompletionDate, t.Reminder, t.ReminderSent,
		jsonArg(t.Recurrence), t.Tags, t.Dependencies, jsonArg(t.Metadata),
		t.LastModified,
	)
	if err != nil {
		return perr.FromPostgres(err, "update task")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("task %s not found", t.ID)
	}
	return nil
}

func (r *queries) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `delete from tasks where id = $1`, id)
	if err != nil {
		return false, perr.FromPostgres(err, "delete task")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) List(ctx context.Context, in domain.ListInput) ([]domain.Task, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`select ` + taskCols + ` from tasks where true`)
	if in.Status != "" {
		sb.WriteString(" and status = " + arg(string(in.Status)))
	}
	if in.Priority != "" {
		sb.WriteString(" and priority = " + arg(string(in.Priority)))
	}
	if in.Tag != "" {
		sb.WriteString(" and " + arg(in.Tag) + " = any(tags)")
	}
	if in.DueAfter != nil {
		sb.WriteString(" and due_date >= " + arg(*in.DueAfter))
	}
	if in.DueBefore != nil {
		sb.WriteString(" and due_date < " + arg(*in.DueBefore))
	}
	limit := in.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	sb.WriteString(" order by created_at desc limit " + arg(limit))
	if in.Offset > 0 {
		sb.WriteString(" offset " + arg(in.Offset))
	}

	out, err := store.Many(ctx, r.q, taskRow, sb.String(), args...)
	return out, perr.FromPostgres(err, "list tasks")
}

func (r *queries) BulkStatus(
	ctx context.Context,
	ids []string,
	status domain.Status,
	completion *time.Time,
	now time.Time,
) (int64, error) {
	const sql = `
update tasks set
	status = $2,
	completion_date = coalesce($3, completion_date),
	last_modified = $4
where id = any($1::uuid[])
`
	tag, err := r.q.Exec(ctx, sql, ids, string(status), completion, now)
	if err != nil {
		return 0, perr.FromPostgres(err, "bulk status update")
	}
	return tag.RowsAffected(), nil
}

// DueForReminder selects tasks whose reminder (or due date when no explicit
// reminder is set) falls at or before the cutoff and has not been announced
func (r *queries) DueForReminder(ctx context.Context, until time.Time, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		limit = 100
	}
	const sql = `
select ` + taskCols + `
from tasks
where reminder_sent = false
	and status not in ('COMPLETED')
	and coalesce(reminder, due_date) is not null
	and coalesce(reminder, due_date) <= $1
order by coalesce(reminder, due_date)
limit $2
`
	out, err := store.Many(ctx, r.q, taskRow, sql, until, limit)
	return out, perr.FromPostgres(err, "reminder scan")
}

func (r *queries) MarkReminded(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `update tasks set reminder_sent = true where id = any($1::uuid[])`, ids)
	return perr.FromPostgres(err, "mark reminded")
}

// jsonArg renders a map as a jsonb parameter; nil maps become SQL null
func jsonArg(m map[string]any) *string {
	if m == nil {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// taskRow adapts scanTask to the store row scanners
func taskRow(row store.Row) (domain.Task, error) { return scanTask(row.Scan) }

// scanTask reads one task row; recurrence and metadata arrive as jsonb text
func scanTask(scan func(...any) error) (domain.Task, error) {
	var (
		t              domain.Task
		recRaw, metRaw *string
	)
	if err := scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.PriorityReasoning, &t.Status,
		&t.DueDate, &t.StartDate, &t.CompletionDate, &t.Reminder, &t.ReminderSent,
		&recRaw, &t.Tags, &t.Dependencies, &metRaw, &t.CreatedAt, &t.LastModified,
	); err != nil {
		return domain.Task{}, err
	}
	if recRaw != nil {
		_ = json.Unmarshal([]byte(*recRaw), &t.Recurrence)
	}
	if metRaw != nil {
		_ = json.Unmarshal([]byte(*metRaw), &t.Metadata)
	}
	return t, nil
}
