// Package repo provides the hybrid insights store:
// clickhouse for parse log aggregates, postgres for task patterns
package repo

import (
	"context"
	"time"

	"quando/internal/modkit/repokit"
	perr "quando/internal/platform/errors"
	"quando/internal/platform/store"
	"quando/internal/services/insights/domain"
)

// NewHybrid returns a binder that reads parse logs from ClickHouse and
// task scheduling patterns from Postgres
func NewHybrid(ch store.Clickhouse) repokit.Binder[domain.StorageRepo] {
	return &hybridBinder{ch: ch}
}

type hybridBinder struct{ ch store.Clickhouse }

func (b *hybridBinder) Bind(q repokit.Queryer) domain.StorageRepo {
	return &hybridStore{pg: q, ch: b.ch}
}

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

// ParseStats aggregates the parse log window in one pass
func (s *hybridStore) ParseStats(ctx context.Context, since time.Time) (domain.Metrics, error) {
	const sql = `
SELECT
	count()                                                    AS total,
	countIf(parsing_success = 1)                               AS ok,
	avgIf(pattern_match_confidence, parsing_success = 1)       AS avg_conf,
	avg(processing_time_ms)                                    AS avg_proc,
	avgIf(llm_latency_ms, llm_latency_ms > 0)                  AS avg_llm
FROM quando.parse_log
WHERE created_at >= ?
`
	rows, err := s.ch.Query(ctx, sql, since)
	if err != nil {
		return domain.Metrics{}, err
	}
	defer rows.Close()

	var (
		total, ok                uint64
		avgConf, avgProc, avgLLM float64
	)
	if !rows.Next() {
		return domain.Metrics{}, rows.Err()
	}
	if err := rows.Scan(&total, &ok, &avgConf, &avgProc, &avgLLM); err != nil {
		return domain.Metrics{}, err
	}
	m := domain.Metrics{
		SampleSize:    total,
		AvgConfidence: avgConf,
		AvgProcessMs:  avgProc,
		AvgLLMMs:      avgLLM,
	}
	if total > 0 {
		m.SuccessRate = float64(ok) / float64(total)
		m.ErrorRate = 1 - m.SuccessRate
	}
	return m, rows.Err()
}

// ErrorBuckets groups failed parses by how far the phrase engine got,
// keeping up to three anonymized examples per bucket
func (s *hybridStore) ErrorBuckets(ctx context.Context, since time.Time) ([]domain.ErrorBucket, error) {
	const sql = `
SELECT
	multiIf(
		pattern_match_confidence >= 1.0, 'resolved phrase, task rejected',
		pattern_match_confidence >= 0.5, 'unresolved temporal phrase',
		'no temporal match'
	)                                  AS bucket,
	count()                            AS cnt,
	avg(processing_time_ms)            AS avg_proc,
	groupArray(3)(anonymized_input)    AS examples
FROM quando.parse_log
WHERE parsing_success = 0 AND created_at >= ?
GROUP BY bucket
ORDER BY cnt DESC
`
	rows, err := s.ch.Query(ctx, sql, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ErrorBucket
	for rows.Next() {
		var b domain.ErrorBucket
		if err := rows.Scan(&b.Bucket, &b.Count, &b.AvgProcessingMs, &b.Examples); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CommonTimes returns the most frequent due date clock times
func (s *hybridStore) CommonTimes(ctx context.Context, limit int) ([]domain.TimeFreq, int64, error) {
	if limit <= 0 {
		limit = 3
	}
	total, err := s.countTasks(ctx, "due_date is not null")
	if err != nil || total == 0 {
		return nil, total, err
	}
	const sql = `
select to_char(due_date, 'HH12:MI AM') as t, count(*) as n
from tasks
where due_date is not null
group by 1
order by n desc, t
limit $1
`
	out, err := store.Many(ctx, s.pg, func(row store.Row) (domain.TimeFreq, error) {
		var f domain.TimeFreq
		err := row.Scan(&f.Time, &f.Frequency)
		return f, err
	}, sql, limit)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "common task times")
	}
	for i := range out {
		out[i].Percentage = pct(out[i].Frequency, total)
	}
	return out, total, nil
}

// PreferredDays returns the weekdays tasks most often land on
func (s *hybridStore) PreferredDays(ctx context.Context, limit int) ([]domain.DayFreq, int64, error) {
	if limit <= 0 {
		limit = 3
	}
	total, err := s.countTasks(ctx, "due_date is not null")
	if err != nil || total == 0 {
		return nil, total, err
	}
	const sql = `
select trim(to_char(due_date, 'Day')) as d, count(*) as n
from tasks
where due_date is not null
group by 1
order by n desc, d
limit $1
`
	out, err := store.Many(ctx, s.pg, func(row store.Row) (domain.DayFreq, error) {
		var f domain.DayFreq
		err := row.Scan(&f.Day, &f.Frequency)
		return f, err
	}, sql, limit)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "preferred task days")
	}
	for i := range out {
		out[i].Percentage = pct(out[i].Frequency, total)
	}
	return out, total, nil
}

// TagDistribution unrolls tags across all tasks
func (s *hybridStore) TagDistribution(ctx context.Context, limit int) ([]domain.TagShare, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	total, err := s.countTasks(ctx, "true")
	if err != nil || total == 0 {
		return nil, total, err
	}
	const sql = `
select tag, count(*) as n
from tasks, unnest(tags) as tag
group by tag
order by n desc, tag
limit $1
`
	out, err := store.Many(ctx, s.pg, func(row store.Row) (domain.TagShare, error) {
		var t domain.TagShare
		err := row.Scan(&t.Tag, &t.Count)
		return t, err
	}, sql, limit)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "tag distribution")
	}
	for i := range out {
		out[i].Percentage = pct(out[i].Count, total)
	}
	return out, total, nil
}

func (s *hybridStore) countTasks(ctx context.Context, where string) (int64, error) {
	n, err := store.Scalar[int64](ctx, s.pg, "select count(*) from tasks where "+where)
	if err != nil {
		return 0, perr.FromPostgres(err, "count tasks")
	}
	return n, nil
}

func pct(part, total int64) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
