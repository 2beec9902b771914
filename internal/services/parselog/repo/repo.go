// Package repo provides the clickhouse sink for parse logs
package repo

import (
	"context"

	"quando/internal/platform/store"
	"quando/internal/services/parselog/domain"
)

// Table is the target table; columns must stay aligned with Insert below
const Table = "quando.parse_log"

// Repo defines the parse log storage contract
type Repo interface {
	Insert(ctx context.Context, recs []domain.Record) error
}

// NewCH builds the clickhouse-backed repo
func NewCH(ch store.Clickhouse) Repo { return &chStore{ch: ch} }

type chStore struct{ ch store.Clickhouse }

func (s *chStore) Insert(ctx context.Context, recs []domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		success := uint8(0)
		if r.ParsingSuccess {
			success = 1
		}
		rows = append(rows, []any{
			r.InputHash,
			r.AnonymizedInput,
			r.ParsedOutput,
			success,
			r.Metrics.ProcessingTimeMs,
			r.Metrics.LLMLatencyMs,
			r.Metrics.PatternMatchConfidence,
			r.Metadata.LLMModel,
			r.Metadata.PromptVersion,
			r.Metadata.PatternVersion,
			r.CreatedAt,
		})
	}
	return s.ch.Insert(ctx, Table, rows)
}
