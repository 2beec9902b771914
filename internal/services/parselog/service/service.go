// Package service contains the parse log workflow
package service

import (
	"context"

	"quando/internal/platform/logger"
	"quando/internal/services/parselog/domain"
	"quando/internal/services/parselog/repo"
)

// Service defines the parse log contract
type Service interface{ domain.Writer }

// Svc implements the Service interface
type Svc struct {
	repo repo.Repo
	log  logger.Logger
}

// New creates a parse log service over the given repo
func New(r repo.Repo, log logger.Logger) *Svc {
	if r == nil {
		panic("parselog.Service requires a non nil Repo")
	}
	return &Svc{repo: r, log: log}
}

// Write persists records. Failures are logged and swallowed so a sink
// outage never breaks the intake path
func (s *Svc) Write(ctx context.Context, recs ...domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	if err := s.repo.Insert(ctx, recs); err != nil {
		s.log.Error().Err(err).Int("records", len(recs)).Msg("parse log write failed")
	}
	return nil
}
