package service

import (
	"context"
	"time"

	"quando/internal/platform/logger"
	"quando/internal/services/insights/domain"
)

// Run executes a scheduled analysis loop. The first pass runs immediately,
// then once per interval until the context is cancelled
func (s *Svc) Run(ctx context.Context, interval time.Duration, windowHours int) error {
	log := logger.Named("insights-worker")
	if interval <= 0 {
		interval = time.Duration(DefaultWindowHours) * time.Hour
	}

	run := func() {
		report, err := s.Analyze(ctx, domain.AnalyzeInput{Hours: windowHours})
		if err != nil {
			log.Error().Err(err).Msg("scheduled analysis failed")
			return
		}
		log.Info().
			Uint64("sample_size", report.Metrics.SampleSize).
			Float64("success_rate", report.Metrics.SuccessRate).
			Int("error_patterns", len(report.ErrorPatterns)).
			Int("recommendations", len(report.Recommendations)).
			Msg("scheduled analysis complete")
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			run()
		}
	}
}
