// Package service contains insights workflows over parse logs and tasks
package service

import (
	"context"
	"fmt"
	"time"

	"quando/internal/modkit/repokit"
	"quando/internal/services/insights/domain"
)

// Analysis thresholds; tuned against observed intake volume
const (
	minSampleSize      = 100
	errorRateThreshold = 0.2
)

// DefaultWindowHours is the lookback when the caller does not pick one
const DefaultWindowHours = 24

// Service defines the service contract for insights
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   domain.StorageRepo
	binder repokit.Binder[domain.StorageRepo]
	db     repokit.TxRunner
	clock  func() time.Time
}

// New creates a new insights service
func New(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo]) *Svc {
	if db == nil {
		panic("insights.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("insights.Service requires a non nil StorageRepo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, clock: time.Now}
}

// WithClock overrides the wall clock, test hook only
func (s *Svc) WithClock(fn func() time.Time) *Svc { s.clock = fn; return s }

// Analyze summarizes the parse log window and derives insights and
// recommendations from the error profile
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.AnalysisReport, error) {
	hours := in.Hours
	if hours <= 0 {
		hours = DefaultWindowHours
	}
	now := s.clock().UTC()
	since := now.Add(-time.Duration(hours) * time.Hour)

	metrics, err := s.Repo.ParseStats(ctx, since)
	if err != nil {
		return domain.AnalysisReport{}, err
	}
	buckets, err := s.Repo.ErrorBuckets(ctx, since)
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	insights := deriveInsights(metrics, buckets)
	return domain.AnalysisReport{
		GeneratedAt:     now,
		WindowHours:     hours,
		Metrics:         metrics,
		ErrorPatterns:   buckets,
		Insights:        insights,
		Recommendations: deriveRecommendations(insights),
	}, nil
}

// TaskPatterns reports scheduling habits across stored tasks
func (s *Svc) TaskPatterns(ctx context.Context) (domain.TaskPatterns, error) {
	times, _, err := s.Repo.CommonTimes(ctx, 3)
	if err != nil {
		return domain.TaskPatterns{}, err
	}
	days, _, err := s.Repo.PreferredDays(ctx, 3)
	if err != nil {
		return domain.TaskPatterns{}, err
	}
	tags, _, err := s.Repo.TagDistribution(ctx, 20)
	if err != nil {
		return domain.TaskPatterns{}, err
	}
	return domain.TaskPatterns{
		CommonTimes:     times,
		PreferredDays:   days,
		TagDistribution: tags,
	}, nil
}

func deriveInsights(m domain.Metrics, buckets []domain.ErrorBucket) []domain.Insight {
	var out []domain.Insight

	if m.SampleSize < minSampleSize {
		out = append(out, domain.Insight{
			Type:    "warning",
			Message: "Small sample size - results may not be statistically significant",
		})
	}
	if m.SampleSize > 0 && m.ErrorRate > errorRateThreshold {
		out = append(out, domain.Insight{
			Type:    "critical",
			Message: "High error rate detected",
			Details: fmt.Sprintf("%.1f%% of requests are failing", m.ErrorRate*100),
		})
	}
	for _, b := range buckets {
		if float64(b.Count) > float64(m.SampleSize)*0.1 {
			out = append(out, domain.Insight{
				Type:    "pattern",
				Message: "Frequent error pattern: " + b.Bucket,
				Details: fmt.Sprintf("%d occurrences, avg processing time: %.0fms", b.Count, b.AvgProcessingMs),
			})
		}
	}
	return out
}

func deriveRecommendations(insights []domain.Insight) []domain.Recommendation {
	var out []domain.Recommendation
	for _, in := range insights {
		switch in.Type {
		case "critical":
			out = append(out, domain.Recommendation{
				Priority: "high",
				Action:   "Review and update parsing patterns",
				Details:  "High error rate indicates need for immediate pattern refinement",
			})
		case "pattern":
			out = append(out, domain.Recommendation{
				Priority: "medium",
				Action:   "Add new pattern recognition rule",
				Details:  "Consider adding specific handling for: " + in.Message,
			})
		case "warning":
			out = append(out, domain.Recommendation{
				Priority: "low",
				Action:   "Collect more data",
				Details:  "Continue monitoring to establish reliable patterns",
			})
		}
	}
	return out
}
