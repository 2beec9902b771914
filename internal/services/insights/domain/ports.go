package domain

import (
	"context"
	"time"
)

// ServicePort defines the service contract for insights
type ServicePort interface {
	Analyze(ctx context.Context, in AnalyzeInput) (AnalysisReport, error)
	TaskPatterns(ctx context.Context) (TaskPatterns, error)
}

// StorageRepo is the hybrid read surface backing insights
type StorageRepo interface {
	ParseStats(ctx context.Context, since time.Time) (Metrics, error)
	ErrorBuckets(ctx context.Context, since time.Time) ([]ErrorBucket, error)
	CommonTimes(ctx context.Context, limit int) ([]TimeFreq, int64, error)
	PreferredDays(ctx context.Context, limit int) ([]DayFreq, int64, error)
	TagDistribution(ctx context.Context, limit int) ([]TagShare, int64, error)
}
