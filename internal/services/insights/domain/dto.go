// Package domain holds DTOs for insights http and service contracts
package domain

import "time"

// AnalyzeInput selects the lookback window for parse log analysis
type AnalyzeInput struct {
	Hours int `json:"hours,omitempty" validate:"omitempty,min=1,max=720" example:"24"`
}

// Metrics are the headline numbers for a window
type Metrics struct {
	SampleSize    uint64  `json:"sample_size"`
	SuccessRate   float64 `json:"success_rate"`
	ErrorRate     float64 `json:"error_rate"`
	AvgConfidence float64 `json:"avg_confidence"`
	AvgProcessMs  float64 `json:"avg_processing_ms"`
	AvgLLMMs      float64 `json:"avg_llm_ms"`
}

// ErrorBucket groups failed parses with a few anonymized examples
type ErrorBucket struct {
	Bucket          string   `json:"bucket"`
	Count           uint64   `json:"count"`
	AvgProcessingMs float64  `json:"avg_processing_ms"`
	Examples        []string `json:"examples,omitempty"`
}

// Insight is a single observation about the window
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Recommendation is the suggested follow-up for an insight
type Recommendation struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Details  string `json:"details,omitempty"`
}

// AnalysisReport is the full feedback analysis for a window
type AnalysisReport struct {
	GeneratedAt     time.Time        `json:"generated_at"`
	WindowHours     int              `json:"window_hours"`
	Metrics         Metrics          `json:"metrics"`
	ErrorPatterns   []ErrorBucket    `json:"error_patterns"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
}

// TimeFreq is one clock time and how often tasks land on it
type TimeFreq struct {
	Time       string `json:"time"`
	Frequency  int64  `json:"frequency"`
	Percentage int    `json:"percentage"`
}

// DayFreq is one weekday and how often tasks land on it
type DayFreq struct {
	Day        string `json:"day"`
	Frequency  int64  `json:"frequency"`
	Percentage int    `json:"percentage"`
}

// TagShare is one tag's slice of the task population
type TagShare struct {
	Tag        string `json:"tag"`
	Count      int64  `json:"count"`
	Percentage int    `json:"percentage"`
}

// TaskPatterns summarizes scheduling habits across stored tasks
type TaskPatterns struct {
	CommonTimes     []TimeFreq `json:"common_times"`
	PreferredDays   []DayFreq  `json:"preferred_days"`
	TagDistribution []TagShare `json:"tag_distribution"`
}
