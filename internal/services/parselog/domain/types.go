// Package domain holds parse log types and contracts
package domain

import "time"

// Metrics captures per parse timing and confidence
type Metrics struct {
	ProcessingTimeMs       int64   `json:"processing_time_ms"`
	LLMLatencyMs           int64   `json:"llm_latency_ms"`
	PatternMatchConfidence float64 `json:"pattern_match_confidence"`
}

// Metadata pins the versions that produced a record
type Metadata struct {
	LLMModel       string `json:"llm_model"`
	PromptVersion  string `json:"prompt_version"`
	PatternVersion string `json:"pattern_version"`
}

// Record is one parse attempt. The raw input never appears here:
// InputHash is the sha256 of the original text and AnonymizedInput has
// emails, phones and names scrubbed before the record leaves the process
type Record struct {
	InputHash       string    `json:"input_hash"`
	AnonymizedInput string    `json:"anonymized_input"`
	ParsedOutput    string    `json:"parsed_output"`
	ParsingSuccess  bool      `json:"parsing_success"`
	Metrics         Metrics   `json:"metrics"`
	Metadata        Metadata  `json:"metadata"`
	CreatedAt       time.Time `json:"created_at"`
}
