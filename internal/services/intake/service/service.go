// Package service contains the intake workflow: free text in, task out
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"quando/internal/adapters/llm/gemini"
	"quando/internal/core/anonymize"
	"quando/internal/core/temporal"
	"quando/internal/core/textnorm"
	"quando/internal/platform/logger"
	"quando/internal/services/intake/domain"
	notifydom "quando/internal/services/notify/domain"
	plogdom "quando/internal/services/parselog/domain"
	tasksdom "quando/internal/services/tasks/domain"
)

// Proposer is the LLM seam; nil disables LLM-assisted intake
type Proposer interface {
	ProposeTask(ctx context.Context, text string, ref time.Time) (gemini.Proposal, error)
	Model() string
}

// Service defines the service contract for intake
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	tasks    tasksdom.ServicePort
	notify   notifydom.Publisher
	plog     plogdom.Writer
	llm      Proposer
	matcher  *temporal.Matcher
	resolver *temporal.Resolver
	clock    func() time.Time
	log      logger.Logger
}

// New creates an intake service. tasks, notify and plog are required;
// llm may be nil for pattern-only intake
func New(
	tasks tasksdom.ServicePort,
	notify notifydom.Publisher,
	plog plogdom.Writer,
	llm Proposer,
	opts temporal.ResolverOptions,
	log logger.Logger,
) *Svc {
	if tasks == nil {
		panic("intake.Service requires a non nil tasks port")
	}
	if notify == nil {
		panic("intake.Service requires a non nil notify publisher")
	}
	if plog == nil {
		panic("intake.Service requires a non nil parse log writer")
	}
	return &Svc{
		tasks:    tasks,
		notify:   notify,
		plog:     plog,
		llm:      llm,
		matcher:  temporal.NewMatcher(nil),
		resolver: temporal.NewResolver(opts),
		clock:    time.Now,
		log:      log,
	}
}

// WithClock overrides the wall clock, test hook only
func (s *Svc) WithClock(fn func() time.Time) *Svc { s.clock = fn; return s }

// Parse runs the phrase engine and the LLM over the input, reconciles the
// two, creates the task and records the attempt in the parse log.
// The phrase engine is authoritative for temporal fields whenever it
// resolves an instant or a recurrence; the LLM proposal is fallback only
func (s *Svc) Parse(ctx context.Context, in domain.ParseInput) (domain.ParseResult, error) {
	start := s.clock().UTC()

	norm := textnorm.Normalize(in.Text)
	matches := s.matcher.Match(norm)
	resolved := s.resolver.Resolve(matches, start)

	var (
		prop    gemini.Proposal
		llmUsed bool
		llmMs   int64
	)
	if s.llm != nil {
		llmStart := time.Now()
		p, err := s.llm.ProposeTask(ctx, in.Text, start)
		llmMs = time.Since(llmStart).Milliseconds()
		if err != nil {
			s.log.Warn().Err(err).Msg("llm proposal failed, continuing pattern-only")
		} else {
			prop = p
			llmUsed = true
		}
	}

	create := s.reconcile(in.Text, prop, llmUsed, resolved)
	tres := domain.TemporalResult{
		Matched:    len(matches) > 0,
		ResolvedAt: resolved.ISO8601(),
		HasDate:    resolved.HasDate,
		HasTime:    resolved.HasTime,
		Recurrence: resolved.Recurrence,
	}

	task, err := s.tasks.Create(ctx, create)
	if err != nil {
		s.record(ctx, in.Text, domain.ParseResult{Temporal: tres, LLMUsed: llmUsed}, false, start, llmMs, matches, resolved)
		return domain.ParseResult{}, err
	}

	s.notify.Publish(ctx, notifydom.TypeTaskCreated, "Task created: "+task.Title, task.ID)

	out := domain.ParseResult{Task: task, Temporal: tres, LLMUsed: llmUsed}
	s.record(ctx, in.Text, out, true, start, llmMs, matches, resolved)
	return out, nil
}

// reconcile merges the LLM proposal with the resolved temporal fields
func (s *Svc) reconcile(
	text string,
	prop gemini.Proposal,
	llmUsed bool,
	resolved temporal.Resolved,
) tasksdom.CreateInput {
	create := tasksdom.CreateInput{Title: fallbackTitle(text)}
	if llmUsed {
		if t := strings.TrimSpace(prop.Title); t != "" {
			create.Title = t
		}
		create.Description = prop.Description
		create.PriorityReasoning = prop.PriorityReasoning
		create.Tags = prop.Tags
		switch tasksdom.Priority(prop.Priority) {
		case tasksdom.PriorityLow, tasksdom.PriorityMedium, tasksdom.PriorityHigh, tasksdom.PriorityCritical:
			create.Priority = tasksdom.Priority(prop.Priority)
		}
	}

	if resolved.Valid {
		due := resolved.Instant
		create.DueDate = &due
	} else if llmUsed {
		if due, ok := prop.DueTime(); ok {
			create.DueDate = &due
		}
		if st, ok := parseISO(prop.StartDate); ok {
			create.StartDate = &st
		}
		if rem, ok := parseISO(prop.Reminder); ok {
			create.Reminder = &rem
		}
	}

	if rec := resolved.Recurrence; rec != nil {
		create.Recurrence = recurrenceMap(rec)
	} else if llmUsed && prop.Recurrence != "" {
		create.Recurrence = map[string]any{"frequency": prop.Recurrence}
	}
	return create
}

// record writes the attempt to the parse log with the raw text scrubbed
func (s *Svc) record(
	ctx context.Context,
	raw string,
	out domain.ParseResult,
	ok bool,
	start time.Time,
	llmMs int64,
	matches []temporal.MatchRecord,
	resolved temporal.Resolved,
) {
	scrubbed, hash := anonymize.ScrubAndHash(raw)
	parsed, _ := json.Marshal(out)

	confidence := 0.0
	switch {
	case resolved.Valid || resolved.Recurrence != nil:
		confidence = 1.0
	case len(matches) > 0:
		confidence = 0.5
	}

	model := ""
	if out.LLMUsed && s.llm != nil {
		model = s.llm.Model()
	}

	_ = s.plog.Write(ctx, plogdom.Record{
		InputHash:       hash,
		AnonymizedInput: scrubbed,
		ParsedOutput:    string(parsed),
		ParsingSuccess:  ok,
		Metrics: plogdom.Metrics{
			ProcessingTimeMs:       time.Since(start).Milliseconds(),
			LLMLatencyMs:           llmMs,
			PatternMatchConfidence: confidence,
		},
		Metadata: plogdom.Metadata{
			LLMModel:       model,
			PromptVersion:  gemini.PromptVersion,
			PatternVersion: temporal.CatalogVersion,
		},
		CreatedAt: start,
	})
}

// fallbackTitle trims the input into a usable title when the LLM offers none
func fallbackTitle(text string) string {
	t := strings.Join(strings.Fields(text), " ")
	r := []rune(t)
	if len(r) > 80 {
		t = string(r[:80])
	}
	return t
}

func parseISO(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// recurrenceMap flattens a recurrence descriptor for storage on the task
func recurrenceMap(rec *temporal.Recurrence) map[string]any {
	m := map[string]any{"frequency": rec.Frequency}
	if rec.Day != "" {
		m["day"] = rec.Day
	}
	if rec.AdditionalDay != "" {
		m["additional_day"] = rec.AdditionalDay
	}
	if rec.Position != "" {
		m["position"] = rec.Position
	}
	if rec.TimeContext != "" {
		m["time_context"] = rec.TimeContext
	}
	return m
}
