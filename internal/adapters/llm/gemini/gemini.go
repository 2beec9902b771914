// Package gemini proposes task fields from free text using the Gemini API
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// PromptVersion tags parse log records so prompt changes are traceable
const PromptVersion = "v2"

// Config configures the Gemini client
type Config struct {
	APIKey string
	Model  string
}

// Proposal is the structured task suggestion returned by the model.
// Temporal fields are ISO timestamps and may be empty when the model
// found nothing to anchor them on
type Proposal struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Priority          string   `json:"priority"`
	PriorityReasoning string   `json:"priority_reasoning"`
	DueDate           string   `json:"due_date"`
	StartDate         string   `json:"start_date"`
	Reminder          string   `json:"reminder"`
	Recurrence        string   `json:"recurrence"`
	Tags              []string `json:"tags"`
}

// DueTime parses the proposed due date; ok is false when absent or malformed
func (p Proposal) DueTime() (time.Time, bool) {
	if p.DueDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, p.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Client wraps the genai SDK for task proposals
type Client struct {
	c     *genai.Client
	model string
}

// New creates a Gemini client; the API key is required
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{c: c, model: model}, nil
}

// Model reports the configured model name for parse log metadata
func (c *Client) Model() string { return c.model }

// Close invalidates the client handle. The genai SDK holds no persistent
// connection, so there is nothing else to release
func (c *Client) Close() error {
	c.c = nil
	return nil
}

const systemPrompt = `You are a task management assistant. Given one piece of
free text, extract a task. Determine a priority level (Low, Medium, High,
Critical) with a short reasoning. When the text carries temporal meaning,
emit ISO 8601 timestamps; leave temporal fields empty when nothing anchors
them. Suggest up to five short tags based on the task content.`

// proposalSchema constrains the response to the Proposal shape
var proposalSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":              {Type: genai.TypeString},
		"description":        {Type: genai.TypeString},
		"priority":           {Type: genai.TypeString, Enum: []string{"Low", "Medium", "High", "Critical"}},
		"priority_reasoning": {Type: genai.TypeString},
		"due_date":           {Type: genai.TypeString},
		"start_date":         {Type: genai.TypeString},
		"reminder":           {Type: genai.TypeString},
		"recurrence":         {Type: genai.TypeString},
		"tags":               {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"title", "priority", "priority_reasoning"},
}

// ProposeTask asks the model for a structured task suggestion.
// The reference instant is included so relative phrases resolve consistently
func (c *Client) ProposeTask(ctx context.Context, text string, ref time.Time) (Proposal, error) {
	prompt := fmt.Sprintf("Current time: %s\n\nInput: %s", ref.UTC().Format(time.RFC3339), text)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	res, err := c.c.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    proposalSchema,
	})
	if err != nil {
		return Proposal{}, fmt.Errorf("gemini: generate: %w", err)
	}
	raw := res.Text()
	if raw == "" {
		return Proposal{}, fmt.Errorf("gemini: empty response")
	}
	var p Proposal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Proposal{}, fmt.Errorf("gemini: decode proposal: %w", err)
	}
	return p, nil
}
