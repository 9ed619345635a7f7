// Package genai summarizes changesets with the Gemini API.
package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/jamesharris-garmin/diffrec"
	"google.golang.org/genai"
)

// Compile-time interface verification.
var _ diffrec.Summarizer = (*Summarizer)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// bodyLimit caps how much of a record body goes into the prompt.
const bodyLimit = 4000

// Summarizer produces a prose summary of a changeset via Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a Gemini-backed summarizer. An empty model
// selects DefaultModel.
func NewSummarizer(ctx context.Context, apiKey, model string) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}, nil
}

// Summarize sends the changeset to the model and returns its summary.
func (s *Summarizer) Summarize(ctx context.Context, cs *diffrec.ChangeSet) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(Prompt(cs)), nil)
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model %s returned an empty summary", s.model)
	}
	return strings.TrimSpace(text), nil
}

// Prompt renders the changeset into the instruction sent to the model.
func Prompt(cs *diffrec.ChangeSet) string {
	var b strings.Builder
	b.WriteString("Summarize the following set of file changes in a few sentences.\n")
	b.WriteString("Focus on what changed and why it might matter, not on restating paths.\n\n")

	for _, rec := range cs.Records {
		fmt.Fprintf(&b, "## %s %s\n", rec.Status(), rec.Path())
		if rec.Renamed() {
			fmt.Fprintf(&b, "renamed from %s to %s\n", rec.RenameFrom, rec.RenameTo)
		}
		if rec.OldMode != "" && rec.NewMode != "" && rec.OldMode != rec.NewMode {
			fmt.Fprintf(&b, "mode changed from %s to %s\n", rec.OldMode, rec.NewMode)
		}
		if body := strings.TrimSpace(rec.RawBody); body != "" {
			if len(body) > bodyLimit {
				body = body[:bodyLimit] + "\n[truncated]"
			}
			b.WriteString("```\n")
			b.WriteString(body)
			b.WriteString("\n```\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
