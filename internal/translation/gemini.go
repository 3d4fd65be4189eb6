package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiCompleter generates completions with the Gemini API. Every returned
// candidate counts as one choice.
type GeminiCompleter struct {
	client *genai.Client
	opts   Options
}

// NewGeminiCompleter creates a Gemini backend
func NewGeminiCompleter(ctx context.Context, opts Options) (*GeminiCompleter, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiCompleter{client: client, opts: opts}, nil
}

// Name returns the backend name
func (c *GeminiCompleter) Name() string {
	return "gemini"
}

// Complete sends prompt to GenerateContent asking for one candidate
func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) ([]string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.opts.Temperature),
		MaxOutputTokens: int32(c.opts.MaxTokens),
		CandidateCount:  1,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.opts.Model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	choices := make([]string, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			choices = append(choices, "")
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		choices = append(choices, b.String())
	}
	return choices, nil
}
