package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return NewListerWithConfig(apiKey, "")
}

// NewListerWithConfig creates a model lister for an OpenAI-compatible
// endpoint at baseURL ("" for the default)
func NewListerWithConfig(apiKey, baseURL string) *Lister {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

// IsTranslationModel reports whether a model id can serve text completions
func IsTranslationModel(id string) bool {
	if strings.Contains(id, "tts") || strings.Contains(id, "audio") ||
		strings.Contains(id, "realtime") || strings.Contains(id, "transcribe") ||
		strings.Contains(id, "embedding") || strings.Contains(id, "image") {
		return false
	}
	return strings.HasPrefix(id, "gpt") || strings.Contains(id, "instruct") ||
		strings.HasPrefix(id, "davinci") || strings.HasPrefix(id, "babbage")
}

// ListCompletionModels writes the sorted translation-capable models to w,
// legacy completion models first
func (l *Lister) ListCompletionModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or add it to .env")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	completionModels := []string{}
	chatModels := []string{}

	for _, model := range models.Models {
		if !IsTranslationModel(model.ID) {
			continue
		}
		if strings.Contains(model.ID, "instruct") || strings.HasPrefix(model.ID, "davinci") || strings.HasPrefix(model.ID, "babbage") {
			completionModels = append(completionModels, model.ID)
		} else {
			chatModels = append(chatModels, model.ID)
		}
	}

	sort.Strings(completionModels)
	sort.Strings(chatModels)

	fmt.Fprintln(w, "Completion models (settings.api: completions):")
	if len(completionModels) == 0 {
		fmt.Fprintln(w, "  No completion models found")
	}
	for _, model := range completionModels {
		fmt.Fprintf(w, "  %s\n", model)
	}

	fmt.Fprintln(w, "\nChat models (settings.api: chat):")
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	}
	for _, model := range chatModels {
		fmt.Fprintf(w, "  %s\n", model)
	}

	return nil
}
