package translation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Options configures a completion backend
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
}

func newOpenAIClient(opts Options) (*openai.Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

// OpenAICompleter uses the legacy completions endpoint
type OpenAICompleter struct {
	client *openai.Client
	opts   Options
}

// NewOpenAICompleter creates a completions endpoint backend
func NewOpenAICompleter(opts Options) (*OpenAICompleter, error) {
	client, err := newOpenAIClient(opts)
	if err != nil {
		return nil, err
	}
	if opts.Model == "" {
		opts.Model = openai.GPT3Dot5TurboInstruct
	}
	return &OpenAICompleter{client: client, opts: opts}, nil
}

// Name returns the backend name
func (c *OpenAICompleter) Name() string {
	return "openai"
}

// Complete sends prompt to the completions endpoint asking for one choice
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) ([]string, error) {
	req := openai.CompletionRequest{
		Model:       c.opts.Model,
		Prompt:      prompt,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
		N:           1,
	}

	resp, err := c.client.CreateCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	choices := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		choices = append(choices, choice.Text)
	}
	return choices, nil
}

// OpenAIChatCompleter sends the prompt as a single chat user message
type OpenAIChatCompleter struct {
	client *openai.Client
	opts   Options
}

// NewOpenAIChatCompleter creates a chat completions backend
func NewOpenAIChatCompleter(opts Options) (*OpenAIChatCompleter, error) {
	client, err := newOpenAIClient(opts)
	if err != nil {
		return nil, err
	}
	if opts.Model == "" {
		opts.Model = openai.GPT4oMini
	}
	return &OpenAIChatCompleter{client: client, opts: opts}, nil
}

// Name returns the backend name
func (c *OpenAIChatCompleter) Name() string {
	return "openai-chat"
}

// Complete sends prompt to the chat completions endpoint asking for one choice
func (c *OpenAIChatCompleter) Complete(ctx context.Context, prompt string) ([]string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
		N:           1,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	choices := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		choices = append(choices, choice.Message.Content)
	}
	return choices, nil
}
