package translation

import (
	"context"
	"fmt"

	"codeberg.org/snonux/sheettranslate/internal/config"
)

// Completer sends one prompt to a completion API and returns the text of
// every choice it produced
type Completer interface {
	// Complete requests a completion for prompt
	Complete(ctx context.Context, prompt string) ([]string, error)

	// Name returns the backend name
	Name() string
}

// Requester builds the batch prompt and sends it
type Requester struct {
	completer  Completer
	sourceLang string
	targetLang string
}

// NewRequester creates a requester translating sourceLang to targetLang
func NewRequester(completer Completer, sourceLang, targetLang string) *Requester {
	return &Requester{
		completer:  completer,
		sourceLang: sourceLang,
		targetLang: targetLang,
	}
}

// Request sends one completion request covering all items
func (r *Requester) Request(ctx context.Context, items []string) ([]string, error) {
	if r.targetLang == "" {
		return nil, fmt.Errorf("target language is empty")
	}

	prompt := BuildPrompt(items, r.sourceLang, r.targetLang)
	choices, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s completion failed: %w", r.completer.Name(), err)
	}
	return choices, nil
}

// Translator translates whole batches
type Translator struct {
	requester *Requester
	parse     ParseFunc
}

// NewTranslator creates a translator. A nil parse defaults to ParseLines.
func NewTranslator(requester *Requester, parse ParseFunc) *Translator {
	if parse == nil {
		parse = ParseLines
	}
	return &Translator{
		requester: requester,
		parse:     parse,
	}
}

// TranslateBatch returns exactly one translation per item, "" where the
// response held no usable answer
func (t *Translator) TranslateBatch(ctx context.Context, items []string) ([]string, error) {
	if len(items) == 0 {
		return []string{}, nil
	}

	choices, err := t.requester.Request(ctx, items)
	if err != nil {
		return nil, err
	}

	return t.parse(choices, len(items)), nil
}

// ParserFor returns the parse function for a configured parse mode
func ParserFor(mode string) (ParseFunc, error) {
	switch mode {
	case config.ParseLines, "":
		return ParseLines, nil
	case config.ParseChoices:
		return ParseChoices, nil
	default:
		return nil, fmt.Errorf("unknown parse mode: %s", mode)
	}
}

// NewCompleter creates the completion backend selected in s
func NewCompleter(ctx context.Context, s *config.Settings, apiKey string) (Completer, error) {
	opts := Options{
		APIKey:      apiKey,
		Model:       s.Model,
		BaseURL:     s.BaseURL,
		Temperature: s.Temperature,
		MaxTokens:   s.MaxTokens,
	}

	switch s.Provider {
	case config.ProviderOpenAI:
		if s.API == config.APIChat {
			return NewOpenAIChatCompleter(opts)
		}
		return NewOpenAICompleter(opts)
	case config.ProviderGemini:
		return NewGeminiCompleter(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown provider: %s", s.Provider)
	}
}

// New wires a Translator for s on top of completer
func New(s *config.Settings, completer Completer) (*Translator, error) {
	parse, err := ParserFor(s.ParseMode)
	if err != nil {
		return nil, err
	}
	return NewTranslator(NewRequester(completer, s.SourceLang, s.TargetLang), parse), nil
}
