package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider names
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// OpenAI API flavours
const (
	APICompletions = "completions"
	APIChat        = "chat"
)

// Response parse modes
const (
	ParseLines   = "lines"
	ParseChoices = "choices"
)

// Pacing strategies
const (
	PacingFixed  = "fixed"
	PacingTicker = "ticker"
)

// Default model per provider
const (
	DefaultOpenAIModel = "gpt-3.5-turbo-instruct"
	DefaultChatModel   = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// Settings holds everything the job needs to run
type Settings struct {
	TargetLang string
	SourceLang string

	SourceFile string
	SheetName  string
	OutputFile string

	SourceColumnA string
	SaveColumnA   string
	SourceColumnB string
	SaveColumnB   string

	RowsPerBatch  int
	BatchInterval time.Duration
	Pacing        string

	Provider    string
	API         string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	ParseMode   string

	LogFile string
}

// Pair binds a source column to the column its translations are saved in
type Pair struct {
	Source string
	Save   string
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("settings.source_lang", "English")
	v.SetDefault("settings.rows_per_batch", 10)
	v.SetDefault("settings.batch_interval", 1.0)
	v.SetDefault("settings.pacing", PacingFixed)
	v.SetDefault("settings.provider", ProviderOpenAI)
	v.SetDefault("settings.api", APICompletions)
	v.SetDefault("settings.temperature", 0.3)
	v.SetDefault("settings.max_tokens", 500)
	v.SetDefault("settings.parse_mode", ParseLines)
	v.SetDefault("settings.log_file", "log.txt")
}

// Load builds Settings from v and validates them
func Load(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	s := &Settings{
		TargetLang:    strings.TrimSpace(v.GetString("settings.translate_lang")),
		SourceLang:    strings.TrimSpace(v.GetString("settings.source_lang")),
		SourceFile:    v.GetString("settings.xls_file"),
		SheetName:     v.GetString("settings.sheet_name"),
		OutputFile:    v.GetString("settings.new_file_name"),
		SourceColumnA: v.GetString("settings.source_column_A"),
		SaveColumnA:   v.GetString("settings.save_column_A"),
		SourceColumnB: v.GetString("settings.source_column_B"),
		SaveColumnB:   v.GetString("settings.save_column_B"),
		RowsPerBatch:  v.GetInt("settings.rows_per_batch"),
		Pacing:        strings.ToLower(v.GetString("settings.pacing")),
		Provider:      strings.ToLower(v.GetString("settings.provider")),
		API:           strings.ToLower(v.GetString("settings.api")),
		Model:         v.GetString("settings.model"),
		BaseURL:       v.GetString("settings.base_url"),
		Temperature:   float32(v.GetFloat64("settings.temperature")),
		MaxTokens:     v.GetInt("settings.max_tokens"),
		ParseMode:     strings.ToLower(v.GetString("settings.parse_mode")),
		LogFile:       v.GetString("settings.log_file"),
	}

	interval := v.GetFloat64("settings.batch_interval")
	if interval < 0 {
		return nil, fmt.Errorf("settings.batch_interval must not be negative, got %v", interval)
	}
	s.BatchInterval = time.Duration(interval * float64(time.Second))

	if s.Model == "" {
		switch {
		case s.Provider == ProviderGemini:
			s.Model = DefaultGeminiModel
		case s.API == APIChat:
			s.Model = DefaultChatModel
		default:
			s.Model = DefaultOpenAIModel
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks required keys and enumerated values
func (s *Settings) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"settings.translate_lang", s.TargetLang},
		{"settings.xls_file", s.SourceFile},
		{"settings.sheet_name", s.SheetName},
		{"settings.source_column_A", s.SourceColumnA},
		{"settings.save_column_A", s.SaveColumnA},
		{"settings.new_file_name", s.OutputFile},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required config key %s", r.key)
		}
	}

	if s.RowsPerBatch < 1 {
		return fmt.Errorf("settings.rows_per_batch must be positive, got %d", s.RowsPerBatch)
	}
	if s.BatchInterval < 0 {
		return fmt.Errorf("settings.batch_interval must not be negative")
	}
	if s.MaxTokens < 1 {
		return fmt.Errorf("settings.max_tokens must be positive, got %d", s.MaxTokens)
	}
	if (s.SourceColumnB == "") != (s.SaveColumnB == "") {
		return fmt.Errorf("settings.source_column_B and settings.save_column_B must be set together")
	}

	switch s.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider: %s", s.Provider)
	}
	switch s.API {
	case APICompletions, APIChat:
	default:
		return fmt.Errorf("unknown api: %s", s.API)
	}
	switch s.ParseMode {
	case ParseLines, ParseChoices:
	default:
		return fmt.Errorf("unknown parse mode: %s", s.ParseMode)
	}
	switch s.Pacing {
	case PacingFixed, PacingTicker:
	default:
		return fmt.Errorf("unknown pacing: %s", s.Pacing)
	}

	return nil
}

// Pairs returns the translation pairs in processing order
func (s *Settings) Pairs() []Pair {
	pairs := []Pair{{Source: s.SourceColumnA, Save: s.SaveColumnA}}
	if s.SourceColumnB != "" && s.SaveColumnB != "" {
		pairs = append(pairs, Pair{Source: s.SourceColumnB, Save: s.SaveColumnB})
	}
	return pairs
}

// OpenAIKey returns the OpenAI API key from the environment or config
func OpenAIKey(v *viper.Viper) string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return v.GetString("settings.openai_key")
}

// GeminiKey returns the Gemini API key from the environment or config
func GeminiKey(v *viper.Viper) string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return v.GetString("settings.gemini_key")
}

// APIKey returns the key for the configured provider
func (s *Settings) APIKey(v *viper.Viper) (string, error) {
	var key, hint string
	switch s.Provider {
	case ProviderGemini:
		key, hint = GeminiKey(v), "GEMINI_API_KEY"
	default:
		key, hint = OpenAIKey(v), "OPENAI_API_KEY"
	}
	if key == "" {
		return "", fmt.Errorf("%s API key not found. Set %s in the environment or .env file", s.Provider, hint)
	}
	return key, nil
}
