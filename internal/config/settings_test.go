package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

const sampleConfig = `settings:
  translate_lang: Spanish
  xls_file: input.xlsx
  sheet_name: Sheet1
  rows_per_batch: 2
  source_column_A: Text
  save_column_A: Translation
  new_file_name: output.xlsx
  batch_interval: 0.5
`

func newViper(t *testing.T, content string) *viper.Viper {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	return v
}

func TestLoad(t *testing.T) {
	s, err := Load(newViper(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"TargetLang", s.TargetLang, "Spanish"},
		{"SourceLang", s.SourceLang, "English"},
		{"SourceFile", s.SourceFile, "input.xlsx"},
		{"SheetName", s.SheetName, "Sheet1"},
		{"RowsPerBatch", s.RowsPerBatch, 2},
		{"SourceColumnA", s.SourceColumnA, "Text"},
		{"SaveColumnA", s.SaveColumnA, "Translation"},
		{"OutputFile", s.OutputFile, "output.xlsx"},
		{"BatchInterval", s.BatchInterval, 500 * time.Millisecond},
		{"Provider", s.Provider, ProviderOpenAI},
		{"API", s.API, APICompletions},
		{"Model", s.Model, DefaultOpenAIModel},
		{"Temperature", s.Temperature, float32(0.3)},
		{"MaxTokens", s.MaxTokens, 500},
		{"ParseMode", s.ParseMode, ParseLines},
		{"Pacing", s.Pacing, PacingFixed},
		{"LogFile", s.LogFile, "log.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoad_GeminiDefaultModel(t *testing.T) {
	s, err := Load(newViper(t, sampleConfig+"  provider: gemini\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Model != DefaultGeminiModel {
		t.Errorf("Expected model %s, got %s", DefaultGeminiModel, s.Model)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		extra   string
		replace [2]string
		wantErr string
	}{
		{
			name:    "zero batch size",
			replace: [2]string{"rows_per_batch: 2", "rows_per_batch: 0"},
			wantErr: "rows_per_batch",
		},
		{
			name:    "negative interval",
			replace: [2]string{"batch_interval: 0.5", "batch_interval: -1"},
			wantErr: "batch_interval",
		},
		{
			name:    "missing language",
			replace: [2]string{"translate_lang: Spanish", "translate_lang: \"\""},
			wantErr: "settings.translate_lang",
		},
		{
			name:    "unknown provider",
			extra:   "  provider: nope\n",
			wantErr: "unknown provider",
		},
		{
			name:    "unknown parse mode",
			extra:   "  parse_mode: json\n",
			wantErr: "unknown parse mode",
		},
		{
			name:    "save column B without source",
			extra:   "  save_column_B: Other\n",
			wantErr: "must be set together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := sampleConfig
			if tt.replace[0] != "" {
				content = strings.Replace(content, tt.replace[0], tt.replace[1], 1)
			}
			content += tt.extra

			_, err := Load(newViper(t, content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPairs(t *testing.T) {
	s := &Settings{SourceColumnA: "Text", SaveColumnA: "Translation"}
	want := []Pair{{Source: "Text", Save: "Translation"}}
	if got := s.Pairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}

	s.SourceColumnB = "Notes"
	s.SaveColumnB = "Notes translated"
	want = append(want, Pair{Source: "Notes", Save: "Notes translated"})
	if got := s.Pairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	v := viper.New()
	s := &Settings{Provider: ProviderOpenAI}

	if _, err := s.APIKey(v); err == nil {
		t.Error("Expected error when no key is configured")
	}

	v.Set("settings.openai_key", "config-key")
	if key, err := s.APIKey(v); err != nil || key != "config-key" {
		t.Errorf("APIKey() = %q, %v; want config-key", key, err)
	}

	t.Setenv("OPENAI_API_KEY", "env-key")
	if key, _ := s.APIKey(v); key != "env-key" {
		t.Errorf("Expected environment key to win, got %q", key)
	}

	s.Provider = ProviderGemini
	t.Setenv("GOOGLE_API_KEY", "google-key")
	if key, _ := s.APIKey(v); key != "google-key" {
		t.Errorf("Expected GOOGLE_API_KEY fallback, got %q", key)
	}
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	if key, _ := s.APIKey(v); key != "gemini-key" {
		t.Errorf("Expected GEMINI_API_KEY, got %q", key)
	}
}
