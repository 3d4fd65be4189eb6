package testutil

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockCompleter mocks a completion backend. Responses are returned in call
// order; once exhausted the last response is repeated.
type MockCompleter struct {
	Responses [][]string
	// Errors maps a 1-based call number to the error it should return
	Errors  map[int]error
	Prompts []string
}

// Complete records the prompt and returns the next canned response
func (m *MockCompleter) Complete(ctx context.Context, prompt string) ([]string, error) {
	m.Prompts = append(m.Prompts, prompt)
	call := len(m.Prompts)

	if err, ok := m.Errors[call]; ok {
		return nil, err
	}

	if len(m.Responses) == 0 {
		return nil, nil
	}
	if call <= len(m.Responses) {
		return m.Responses[call-1], nil
	}
	return m.Responses[len(m.Responses)-1], nil
}

// Name returns the mock backend name
func (m *MockCompleter) Name() string {
	return "mock"
}

// Calls returns the number of Complete calls made so far
func (m *MockCompleter) Calls() int {
	return len(m.Prompts)
}

// MockTranslator mocks batch translation by echoing each item with a prefix
type MockTranslator struct {
	Prefix string
	// Errors maps a 1-based call number to the error it should return
	Errors  map[int]error
	Batches [][]string
}

// TranslateBatch records the batch and returns prefixed items
func (m *MockTranslator) TranslateBatch(ctx context.Context, items []string) ([]string, error) {
	batch := append([]string(nil), items...)
	m.Batches = append(m.Batches, batch)

	if err, ok := m.Errors[len(m.Batches)]; ok {
		return nil, err
	}

	prefix := m.Prefix
	if prefix == "" {
		prefix = "mock"
	}

	out := make([]string, len(items))
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		out[i] = fmt.Sprintf("%s %s", prefix, item)
	}
	return out, nil
}

// MockPacer counts pauses without sleeping
type MockPacer struct {
	Waits int
	Err   error
}

// Wait records a pause
func (m *MockPacer) Wait(ctx context.Context) error {
	m.Waits++
	return m.Err
}

// MockProgress records progress increments
type MockProgress struct {
	Steps []int
}

// Add records an increment of n rows
func (m *MockProgress) Add(n int) error {
	m.Steps = append(m.Steps, n)
	return nil
}

// Total returns the sum of all increments
func (m *MockProgress) Total() int {
	total := 0
	for _, n := range m.Steps {
		total += n
	}
	return total
}

// FakeClock hands out increasing timestamps
type FakeClock struct {
	Current time.Time
	Step    time.Duration
}

// Now returns the current fake time and advances it by Step
func (c *FakeClock) Now() time.Time {
	t := c.Current
	c.Current = c.Current.Add(c.Step)
	return t
}
