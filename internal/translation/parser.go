package translation

import (
	"strconv"
	"strings"
)

// Delimiter separates a label from the translated content
const Delimiter = ":"

// ParseFunc maps completion choices onto exactly n translations
type ParseFunc func(choices []string, n int) []string

// SplitLabel returns the trimmed text after the first delimiter, or "" when
// text holds no delimiter.
func SplitLabel(text string) string {
	_, value, found := strings.Cut(strings.TrimSpace(text), Delimiter)
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// ParseChoices extracts one translation per completion choice. A batch
// request normally yields a single choice, so all rows after the first stay
// empty; the result is padded or truncated to n.
func ParseChoices(choices []string, n int) []string {
	out := make([]string, n)
	for i, choice := range choices {
		if i >= n {
			break
		}
		out[i] = DecodeEscapes(SplitLabel(choice))
	}
	return out
}

// ParseLines splits the first non-empty choice into lines and maps them onto
// n rows. A line labelled with a row number 1..n lands on that row; any other
// line with content fills the next row that is still free. Rows without an
// answer are "".
func ParseLines(choices []string, n int) []string {
	out := make([]string, n)
	if n == 0 {
		return out
	}

	var text string
	for _, choice := range choices {
		if strings.TrimSpace(choice) != "" {
			text = choice
			break
		}
	}

	filled := make([]bool, n)
	next := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == Cue {
			continue
		}

		value := DecodeEscapes(unquote(SplitLabel(line)))

		if idx, ok := rowLabel(line, n); ok {
			out[idx] = value
			filled[idx] = true
			continue
		}

		// unlabelled lines without content, such as a preamble, take no row
		if value == "" {
			continue
		}

		for next < n && filled[next] {
			next++
		}
		if next >= n {
			continue
		}
		out[next] = value
		filled[next] = true
	}

	return out
}

// rowLabel reads a 1-based row number in front of the delimiter
func rowLabel(line string, n int) (int, bool) {
	label, _, found := strings.Cut(line, Delimiter)
	if !found {
		return 0, false
	}
	label = strings.TrimSpace(label)
	label = strings.TrimSuffix(strings.TrimPrefix(label, "["), "]")

	num, err := strconv.Atoi(label)
	if err != nil || num < 1 || num > n {
		return 0, false
	}
	return num - 1, true
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{"“", "”"},
	{"«", "»"},
	{"'", "'"},
}

// unquote strips one level of matching surrounding quotes
func unquote(s string) string {
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
		}
	}
	return s
}
