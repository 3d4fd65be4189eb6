package translation

import (
	"fmt"
	"strings"
)

// Cue is the token that ends every prompt
const Cue = "Translate:"

// BuildPrompt creates one prompt that enumerates all items of a batch.
// Each item is quoted on its own line. Only backslashes, quotes and line
// breaks are escaped; all other characters are sent as they are.
func BuildPrompt(items []string, sourceLang, targetLang string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Translate the following %d texts from %s to %s. ", len(items), sourceLang, targetLang)
	b.WriteString(`Reply with exactly one line per text, in the same order, formatted as "<number>: <translation>":`)
	b.WriteByte('\n')

	for _, item := range items {
		b.WriteString(quoteItem(item))
		b.WriteByte('\n')
	}

	b.WriteString(Cue)
	return b.String()
}

var itemEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

// quoteItem wraps s in double quotes, escaping what would break the line
func quoteItem(s string) string {
	return `"` + itemEscaper.Replace(s) + `"`
}
