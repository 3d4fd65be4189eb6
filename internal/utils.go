package internal

// Version is the sheettranslate release version
const Version = "0.3.0"

// Truncate shortens s to at most max runes, appending "..." when cut
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
