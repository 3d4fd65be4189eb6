package translation

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DecodeEscapes replaces backslash escape sequences in s with the characters
// they stand for. Supported: \uXXXX (with surrogate pairs), \UXXXXXXXX, \xXX,
// \n, \t, \r, \\, \" and \'. Malformed sequences are copied verbatim and
// literal non-ASCII text passes through unchanged.
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case '\\', '"', '\'':
			b.WriteByte(s[i+1])
			i += 2
		case 'x':
			r, ok := parseHex(s, i+2, 2)
			if !ok {
				b.WriteByte(s[i])
				i++
				continue
			}
			b.WriteRune(r)
			i += 4
		case 'U':
			r, ok := parseHex(s, i+2, 8)
			if !ok || !utf8.ValidRune(r) {
				b.WriteByte(s[i])
				i++
				continue
			}
			b.WriteRune(r)
			i += 10
		case 'u':
			r, ok := parseHex(s, i+2, 4)
			if !ok {
				b.WriteByte(s[i])
				i++
				continue
			}
			if !utf16.IsSurrogate(r) {
				b.WriteRune(r)
				i += 6
				continue
			}
			// high surrogate must be followed by \uDC00-\uDFFF
			if i+12 <= len(s) && s[i+6] == '\\' && s[i+7] == 'u' {
				if low, ok := parseHex(s, i+8, 4); ok {
					if dec := utf16.DecodeRune(r, low); dec != utf8.RuneError {
						b.WriteRune(dec)
						i += 12
						continue
					}
				}
			}
			b.WriteString(s[i : i+6])
			i += 6
		default:
			b.WriteByte(s[i])
			i++
		}
	}

	return b.String()
}

// parseHex reads n hex digits of s starting at offset
func parseHex(s string, offset, n int) (rune, bool) {
	if offset+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[offset:offset+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
