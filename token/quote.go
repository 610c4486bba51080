package token

import (
	"strconv"
	"strings"
)

// NeedsQuote reports whether v cannot be emitted as unquoted text
// without changing how it reads back: empty strings, keywords, text
// that would lex as a number, and text containing reserved characters
// or whitespace all need quotes.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	switch v {
	case "true", "false", "null":
		return true
	}
	if v[0] >= '0' && v[0] <= '9' || v[0] == '-' {
		return true
	}
	if strings.ContainsAny(v, forbiddenUnquoted) {
		return true
	}
	// '.' quoted so keys never read back as dotted paths
	if strings.ContainsAny(v, " \t\r\n/.") {
		return true
	}
	return false
}

// Quote renders v as a double-quoted string with JSON-compatible
// escaping.
func Quote(v string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)
				h := strconv.FormatInt(int64(r), 16)
				for len(h) < 4 {
					h = "0" + h
				}
				sb.WriteString(h)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
