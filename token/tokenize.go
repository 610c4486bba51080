package token

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Characters that may not appear in unquoted text. Everything else
// (including '/', '.', '-') is fair game until whitespace or a comment.
const forbiddenUnquoted = "$\"{}[]:=,+#`^?!@*&\\"

const numberChars = "0123456789eE+-."

type tokenizer struct {
	src    []byte
	i      int
	line   int
	origin string

	// substitution scanning emits three tokens at once
	pending []Token
}

// Tokenize scans src into tokens, appending them to dst and returning
// the result. The sequence always ends with a TEOF token. The scan
// itself never fails; malformed input yields TBad tokens at the
// offending line.
func Tokenize(dst []Token, src []byte, origin string) []Token {
	tk := &tokenizer{src: src, line: 1, origin: origin}
	for {
		tok := tk.next()
		dst = append(dst, tok)
		if tok.Type == TEOF {
			return dst
		}
	}
}

func (tk *tokenizer) at() *Origin {
	return &Origin{Description: tk.origin, Line: tk.line}
}

func (tk *tokenizer) make(o *Origin, t TokenType, text string) Token {
	return Token{Type: t, Origin: o, Bytes: []byte(text)}
}

func (tk *tokenizer) bad(o *Origin, format string, args ...any) Token {
	return Token{Type: TBad, Origin: o, Bytes: fmt.Appendf(nil, format, args...)}
}

func (tk *tokenizer) next() Token {
	if len(tk.pending) > 0 {
		tok := tk.pending[0]
		tk.pending = tk.pending[1:]
		return tok
	}
	if tk.i >= len(tk.src) {
		return tk.make(tk.at(), TEOF, "")
	}
	o := tk.at()
	c := tk.src[tk.i]
	switch {
	case c == '\n':
		tk.i++
		tk.line++
		return tk.make(o, TNewline, "\n")
	case c == ' ' || c == '\t' || c == '\r':
		start := tk.i
		for tk.i < len(tk.src) && (tk.src[tk.i] == ' ' || tk.src[tk.i] == '\t' || tk.src[tk.i] == '\r') {
			tk.i++
		}
		return tk.make(o, TWhitespace, string(tk.src[start:tk.i]))
	case c == '#' || (c == '/' && tk.i+1 < len(tk.src) && tk.src[tk.i+1] == '/'):
		if c == '#' {
			tk.i++
		} else {
			tk.i += 2
		}
		start := tk.i
		for tk.i < len(tk.src) && tk.src[tk.i] != '\n' {
			tk.i++
		}
		return tk.make(o, TComment, string(tk.src[start:tk.i]))
	case c == '{':
		tk.i++
		return tk.make(o, TLCurl, "{")
	case c == '}':
		tk.i++
		return tk.make(o, TRCurl, "}")
	case c == '[':
		tk.i++
		return tk.make(o, TLSquare, "[")
	case c == ']':
		tk.i++
		return tk.make(o, TRSquare, "]")
	case c == ',':
		tk.i++
		return tk.make(o, TComma, ",")
	case c == ':' || c == '=':
		tk.i++
		return tk.make(o, TColon, string(c))
	case c == '"':
		return tk.quoted(o)
	case c == '$':
		return tk.substitution(o)
	case c >= '0' && c <= '9' || c == '-':
		return tk.number(o)
	default:
		return tk.unquoted(o)
	}
}

func (tk *tokenizer) unquoted(o *Origin) Token {
	c := tk.src[tk.i]
	if strings.IndexByte(forbiddenUnquoted, c) >= 0 {
		tk.i++
		return tk.bad(o, "reserved character %q is not allowed outside quotes", string(c))
	}
	start := tk.i
	for tk.i < len(tk.src) {
		c = tk.src[tk.i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		if strings.IndexByte(forbiddenUnquoted, c) >= 0 {
			break
		}
		if c == '/' && tk.i+1 < len(tk.src) && tk.src[tk.i+1] == '/' {
			break
		}
		tk.i++
	}
	text := string(tk.src[start:tk.i])
	switch text {
	case "true":
		return tk.make(o, TTrue, text)
	case "false":
		return tk.make(o, TFalse, text)
	case "null":
		return tk.make(o, TNull, text)
	}
	return tk.make(o, TUnquoted, text)
}

func (tk *tokenizer) number(o *Origin) Token {
	start := tk.i
	tk.i++ // first digit or '-'
	for tk.i < len(tk.src) && strings.IndexByte(numberChars, tk.src[tk.i]) >= 0 {
		tk.i++
	}
	text := string(tk.src[start:tk.i])
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return tk.make(o, TNumber, text)
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return tk.make(o, TNumber, text)
	}
	return tk.bad(o, "invalid number literal %q", text)
}

func (tk *tokenizer) quoted(o *Origin) Token {
	if bytes.HasPrefix(tk.src[tk.i:], []byte(`"""`)) {
		return tk.tripleQuoted(o)
	}
	tk.i++
	var sb strings.Builder
	for {
		if tk.i >= len(tk.src) || tk.src[tk.i] == '\n' {
			return tk.bad(o, "unterminated quoted string")
		}
		c := tk.src[tk.i]
		if c == '"' {
			tk.i++
			return tk.make(o, TString, sb.String())
		}
		if c != '\\' {
			sb.WriteByte(c)
			tk.i++
			continue
		}
		tk.i++
		if tk.i >= len(tk.src) {
			return tk.bad(o, "unterminated quoted string")
		}
		e := tk.src[tk.i]
		tk.i++
		switch e {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '/':
			sb.WriteByte('/')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			if tk.i+4 > len(tk.src) {
				return tk.bad(o, "truncated \\u escape in quoted string")
			}
			hex := string(tk.src[tk.i : tk.i+4])
			cp, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return tk.bad(o, "invalid \\u escape %q in quoted string", hex)
			}
			tk.i += 4
			sb.WriteRune(rune(cp))
		default:
			return tk.bad(o, "invalid escape sequence '\\%s' in quoted string", string(e))
		}
	}
}

func (tk *tokenizer) tripleQuoted(o *Origin) Token {
	body := tk.i + 3
	rel := bytes.Index(tk.src[body:], []byte(`"""`))
	if rel < 0 {
		tk.i = len(tk.src)
		return tk.bad(o, "unterminated triple-quoted string")
	}
	// additional quotes after the closing """ belong to the string
	end := body + rel + 3
	for end < len(tk.src) && tk.src[end] == '"' {
		end++
	}
	content := string(tk.src[body : end-3])
	tk.line += bytes.Count(tk.src[tk.i:end], []byte{'\n'})
	tk.i = end
	return tk.make(o, TMString, content)
}

func (tk *tokenizer) substitution(o *Origin) Token {
	if tk.i+1 >= len(tk.src) || tk.src[tk.i+1] != '{' {
		tk.i++
		return tk.bad(o, "'$' not followed by '{' (reserved character outside quotes)")
	}
	open := "${"
	tk.i += 2
	if tk.i < len(tk.src) && tk.src[tk.i] == '?' {
		open = "${?"
		tk.i++
	}
	start := tk.i
	for {
		if tk.i >= len(tk.src) || tk.src[tk.i] == '\n' {
			return tk.bad(o, "substitution %q is missing its closing '}'", open)
		}
		if tk.src[tk.i] == '}' {
			break
		}
		tk.i++
	}
	inner := string(tk.src[start:tk.i])
	tk.i++ // '}'
	tk.pending = append(tk.pending,
		tk.make(o, TUnquoted, strings.TrimSpace(inner)),
		tk.make(o, TSubstEnd, "}"),
	)
	return tk.make(o, TSubstStart, open)
}
