package ir

import (
	"fmt"
	"strings"

	"github.com/thiagogjt/confit/token"
)

// Path is an ordered sequence of object keys, e.g. "a.b.c" becomes
// ["a","b","c"]. Paths are compared structurally.
type Path []string

// ParsePath splits a dotted path expression into its elements. Quoted
// segments may contain '.' and escaped quotes: `a."b.c".d` has three
// elements. Empty elements (leading, trailing, or doubled periods) are
// rejected.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}
	var (
		res Path
		buf strings.Builder
		// quoted-empty is a legitimate element only when explicitly quoted
		quoted bool
	)
	flush := func() error {
		if buf.Len() == 0 && !quoted {
			return fmt.Errorf("%w: %q has a leading, trailing, or two adjacent periods", ErrBadPath, s)
		}
		res = append(res, buf.String())
		buf.Reset()
		quoted = false
		return nil
	}
	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '.':
			if err := flush(); err != nil {
				return nil, err
			}
			i++
		case '"':
			i++
			closed := false
			for i < len(s) {
				if s[i] == '\\' && i+1 < len(s) {
					switch s[i+1] {
					case '"':
						buf.WriteByte('"')
					case '\\':
						buf.WriteByte('\\')
					default:
						buf.WriteByte(s[i+1])
					}
					i += 2
					continue
				}
				if s[i] == '"' {
					closed = true
					i++
					break
				}
				buf.WriteByte(s[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("%w: %q has an unterminated quoted segment", ErrBadPath, s)
			}
			quoted = true
		default:
			buf.WriteByte(c)
			i++
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return res, nil
}

// String renders the path back into a dotted expression, quoting
// elements that would not survive re-parsing.
func (p Path) String() string {
	var sb strings.Builder
	for i, e := range p {
		if i > 0 {
			sb.WriteByte('.')
		}
		if e == "" || strings.ContainsAny(e, ".\"\\ \t") {
			sb.WriteString(token.Quote(e))
			continue
		}
		sb.WriteString(e)
	}
	return sb.String()
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// StartsWith reports whether q is a prefix of p.
func (p Path) StartsWith(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	return p[:len(q)].Equal(q)
}

// Child returns a new path extending p by key.
func (p Path) Child(key string) Path {
	res := make(Path, len(p)+1)
	copy(res, p)
	res[len(p)] = key
	return res
}
