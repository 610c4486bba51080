// Package encode serializes a value tree back to text, either as the
// human-friendly configuration syntax or as strict JSON.
//
// Rendering a resolved tree in JSON mode is the structural inverse of
// parsing: re-parsing the output yields an equal tree (origins aside).
package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/thiagogjt/confit/ir"
	"github.com/thiagogjt/confit/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	json           bool
	formatted      bool
	originComments bool
	comments       bool
	indent         int
	depth          int

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.json {
		es.originComments = false
		es.comments = false
	}
	return encode(node, w, es)
}

// String renders node into a string.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	var sb strings.Builder
	if err := Encode(node, &sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// MustString is String for values known to be renderable, such as
// resolved trees in non-JSON mode.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	s, err := String(node, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func encode(n *ir.Node, w io.Writer, es *EncState) error {
	switch n.Type {
	case ir.NullType:
		return writeValue(w, es, n.Type, "null")
	case ir.BoolType:
		return writeValue(w, es, n.Type, n.ScalarText())
	case ir.NumberType:
		return writeValue(w, es, n.Type, n.NumberText())
	case ir.StringType:
		if es.json || token.NeedsQuote(n.Str) {
			return writeValue(w, es, n.Type, token.Quote(n.Str))
		}
		return writeValue(w, es, n.Type, n.Str)
	case ir.ObjectType:
		return encodeObject(n, w, es)
	case ir.ListType:
		return encodeList(n, w, es)
	case ir.SubstitutionType:
		if es.json {
			return fmt.Errorf("%w: cannot render a substitution as JSON", ErrEncoding)
		}
		open := "${"
		if n.Optional {
			open = "${?"
		}
		return writeString(w, open+n.Path.String()+"}")
	case ir.ConcatType:
		if es.json {
			return fmt.Errorf("%w: cannot render a concatenation as JSON", ErrEncoding)
		}
		for _, v := range n.Values {
			if err := encode(v, w, es); err != nil {
				return err
			}
		}
		return nil
	case ir.DelayedMergeType:
		return fmt.Errorf("%w: cannot render an unmerged fallback stack", ErrEncoding)
	default:
		return fmt.Errorf("%w: unknown node type %d", ErrEncoding, int(n.Type))
	}
}

func encodeObject(n *ir.Node, w io.Writer, es *EncState) error {
	if len(n.Keys) == 0 {
		return writeString(w, "{}")
	}
	if err := writeString(w, "{"); err != nil {
		return err
	}
	es.depth++
	for i, k := range n.Keys {
		child := n.Values[i]
		if err := writeEntryBreak(w, es, i); err != nil {
			return err
		}
		if err := writeEntryComments(child, w, es); err != nil {
			return err
		}
		key := k
		if es.json || token.NeedsQuote(k) {
			key = token.Quote(k)
		}
		if es.Color != nil {
			key = es.Color(ir.ObjectType, FieldColor, key)
		}
		if err := writeString(w, key+": "); err != nil {
			return err
		}
		if err := encode(child, w, es); err != nil {
			return err
		}
		if i < len(n.Keys)-1 {
			// formatted non-JSON output separates entries by line
			// breaks alone
			if !es.formatted {
				if err := writeString(w, ", "); err != nil {
					return err
				}
			} else if es.json {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
		}
	}
	es.depth--
	if es.formatted {
		if err := writeString(w, "\n"+indent(es)); err != nil {
			return err
		}
	}
	return writeString(w, "}")
}

func encodeList(n *ir.Node, w io.Writer, es *EncState) error {
	if len(n.Values) == 0 {
		return writeString(w, "[]")
	}
	if err := writeString(w, "["); err != nil {
		return err
	}
	es.depth++
	for i, child := range n.Values {
		if err := writeEntryBreak(w, es, i); err != nil {
			return err
		}
		if err := encode(child, w, es); err != nil {
			return err
		}
		if i < len(n.Values)-1 {
			if !es.formatted {
				if err := writeString(w, ", "); err != nil {
					return err
				}
			} else if es.json {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
		}
	}
	es.depth--
	if es.formatted {
		if err := writeString(w, "\n"+indent(es)); err != nil {
			return err
		}
	}
	return writeString(w, "]")
}

// writeEntryBreak starts a new entry: a newline plus indentation when
// formatted, nothing otherwise.
func writeEntryBreak(w io.Writer, es *EncState, i int) error {
	if !es.formatted {
		return nil
	}
	return writeString(w, "\n"+indent(es))
}

// writeEntryComments emits origin and captured comments before an
// entry, in formatted non-JSON mode only.
func writeEntryComments(n *ir.Node, w io.Writer, es *EncState) error {
	if !es.formatted || n.Origin == nil {
		return nil
	}
	var lines []string
	if es.comments {
		for _, c := range n.Origin.Comments {
			lines = append(lines, "# "+c)
		}
	}
	if es.originComments {
		lines = append(lines, "# "+n.Origin.String())
	}
	for _, ln := range lines {
		if es.Color != nil {
			ln = es.Color(ir.StringType, CommentColor, ln)
		}
		if err := writeString(w, ln+"\n"+indent(es)); err != nil {
			return err
		}
	}
	return nil
}

func writeValue(w io.Writer, es *EncState, t ir.Type, s string) error {
	if es.Color != nil {
		s = es.Color(t, ValueColor, s)
	}
	return writeString(w, s)
}

func indent(es *EncState) string {
	return strings.Repeat(" ", es.indent*es.depth)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
