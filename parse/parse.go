// Package parse builds a value tree from configuration text.
//
// The grammar is a human-friendly superset of JSON: braces around the
// root document are optional, '=' and ':' are interchangeable, a key
// may be followed directly by an object or list literal with no
// separator, keys may be dotted path expressions that expand into
// nested objects, repeated keys merge, and adjacent value chunks on one
// line concatenate.
package parse

import (
	"fmt"
	"strings"

	"github.com/thiagogjt/confit/debug"
	"github.com/thiagogjt/confit/ir"
	"github.com/thiagogjt/confit/merge"
	"github.com/thiagogjt/confit/token"
)

// Parse turns src into a raw value tree. The returned root is an
// object node, or a list node for documents whose top level is a list
// literal. Syntax errors abort the parse; no partial tree is returned.
func Parse(src []byte, origin string) (*ir.Node, error) {
	toks := token.Tokenize(nil, src, origin)
	if debug.Parse() {
		debug.Logf("parse: %d tokens from %s\n", len(toks), origin)
	}
	p := &parser{toks: toks}
	return p.parseRoot()
}

type parser struct {
	toks []token.Token
	i    int
}

func (p *parser) cur() *token.Token {
	return &p.toks[p.i]
}

func (p *parser) advance() {
	if p.toks[p.i].Type != token.TEOF {
		p.i++
	}
}

func (p *parser) errf(o *token.Origin, format string, args ...any) error {
	return &Error{Origin: o, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipInline() {
	for p.cur().Type == token.TWhitespace {
		p.advance()
	}
}

// skipBlank skips whitespace, newlines, and comments, returning the
// comment lines seen. They attach to the origin of whatever follows.
func (p *parser) skipBlank() []string {
	var comments []string
	for {
		switch p.cur().Type {
		case token.TWhitespace, token.TNewline:
			p.advance()
		case token.TComment:
			comments = append(comments, strings.TrimSpace(p.cur().Text()))
			p.advance()
		default:
			return comments
		}
	}
}

func (p *parser) parseRoot() (*ir.Node, error) {
	comments := p.skipBlank()
	t := p.cur()
	var (
		root *ir.Node
		err  error
	)
	switch t.Type {
	case token.TLCurl:
		p.advance()
		root, err = p.parseObjectBody(t.Origin, true)
	case token.TLSquare:
		p.advance()
		root, err = p.parseListBody(t.Origin)
	default:
		root, err = p.parseObjectBody(t.Origin, false)
	}
	if err != nil {
		return nil, err
	}
	if len(comments) > 0 {
		root = root.WithOrigin(root.Origin.WithComments(comments))
	}
	p.skipBlank()
	if p.cur().Type != token.TEOF {
		return nil, p.errf(p.cur().Origin, "unexpected %s after the end of the document", p.cur().Type)
	}
	return root, nil
}

func (p *parser) parseObjectBody(o *token.Origin, braced bool) (*ir.Node, error) {
	var (
		keys []string
		vals []*ir.Node
	)
	idx := map[string]int{}
	for {
		comments := p.skipBlank()
		t := p.cur()
		switch t.Type {
		case token.TRCurl:
			if braced {
				p.advance()
				res := ir.Object(keys, vals)
				res.Origin = o
				return res, nil
			}
			return nil, p.errf(t.Origin, "unbalanced '}'")
		case token.TEOF:
			if braced {
				return nil, p.errf(t.Origin, "expecting '}' but got end of input")
			}
			res := ir.Object(keys, vals)
			res.Origin = o
			return res, nil
		case token.TBad:
			return nil, p.errf(t.Origin, "%s", t.Text())
		}
		path, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipInline()
		sep := p.cur()
		var val *ir.Node
		switch sep.Type {
		case token.TColon:
			p.advance()
			val, err = p.parseValue()
		case token.TLCurl, token.TLSquare:
			val, err = p.parseValue()
		default:
			return nil, p.errf(sep.Origin, "key %q must be followed by ':', '=', or an object or list literal, got %s", path, sep.Type)
		}
		if err != nil {
			return nil, err
		}
		if val.Origin == nil {
			val = val.WithOrigin(t.Origin)
		}
		if len(comments) > 0 {
			val = val.WithOrigin(val.Origin.WithComments(comments))
		}
		val = expandPath(path, val)
		key := path[0]
		if j, ok := idx[key]; ok {
			// same-document redeclaration is itself a merge, later wins
			vals[j] = merge.Merge(val, vals[j])
		} else {
			idx[key] = len(keys)
			keys = append(keys, key)
			vals = append(vals, val)
		}
		if err := p.entrySep(); err != nil {
			return nil, err
		}
	}
}

// expandPath turns the value for a dotted key a.b.c into the nested
// objects b { c = val }, returning the value to store under "a".
func expandPath(path ir.Path, val *ir.Node) *ir.Node {
	for i := len(path) - 1; i >= 1; i-- {
		wrapped := ir.Object([]string{path[i]}, []*ir.Node{val})
		wrapped.Origin = val.Origin
		val = wrapped
	}
	return val
}

// entrySep consumes the separator after an object entry or list
// element: a comma, a newline, or the closing bracket left for the
// caller.
func (p *parser) entrySep() error {
	for {
		t := p.cur()
		switch t.Type {
		case token.TWhitespace, token.TComment:
			p.advance()
		case token.TComma, token.TNewline:
			p.advance()
			return nil
		case token.TRCurl, token.TRSquare, token.TEOF:
			return nil
		default:
			return p.errf(t.Origin, "expecting a comma or newline between entries, got %s", t.Type)
		}
	}
}

// parseKey reads a key, which may be a dotted path expression mixing
// unquoted chunks (split on '.') and quoted strings (kept verbatim).
func (p *parser) parseKey() (ir.Path, error) {
	var parts []token.Token
	for {
		t := p.cur()
		switch t.Type {
		case token.TUnquoted, token.TString, token.TMString, token.TNumber,
			token.TTrue, token.TFalse, token.TNull, token.TWhitespace:
			parts = append(parts, *t)
			p.advance()
		case token.TBad:
			return nil, p.errf(t.Origin, "%s", t.Text())
		default:
			for len(parts) > 0 && parts[len(parts)-1].Type == token.TWhitespace {
				parts = parts[:len(parts)-1]
			}
			if len(parts) == 0 {
				return nil, p.errf(t.Origin, "expecting a key, got %s", t.Type)
			}
			return p.pathFromTokens(parts)
		}
	}
}

func (p *parser) pathFromTokens(parts []token.Token) (ir.Path, error) {
	var (
		res    ir.Path
		buf    strings.Builder
		quoted bool
	)
	o := parts[0].Origin
	flush := func() error {
		if buf.Len() == 0 && !quoted {
			return p.errf(o, "path expression has a leading, trailing, or two adjacent periods")
		}
		res = append(res, buf.String())
		buf.Reset()
		quoted = false
		return nil
	}
	for _, t := range parts {
		switch t.Type {
		case token.TString, token.TMString:
			buf.WriteString(t.Text())
			quoted = true
		default:
			text := t.Text()
			for k, piece := range strings.Split(text, ".") {
				if k > 0 {
					if err := flush(); err != nil {
						return nil, err
					}
				}
				buf.WriteString(piece)
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *parser) parseValue() (*ir.Node, error) {
	var (
		parts     []*ir.Node
		pendingWS string
	)
	p.skipInline()
	for {
		t := p.cur()
		var (
			part *ir.Node
			err  error
		)
		switch t.Type {
		case token.TWhitespace:
			pendingWS += t.Text()
			p.advance()
			continue
		case token.TNewline, token.TComma, token.TComment, token.TEOF,
			token.TRCurl, token.TRSquare:
			if len(parts) == 0 {
				return nil, p.errf(t.Origin, "expecting a value, got %s", t.Type)
			}
			return consolidate(parts), nil
		case token.TBad:
			return nil, p.errf(t.Origin, "%s", t.Text())
		case token.TString, token.TMString:
			part = ir.FromString(t.Text()).WithOrigin(t.Origin)
			p.advance()
		case token.TUnquoted:
			part = ir.FromString(t.Text()).WithOrigin(t.Origin)
			p.advance()
		case token.TNumber:
			part, err = ir.FromNumberLiteral(t.Text())
			if err != nil {
				return nil, p.errf(t.Origin, "invalid number literal %q", t.Text())
			}
			part = part.WithOrigin(t.Origin)
			p.advance()
		case token.TTrue:
			part = ir.FromBool(true).WithOrigin(t.Origin)
			p.advance()
		case token.TFalse:
			part = ir.FromBool(false).WithOrigin(t.Origin)
			p.advance()
		case token.TNull:
			part = ir.Null().WithOrigin(t.Origin)
			p.advance()
		case token.TSubstStart:
			part, err = p.parseSubstitution()
			if err != nil {
				return nil, err
			}
		case token.TLCurl:
			p.advance()
			part, err = p.parseObjectBody(t.Origin, true)
			if err != nil {
				return nil, err
			}
		case token.TLSquare:
			p.advance()
			part, err = p.parseListBody(t.Origin)
			if err != nil {
				return nil, err
			}
		default:
			return nil, p.errf(t.Origin, "unexpected %s in value", t.Type)
		}
		// whitespace joins only string-ish neighbors; it is dropped
		// around object and list literals
		if len(parts) > 0 && pendingWS != "" &&
			stringish(parts[len(parts)-1]) && stringish(part) {
			parts = append(parts, ir.FromString(pendingWS).WithOrigin(part.Origin))
		}
		pendingWS = ""
		parts = append(parts, part)
	}
}

func stringish(n *ir.Node) bool {
	return n.Type.IsScalar() || n.Type == ir.SubstitutionType
}

// consolidate joins adjacent chunks that can be combined immediately:
// scalar runs become a single string, adjacent objects merge (later
// wins), adjacent lists append. Anything involving a substitution is
// left for the resolver inside a concatenation node.
func consolidate(parts []*ir.Node) *ir.Node {
	out := parts[:1]
	for _, cur := range parts[1:] {
		prev := out[len(out)-1]
		if joined := join(prev, cur); joined != nil {
			out[len(out)-1] = joined
			continue
		}
		out = append(out, cur)
	}
	if len(out) == 1 {
		return out[0]
	}
	res := ir.Concat(out)
	res.Origin = out[0].Origin
	return res
}

func join(a, b *ir.Node) *ir.Node {
	switch {
	case a.Type.IsScalar() && b.Type.IsScalar():
		return ir.FromString(a.ScalarText() + b.ScalarText()).WithOrigin(a.Origin)
	case a.Type == ir.ObjectType && b.Type == ir.ObjectType:
		return merge.Merge(b, a)
	case a.Type == ir.ListType && b.Type == ir.ListType:
		vals := make([]*ir.Node, 0, len(a.Values)+len(b.Values))
		vals = append(vals, a.Values...)
		vals = append(vals, b.Values...)
		return ir.List(vals).WithOrigin(a.Origin)
	default:
		return nil
	}
}

func (p *parser) parseSubstitution() (*ir.Node, error) {
	start := p.cur()
	optional := start.Text() == "${?"
	p.advance()
	pathTok := p.cur()
	if pathTok.Type != token.TUnquoted {
		return nil, p.errf(pathTok.Origin, "expecting a path inside '${', got %s", pathTok.Type)
	}
	path, err := ir.ParsePath(pathTok.Text())
	if err != nil {
		return nil, p.errf(pathTok.Origin, "%s", err)
	}
	p.advance()
	if p.cur().Type != token.TSubstEnd {
		return nil, p.errf(p.cur().Origin, "expecting '}' to close a substitution, got %s", p.cur().Type)
	}
	p.advance()
	return ir.Substitution(path, optional).WithOrigin(start.Origin), nil
}

func (p *parser) parseListBody(o *token.Origin) (*ir.Node, error) {
	var vals []*ir.Node
	for {
		p.skipBlank()
		t := p.cur()
		switch t.Type {
		case token.TRSquare:
			p.advance()
			res := ir.List(vals)
			res.Origin = o
			return res, nil
		case token.TEOF:
			return nil, p.errf(t.Origin, "expecting ']' but got end of input")
		case token.TBad:
			return nil, p.errf(t.Origin, "%s", t.Text())
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		if err := p.entrySep(); err != nil {
			return nil, err
		}
	}
}
