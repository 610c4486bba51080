package confit

import (
	"github.com/thiagogjt/confit/encode"
	"github.com/thiagogjt/confit/gomap"
	"github.com/thiagogjt/confit/ir"
	"github.com/thiagogjt/confit/merge"
	"github.com/thiagogjt/confit/parse"
	"github.com/thiagogjt/confit/resolve"
	"github.com/thiagogjt/confit/token"
)

// Parse parses a configuration document. The origin string names the
// source in error messages and origin comments, e.g. a file name.
func Parse(src []byte, origin string) (*ir.Node, error) {
	return parse.Parse(src, origin)
}

// ParseString parses a configuration document held in a string.
func ParseString(src, origin string) (*ir.Node, error) {
	return parse.Parse([]byte(src), origin)
}

// ParseYAML ingests a YAML document as a tree so it can participate in
// fallback stacks alongside native configuration.
func ParseYAML(src []byte, origin string) (*ir.Node, error) {
	n, err := gomap.FromYAML(src)
	if err != nil {
		return nil, err
	}
	return n.WithOrigin(token.NewOrigin(origin, 0)), nil
}

// ParseTOML ingests a TOML document as a tree.
func ParseTOML(src []byte, origin string) (*ir.Node, error) {
	n, err := gomap.FromTOML(src)
	if err != nil {
		return nil, err
	}
	return n.WithOrigin(token.NewOrigin(origin, 0)), nil
}

// Merge layers trees into one, highest priority first. Merging never
// fails; conflicts that depend on unresolved values are deferred until
// Resolve.
func Merge(trees ...*ir.Node) *ir.Node {
	return merge.WithFallback(trees...)
}

// Resolve evaluates every substitution in tree against itself and
// wraps the result in a Config. The input tree is not modified.
func Resolve(tree *ir.Node, opts ...resolve.Option) (*Config, error) {
	root, err := resolve.Resolve(tree, opts...)
	if err != nil {
		return nil, err
	}
	return &Config{root: root}, nil
}

// Render serializes a tree back to configuration syntax. Unresolved
// substitutions render in their source form; a tree holding an
// unmerged fallback stack cannot be rendered.
func Render(tree *ir.Node, opts ...encode.EncodeOption) (string, error) {
	return encode.String(tree, opts...)
}
