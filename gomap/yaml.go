package gomap

import (
	"github.com/goccy/go-yaml"

	"github.com/thiagogjt/confit/ir"
)

// FromYAML parses a YAML document into a value tree so it can be
// merged with trees from other sources. YAML has no substitution
// syntax, so the result is always fully resolved.
func FromYAML(src []byte) (*ir.Node, error) {
	var v any
	if err := yaml.Unmarshal(src, &v); err != nil {
		return nil, err
	}
	return FromAny(v)
}
