package gomap

import (
	"github.com/BurntSushi/toml"

	"github.com/thiagogjt/confit/ir"
)

// FromTOML parses a TOML document into a value tree.
func FromTOML(src []byte) (*ir.Node, error) {
	var m map[string]any
	if err := toml.Unmarshal(src, &m); err != nil {
		return nil, err
	}
	return FromAny(m)
}
