// Package confit is a configuration language engine: it parses a
// JSON-superset syntax with substitutions into immutable value trees,
// layers trees into fallback stacks, resolves every substitution
// against the merged result, and exposes the outcome through a typed
// accessor API.
//
// The usual pipeline is Parse one or more sources, Merge them highest
// priority first, Resolve the merged tree, then read values through the
// returned Config:
//
//	tree, err := confit.ParseString(`port = 8080, url = "http://host:${port}"`, "app.conf")
//	...
//	cfg, err := confit.Resolve(tree)
//	...
//	url, err := cfg.GetString("url")
//
// The subpackages hold the engine stages (token, parse, ir, merge,
// resolve, encode, gomap); this package ties them together and adds
// the coercion, unit-parsing, and validation layers most callers want.
package confit
