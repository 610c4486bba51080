package encode

type EncodeOption func(*EncState)

// EncodeJSON restricts output to strict JSON: all strings quoted,
// commas everywhere, no comments, and unresolved nodes are an error.
func EncodeJSON(v bool) EncodeOption {
	return func(es *EncState) { es.json = v }
}

// EncodeFormatted pretty-prints with newlines and indentation; without
// it everything goes on one line.
func EncodeFormatted(v bool) EncodeOption {
	return func(es *EncState) { es.formatted = v }
}

// EncodeOriginComments emits each entry's origin as a '#' comment line
// before it (formatted, non-JSON output only).
func EncodeOriginComments(v bool) EncodeOption {
	return func(es *EncState) { es.originComments = v }
}

// EncodeComments emits the comment lines captured in each entry's
// origin (formatted, non-JSON output only).
func EncodeComments(v bool) EncodeOption {
	return func(es *EncState) { es.comments = v }
}

func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeDepth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c != nil {
			es.Color = c.Color
		}
	}
}
