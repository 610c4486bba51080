package token

import "fmt"

// Origin records where a token or value came from. It is diagnostic
// metadata only: it never participates in equality or hashing of the
// values that carry it.
type Origin struct {
	Description string
	Line        int
	Comments    []string
}

func NewOrigin(description string, line int) *Origin {
	return &Origin{Description: description, Line: line}
}

func (o *Origin) String() string {
	if o == nil {
		return "<unknown origin>"
	}
	if o.Line <= 0 {
		return o.Description
	}
	return fmt.Sprintf("%s: %d", o.Description, o.Line)
}

// WithComments returns a copy of o carrying the given comment lines.
// The receiver is left untouched.
func (o *Origin) WithComments(lines []string) *Origin {
	res := &Origin{}
	if o != nil {
		*res = *o
	}
	res.Comments = lines
	return res
}
