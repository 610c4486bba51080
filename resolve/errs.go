package resolve

import (
	"fmt"
	"strings"

	"github.com/thiagogjt/confit/ir"
	"github.com/thiagogjt/confit/token"
)

// UnresolvedError reports a non-optional substitution whose path never
// resolves to a value.
type UnresolvedError struct {
	Path   ir.Path
	Origin *token.Origin
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: %s: ${%s}", e.Origin, ir.ErrUnresolved, e.Path)
}

func (e *UnresolvedError) Unwrap() error {
	return ir.ErrUnresolved
}

// CycleError reports a substitution chain that revisits a path already
// being expanded. Chain holds the full loop, ending with the repeated
// path.
type CycleError struct {
	Chain  []ir.Path
	Origin *token.Origin
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, p := range e.Chain {
		parts[i] = "${" + p.String() + "}"
	}
	return fmt.Sprintf("%s: %s: %s", e.Origin, ir.ErrCycle, strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ir.ErrCycle
}
