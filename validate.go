package confit

import (
	"fmt"
	"strings"

	"github.com/thiagogjt/confit/ir"
	"github.com/thiagogjt/confit/token"
)

type ProblemKind int

const (
	// Missing: the reference has a value at the path, the checked
	// config has none.
	Missing ProblemKind = iota
	// WrongType: both have a value, with incompatible types.
	WrongType
)

func (k ProblemKind) String() string {
	switch k {
	case Missing:
		return "missing"
	case WrongType:
		return "wrong type"
	default:
		return fmt.Sprintf("ProblemKind(%d)", int(k))
	}
}

// Problem is one validation finding. Origin points at the checked
// config's value when present, and at the reference value for missing
// paths.
type Problem struct {
	Path    ir.Path
	Kind    ProblemKind
	Origin  *token.Origin
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Origin, p.Path, p.Message)
}

// ValidationError aggregates every problem found in one pass, so a
// broken config reports all its faults at once.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("config validation failed: %s", strings.Join(msgs, "; "))
}

// CheckValid checks c against a reference config: every path the
// reference defines must exist in c with a compatible type. Extra
// paths in c are fine. With restrict paths given, only those subtrees
// are checked. Both configs must be resolved. On failure the error is
// a *ValidationError listing every problem.
func (c *Config) CheckValid(ref *Config, restrict ...string) error {
	if ref.root.Status != ir.Resolved {
		return fmt.Errorf("%w: reference config must be resolved before validating", ir.ErrNotResolved)
	}
	if c.root.Status != ir.Resolved {
		return fmt.Errorf("%w: resolve before validating", ir.ErrNotResolved)
	}
	var problems []Problem
	if len(restrict) == 0 {
		problems = checkObject(nil, ref.root, c.root, problems)
	} else {
		for _, r := range restrict {
			p, err := ir.ParsePath(r)
			if err != nil {
				return err
			}
			refVal, err := ref.find(r)
			if err != nil {
				return fmt.Errorf("reference config: %w", err)
			}
			val, err := c.find(r)
			if err != nil {
				problems = append(problems, Problem{
					Path:    p,
					Kind:    Missing,
					Origin:  refVal.Origin,
					Message: fmt.Sprintf("no value for required path (reference defines a %s)", refVal.Type),
				})
				continue
			}
			problems = checkValue(p, refVal, val, problems)
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkObject(at ir.Path, ref, val *ir.Node, problems []Problem) []Problem {
	for i, k := range ref.Keys {
		refChild := ref.Values[i]
		child := val.Get(k)
		childPath := at.Child(k)
		if child == nil {
			problems = append(problems, Problem{
				Path:    childPath,
				Kind:    Missing,
				Origin:  refChild.Origin,
				Message: fmt.Sprintf("no value for required path (reference defines a %s)", refChild.Type),
			})
			continue
		}
		problems = checkValue(childPath, refChild, child, problems)
	}
	return problems
}

func checkValue(at ir.Path, ref, val *ir.Node, problems []Problem) []Problem {
	if compatible(ref, val) {
		if ref.Type == ir.ObjectType && val.Type == ir.ObjectType {
			return checkObject(at, ref, val, problems)
		}
		return problems
	}
	return append(problems, Problem{
		Path:    at,
		Kind:    WrongType,
		Origin:  val.Origin,
		Message: fmt.Sprintf("have %s, reference defines a %s", val.Type, ref.Type),
	})
}

// compatible applies the same leniency as the typed getters: a string
// can stand in for any scalar and vice versa, since the getters coerce
// between them at read time. Containers only match their own kind.
func compatible(ref, val *ir.Node) bool {
	if ref.Type == val.Type {
		return true
	}
	if ref.Type == ir.NullType || val.Type == ir.NullType {
		// a null matches anything; the getters turn it into a
		// missing-value error regardless of the expected type
		return true
	}
	if ref.Type.IsScalar() && val.Type == ir.StringType {
		return true
	}
	if ref.Type == ir.StringType && val.Type.IsScalar() {
		return true
	}
	return false
}
