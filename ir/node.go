package ir

import (
	"strconv"
	"strings"

	"github.com/thiagogjt/confit/token"
)

// Node is a single value in a configuration tree. See the package
// documentation for the payload fields each Type uses. Nodes are
// immutable once constructed; treat all fields as read-only.
type Node struct {
	Type   Type
	Origin *token.Origin

	Str     string
	Bool    bool
	Number  string // original literal text
	Int64   *int64
	Float64 *float64

	Keys   []string
	Values []*Node

	Path     Path
	Optional bool

	Status ResolveStatus
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, Str: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:   NumberType,
		Int64:  &v,
		Number: strconv.FormatInt(v, 10),
	}
}

func FromFloat(v float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &v,
		Number:  strconv.FormatFloat(v, 'g', -1, 64),
	}
}

// FromNumberLiteral builds a number node from its literal text,
// preserving the text for exact re-rendering.
func FromNumberLiteral(text string) (*Node, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &Node{Type: NumberType, Int64: &i, Number: text}, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	return &Node{Type: NumberType, Float64: &f, Number: text}, nil
}

// Object builds an object node from parallel key/value slices, taking
// ownership of both.
func Object(keys []string, values []*Node) *Node {
	return &Node{
		Type:   ObjectType,
		Keys:   keys,
		Values: values,
		Status: statusOf(values),
	}
}

// List builds a list node, taking ownership of values.
func List(values []*Node) *Node {
	return &Node{
		Type:   ListType,
		Values: values,
		Status: statusOf(values),
	}
}

// Substitution builds an unresolved ${path} reference; optional marks
// the ${?path} form that vanishes instead of failing.
func Substitution(path Path, optional bool) *Node {
	return &Node{
		Type:     SubstitutionType,
		Path:     path,
		Optional: optional,
		Status:   Unresolved,
	}
}

// Concat builds a concatenation of adjacent value chunks, joined once
// every chunk is resolved.
func Concat(values []*Node) *Node {
	return &Node{
		Type:   ConcatType,
		Values: values,
		Status: Unresolved,
	}
}

// DelayedMerge builds the lazy form of a fallback stack, highest
// priority first.
func DelayedMerge(values []*Node) *Node {
	return &Node{
		Type:   DelayedMergeType,
		Values: values,
		Status: Unresolved,
	}
}

func statusOf(values []*Node) ResolveStatus {
	for _, v := range values {
		if v.Status == Unresolved {
			return Unresolved
		}
	}
	return Resolved
}

// Get returns the value at key in an object node, or nil when the key
// is absent (a present null entry returns a NullType node, not nil).
func (n *Node) Get(key string) *Node {
	for i, k := range n.Keys {
		if k == key {
			return n.Values[i]
		}
	}
	return nil
}

// WithOrigin returns a shallow copy of n carrying the given origin.
func (n *Node) WithOrigin(o *token.Origin) *Node {
	res := *n
	res.Origin = o
	return &res
}

// ScalarText is the canonical text of a scalar node, used for string
// coercion and concatenation joining.
func (n *Node) ScalarText() string {
	switch n.Type {
	case NullType:
		return "null"
	case BoolType:
		if n.Bool {
			return "true"
		}
		return "false"
	case NumberType:
		return n.NumberText()
	case StringType:
		return n.Str
	default:
		panic("confit bug: ScalarText on " + n.Type.String() + " node")
	}
}

// NumberText is the literal text of a number node, reconstructed when
// the node was built programmatically.
func (n *Node) NumberText() string {
	if n.Number != "" {
		return n.Number
	}
	if n.Int64 != nil {
		return strconv.FormatInt(*n.Int64, 10)
	}
	if n.Float64 != nil {
		return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
	}
	panic("confit bug: number node with no value")
}

func (n *Node) String() string {
	switch n.Type {
	case ObjectType:
		return "Object(" + strconv.Itoa(len(n.Keys)) + " keys)"
	case ListType:
		return "List(" + strconv.Itoa(len(n.Values)) + " elements)"
	case SubstitutionType:
		if n.Optional {
			return "${?" + n.Path.String() + "}"
		}
		return "${" + n.Path.String() + "}"
	case ConcatType:
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = v.String()
		}
		return "Concat(" + strings.Join(parts, " + ") + ")"
	case DelayedMergeType:
		return "DelayedMerge(" + strconv.Itoa(len(n.Values)) + " layers)"
	default:
		return n.ScalarText()
	}
}
