package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ObjectType
	ListType
	SubstitutionType
	ConcatType
	DelayedMergeType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:         "Null",
		BoolType:         "Bool",
		NumberType:       "Number",
		StringType:       "String",
		ObjectType:       "Object",
		ListType:         "List",
		SubstitutionType: "Substitution",
		ConcatType:       "Concatenation",
		DelayedMergeType: "DelayedMerge",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		ObjectType,
		ListType,
		SubstitutionType,
		ConcatType,
		DelayedMergeType,
	}
}

// IsScalar reports whether t is a leaf value type.
func (t Type) IsScalar() bool {
	switch t {
	case NullType, BoolType, NumberType, StringType:
		return true
	default:
		return false
	}
}

// ResolveStatus says whether a subtree still contains substitution,
// concatenation, or delayed-merge nodes.
type ResolveStatus int

const (
	Resolved ResolveStatus = iota
	Unresolved
)

func (s ResolveStatus) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	default:
		return fmt.Sprintf("ResolveStatus(%d)", int(s))
	}
}
