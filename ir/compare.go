package ir

// Equal reports structural equality of two trees, ignoring Origin and
// the exact number literal text (1.0 and 1e0 compare equal; 1 and 1.0
// do not, since one is integral and the other floating).
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return numbersEqual(a, b)
	case StringType:
		return a.Str == b.Str
	case ObjectType:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i, k := range a.Keys {
			if k != b.Keys[i] || !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ListType, ConcatType, DelayedMergeType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case SubstitutionType:
		return a.Optional == b.Optional && a.Path.Equal(b.Path)
	}
	return false
}

func numbersEqual(a, b *Node) bool {
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	if a.Float64 != nil && b.Float64 != nil {
		return *a.Float64 == *b.Float64
	}
	return false
}
