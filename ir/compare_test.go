package ir

import (
	"testing"

	"github.com/thiagogjt/confit/token"
)

func TestEqual(t *testing.T) {
	intOne, _ := FromNumberLiteral("1")
	intOneAgain, _ := FromNumberLiteral("01")
	floatOne, _ := FromNumberLiteral("1.0")
	floatOneExp, _ := FromNumberLiteral("1e0")

	tests := []struct {
		a, b *Node
		want bool
	}{
		{nil, nil, true},
		{Null(), nil, false},
		{Null(), Null(), true},
		{FromBool(true), FromBool(true), true},
		{FromBool(true), FromBool(false), false},
		{FromString("a"), FromString("a"), true},
		{FromString("a"), FromString("b"), false},
		{intOne, intOneAgain, true},
		{floatOne, floatOneExp, true},
		{intOne, floatOne, false},
		{FromString("1"), intOne, false},
		{
			Object([]string{"a"}, []*Node{FromInt(1)}),
			Object([]string{"a"}, []*Node{FromInt(1)}),
			true,
		},
		{
			Object([]string{"a", "b"}, []*Node{FromInt(1), FromInt(2)}),
			Object([]string{"b", "a"}, []*Node{FromInt(2), FromInt(1)}),
			false, // key order is significant
		},
		{
			List([]*Node{FromInt(1), FromInt(2)}),
			List([]*Node{FromInt(1), FromInt(2)}),
			true,
		},
		{
			List([]*Node{FromInt(1)}),
			List([]*Node{FromInt(1), FromInt(2)}),
			false,
		},
		{Substitution(Path{"a"}, false), Substitution(Path{"a"}, false), true},
		{Substitution(Path{"a"}, false), Substitution(Path{"a"}, true), false},
		{Substitution(Path{"a"}, false), Substitution(Path{"b"}, false), false},
	}
	for i, tc := range tests {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("case %d: Equal(%v, %v) = %v, want %v", i, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEqualIgnoresOrigin(t *testing.T) {
	a := FromString("x").WithOrigin(token.NewOrigin("a.conf", 1))
	b := FromString("x").WithOrigin(token.NewOrigin("b.conf", 99))
	if !Equal(a, b) {
		t.Error("origin leaked into equality")
	}
}
