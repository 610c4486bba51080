// Package merge combines value trees according to fallback precedence.
//
// Merging is left-biased and associative: WithFallback(a, b, c) gives a
// priority a > b > c, and folding pairwise in either grouping yields
// the same resolved winner at every path. Objects merge structurally
// key by key; every other type pairing means the higher-priority value
// replaces the lower one outright (lists are never merged element-wise).
// When either side still contains substitutions the outcome can depend
// on what they resolve to, so the pair is captured in a DelayedMerge
// node and decided lazily at resolution.
package merge

import (
	"github.com/thiagogjt/confit/debug"
	"github.com/thiagogjt/confit/ir"
)

// Merge combines a value with a lower-priority fallback. Neither input
// is modified.
func Merge(higher, lower *ir.Node) *ir.Node {
	if lower == nil {
		return higher
	}
	if higher == nil {
		return lower
	}
	if higher.Type == ir.ObjectType && lower.Type == ir.ObjectType {
		return mergeObjects(higher, lower)
	}
	if higher.Status == ir.Resolved && higher.Type != ir.ObjectType {
		// lower can never shine through a concrete non-object value,
		// so its substitutions need never be evaluated
		return higher
	}
	if higher.Status == ir.Resolved && lower.Status == ir.Resolved {
		// resolved object over a resolved non-object: the object wins
		return higher
	}
	return delayed(higher, lower)
}

// WithFallback folds a priority-ordered stack, highest first.
func WithFallback(stack ...*ir.Node) *ir.Node {
	if len(stack) == 0 {
		return nil
	}
	if debug.Merge() {
		debug.Logf("merge: folding %d layers\n", len(stack))
	}
	acc := stack[0]
	for _, lower := range stack[1:] {
		acc = Merge(acc, lower)
	}
	return acc
}

func mergeObjects(higher, lower *ir.Node) *ir.Node {
	keys := make([]string, 0, len(higher.Keys)+len(lower.Keys))
	values := make([]*ir.Node, 0, cap(keys))
	for i, k := range higher.Keys {
		hv := higher.Values[i]
		if lv := lower.Get(k); lv != nil {
			hv = Merge(hv, lv)
		}
		keys = append(keys, k)
		values = append(values, hv)
	}
	for i, k := range lower.Keys {
		if higher.Get(k) == nil {
			keys = append(keys, k)
			values = append(values, lower.Values[i])
		}
	}
	res := ir.Object(keys, values)
	res.Origin = higher.Origin
	return res
}

func delayed(higher, lower *ir.Node) *ir.Node {
	h, l := flatten(higher), flatten(lower)
	stack := make([]*ir.Node, 0, len(h)+len(l))
	stack = append(stack, h...)
	stack = append(stack, l...)
	res := ir.DelayedMerge(stack)
	res.Origin = higher.Origin
	return res
}

func flatten(n *ir.Node) []*ir.Node {
	if n.Type == ir.DelayedMergeType {
		return n.Values
	}
	return []*ir.Node{n}
}
