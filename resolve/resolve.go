// Package resolve evaluates every substitution, concatenation, and
// delayed-merge node in a tree against its root, producing a tree with
// no unresolved nodes left.
//
// Substitution lookups are always relative to the original root, never
// to a resolved subtree; resolving a subtree in isolation fails any
// substitution reaching outside it. A path stack detects reference
// cycles, which also guarantees termination. Resolution is pure and
// idempotent: it either returns a fully resolved tree or fails
// atomically without partial mutation.
package resolve

import (
	"fmt"

	"github.com/thiagogjt/confit/debug"
	"github.com/thiagogjt/confit/ir"
	"github.com/thiagogjt/confit/merge"
)

// context is the state threaded through one resolution: the root every
// lookup is relative to, and the stack of substitution paths currently
// being expanded.
type context struct {
	root     *ir.Node
	stack    []ir.Path
	restrict ir.Path
}

type Option func(*context)

// RestrictTo limits resolution to the subtree under path. Values
// outside it are carried over untouched, which can leave the result
// partially unresolved; useful when only one subtree will be read.
func RestrictTo(path ir.Path) Option {
	return func(c *context) { c.restrict = path }
}

// Resolve evaluates root against itself. The input must be an object
// node; it is not modified.
func Resolve(root *ir.Node, opts ...Option) (*ir.Node, error) {
	if root == nil || root.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: can only resolve an object root", ir.ErrWrongType)
	}
	ctx := &context{root: root}
	for _, o := range opts {
		o(ctx)
	}
	res, err := resolveNode(root, ctx, ctx.restrict)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = ir.Object(nil, nil)
		res.Origin = root.Origin
	}
	return res, nil
}

// resolveNode returns the resolved form of n, or nil when the value
// vanishes (an optional substitution with nothing behind it).
func resolveNode(n *ir.Node, ctx *context, restrict ir.Path) (*ir.Node, error) {
	if n.Status == ir.Resolved {
		return n, nil
	}
	switch n.Type {
	case ir.ObjectType:
		return resolveObject(n, ctx, restrict)
	case ir.ListType:
		return resolveList(n, ctx)
	case ir.SubstitutionType:
		return resolveSubstitution(n, ctx)
	case ir.ConcatType:
		return resolveConcat(n, ctx)
	case ir.DelayedMergeType:
		return resolveDelayedMerge(n, ctx)
	default:
		panic(fmt.Sprintf("confit bug: %s node marked unresolved", n.Type))
	}
}

func resolveObject(n *ir.Node, ctx *context, restrict ir.Path) (*ir.Node, error) {
	keys := make([]string, 0, len(n.Keys))
	vals := make([]*ir.Node, 0, len(n.Values))
	changed := false
	for i, k := range n.Keys {
		child := n.Values[i]
		if restrict != nil && k != restrict[0] {
			keys = append(keys, k)
			vals = append(vals, child)
			continue
		}
		var sub ir.Path
		if restrict != nil && len(restrict) > 1 {
			sub = restrict[1:]
		}
		r, err := resolveNode(child, ctx, sub)
		if err != nil {
			return nil, err
		}
		if r == nil {
			changed = true
			continue
		}
		if r != child {
			changed = true
		}
		keys = append(keys, k)
		vals = append(vals, r)
	}
	if !changed {
		return n, nil
	}
	res := ir.Object(keys, vals)
	res.Origin = n.Origin
	return res, nil
}

func resolveList(n *ir.Node, ctx *context) (*ir.Node, error) {
	vals := make([]*ir.Node, 0, len(n.Values))
	for _, child := range n.Values {
		r, err := resolveNode(child, ctx, nil)
		if err != nil {
			return nil, err
		}
		if r == nil {
			continue
		}
		vals = append(vals, r)
	}
	res := ir.List(vals)
	res.Origin = n.Origin
	return res, nil
}

func resolveSubstitution(n *ir.Node, ctx *context) (*ir.Node, error) {
	for _, q := range ctx.stack {
		if q.Equal(n.Path) {
			chain := make([]ir.Path, 0, len(ctx.stack)+1)
			chain = append(chain, ctx.stack...)
			chain = append(chain, n.Path)
			return nil, &CycleError{Chain: chain, Origin: n.Origin}
		}
	}
	if debug.Resolve() {
		debug.Logf("resolve: expanding ${%s} at %s\n", n.Path, n.Origin)
	}
	ctx.stack = append(ctx.stack, n.Path)
	defer func() { ctx.stack = ctx.stack[:len(ctx.stack)-1] }()
	target, err := lookup(ctx.root, n.Path, ctx)
	if err != nil {
		return nil, err
	}
	if target == nil || target.Type == ir.NullType {
		if n.Optional {
			return nil, nil
		}
		return nil, &UnresolvedError{Path: n.Path, Origin: n.Origin}
	}
	return resolveNode(target, ctx, nil)
}

// lookup descends root along path, resolving unresolved intermediate
// values as needed. A missing key, a scalar in the middle of the path,
// or an intermediate that vanishes all yield nil (path absent).
func lookup(root *ir.Node, path ir.Path, ctx *context) (*ir.Node, error) {
	cur := root
	for len(path) > 0 {
		if cur.Type != ir.ObjectType {
			switch cur.Type {
			case ir.SubstitutionType, ir.ConcatType, ir.DelayedMergeType:
				r, err := resolveNode(cur, ctx, nil)
				if err != nil {
					return nil, err
				}
				if r == nil {
					return nil, nil
				}
				cur = r
				continue
			default:
				return nil, nil
			}
		}
		next := cur.Get(path[0])
		if next == nil {
			return nil, nil
		}
		cur = next
		path = path[1:]
	}
	return cur, nil
}

func resolveConcat(n *ir.Node, ctx *context) (*ir.Node, error) {
	resolved := make([]*ir.Node, 0, len(n.Values))
	for _, child := range n.Values {
		r, err := resolveNode(child, ctx, nil)
		if err != nil {
			return nil, err
		}
		if r == nil {
			// an optional substitution contributes nothing
			continue
		}
		resolved = append(resolved, r)
	}
	if len(resolved) == 0 {
		return nil, nil
	}
	if len(resolved) == 1 {
		return resolved[0], nil
	}
	hasList, hasObject := false, false
	for _, r := range resolved {
		switch r.Type {
		case ir.ListType:
			hasList = true
		case ir.ObjectType:
			hasObject = true
		}
	}
	switch {
	case hasList && hasObject:
		return nil, concatErr(n, "a list", "an object")
	case hasList:
		return concatLists(n, resolved)
	case hasObject:
		return concatObjects(n, resolved)
	default:
		return joinScalars(n, resolved), nil
	}
}

func concatLists(n *ir.Node, resolved []*ir.Node) (*ir.Node, error) {
	var vals []*ir.Node
	for _, r := range resolved {
		if r.Type != ir.ListType {
			if whitespaceOnly(r) {
				continue
			}
			return nil, concatErr(n, "a list", r.Type.String())
		}
		vals = append(vals, r.Values...)
	}
	res := ir.List(vals)
	res.Origin = n.Origin
	return res, nil
}

func concatObjects(n *ir.Node, resolved []*ir.Node) (*ir.Node, error) {
	var acc *ir.Node
	for _, r := range resolved {
		if r.Type != ir.ObjectType {
			if whitespaceOnly(r) {
				continue
			}
			return nil, concatErr(n, "an object", r.Type.String())
		}
		// later chunks win over earlier ones
		acc = merge.Merge(r, acc)
	}
	return acc.WithOrigin(n.Origin), nil
}

func joinScalars(n *ir.Node, resolved []*ir.Node) *ir.Node {
	text := ""
	for _, r := range resolved {
		text += r.ScalarText()
	}
	return ir.FromString(text).WithOrigin(n.Origin)
}

// whitespaceOnly spots the string chunks the parser keeps between
// value tokens; they are dropped when the concatenation turns out to
// join lists or objects.
func whitespaceOnly(n *ir.Node) bool {
	if n.Type != ir.StringType {
		return false
	}
	for _, c := range n.Str {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

func concatErr(n *ir.Node, want, got string) error {
	return fmt.Errorf("%w: %s: cannot concatenate %s with %s", ir.ErrWrongType, n.Origin, want, got)
}

func resolveDelayedMerge(n *ir.Node, ctx *context) (*ir.Node, error) {
	var acc *ir.Node
	for _, layer := range n.Values {
		r, err := resolveNode(layer, ctx, nil)
		if err != nil {
			return nil, err
		}
		if r == nil {
			// vanished layer, fall through to the next
			continue
		}
		if acc == nil {
			if r.Type != ir.ObjectType {
				// a concrete non-object wins outright; lower layers
				// are never evaluated
				return r, nil
			}
			acc = r
			continue
		}
		if r.Type != ir.ObjectType {
			// the object stack shadows everything below a non-object
			break
		}
		acc = merge.Merge(acc, r)
	}
	if acc == nil {
		return nil, nil
	}
	return acc, nil
}
