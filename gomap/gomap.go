// Package gomap converts between value trees and plain Go values, and
// ingests foreign formats (YAML, TOML) into trees so they can
// participate in fallback stacks.
package gomap

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/thiagogjt/confit/ir"
)

var ErrMapping = errors.New("cannot map value")

// FromAny builds a tree from plain Go values: nil, bool, string,
// integers, floats, map[string]any, and []any. Map keys are emitted in
// sorted order since Go maps carry none.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int8:
		return ir.FromInt(int64(x)), nil
	case int16:
		return ir.FromInt(int64(x)), nil
	case int32:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint:
		return ir.FromInt(int64(x)), nil
	case uint8:
		return ir.FromInt(int64(x)), nil
	case uint16:
		return ir.FromInt(int64(x)), nil
	case uint32:
		return ir.FromInt(int64(x)), nil
	case uint64:
		if x > uint64(1)<<63-1 {
			return nil, fmt.Errorf("%w: uint64 %d overflows int64", ErrMapping, x)
		}
		return ir.FromInt(int64(x)), nil
	case float32:
		return ir.FromFloat(float64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		vals := make([]*ir.Node, len(keys))
		for i, k := range keys {
			node, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			vals[i] = node
		}
		return ir.Object(keys, vals), nil
	case map[any]any:
		strKeyed := make(map[string]any, len(x))
		for k, kv := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string map key %v (%T)", ErrMapping, k, k)
			}
			strKeyed[ks] = kv
		}
		return FromAny(strKeyed)
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			node, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vals[i] = node
		}
		return ir.List(vals), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrMapping, v)
	}
}

// ToAny unwraps a resolved tree into plain Go values: nil, bool,
// string, int64, float64, map[string]any, []any. Key order is lost.
func ToAny(n *ir.Node) (any, error) {
	if n.Status != ir.Resolved {
		return nil, fmt.Errorf("%w: cannot unwrap %s", ir.ErrNotResolved, n)
	}
	switch n.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.StringType:
		return n.Str, nil
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64, nil
		}
		if n.Float64 != nil {
			return *n.Float64, nil
		}
		return strconv.ParseFloat(n.NumberText(), 64)
	case ir.ObjectType:
		res := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			v, err := ToAny(n.Values[i])
			if err != nil {
				return nil, err
			}
			res[k] = v
		}
		return res, nil
	case ir.ListType:
		res := make([]any, len(n.Values))
		for i, e := range n.Values {
			v, err := ToAny(e)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: cannot unwrap %s", ir.ErrNotResolved, n.Type)
	}
}
