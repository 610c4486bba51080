package confit

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/thiagogjt/confit/gomap"
	"github.com/thiagogjt/confit/ir"
	"github.com/thiagogjt/confit/token"
)

// ErrNull reports a path whose value is an explicit null. It is a kind
// of ErrMissing: callers that only care whether a usable value exists
// can match either with a single errors.Is.
var ErrNull = fmt.Errorf("%w: value is null", ir.ErrMissing)

// Config is a read-only view over a fully resolved object tree. The
// typed getters coerce leniently between strings and scalars but never
// coerce containers.
type Config struct {
	root *ir.Node
}

// WrapRoot makes a Config from an already-resolved object tree.
func WrapRoot(root *ir.Node) (*Config, error) {
	if root == nil || root.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: config root must be an object", ir.ErrWrongType)
	}
	if root.Status != ir.Resolved {
		return nil, fmt.Errorf("%w: wrap after resolving", ir.ErrNotResolved)
	}
	return &Config{root: root}, nil
}

// Root exposes the underlying tree, for callers that want to render or
// re-merge it.
func (c *Config) Root() *ir.Node {
	return c.root
}

// Origin reports where the root value came from.
func (c *Config) Origin() *token.Origin {
	return c.root.Origin
}

// find walks the dotted path down the tree. A non-object in the middle
// of the path is a type error, not an absence.
func (c *Config) find(path string) (*ir.Node, error) {
	p, err := ir.ParsePath(path)
	if err != nil {
		return nil, err
	}
	cur := c.root
	for i, key := range p {
		if cur.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: %q is a %s, not an object (looking up %q)",
				ir.ErrWrongType, ir.Path(p[:i]).String(), cur.Type, path)
		}
		next := cur.Get(key)
		if next == nil {
			return nil, fmt.Errorf("%w: %q", ir.ErrMissing, path)
		}
		cur = next
	}
	return cur, nil
}

// HasPath reports whether a non-null value exists at path. Type errors
// along the way read as absence.
func (c *Config) HasPath(path string) bool {
	n, err := c.find(path)
	return err == nil && n.Type != ir.NullType
}

// GetIsNull reports whether the value at path is an explicit null, as
// opposed to the path being absent entirely.
func (c *Config) GetIsNull(path string) (bool, error) {
	n, err := c.find(path)
	if err != nil {
		return false, err
	}
	return n.Type == ir.NullType, nil
}

// GetValue returns the raw tree node at path, null included.
func (c *Config) GetValue(path string) (*ir.Node, error) {
	return c.find(path)
}

// findValue is find plus the null check shared by every typed getter.
func (c *Config) findValue(path string) (*ir.Node, error) {
	n, err := c.find(path)
	if err != nil {
		return nil, err
	}
	if n.Type == ir.NullType {
		return nil, fmt.Errorf("%w at %q (%s)", ErrNull, path, n.Origin)
	}
	return n, nil
}

func (c *Config) GetString(path string) (string, error) {
	n, err := c.findValue(path)
	if err != nil {
		return "", err
	}
	return asString(n, path)
}

func (c *Config) GetInt(path string) (int, error) {
	v, err := c.GetInt64(path)
	if err != nil {
		return 0, err
	}
	if int64(int(v)) != v {
		return 0, fmt.Errorf("%w: %d at %q overflows int", ir.ErrBadValue, v, path)
	}
	return int(v), nil
}

func (c *Config) GetInt64(path string) (int64, error) {
	n, err := c.findValue(path)
	if err != nil {
		return 0, err
	}
	return asInt64(n, path)
}

func (c *Config) GetFloat64(path string) (float64, error) {
	n, err := c.findValue(path)
	if err != nil {
		return 0, err
	}
	return asFloat64(n, path)
}

func (c *Config) GetBool(path string) (bool, error) {
	n, err := c.findValue(path)
	if err != nil {
		return false, err
	}
	return asBool(n, path)
}

// GetBytes reads a memory size: either a plain number of bytes or a
// string with a size suffix such as "10K" or "2.5GiB".
func (c *Config) GetBytes(path string) (int64, error) {
	n, err := c.findValue(path)
	if err != nil {
		return 0, err
	}
	return asBytes(n, path)
}

// GetDuration reads a duration: either a string with a unit suffix
// such as "250ms" or "2 hours", or a bare number of milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	n, err := c.findValue(path)
	if err != nil {
		return 0, err
	}
	return asDuration(n, path)
}

// GetObject returns the object node at path. Objects are never coerced
// from anything else.
func (c *Config) GetObject(path string) (*ir.Node, error) {
	n, err := c.findValue(path)
	if err != nil {
		return nil, err
	}
	if n.Type != ir.ObjectType {
		return nil, wrongType(n, path, ir.ObjectType)
	}
	return n, nil
}

// GetConfig returns the subtree at path as its own Config, with paths
// relative to it.
func (c *Config) GetConfig(path string) (*Config, error) {
	n, err := c.GetObject(path)
	if err != nil {
		return nil, err
	}
	return &Config{root: n}, nil
}

// GetList returns the elements of the list at path. Lists are never
// coerced from anything else.
func (c *Config) GetList(path string) ([]*ir.Node, error) {
	n, err := c.findValue(path)
	if err != nil {
		return nil, err
	}
	if n.Type != ir.ListType {
		return nil, wrongType(n, path, ir.ListType)
	}
	return n.Values, nil
}

func (c *Config) GetStringList(path string) ([]string, error) {
	return getTypedList(c, path, asString)
}

func (c *Config) GetIntList(path string) ([]int64, error) {
	return getTypedList(c, path, asInt64)
}

func (c *Config) GetDoubleList(path string) ([]float64, error) {
	return getTypedList(c, path, asFloat64)
}

func (c *Config) GetBoolList(path string) ([]bool, error) {
	return getTypedList(c, path, asBool)
}

func (c *Config) GetDurationList(path string) ([]time.Duration, error) {
	return getTypedList(c, path, asDuration)
}

// Unmarshal decodes the subtree at path into target; pass "" to decode
// the whole config.
func (c *Config) Unmarshal(path string, target any) error {
	n := c.root
	if path != "" {
		var err error
		n, err = c.findValue(path)
		if err != nil {
			return err
		}
	}
	return gomap.Unmarshal(n, target)
}

func getTypedList[T any](c *Config, path string, conv func(*ir.Node, string) (T, error)) ([]T, error) {
	elems, err := c.GetList(path)
	if err != nil {
		return nil, err
	}
	res := make([]T, len(elems))
	for i, e := range elems {
		v, err := conv(e, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

// Coercion: scalars convert to and from strings leniently, containers
// never convert, and string-to-scalar failures surface the origin so
// the offending source line is easy to find.

func asString(n *ir.Node, path string) (string, error) {
	switch n.Type {
	case ir.StringType, ir.NumberType, ir.BoolType:
		return n.ScalarText(), nil
	default:
		return "", wrongType(n, path, ir.StringType)
	}
}

func asInt64(n *ir.Node, path string) (int64, error) {
	switch n.Type {
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64, nil
		}
		f := *n.Float64
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("%w: %s at %q has a fractional part", ir.ErrBadValue, n.NumberText(), path)
		}
		return int64(f), nil
	case ir.StringType:
		v, err := strconv.ParseInt(n.Str, 10, 64)
		if err != nil {
			return 0, coerceErr(n, path, "an integer")
		}
		return v, nil
	default:
		return 0, wrongType(n, path, ir.NumberType)
	}
}

func asFloat64(n *ir.Node, path string) (float64, error) {
	switch n.Type {
	case ir.NumberType:
		if n.Float64 != nil {
			return *n.Float64, nil
		}
		return float64(*n.Int64), nil
	case ir.StringType:
		v, err := strconv.ParseFloat(n.Str, 64)
		if err != nil {
			return 0, coerceErr(n, path, "a number")
		}
		return v, nil
	default:
		return 0, wrongType(n, path, ir.NumberType)
	}
}

func asBool(n *ir.Node, path string) (bool, error) {
	switch n.Type {
	case ir.BoolType:
		return n.Bool, nil
	case ir.StringType:
		switch n.Str {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
		return false, coerceErr(n, path, "a boolean")
	default:
		return false, wrongType(n, path, ir.BoolType)
	}
}

func asBytes(n *ir.Node, path string) (int64, error) {
	switch n.Type {
	case ir.NumberType:
		return asInt64(n, path)
	case ir.StringType:
		v, err := ParseBytes(n.Str)
		if err != nil {
			return 0, fmt.Errorf("%w at %q (%s)", err, path, n.Origin)
		}
		return v, nil
	default:
		return 0, wrongType(n, path, ir.StringType)
	}
}

func asDuration(n *ir.Node, path string) (time.Duration, error) {
	switch n.Type {
	case ir.NumberType:
		// a bare number is a count of milliseconds
		if n.Int64 != nil {
			return time.Duration(*n.Int64) * time.Millisecond, nil
		}
		return time.Duration(*n.Float64 * float64(time.Millisecond)), nil
	case ir.StringType:
		v, err := ParseDuration(n.Str)
		if err != nil {
			return 0, fmt.Errorf("%w at %q (%s)", err, path, n.Origin)
		}
		return v, nil
	default:
		return 0, wrongType(n, path, ir.StringType)
	}
}

func wrongType(n *ir.Node, path string, want ir.Type) error {
	return fmt.Errorf("%w at %q: have %s, want %s (%s)",
		ir.ErrWrongType, path, n.Type, want, n.Origin)
}

func coerceErr(n *ir.Node, path string, want string) error {
	return fmt.Errorf("%w at %q: %q is not %s (%s)",
		ir.ErrBadValue, path, n.Str, want, n.Origin)
}

// IsMissing reports whether err means the path had no usable value,
// null included.
func IsMissing(err error) bool {
	return errors.Is(err, ir.ErrMissing)
}
