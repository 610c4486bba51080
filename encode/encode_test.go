package encode

import (
	"errors"
	"testing"

	"github.com/thiagogjt/confit/ir"
	"github.com/thiagogjt/confit/parse"
	"github.com/thiagogjt/confit/resolve"
)

func mustResolve(t *testing.T, in string) *ir.Node {
	t.Helper()
	root, err := parse.Parse([]byte(in), "test")
	if err != nil {
		t.Fatalf("Parse(%q): %v", in, err)
	}
	res, err := resolve.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", in, err)
	}
	return res
}

func TestEncodeCompact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a: 1`, `{a: 1}`},
		{`a: -2.5e3`, `{a: -2.5e3}`},
		{`a: hello`, `{a: hello}`},
		{`a: "needs quotes"`, `{a: "needs quotes"}`},
		{`a: "true"`, `{a: "true"}`},
		{`a: null`, `{a: null}`},
		{`a: [1, two, false]`, `{a: [1, two, false]}`},
		{`a { b: 1, c: {} }`, `{a: {b: 1, c: {}}}`},
		{`"dotted.key": 1`, `{"dotted.key": 1}`},
		{``, `{}`},
	}
	for _, tc := range tests {
		got, err := String(mustResolve(t, tc.in))
		if err != nil {
			t.Errorf("String(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("String(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	got, err := String(mustResolve(t, `a: hi
b: [1, true]
c { d: null }`), EncodeJSON(true))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a": "hi", "b": [1, true], "c": {"d": null}}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeFormatted(t *testing.T) {
	got, err := String(mustResolve(t, `a { b: 1, c: 2 }`), EncodeFormatted(true))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  a: {
    b: 1
    c: 2
  }
}`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	docs := []string{
		`a: 1`,
		`a: "with spaces"`,
		`a: [1, [2, [3]], {x: y}]`,
		`servers { alpha { port: 1 }, beta { port: 2 } }`,
		`mixed: [null, true, -7, 0.5, str]`,
		`"quoted key" { "another.one": 1 }`,
	}
	for _, doc := range docs {
		orig := mustResolve(t, doc)
		for _, opts := range [][]EncodeOption{
			nil,
			{EncodeJSON(true)},
			{EncodeFormatted(true)},
			{EncodeFormatted(true), EncodeJSON(true), EncodeIndent(4)},
		} {
			text, err := String(orig, opts...)
			if err != nil {
				t.Fatalf("String(%q): %v", doc, err)
			}
			back, err := parse.Parse([]byte(text), "reparse")
			if err != nil {
				t.Fatalf("re-parse of %q: %v", text, err)
			}
			if !ir.Equal(orig, back) {
				t.Errorf("round trip changed the tree:\n%s\n->\n%s", doc, text)
			}
		}
	}
}

func TestEncodeSubstitutionSourceForm(t *testing.T) {
	root, err := parse.Parse([]byte("a: ${x.y}\nb: ${?z}"), "test")
	if err != nil {
		t.Fatal(err)
	}
	got, err := String(root)
	if err != nil {
		t.Fatal(err)
	}
	want := "{a: ${x.y}, b: ${?z}}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := String(root, EncodeJSON(true)); !errors.Is(err, ErrEncoding) {
		t.Errorf("substitutions must not render as JSON: %v", err)
	}
}

func TestEncodeDelayedMergeFails(t *testing.T) {
	dm := ir.DelayedMerge([]*ir.Node{
		ir.Substitution(ir.Path{"x"}, false),
		ir.FromInt(1),
	})
	if _, err := String(dm); !errors.Is(err, ErrEncoding) {
		t.Errorf("want ErrEncoding, got %v", err)
	}
}

func TestEncodeOriginComments(t *testing.T) {
	root := mustResolve(t, "a: 1\nb: 2")
	got, err := String(root, EncodeFormatted(true), EncodeOriginComments(true))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  # test: 1
  a: 1
  # test: 2
  b: 2
}`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeComments(t *testing.T) {
	root := mustResolve(t, "a: 1\n# about b\nb: 2")
	got, err := String(root, EncodeFormatted(true), EncodeComments(true))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  a: 1
  # about b
  b: 2
}`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMustStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustString on an unrenderable node did not panic")
		}
	}()
	MustString(ir.DelayedMerge([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}))
}
