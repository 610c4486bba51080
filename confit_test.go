package confit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagogjt/confit/ir"
)

func resolveString(t *testing.T, src string) *Config {
	t.Helper()
	tree, err := ParseString(src, "test.conf")
	require.NoError(t, err)
	cfg, err := Resolve(tree)
	require.NoError(t, err)
	return cfg
}

func TestGetters(t *testing.T) {
	cfg := resolveString(t, `
name: demo
port: 8080
ratio: 0.75
debug: true
nothing: null
nested { deep { value: 42 } }
tags: [a, b, c]
ports: [1, 2, 3]
flags: [true, false]
ratios: [0.1, 0.2]
`)

	s, err := cfg.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "demo", s)

	i, err := cfg.GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, 8080, i)

	f, err := cfg.GetFloat64("ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.75, f)

	b, err := cfg.GetBool("debug")
	require.NoError(t, err)
	assert.True(t, b)

	v, err := cfg.GetInt64("nested.deep.value")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	tags, err := cfg.GetStringList("tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tags)

	ports, err := cfg.GetIntList("ports")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ports)

	flags, err := cfg.GetBoolList("flags")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, flags)

	ratios, err := cfg.GetDoubleList("ratios")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, ratios)
}

func TestGetterErrors(t *testing.T) {
	cfg := resolveString(t, `
port: 8080
name: demo
nothing: null
nested { x: 1 }
`)

	_, err := cfg.GetString("absent")
	assert.ErrorIs(t, err, ir.ErrMissing)

	_, err = cfg.GetString("nested.x.deeper")
	assert.ErrorIs(t, err, ir.ErrWrongType)

	_, err = cfg.GetString("nothing")
	assert.ErrorIs(t, err, ErrNull)
	assert.ErrorIs(t, err, ir.ErrMissing)
	assert.True(t, IsMissing(err))

	_, err = cfg.GetInt("name")
	assert.ErrorIs(t, err, ir.ErrBadValue)

	_, err = cfg.GetBool("port")
	assert.ErrorIs(t, err, ir.ErrWrongType)

	_, err = cfg.GetList("port")
	assert.ErrorIs(t, err, ir.ErrWrongType)

	_, err = cfg.GetObject("port")
	assert.ErrorIs(t, err, ir.ErrWrongType)

	_, err = cfg.GetString("..bad")
	assert.ErrorIs(t, err, ir.ErrBadPath)
}

func TestStringCoercion(t *testing.T) {
	cfg := resolveString(t, `
intish: "42"
floatish: "2.5"
yes: yes
off: "off"
num: 7
flag: true
`)

	i, err := cfg.GetInt64("intish")
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)

	f, err := cfg.GetFloat64("floatish")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	b, err := cfg.GetBool("yes")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = cfg.GetBool("off")
	require.NoError(t, err)
	assert.False(t, b)

	// scalars read back as their canonical text
	s, err := cfg.GetString("num")
	require.NoError(t, err)
	assert.Equal(t, "7", s)

	s, err = cfg.GetString("flag")
	require.NoError(t, err)
	assert.Equal(t, "true", s)
}

func TestHasPathAndGetIsNull(t *testing.T) {
	cfg := resolveString(t, "a: 1\nn: null\no { x: 2 }")

	assert.True(t, cfg.HasPath("a"))
	assert.True(t, cfg.HasPath("o.x"))
	assert.False(t, cfg.HasPath("n"))
	assert.False(t, cfg.HasPath("absent"))
	assert.False(t, cfg.HasPath("a.below-a-scalar"))

	isNull, err := cfg.GetIsNull("n")
	require.NoError(t, err)
	assert.True(t, isNull)

	isNull, err = cfg.GetIsNull("a")
	require.NoError(t, err)
	assert.False(t, isNull)

	_, err = cfg.GetIsNull("absent")
	assert.ErrorIs(t, err, ir.ErrMissing)
}

func TestGetConfig(t *testing.T) {
	cfg := resolveString(t, `db { host: localhost, port: 5432 }`)
	db, err := cfg.GetConfig("db")
	require.NoError(t, err)
	host, err := db.GetString("host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)
}

func TestGetBytes(t *testing.T) {
	cfg := resolveString(t, `
plain: 512
short: "10K"
iec: "2MiB"
frac: "2.5K"
words: "1 gigabyte"
`)

	for path, want := range map[string]int64{
		"plain": 512,
		"short": 10240,
		"iec":   2 << 20,
		"frac":  2560,
		"words": 1 << 30,
	} {
		got, err := cfg.GetBytes(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestGetDuration(t *testing.T) {
	cfg := resolveString(t, `
bare: 7000
short: "5s"
milli: "250ms"
spaced: "2 hours"
days: "1d"
frac: "1.5m"
`)

	for path, want := range map[string]time.Duration{
		"bare":   7 * time.Second,
		"short":  5 * time.Second,
		"milli":  250 * time.Millisecond,
		"spaced": 2 * time.Hour,
		"days":   24 * time.Hour,
		"frac":   90 * time.Second,
	} {
		got, err := cfg.GetDuration(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	durs, err := cfg.GetDurationList("list")
	assert.ErrorIs(t, err, ir.ErrMissing)
	assert.Nil(t, durs)
}

func TestMergeAndResolvePipeline(t *testing.T) {
	app, err := ParseString(`
db.host: prod.example
url: ${db.host}":"${db.port}
`, "app.conf")
	require.NoError(t, err)
	defaults, err := ParseString(`
db { host: localhost, port: 5432 }
timeout: "30s"
`, "defaults.conf")
	require.NoError(t, err)

	cfg, err := Resolve(Merge(app, defaults))
	require.NoError(t, err)

	url, err := cfg.GetString("url")
	require.NoError(t, err)
	assert.Equal(t, "prod.example:5432", url)

	timeout, err := cfg.GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestListsReplaceAcrossLayers(t *testing.T) {
	higher, err := ParseString(`tags: [a]`, "higher")
	require.NoError(t, err)
	lower, err := ParseString(`tags: [b, c]`, "lower")
	require.NoError(t, err)

	cfg, err := Resolve(Merge(higher, lower))
	require.NoError(t, err)

	tags, err := cfg.GetStringList("tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tags)
}

func TestParseYAMLIntoStack(t *testing.T) {
	yamlTree, err := ParseYAML([]byte("db:\n  host: yaml-host\n  pool: 10\n"), "base.yaml")
	require.NoError(t, err)
	assert.Equal(t, "base.yaml", yamlTree.Origin.Description)

	over, err := ParseString(`db.host: conf-host`, "app.conf")
	require.NoError(t, err)

	cfg, err := Resolve(Merge(over, yamlTree))
	require.NoError(t, err)

	host, err := cfg.GetString("db.host")
	require.NoError(t, err)
	assert.Equal(t, "conf-host", host)

	pool, err := cfg.GetInt("db.pool")
	require.NoError(t, err)
	assert.Equal(t, 10, pool)
}

func TestParseTOMLIntoStack(t *testing.T) {
	tomlTree, err := ParseTOML([]byte("[server]\nport = 9090\n"), "base.toml")
	require.NoError(t, err)

	cfg, err := Resolve(tomlTree)
	require.NoError(t, err)

	port, err := cfg.GetInt("server.port")
	require.NoError(t, err)
	assert.Equal(t, 9090, port)
}

func TestConfigUnmarshal(t *testing.T) {
	cfg := resolveString(t, `
server {
  host: localhost
  port: 8080
  timeout: "5s"
}
`)
	var s struct {
		Host    string
		Port    int
		Timeout time.Duration
	}
	require.NoError(t, cfg.Unmarshal("server", &s))
	assert.Equal(t, "localhost", s.Host)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, 5*time.Second, s.Timeout)
}

func TestRender(t *testing.T) {
	tree, err := ParseString(`a: 1, b: ${a}`, "test.conf")
	require.NoError(t, err)

	text, err := Render(tree)
	require.NoError(t, err)
	assert.Equal(t, "{a: 1, b: ${a}}", text)

	cfg, err := Resolve(tree)
	require.NoError(t, err)
	text, err = Render(cfg.Root())
	require.NoError(t, err)
	assert.Equal(t, "{a: 1, b: 1}", text)
}

func TestWrapRoot(t *testing.T) {
	_, err := WrapRoot(ir.FromInt(1))
	assert.ErrorIs(t, err, ir.ErrWrongType)

	unresolved := ir.Object([]string{"a"}, []*ir.Node{ir.Substitution(ir.Path{"x"}, false)})
	_, err = WrapRoot(unresolved)
	assert.ErrorIs(t, err, ir.ErrNotResolved)

	resolved := ir.Object([]string{"a"}, []*ir.Node{ir.FromInt(1)})
	cfg, err := WrapRoot(resolved)
	require.NoError(t, err)
	v, err := cfg.GetInt("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestDiff(t *testing.T) {
	a := resolveString(t, "x: 1\ny: 2").Root()
	b := resolveString(t, "x: 1\ny: 3").Root()

	same, err := Diff(a, a)
	require.NoError(t, err)
	assert.Empty(t, same)

	d, err := Diff(a, b)
	require.NoError(t, err)
	assert.Contains(t, d, "- ")
	assert.Contains(t, d, "+ ")
	assert.Contains(t, d, "y: 2")
	assert.Contains(t, d, "y: 3")

	assert.True(t, Equal(a, a))
	assert.False(t, Equal(a, b))
}
