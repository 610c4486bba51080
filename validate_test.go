package confit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagogjt/confit/ir"
)

const referenceConf = `
server {
  host: localhost
  port: 8080
  tls: false
}
timeout: "30s"
tags: []
`

func TestCheckValidOK(t *testing.T) {
	ref := resolveString(t, referenceConf)
	cfg := resolveString(t, `
server {
  host: prod.example
  port: 9090
  tls: true
  extra: "ignored by validation"
}
timeout: "1m"
tags: [a, b]
`)
	require.NoError(t, cfg.CheckValid(ref))
}

func TestCheckValidReportsAllProblems(t *testing.T) {
	ref := resolveString(t, referenceConf)
	cfg := resolveString(t, `
server {
  host: localhost
  port: [not, a, scalar]
}
timeout: "1m"
tags: {not: a-list}
`)
	err := cfg.CheckValid(ref)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 3)

	byPath := map[string]Problem{}
	for _, p := range verr.Problems {
		byPath[p.Path.String()] = p
	}
	assert.Equal(t, WrongType, byPath["server.port"].Kind)
	assert.Equal(t, Missing, byPath["server.tls"].Kind)
	assert.Equal(t, WrongType, byPath["tags"].Kind)

	// the wrong-type problem points at the offending source line
	assert.NotNil(t, byPath["server.port"].Origin)
	assert.Contains(t, err.Error(), "server.port")
}

func TestCheckValidLenientScalars(t *testing.T) {
	ref := resolveString(t, "port: 8080\nenabled: true\nname: x")
	cfg := resolveString(t, `
port: "9090"
enabled: "false"
name: 7
`)
	// strings stand in for scalars and scalars for strings, matching
	// what the typed getters accept
	require.NoError(t, cfg.CheckValid(ref))
}

func TestCheckValidMissingWithLenientString(t *testing.T) {
	ref := resolveString(t, "a: 1\nb: 2")
	cfg := resolveString(t, `a: "x"`)
	err := cfg.CheckValid(ref)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.Equal(t, Missing, verr.Problems[0].Kind)
	assert.Equal(t, "b", verr.Problems[0].Path.String())
}

func TestCheckValidNullMatchesAnything(t *testing.T) {
	ref := resolveString(t, "a: null\nb: 1")
	cfg := resolveString(t, "a: {x: 1}\nb: null")
	require.NoError(t, cfg.CheckValid(ref))
}

func TestCheckValidRestrict(t *testing.T) {
	ref := resolveString(t, referenceConf)
	cfg := resolveString(t, `server { host: h, port: 1, tls: true }`)

	// full check fails on the missing timeout and tags
	require.Error(t, cfg.CheckValid(ref))

	// restricted to the server subtree it passes
	require.NoError(t, cfg.CheckValid(ref, "server"))

	err := cfg.CheckValid(ref, "timeout")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.Equal(t, Missing, verr.Problems[0].Kind)
}

func TestCheckValidUnresolved(t *testing.T) {
	refTree, err := ParseString("a: 1", "ref")
	require.NoError(t, err)
	ref, err := Resolve(refTree)
	require.NoError(t, err)

	tree, err := ParseString("a: ${b}\nb: 2", "cfg")
	require.NoError(t, err)
	unresolved := &Config{root: tree}

	assert.ErrorIs(t, unresolved.CheckValid(ref), ir.ErrNotResolved)
}
