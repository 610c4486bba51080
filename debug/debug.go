// Package debug holds env-gated tracing for the engine. Set
// CONFIT_DEBUG_PARSE, CONFIT_DEBUG_MERGE, or CONFIT_DEBUG_RESOLVE to a
// truthy value to trace the corresponding stage on stderr.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Merge   bool
	Resolve bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("CONFIT_DEBUG_PARSE")
	d.Merge = boolEnv("CONFIT_DEBUG_MERGE")
	d.Resolve = boolEnv("CONFIT_DEBUG_RESOLVE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Merge() bool {
	return d.Merge
}
func Resolve() bool {
	return d.Resolve
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
