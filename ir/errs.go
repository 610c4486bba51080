package ir

import "errors"

// Shared error kinds for the engine. Callers classify failures with
// errors.Is against these; the wrapping error carries path and origin
// detail.
var (
	ErrMissing     = errors.New("no value at path")
	ErrWrongType   = errors.New("wrong value type")
	ErrBadValue    = errors.New("bad value")
	ErrBadPath     = errors.New("invalid path expression")
	ErrNotResolved = errors.New("tree is not resolved")
	ErrUnresolved  = errors.New("could not resolve substitution")
	ErrCycle       = errors.New("substitution cycle")
)
