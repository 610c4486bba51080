package parse

import (
	"errors"
	"fmt"

	"github.com/thiagogjt/confit/token"
)

var ErrSyntax = errors.New("syntax error")

// Error is a syntax error carrying the origin of the failure.
type Error struct {
	Origin *token.Origin
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Origin, e.Msg)
}

func (e *Error) Unwrap() error {
	return ErrSyntax
}
