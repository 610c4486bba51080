package gomap

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/thiagogjt/confit/ir"
)

// Unmarshal decodes a resolved tree into target, which must be a
// non-nil pointer. Field names are matched case-insensitively or via
// the `confit` struct tag; strings decode into time.Duration fields
// using the usual suffix forms.
func Unmarshal(n *ir.Node, target any) error {
	raw, err := ToAny(n)
	if err != nil {
		return err
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "confit",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %s", ir.ErrBadValue, err)
	}
	return nil
}
