package encode

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/thiagogjt/confit/ir"
)

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	CommentColor
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: func(s string, args ...any) string { return s },
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		colors.Map[Colorable{Type: t, Attr: FieldColor}] = color.RGB(196, 96, 16).SprintfFunc()
		colors.Map[Colorable{Type: t, Attr: CommentColor}] = color.BlueString
	}
	able := Colorable{Attr: ValueColor}
	able.Type = ir.NumberType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString
	able.Type = ir.StringType
	colors.Map[able] = color.GreenString
	return colors
}

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	f, ok := c.Map[Colorable{Type: t, Attr: a}]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}

// ColorsIfTerminal returns a color scheme when f is a terminal and nil
// otherwise, so callers can pass the result straight to EncodeColors.
func ColorsIfTerminal(f *os.File) *Colors {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewColors()
	}
	return nil
}
