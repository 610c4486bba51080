package confit

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/thiagogjt/confit/encode"
	"github.com/thiagogjt/confit/ir"
)

// Diff renders two trees in formatted syntax and reports a line-level
// textual diff between them, for showing what changed between two
// configurations. An empty string means the rendered forms are equal.
func Diff(from, to *ir.Node) (string, error) {
	fromText, err := encode.String(from, encode.EncodeFormatted(true))
	if err != nil {
		return "", err
	}
	toText, err := encode.String(to, encode.EncodeFormatted(true))
	if err != nil {
		return "", err
	}
	if fromText == toText {
		return "", nil
	}
	diffCfg := diffpatch.New()
	fromRunes, toRunes, lines := diffCfg.DiffLinesToRunes(fromText, toText)
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	var sb []byte
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitKeepNonEmpty(d.Text) {
			sb = append(sb, prefix...)
			sb = append(sb, line...)
			sb = append(sb, '\n')
		}
	}
	return string(sb), nil
}

// Equal reports structural equality of two trees, origins aside.
func Equal(a, b *ir.Node) bool {
	return ir.Equal(a, b)
}

func splitKeepNonEmpty(text string) []string {
	var res []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			if i > start {
				res = append(res, text[start:i])
			}
			start = i + 1
		}
	}
	if start < len(text) {
		res = append(res, text[start:])
	}
	return res
}
