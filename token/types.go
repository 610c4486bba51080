package token

import "fmt"

type TokenType int

const (
	TEOF TokenType = iota
	TNewline
	TWhitespace
	TUnquoted
	TString
	TMString
	TNumber
	TTrue
	TFalse
	TNull
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TComma
	TColon
	TSubstStart
	TSubstEnd
	TComment
	TBad
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:        "TEOF",
		TNewline:    "TNewline",
		TWhitespace: "TWhitespace",
		TUnquoted:   "TUnquoted",
		TString:     "TString",
		TMString:    "TMString",
		TNumber:     "TNumber",
		TTrue:       "TTrue",
		TFalse:      "TFalse",
		TNull:       "TNull",
		TLCurl:      "TLCurl",
		TRCurl:      "TRCurl",
		TLSquare:    "TLSquare",
		TRSquare:    "TRSquare",
		TComma:      "TComma",
		TColon:      "TColon",
		TSubstStart: "TSubstStart",
		TSubstEnd:   "TSubstEnd",
		TComment:    "TComment",
		TBad:        "TBad",
	}[t]
}

// Token is one lexical unit. Bytes holds the decoded text: for TString
// and TMString the unescaped string content, for TNumber the original
// literal, for TBad the error message.
type Token struct {
	Type   TokenType
	Origin *Origin
	Bytes  []byte
}

func (t *Token) Text() string {
	return string(t.Bytes)
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Origin)
}
