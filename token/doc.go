// Package token turns raw configuration text into a flat sequence of
// lexical tokens.
//
// Tokenization is a single pass and never fails: malformed input (an
// unterminated quoted string, an invalid escape, an invalid numeric
// literal, an unclosed substitution) is reported in-band as a TBad token
// carrying a message, so the parser can surface a syntax error with the
// precise origin of the problem.
//
// Every token carries an Origin, the provenance tag (source description
// plus line number) that is threaded through the value tree for
// diagnostics and rendering.
package token
