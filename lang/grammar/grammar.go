// Package grammar embeds the EBNF description of Luci's surface syntax, used
// only to keep lang/parser's hand-written recursive descent honest: the two
// are written independently and grammar_test.go cross-checks that the
// embedded grammar is at least well-formed and fully reachable from Chunk.
package grammar

import _ "embed"

//go:embed grammar.ebnf
var Source string
