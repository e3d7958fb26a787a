// Package parser implements a recursive-descent parser producing the AST of
// package ast from Luci source text. Like package scanner, this is
// supplemental front-end infrastructure: the compiler's contract begins at
// the AST (§3/§6 of the specification treat parsing as an external
// collaborator), but a runnable tool still needs a concrete producer of it.
package parser

import (
	"fmt"

	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/scanner"
	"github.com/mna/luci/lang/token"
)

// Error is a parse error, annotated with the offending position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg) }

type parser struct {
	file *token.File
	sc   *scanner.Scanner

	pos token.Pos
	tok token.Token
	lit string
}

// Parse scans and parses the content of file (whose bytes are src),
// returning the top-level block of statements.
func Parse(file *token.File, src string) (block *ast.Statements, err error) {
	p := &parser{file: file, sc: scanner.New(file, src)}
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*Error); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	p.advance()
	block = p.parseStatements(token.EOF)
	p.expect(token.EOF)
	return block, nil
}

func (p *parser) advance() { p.pos, p.tok, p.lit = p.sc.Next() }

func (p *parser) fail(format string, args ...interface{}) {
	panic(&Error{Pos: p.pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(tok token.Token) token.Pos {
	if p.tok != tok {
		p.fail("expected %s, got %s %q", tok, p.tok, p.lit)
	}
	pos := p.pos
	p.advance()
	return pos
}

func (p *parser) parseIdent() string {
	if p.tok != token.IDENT {
		p.fail("expected identifier, got %s %q", p.tok, p.lit)
	}
	lit := p.lit
	p.advance()
	return lit
}

func (p *parser) at(toks ...token.Token) bool {
	for _, t := range toks {
		if p.tok == t {
			return true
		}
	}
	return false
}

// blockEnd tokens that terminate a Statements list without being consumed by
// it; the caller consumes the terminator itself.
var blockEnd = []token.Token{token.EOF, token.END, token.DONE, token.ELSE, token.ELIF}

func (p *parser) parseStatements(terminators ...token.Token) *ast.Statements {
	start := p.pos
	block := &ast.Statements{StmtPos: start}
	for !p.at(terminators...) {
		block.List = append(block.List, p.parseStmt())
		for p.tok == token.SEMI {
			p.advance()
		}
	}
	return block
}
