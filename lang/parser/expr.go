package parser

import (
	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/scanner"
	"github.com/mna/luci/lang/token"
)

// parseExpr parses a full expression at the lowest precedence (logical or).
func (p *parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *parser) parseOr() ast.Expr {
	x := p.parseAnd()
	for p.tok == token.OR {
		p.advance()
		x = &ast.Binary{Op: ast.OpLgOr, Lhs: x, Rhs: p.parseAnd()}
	}
	return x
}

func (p *parser) parseAnd() ast.Expr {
	x := p.parseEquality()
	for p.tok == token.AND {
		p.advance()
		x = &ast.Binary{Op: ast.OpLgAnd, Lhs: x, Rhs: p.parseEquality()}
	}
	return x
}

func (p *parser) parseEquality() ast.Expr {
	x := p.parseRelational()
	for p.tok == token.EQEQ || p.tok == token.NEQ {
		op := ast.OpEq
		if p.tok == token.NEQ {
			op = ast.OpNeq
		}
		p.advance()
		x = &ast.Binary{Op: op, Lhs: x, Rhs: p.parseRelational()}
	}
	return x
}

func (p *parser) parseRelational() ast.Expr {
	x := p.parseBitOr()
	for p.at(token.LT, token.GT, token.LE, token.GE) {
		var op ast.BinOp
		switch p.tok {
		case token.LT:
			op = ast.OpLt
		case token.GT:
			op = ast.OpGt
		case token.LE:
			op = ast.OpLte
		case token.GE:
			op = ast.OpGte
		}
		p.advance()
		x = &ast.Binary{Op: op, Lhs: x, Rhs: p.parseBitOr()}
	}
	return x
}

func (p *parser) parseBitOr() ast.Expr {
	x := p.parseBitXor()
	for p.tok == token.PIPE {
		p.advance()
		x = &ast.Binary{Op: ast.OpBwOr, Lhs: x, Rhs: p.parseBitXor()}
	}
	return x
}

func (p *parser) parseBitXor() ast.Expr {
	x := p.parseBitAnd()
	for p.tok == token.CIRCUMFLEX {
		p.advance()
		x = &ast.Binary{Op: ast.OpBwXor, Lhs: x, Rhs: p.parseBitAnd()}
	}
	return x
}

func (p *parser) parseBitAnd() ast.Expr {
	x := p.parseAdditive()
	for p.tok == token.AMPERSAND {
		p.advance()
		x = &ast.Binary{Op: ast.OpBwAnd, Lhs: x, Rhs: p.parseAdditive()}
	}
	return x
}

func (p *parser) parseAdditive() ast.Expr {
	x := p.parseMultiplicative()
	for p.tok == token.PLUS || p.tok == token.MINUS {
		op := ast.OpAdd
		if p.tok == token.MINUS {
			op = ast.OpSub
		}
		p.advance()
		x = &ast.Binary{Op: op, Lhs: x, Rhs: p.parseMultiplicative()}
	}
	return x
}

func (p *parser) parseMultiplicative() ast.Expr {
	x := p.parseUnary()
	for p.at(token.STAR, token.SLASH, token.PERCENT) {
		var op ast.BinOp
		switch p.tok {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.PERCENT:
			op = ast.OpMod
		}
		p.advance()
		x = &ast.Binary{Op: op, Lhs: x, Rhs: p.parseUnary()}
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	switch p.tok {
	case token.MINUS:
		pos := p.pos
		p.advance()
		return &ast.Unary{OpPos: pos, Op: ast.OpNeg, X: p.parseUnary()}
	case token.NOT:
		pos := p.pos
		p.advance()
		return &ast.Unary{OpPos: pos, Op: ast.OpLgNot, X: p.parseUnary()}
	case token.TILDE:
		pos := p.pos
		p.advance()
		return &ast.Unary{OpPos: pos, Op: ast.OpBwNot, X: p.parseUnary()}
	default:
		return p.parsePow()
	}
}

// parsePow binds tighter than unary minus on its left (so -2**2 == -(2**2))
// but is right-associative.
func (p *parser) parsePow() ast.Expr {
	x := p.parsePostfix()
	if p.tok == token.STARSTAR {
		p.advance()
		return &ast.Binary{Op: ast.OpPow, Lhs: x, Rhs: p.parseUnary()}
	}
	return x
}

func (p *parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok {
		case token.LPAREN:
			p.advance()
			var args []ast.Expr
			for p.tok != token.RPAREN {
				args = append(args, p.parseExpr())
				if p.tok == token.COMMA {
					p.advance()
				}
			}
			p.expect(token.RPAREN)
			x = &ast.Call{Callee: x, Args: args}
		case token.LBRACK:
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBRACK)
			x = &ast.ContainerGet{Container: x, Index: idx}
		default:
			return x
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.tok {
	case token.INT:
		v, err := scanner.ParseInt(p.lit)
		if err != nil {
			p.fail("%s", err)
		}
		pos := p.pos
		p.advance()
		return &ast.Int{IntPos: pos, Value: v}
	case token.FLOAT:
		v, err := scanner.ParseFloat(p.lit)
		if err != nil {
			p.fail("%s", err)
		}
		pos := p.pos
		p.advance()
		return &ast.Float{FloatPos: pos, Value: v}
	case token.STRING:
		pos, lit := p.pos, p.lit
		p.advance()
		return &ast.String{StringPos: pos, Value: lit}
	case token.TRUE:
		pos := p.pos
		p.advance()
		return &ast.Int{IntPos: pos, Value: 1}
	case token.FALSE:
		pos := p.pos
		p.advance()
		return &ast.Int{IntPos: pos, Value: 0}
	case token.NIL:
		pos := p.pos
		p.advance()
		return &ast.NilLit{NilPos: pos}
	case token.IDENT:
		pos, lit := p.pos, p.lit
		p.advance()
		return &ast.Id{IdPos: pos, Name: lit}
	case token.LPAREN:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x
	case token.LBRACK:
		return p.parseListDef()
	case token.LBRACE:
		return p.parseMapDef()
	case token.FUNC:
		return p.parseFuncDef()
	default:
		p.fail("unexpected token %s %q", p.tok, p.lit)
		return nil
	}
}

func (p *parser) parseListDef() *ast.ListDef {
	pos := p.expect(token.LBRACK)
	n := &ast.ListDef{ListPos: pos}
	for p.tok != token.RBRACK {
		n.Items = append(n.Items, p.parseExpr())
		if p.tok == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACK)
	return n
}

func (p *parser) parseMapDef() *ast.MapDef {
	pos := p.expect(token.LBRACE)
	n := &ast.MapDef{MapPos: pos}
	for p.tok != token.RBRACE {
		key := p.parseExpr()
		p.expect(token.COLON)
		val := p.parseExpr()
		n.Entries = append(n.Entries, ast.MapEntry{Key: key, Value: val})
		if p.tok == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return n
}
