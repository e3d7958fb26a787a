package parser

import (
	"github.com/mna/luci/lang/ast"
	"github.com/mna/luci/lang/token"
)

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.IF:
		return p.parseIf()
	case token.FUNC:
		return p.parseFuncDef()
	case token.BREAK:
		pos := p.pos
		p.advance()
		return &ast.Break{BreakPos: pos}
	case token.CONTINUE:
		pos := p.pos
		p.advance()
		return &ast.Continue{ContinuePos: pos}
	case token.PASS:
		pos := p.pos
		p.advance()
		return &ast.Pass{PassPos: pos}
	case token.RETURN:
		pos := p.pos
		p.advance()
		var val ast.Expr
		if !p.at(append([]token.Token{token.SEMI}, blockEnd...)...) {
			val = p.parseExpr()
		}
		return &ast.Return{ReturnPos: pos, Value: val}
	default:
		return p.parseSimpleStmt()
	}
}

// parseSimpleStmt parses a bare expression, an assignment (name = value or
// container[index] = value), possibly chained (a = b = value).
func (p *parser) parseSimpleStmt() ast.Stmt {
	expr := p.parseExpr()
	if p.tok != token.EQ {
		return &ast.ExprStmt{X: expr}
	}
	p.advance()
	value := p.parseAssignRHS()
	return assignFrom(expr, value, p).(ast.Stmt)
}

// parseAssignRHS parses the right-hand side of an assignment, which may
// itself be a chained assignment (a = b = c = value).
func (p *parser) parseAssignRHS() ast.Expr {
	expr := p.parseExpr()
	if p.tok != token.EQ {
		return expr
	}
	p.advance()
	value := p.parseAssignRHS()
	return assignFrom(expr, value, p)
}

func assignFrom(target ast.Expr, value ast.Expr, p *parser) ast.Expr {
	switch t := target.(type) {
	case *ast.Id:
		return &ast.Assign{AssignPos: t.IdPos, Name: t.Name, Value: value}
	case *ast.ContainerGet:
		return &ast.ContainerPut{Container: t.Container, Index: t.Index, Value: value}
	default:
		p.fail("invalid assignment target")
		return nil
	}
}

func (p *parser) parseWhile() *ast.While {
	pos := p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.DO)
	body := p.parseStatements(token.DONE)
	p.expect(token.DONE)
	return &ast.While{WhilePos: pos, Cond: cond, Body: body}
}

func (p *parser) parseFor() *ast.For {
	pos := p.expect(token.FOR)
	iterName := p.parseIdent()
	p.expect(token.IN)
	container := p.parseExpr()
	p.expect(token.DO)
	body := p.parseStatements(token.DONE)
	p.expect(token.DONE)
	return &ast.For{ForPos: pos, IterName: iterName, Container: container, Body: body}
}

func (p *parser) parseIf() *ast.IfElse {
	pos := p.expect(token.IF)
	return p.parseIfTail(pos)
}

// parseIfTail parses the cond/then/[elif]*/[else]/end of an if, also reused
// to desugar `elif` into a nested IfElse in the else branch.
func (p *parser) parseIfTail(pos token.Pos) *ast.IfElse {
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseStatements(token.ELIF, token.ELSE, token.END)
	node := &ast.IfElse{IfPos: pos, Cond: cond, Then: then}
	switch p.tok {
	case token.ELIF:
		elifPos := p.pos
		p.advance()
		inner := p.parseIfTail(elifPos)
		node.Else = &ast.Statements{StmtPos: elifPos, List: []ast.Stmt{inner}}
		return node // end already consumed by the nested parseIfTail
	case token.ELSE:
		p.advance()
		node.Else = p.parseStatements(token.END)
		p.expect(token.END)
	default:
		p.expect(token.END)
	}
	return node
}

func (p *parser) parseFuncDef() *ast.FuncDef {
	pos := p.expect(token.FUNC)
	name := ""
	if p.tok == token.IDENT {
		name = p.lit
		p.advance()
	}
	p.expect(token.LPAREN)
	var params []string
	for p.tok != token.RPAREN {
		params = append(params, p.parseIdent())
		if p.tok == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	body := p.parseStatements(token.END)
	p.expect(token.END)
	return &ast.FuncDef{FuncPos: pos, Name: name, Params: params, Body: body}
}
