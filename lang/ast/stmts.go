package ast

import "github.com/mna/luci/lang/token"

// ContainerPut is an assignment to container[index] = value.
type ContainerPut struct {
	Container Expr
	Index     Expr
	Value     Expr
}

func (n *ContainerPut) Pos() token.Pos { return n.Container.Pos() }
func (n *ContainerPut) Walk(v Visitor) {
	Walk(v, n.Value)
	Walk(v, n.Index)
	Walk(v, n.Container)
}
func (n *ContainerPut) stmtNode() {}
func (n *ContainerPut) exprNode() {} // chained assignment treats it as a value-producing expr

// Assign is `name = value`, possibly chained (a = b = value).
type Assign struct {
	AssignPos token.Pos
	Name      string
	Value     Expr
}

func (n *Assign) Pos() token.Pos { return n.AssignPos }
func (n *Assign) Walk(v Visitor) { Walk(v, n.Value) }
func (n *Assign) stmtNode()      {}
func (n *Assign) exprNode()      {}

type While struct {
	WhilePos token.Pos
	Cond     Expr
	Body     *Statements
}

func (n *While) Pos() token.Pos { return n.WhilePos }
func (n *While) Walk(v Visitor) { Walk(v, n.Cond); Walk(v, n.Body) }
func (n *While) stmtNode()      {}

type For struct {
	ForPos    token.Pos
	IterName  string
	Container Expr
	Body      *Statements
}

func (n *For) Pos() token.Pos { return n.ForPos }
func (n *For) Walk(v Visitor) { Walk(v, n.Container); Walk(v, n.Body) }
func (n *For) stmtNode()      {}

type IfElse struct {
	IfPos token.Pos
	Cond  Expr
	Then  *Statements
	Else  *Statements // nil if no else branch
}

func (n *IfElse) Pos() token.Pos { return n.IfPos }
func (n *IfElse) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfElse) stmtNode() {}

type Break struct {
	BreakPos token.Pos
}

func (n *Break) Pos() token.Pos { return n.BreakPos }
func (n *Break) Walk(Visitor)   {}
func (n *Break) stmtNode()      {}

type Continue struct {
	ContinuePos token.Pos
}

func (n *Continue) Pos() token.Pos { return n.ContinuePos }
func (n *Continue) Walk(Visitor)   {}
func (n *Continue) stmtNode()      {}

// Return is `return` or `return expr`. Value is nil for a bare return.
type Return struct {
	ReturnPos token.Pos
	Value     Expr
}

func (n *Return) Pos() token.Pos { return n.ReturnPos }
func (n *Return) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *Return) stmtNode() {}

type Pass struct {
	PassPos token.Pos
}

func (n *Pass) Pos() token.Pos { return n.PassPos }
func (n *Pass) Walk(Visitor)   {}
func (n *Pass) stmtNode()      {}

// ExprStmt wraps a bare expression statement (call, identifier, literal)
// whose value is discarded (compiler emits POP after it).
type ExprStmt struct {
	X Expr
}

func (n *ExprStmt) Pos() token.Pos { return n.X.Pos() }
func (n *ExprStmt) Walk(v Visitor) { Walk(v, n.X) }
func (n *ExprStmt) stmtNode()      {}
