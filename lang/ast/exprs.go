package ast

import "github.com/mna/luci/lang/token"

type Unary struct {
	OpPos token.Pos
	Op    UnOp
	X     Expr
}

func (n *Unary) Pos() token.Pos { return n.OpPos }
func (n *Unary) Walk(v Visitor) { Walk(v, n.X) }
func (n *Unary) exprNode()      {}

type Binary struct {
	Op       BinOp
	Lhs, Rhs Expr
}

func (n *Binary) Pos() token.Pos { return n.Lhs.Pos() }
func (n *Binary) Walk(v Visitor) { Walk(v, n.Lhs); Walk(v, n.Rhs) }
func (n *Binary) exprNode()      {}

// ContainerGet is a read of container[index], e.g. l[0] or m["k"].
type ContainerGet struct {
	Container Expr
	Index     Expr
}

func (n *ContainerGet) Pos() token.Pos { return n.Container.Pos() }
func (n *ContainerGet) Walk(v Visitor) { Walk(v, n.Container); Walk(v, n.Index) }
func (n *ContainerGet) exprNode()      {}

// Call is a function invocation, callee(args...).
type Call struct {
	Callee Expr
	Args   []Expr
}

func (n *Call) Pos() token.Pos { return n.Callee.Pos() }
func (n *Call) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
	Walk(v, n.Callee)
}
func (n *Call) exprNode() {}

// FuncDef is both a statement (binds Name in the enclosing scope) and,
// structurally, an expression-shaped node (it produces a function value).
type FuncDef struct {
	FuncPos token.Pos
	Name    string // empty for anonymous function expressions
	Params  []string
	Body    *Statements
}

func (n *FuncDef) Pos() token.Pos { return n.FuncPos }
func (n *FuncDef) Walk(v Visitor) { Walk(v, n.Body) }
func (n *FuncDef) exprNode()      {}
func (n *FuncDef) stmtNode()      {}
