// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the compiler, per the node set of §3 of the language
// specification: a tagged record per production, each carrying a source
// line and column, owning its children.
package ast

import "github.com/mna/luci/lang/token"

// Node is implemented by every AST node. Pos and Walk let diagnostics
// and the compiler traverse the tree uniformly without a type switch at
// every call site.
type Node interface {
	// Pos returns the position of the first token of the node.
	Pos() token.Pos
	// Walk invokes v on each direct child of the node. Call visits its
	// arguments before its callee and ContainerPut visits value, index,
	// container; the compiler evaluates a call's callee first and a put's
	// container before its index, so for those two nodes the visit order
	// is not the evaluation order.
	Walk(v Visitor)
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// BinOp identifies a binary operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
	OpLgOr
	OpLgAnd
	OpBwXor
	OpBwOr
	OpBwAnd
)

var binOpNames = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpPow: "**",
	OpEq: "==", OpNeq: "!=", OpLt: "<", OpGt: ">", OpLte: "<=", OpGte: ">=",
	OpLgOr: "or", OpLgAnd: "and", OpBwXor: "^", OpBwOr: "|", OpBwAnd: "&",
}

func (op BinOp) String() string { return binOpNames[op] }

// UnOp identifies a unary operator.
type UnOp int

const (
	OpNeg UnOp = iota
	OpLgNot
	OpBwNot
)

var unOpNames = [...]string{OpNeg: "-", OpLgNot: "not", OpBwNot: "~"}

func (op UnOp) String() string { return unOpNames[op] }
