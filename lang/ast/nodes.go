package ast

import "github.com/mna/luci/lang/token"

// Statements is a block of statements, compiled in three passes by the
// compiler (pre-register function names, compile non-function statements,
// compile function definitions). It is also used as a function body and as
// the implicit top-level program.
type Statements struct {
	StmtPos token.Pos
	List    []Stmt
}

func (n *Statements) Pos() token.Pos { return n.StmtPos }
func (n *Statements) Walk(v Visitor) {
	for _, s := range n.List {
		Walk(v, s)
	}
}
func (n *Statements) stmtNode() {}

// --- literals and primary expressions ---

type Int struct {
	IntPos token.Pos
	Value  int64
}

func (n *Int) Pos() token.Pos { return n.IntPos }
func (n *Int) Walk(Visitor)   {}
func (n *Int) exprNode()      {}

type Float struct {
	FloatPos token.Pos
	Value    float64
}

func (n *Float) Pos() token.Pos { return n.FloatPos }
func (n *Float) Walk(Visitor)   {}
func (n *Float) exprNode()      {}

type String struct {
	StringPos token.Pos
	Value     string
}

func (n *String) Pos() token.Pos { return n.StringPos }
func (n *String) Walk(Visitor)   {}
func (n *String) exprNode()      {}

type NilLit struct {
	NilPos token.Pos
}

func (n *NilLit) Pos() token.Pos { return n.NilPos }
func (n *NilLit) Walk(Visitor)   {}
func (n *NilLit) exprNode()      {}

type Id struct {
	IdPos token.Pos
	Name  string
}

func (n *Id) Pos() token.Pos { return n.IdPos }
func (n *Id) Walk(Visitor)   {}
func (n *Id) exprNode()      {}

type ListDef struct {
	ListPos token.Pos
	Items   []Expr
}

func (n *ListDef) Pos() token.Pos { return n.ListPos }
func (n *ListDef) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it)
	}
}
func (n *ListDef) exprNode() {}

type MapEntry struct {
	Key, Value Expr
}

type MapDef struct {
	MapPos  token.Pos
	Entries []MapEntry
}

func (n *MapDef) Pos() token.Pos { return n.MapPos }
func (n *MapDef) Walk(v Visitor) {
	for _, e := range n.Entries {
		Walk(v, e.Key)
		Walk(v, e.Value)
	}
}
func (n *MapDef) exprNode() {}
