package ast

import (
	"fmt"
	"io"
)

// WriteDOT renders the tree rooted at node as a Graphviz DOT graph, for the
// CLI's -g flag. This is a diagnostic aid, not part of the compiler's
// contract; the grammar and node shapes are the only thing downstream
// consumers (the compiler) rely on.
func WriteDOT(w io.Writer, name string, root Node) {
	fmt.Fprintf(w, "digraph %q {\n", name)
	id := 0
	var visit func(n Node) int
	visit = func(n Node) int {
		myID := id
		id++
		fmt.Fprintf(w, "  n%d [label=%q];\n", myID, label(n))
		var children []Node
		n.Walk(VisitorFunc(func(c Node) Visitor {
			children = append(children, c)
			return nil // don't recurse here, we recurse explicitly below
		}))
		for _, c := range children {
			cid := visit(c)
			fmt.Fprintf(w, "  n%d -> n%d;\n", myID, cid)
		}
		return myID
	}
	visit(root)
	fmt.Fprintln(w, "}")
}

func label(n Node) string {
	switch n := n.(type) {
	case *Int:
		return fmt.Sprintf("int %d", n.Value)
	case *Float:
		return fmt.Sprintf("float %g", n.Value)
	case *String:
		return fmt.Sprintf("string %q", n.Value)
	case *NilLit:
		return "nil"
	case *Id:
		return "id " + n.Name
	case *Unary:
		return "unary " + n.Op.String()
	case *Binary:
		return "binary " + n.Op.String()
	case *ContainerGet:
		return "cget"
	case *ContainerPut:
		return "cput"
	case *ListDef:
		return "list"
	case *MapDef:
		return "map"
	case *Assign:
		return "assign " + n.Name
	case *While:
		return "while"
	case *For:
		return "for " + n.IterName
	case *IfElse:
		return "if"
	case *Call:
		return "call"
	case *FuncDef:
		return "func " + n.Name
	case *Statements:
		return fmt.Sprintf("block (%d stmts)", len(n.List))
	case *Break:
		return "break"
	case *Continue:
		return "continue"
	case *Return:
		return "return"
	case *Pass:
		return "pass"
	case *ExprStmt:
		return "expr"
	default:
		return fmt.Sprintf("%T", n)
	}
}
