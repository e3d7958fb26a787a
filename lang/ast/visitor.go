package ast

// Visitor is called for each node participating in a Walk. Returning a nil
// Visitor from Visit skips the node's children.
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(n Node) Visitor

func (f VisitorFunc) Visit(n Node) Visitor { return f(n) }

// Walk visits node and, unless the Visitor declines by returning nil,
// recursively walks its children in the order each node's Walk method
// visits them (see Node.Walk).
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if w := v.Visit(node); w != nil {
		node.Walk(w)
	}
}
