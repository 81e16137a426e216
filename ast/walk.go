package ast

// Children returns the direct children of a node in declaration order.
// A SelectStatement always yields its select list, source and all four
// clauses, whether or not the clauses are empty.
func Children(node Node) []Node {
	switch n := node.(type) {
	case *SelectStatement:
		return []Node{n.Columns, n.Source, n.Where, n.GroupBy, n.Having, n.OrderBy}
	case *ExpressionList:
		return exprNodes(n.Exprs)
	case *Clause:
		return exprNodes(n.Exprs)
	case *BinaryOperation:
		return []Node{n.Left, n.Right}
	case *FunctionCall:
		children := make([]Node, 0, len(n.Arguments)+1)
		children = append(children, n.Name)
		for _, arg := range n.Arguments {
			children = append(children, arg)
		}
		return children
	case *AliasedExpression:
		return []Node{n.Expr}
	case *NumberLiteral, *Identifier:
		return nil
	}
	return nil
}

func exprNodes(exprs []Expression) []Node {
	nodes := make([]Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}

// Walk traverses the tree rooted at node depth-first, calling fn for each
// node before its children. If fn returns false the children of that node
// are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, c := range Children(node) {
		Walk(c, fn)
	}
}
