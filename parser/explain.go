package parser

import (
	"github.com/kyleconroy/sqltree/ast"
	"github.com/kyleconroy/sqltree/internal/explain"
)

// Explain returns the box-drawn tree for a node, one line per node.
func Explain(node ast.Node) string {
	return explain.Explain(node)
}

// ExplainLines returns the rendered tree as separate lines.
func ExplainLines(node ast.Node) []string {
	return explain.Tree(node)
}
