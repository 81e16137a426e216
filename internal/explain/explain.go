// Package explain renders sqltree ASTs as box-drawn text trees.
package explain

import (
	"strings"

	"github.com/kyleconroy/sqltree/ast"
)

// Branch markers. A child's first line gets the branch marker, its
// remaining lines get the continuation marker.
const (
	branch         = "├─ "
	continuation   = "│  "
	lastBranch     = "└─ "
	lastContinuing = "   "
)

// Explain returns the rendered tree for a node, one line per node,
// separated by newlines.
func Explain(node ast.Node) string {
	return strings.Join(Tree(node), "\n")
}

// Tree renders a node and its children. The first line is the node's
// label; children follow in declaration order, each prefixed with a branch
// marker. The result depends only on the tree, so repeated calls return
// equal slices.
func Tree(node ast.Node) []string {
	lines := []string{Label(node)}
	children := ast.Children(node)
	for i, child := range children {
		first, rest := branch, continuation
		if i == len(children)-1 {
			first, rest = lastBranch, lastContinuing
		}
		for j, line := range Tree(child) {
			if j == 0 {
				lines = append(lines, first+line)
			} else {
				lines = append(lines, rest+line)
			}
		}
	}
	return lines
}

// Label returns the single-line text for a node without its children.
func Label(node ast.Node) string {
	switch n := node.(type) {
	case *ast.SelectStatement:
		return "select"
	case *ast.ExpressionList:
		return "..."
	case *ast.Clause:
		return n.Kind.String()
	case *ast.AliasedExpression:
		return "as " + n.Alias.Name
	case *ast.FunctionCall:
		return "call"
	case *ast.BinaryOperation:
		return n.Op.String()
	case *ast.Identifier:
		if n.Quoted {
			return QuoteString(n.Name)
		}
		return n.Name
	case *ast.NumberLiteral:
		return FormatFloat(n.Value)
	}
	return ""
}
