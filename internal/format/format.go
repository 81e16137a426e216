// Package format turns sqltree ASTs back into query text.
package format

import (
	"strings"

	"github.com/kyleconroy/sqltree/ast"
)

// Format returns the SQL string representation of a statement. Parsing the
// result yields a tree equal to the input, positions aside.
func Format(stmt *ast.SelectStatement) string {
	var sb strings.Builder
	Statement(&sb, stmt)
	return sb.String()
}

// Node formats any node. Clauses are written with their keyword and
// expression lists as comma separated expressions.
func Node(sb *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.SelectStatement:
		Statement(sb, n)
	case *ast.ExpressionList:
		expressionList(sb, n.Exprs)
	case *ast.Clause:
		formatClause(sb, n)
	case ast.Expression:
		Expression(sb, n)
	}
}
