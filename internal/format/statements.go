package format

import (
	"strings"

	"github.com/kyleconroy/sqltree/ast"
)

// Statement formats a SELECT statement. Empty clauses are omitted.
func Statement(sb *strings.Builder, q *ast.SelectStatement) {
	if q == nil {
		return
	}

	sb.WriteString("SELECT ")
	if q.Columns != nil {
		expressionList(sb, q.Columns.Exprs)
	}

	sb.WriteString(" FROM ")
	switch src := q.Source.(type) {
	case *ast.SelectStatement:
		subquery(sb, src)
	default:
		Expression(sb, src)
	}

	for _, c := range []*ast.Clause{q.Where, q.GroupBy, q.Having, q.OrderBy} {
		if c == nil || c.Empty() {
			continue
		}
		sb.WriteString(" ")
		formatClause(sb, c)
	}
}

func formatClause(sb *strings.Builder, c *ast.Clause) {
	sb.WriteString(strings.ToUpper(c.Kind.String()))
	sb.WriteString(" ")
	expressionList(sb, c.Exprs)
}

func subquery(sb *strings.Builder, q *ast.SelectStatement) {
	sb.WriteString("(")
	Statement(sb, q)
	sb.WriteString(")")
}

func expressionList(sb *strings.Builder, exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, e)
	}
}
