package parser

import (
	"github.com/kyleconroy/sqltree/ast"
	"github.com/kyleconroy/sqltree/internal/format"
)

// Format returns the SQL string representation of the statement.
func Format(stmt *ast.SelectStatement) string {
	return format.Format(stmt)
}
