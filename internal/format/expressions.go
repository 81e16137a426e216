package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/kyleconroy/sqltree/ast"
)

// Expression formats an expression.
func Expression(sb *strings.Builder, expr ast.Expression) {
	if expr == nil {
		return
	}

	switch e := expr.(type) {
	case *ast.NumberLiteral:
		formatNumber(sb, e)
	case *ast.Identifier:
		formatIdentifier(sb, e)
	case *ast.FunctionCall:
		formatFunctionCall(sb, e)
	case *ast.BinaryOperation:
		formatBinaryOperation(sb, e)
	case *ast.AliasedExpression:
		formatAliasedExpression(sb, e)
	case *ast.SelectStatement:
		subquery(sb, e)
	}
}

func formatNumber(sb *strings.Builder, n *ast.NumberLiteral) {
	if math.IsInf(n.Value, 1) {
		// Any literal past the float64 range parses back to +Inf.
		sb.WriteString("1e999")
		return
	}
	sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func formatIdentifier(sb *strings.Builder, id *ast.Identifier) {
	if id.Quoted {
		sb.WriteString("'")
		sb.WriteString(strings.ReplaceAll(id.Name, "'", "''"))
		sb.WriteString("'")
		return
	}
	sb.WriteString(id.Name)
}

func formatFunctionCall(sb *strings.Builder, fn *ast.FunctionCall) {
	formatIdentifier(sb, fn.Name)
	sb.WriteString("(")
	expressionList(sb, fn.Arguments)
	sb.WriteString(")")
}

// formatBinaryOperation writes both operands, parenthesizing an operand
// that binds looser than the operator, or equally tight on the right.
func formatBinaryOperation(sb *strings.Builder, b *ast.BinaryOperation) {
	prec := b.Op.Precedence()
	operand(sb, b.Left, func(p int) bool { return p < prec })
	sb.WriteString(" ")
	sb.WriteString(strings.ToUpper(b.Op.String()))
	sb.WriteString(" ")
	operand(sb, b.Right, func(p int) bool { return p <= prec })
}

func operand(sb *strings.Builder, expr ast.Expression, needParens func(int) bool) {
	inner, ok := expr.(*ast.BinaryOperation)
	if !ok || !needParens(inner.Op.Precedence()) {
		Expression(sb, expr)
		return
	}
	sb.WriteString("(")
	Expression(sb, expr)
	sb.WriteString(")")
}

func formatAliasedExpression(sb *strings.Builder, a *ast.AliasedExpression) {
	Expression(sb, a.Expr)
	sb.WriteString(" AS ")
	formatIdentifier(sb, a.Alias)
}
