package format

import (
	"math"
	"strings"
	"testing"

	"github.com/kyleconroy/sqltree/ast"
)

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func bin(op ast.Op, left, right ast.Expression) *ast.BinaryOperation {
	return &ast.BinaryOperation{Op: op, Left: left, Right: right}
}

func TestExpressionParentheses(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"tighter child", bin(ast.OpAdd, id("a"), bin(ast.OpMul, id("b"), id("c"))), "a + b * c"},
		{"looser left child", bin(ast.OpMul, bin(ast.OpAdd, id("a"), id("b")), id("c")), "(a + b) * c"},
		{"equal left child", bin(ast.OpSub, bin(ast.OpSub, id("a"), id("b")), id("c")), "a - b - c"},
		{"equal right child", bin(ast.OpSub, id("a"), bin(ast.OpSub, id("b"), id("c"))), "a - (b - c)"},
		{"logical", bin(ast.OpAnd, bin(ast.OpOr, id("a"), id("b")), id("c")), "(a OR b) AND c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			Expression(&sb, tt.expr)
			if got := sb.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatNumbers(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1, "1"},
		{2.5, "2.5"},
		{1e20, "1e+20"},
		{math.Inf(1), "1e999"},
	}
	for _, tt := range tests {
		var sb strings.Builder
		Expression(&sb, &ast.NumberLiteral{Value: tt.value})
		if got := sb.String(); got != tt.want {
			t.Errorf("%v formatted as %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatStatement(t *testing.T) {
	stmt := &ast.SelectStatement{
		Columns: &ast.ExpressionList{Exprs: []ast.Expression{
			&ast.AliasedExpression{
				Expr:  &ast.FunctionCall{Name: id("SUM"), Arguments: []ast.Expression{id("x")}},
				Alias: id("total"),
			},
		}},
		Source:  id("t"),
		Where:   &ast.Clause{Kind: ast.Where, Exprs: []ast.Expression{bin(ast.OpGt, id("x"), &ast.NumberLiteral{Value: 0})}},
		GroupBy: &ast.Clause{Kind: ast.GroupBy},
		Having:  &ast.Clause{Kind: ast.Having},
		OrderBy: &ast.Clause{Kind: ast.OrderBy, Exprs: []ast.Expression{id("total"), &ast.Identifier{Name: "a'b", Quoted: true}}},
	}
	want := "SELECT SUM(x) AS total FROM t WHERE x > 0 ORDER BY total, 'a''b'"
	if got := Format(stmt); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
