package ast_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/kyleconroy/sqltree/ast"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func emptyClause(kind ast.ClauseKind) *ast.Clause { return &ast.Clause{Kind: kind} }

func TestChildrenOrder(t *testing.T) {
	stmt := &ast.SelectStatement{
		Columns: &ast.ExpressionList{Exprs: []ast.Expression{ident("a")}},
		Source:  ident("t"),
		Where:   emptyClause(ast.Where),
		GroupBy: emptyClause(ast.GroupBy),
		Having:  emptyClause(ast.Having),
		OrderBy: emptyClause(ast.OrderBy),
	}

	children := ast.Children(stmt)
	if len(children) != 6 {
		t.Fatalf("got %d children, want 6", len(children))
	}
	if children[0] != stmt.Columns || children[1] != stmt.Source {
		t.Error("select list and source are not first")
	}
	for i, kind := range []ast.ClauseKind{ast.Where, ast.GroupBy, ast.Having, ast.OrderBy} {
		c, ok := children[i+2].(*ast.Clause)
		if !ok || c.Kind != kind {
			t.Errorf("child %d = %v, want %s clause", i+2, children[i+2], kind)
		}
	}

	call := &ast.FunctionCall{Name: ident("MAX"), Arguments: []ast.Expression{ident("x"), ident("y")}}
	got := ast.Children(call)
	if len(got) != 3 || got[0] != call.Name {
		t.Errorf("call children = %v, want name then 2 arguments", got)
	}
}

func TestWalk(t *testing.T) {
	expr := &ast.BinaryOperation{
		Op:    ast.OpAdd,
		Left:  ident("a"),
		Right: &ast.BinaryOperation{Op: ast.OpMul, Left: &ast.NumberLiteral{Value: 2}, Right: ident("b")},
	}

	var visited []string
	ast.Walk(expr, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.BinaryOperation:
			visited = append(visited, n.Op.String())
		case *ast.Identifier:
			visited = append(visited, n.Name)
		case *ast.NumberLiteral:
			visited = append(visited, "num")
		}
		return true
	})
	if got, want := strings.Join(visited, " "), "+ a * num b"; got != want {
		t.Errorf("Walk order = %q, want %q", got, want)
	}

	visited = nil
	ast.Walk(expr, func(n ast.Node) bool {
		visited = append(visited, "x")
		return false
	})
	if len(visited) != 1 {
		t.Errorf("Walk visited %d nodes after returning false, want 1", len(visited))
	}
}

func TestLookupOp(t *testing.T) {
	tests := []struct {
		text string
		want ast.Op
	}{
		{"+", ast.OpAdd},
		{"-", ast.OpSub},
		{"*", ast.OpMul},
		{"/", ast.OpDiv},
		{">", ast.OpGt},
		{">=", ast.OpGe},
		{"<", ast.OpLt},
		{"<=", ast.OpLe},
		{"=", ast.OpEq},
		{"<>", ast.OpNeq},
		{"and", ast.OpAnd},
		{"AND", ast.OpAnd},
		{"Or", ast.OpOr},
	}
	for _, tt := range tests {
		got, ok := ast.LookupOp(tt.text)
		if !ok || got != tt.want {
			t.Errorf("LookupOp(%q) = %v, %v; want %v", tt.text, got, ok, tt.want)
		}
	}
	for _, bad := range []string{"&", "|", "!=", "not", ""} {
		if _, ok := ast.LookupOp(bad); ok {
			t.Errorf("LookupOp(%q) succeeded, want failure", bad)
		}
	}
}

func TestOpPrecedence(t *testing.T) {
	order := []ast.Op{ast.OpOr, ast.OpAnd, ast.OpEq, ast.OpAdd, ast.OpMul}
	for i := 1; i < len(order); i++ {
		if order[i-1].Precedence() >= order[i].Precedence() {
			t.Errorf("%s should bind looser than %s", order[i-1], order[i])
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	b := &ast.BinaryOperation{
		Op:    ast.OpAnd,
		Left:  &ast.NumberLiteral{Value: math.Inf(1)},
		Right: &ast.Identifier{Name: "IT", Quoted: true},
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"op":"and","left":{"value":"+Inf"},"right":{"name":"IT","quoted":true}}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
