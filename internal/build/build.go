// Package build converts a parse tree into typed AST nodes.
package build

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/kyleconroy/sqltree/ast"
	"github.com/kyleconroy/sqltree/cst"
	"github.com/kyleconroy/sqltree/token"
)

// BuildError reports a parse tree node that has no AST counterpart.
type BuildError struct {
	Pos  token.Position
	Rule cst.Rule
	Text string // offending token text, if any
	Msg  string
}

func (e *BuildError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("build error at %s: %s %q", e.Pos, e.Msg, e.Text)
	}
	return fmt.Sprintf("build error at %s: %s", e.Pos, e.Msg)
}

func errorf(n *cst.Node, text, format string, args ...interface{}) *BuildError {
	return &BuildError{Pos: n.Pos, Rule: n.Rule, Text: text, Msg: fmt.Sprintf(format, args...)}
}

var clauseKinds = map[cst.Rule]ast.ClauseKind{
	cst.RuleWhereClause:  ast.Where,
	cst.RuleGroupClause:  ast.GroupBy,
	cst.RuleHavingClause: ast.Having,
	cst.RuleOrderClause:  ast.OrderBy,
}

// Build converts a select parse tree into a SelectStatement.
func Build(root *cst.Node) (*ast.SelectStatement, error) {
	if root == nil {
		return nil, errors.New("build: nil parse tree")
	}
	if root.Rule != cst.RuleSelect {
		return nil, errorf(root, "", "expected select, got %s", root.Rule)
	}
	return buildSelect(root)
}

func buildSelect(n *cst.Node) (*ast.SelectStatement, error) {
	if len(n.Children) != 6 {
		return nil, errorf(n, "", "select has %d children, want 6", len(n.Children))
	}

	columns, err := buildList(n.Children[0])
	if err != nil {
		return nil, err
	}

	var source ast.Expression
	switch src := n.Children[1]; src.Rule {
	case cst.RuleIdent:
		source = identifier(src)
	case cst.RuleSelect:
		sub, err := buildSelect(src)
		if err != nil {
			return nil, err
		}
		source = sub
	default:
		return nil, errorf(src, "", "invalid source %s", src.Rule)
	}

	stmt := &ast.SelectStatement{
		Position: n.Pos,
		Columns:  columns,
		Source:   source,
	}
	clauses := []**ast.Clause{&stmt.Where, &stmt.GroupBy, &stmt.Having, &stmt.OrderBy}
	for i, dst := range clauses {
		c, err := buildClause(n.Children[i+2], ast.ClauseKind(i))
		if err != nil {
			return nil, err
		}
		*dst = c
	}
	return stmt, nil
}

func buildList(n *cst.Node) (*ast.ExpressionList, error) {
	if n.Rule != cst.RuleExprList {
		return nil, errorf(n, "", "expected expr_list, got %s", n.Rule)
	}
	exprs, err := buildExprs(n.Children)
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionList{Position: n.Pos, Exprs: exprs}, nil
}

// buildClause flattens a clause into its expressions. GROUP BY and ORDER BY
// wrap an expression list; WHERE and HAVING hold a single expression.
func buildClause(n *cst.Node, want ast.ClauseKind) (*ast.Clause, error) {
	kind, ok := clauseKinds[n.Rule]
	if !ok || kind != want {
		return nil, errorf(n, "", "expected %s clause, got %s", want, n.Rule)
	}

	clause := &ast.Clause{Position: n.Pos, Kind: kind}
	for _, c := range n.Children {
		if c.Rule == cst.RuleExprList {
			list, err := buildList(c)
			if err != nil {
				return nil, err
			}
			clause.Exprs = append(clause.Exprs, list.Exprs...)
			continue
		}
		expr, err := buildExpr(c)
		if err != nil {
			return nil, err
		}
		clause.Exprs = append(clause.Exprs, expr)
	}
	return clause, nil
}

func buildExprs(nodes []*cst.Node) ([]ast.Expression, error) {
	exprs := make([]ast.Expression, 0, len(nodes))
	for _, c := range nodes {
		expr, err := buildExpr(c)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func buildExpr(n *cst.Node) (ast.Expression, error) {
	switch n.Rule {
	case cst.RuleNum:
		return number(n)
	case cst.RuleIdent:
		return identifier(n), nil
	case cst.RuleString:
		return &ast.Identifier{Position: n.Pos, Name: n.Token.Value, Quoted: true}, nil
	case cst.RuleWildcard:
		return &ast.Identifier{Position: n.Pos, Name: ast.Wildcard}, nil
	case cst.RuleBinary:
		return binary(n)
	case cst.RuleCall:
		return call(n)
	case cst.RuleAsExpr:
		return aliased(n)
	case cst.RuleSelect:
		return buildSelect(n)
	}
	return nil, errorf(n, "", "unexpected %s in expression", n.Rule)
}

func identifier(n *cst.Node) *ast.Identifier {
	return &ast.Identifier{Position: n.Pos, Name: n.Token.Value}
}

func number(n *cst.Node) (ast.Expression, error) {
	v, err := strconv.ParseFloat(n.Token.Value, 64)
	if err != nil {
		// Out of range literals keep the infinity ParseFloat returns.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange || !math.IsInf(v, 0) {
			return nil, errorf(n, n.Token.Value, "invalid number")
		}
	}
	return &ast.NumberLiteral{Position: n.Pos, Value: v}, nil
}

func binary(n *cst.Node) (ast.Expression, error) {
	if len(n.Children) != 3 || n.Children[1].Rule != cst.RuleOp {
		return nil, errorf(n, "", "malformed binary expression")
	}
	opNode := n.Children[1]
	op, ok := ast.LookupOp(opNode.Token.Value)
	if !ok {
		return nil, errorf(opNode, opNode.Token.Value, "unknown operator")
	}

	left, err := buildExpr(n.Children[0])
	if err != nil {
		return nil, err
	}
	right, err := buildExpr(n.Children[2])
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOperation{Position: n.Pos, Op: op, Left: left, Right: right}, nil
}

func call(n *cst.Node) (ast.Expression, error) {
	if len(n.Children) == 0 || n.Children[0].Rule != cst.RuleIdent {
		return nil, errorf(n, "", "call without a function name")
	}
	args, err := buildExprs(n.Children[1:])
	if err != nil {
		return nil, err
	}
	return &ast.FunctionCall{
		Position:  n.Pos,
		Name:      identifier(n.Children[0]),
		Arguments: args,
	}, nil
}

func aliased(n *cst.Node) (ast.Expression, error) {
	if len(n.Children) != 2 || n.Children[1].Rule != cst.RuleIdent {
		return nil, errorf(n, "", "malformed alias")
	}
	expr, err := buildExpr(n.Children[0])
	if err != nil {
		return nil, err
	}
	return &ast.AliasedExpression{
		Position: n.Pos,
		Expr:     expr,
		Alias:    identifier(n.Children[1]),
	}, nil
}
