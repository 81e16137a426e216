// Package cst defines the concrete syntax tree produced by the parser.
//
// A parse tree node is tagged with the grammar production that produced it.
// Leaves carry the token they were built from. The tree is converted into
// typed ast nodes by a separate build step.
package cst

import (
	"fmt"
	"strings"

	"github.com/kyleconroy/sqltree/lexer"
	"github.com/kyleconroy/sqltree/token"
)

// Rule names the production a node was produced by.
type Rule int

const (
	RuleInvalid Rule = iota

	// Leaves
	RuleNum      // NUMBER
	RuleIdent    // NAME
	RuleString   // STRING
	RuleWildcard // "*" in operand position
	RuleOp       // operator token inside a binary node

	// Expressions
	RuleCall   // ident "(" args ")"
	RuleBinary // left op right
	RuleAsExpr // expr [AS] ident, "(" select ")" [AS] ident

	// Lists and clauses
	RuleExprList
	RuleWhereClause
	RuleGroupClause
	RuleHavingClause
	RuleOrderClause

	RuleSelect
)

var rules = [...]string{
	RuleInvalid:      "invalid",
	RuleNum:          "num",
	RuleIdent:        "ident",
	RuleString:       "string",
	RuleWildcard:     "wildcard",
	RuleOp:           "op",
	RuleCall:         "call",
	RuleBinary:       "binary",
	RuleAsExpr:       "as_expr",
	RuleExprList:     "expr_list",
	RuleWhereClause:  "where_clause",
	RuleGroupClause:  "group_clause",
	RuleHavingClause: "having_clause",
	RuleOrderClause:  "order_clause",
	RuleSelect:       "select",
}

func (r Rule) String() string {
	if r >= 0 && int(r) < len(rules) {
		return rules[r]
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// IsLeaf reports whether nodes of this rule wrap a single token.
func (r Rule) IsLeaf() bool {
	return r >= RuleNum && r <= RuleOp
}

// Node is one parse tree node. Leaf nodes have Token set and no children;
// inner nodes have Children in source order.
type Node struct {
	Rule     Rule
	Pos      token.Position
	Token    lexer.Item
	Children []*Node
}

// Leaf returns a leaf node for a token.
func Leaf(rule Rule, item lexer.Item) *Node {
	return &Node{Rule: rule, Pos: item.Pos, Token: item}
}

// Tree returns an inner node.
func Tree(rule Rule, pos token.Position, children ...*Node) *Node {
	return &Node{Rule: rule, Pos: pos, Children: children}
}

// Pretty returns an indented dump of the parse tree, one node per line.
func Pretty(n *Node) string {
	var sb strings.Builder
	pretty(&sb, n, 0)
	return sb.String()
}

func pretty(sb *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Rule.IsLeaf() {
		fmt.Fprintf(sb, "%s%s\t%s\n", indent, n.Rule, leafText(n))
		return
	}
	fmt.Fprintf(sb, "%s%s\n", indent, n.Rule)
	for _, c := range n.Children {
		pretty(sb, c, depth+1)
	}
}

func leafText(n *Node) string {
	if n.Rule == RuleString {
		return "'" + strings.ReplaceAll(n.Token.Value, "'", "''") + "'"
	}
	return n.Token.Value
}
