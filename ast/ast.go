// Package ast defines the abstract syntax tree for sqltree queries.
//
// Nodes are created once by the build step and never mutated afterwards.
// Each node exclusively owns its children, so a tree is always acyclic.
package ast

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/kyleconroy/sqltree/token"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() token.Position
}

// Expression is the interface implemented by all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// -----------------------------------------------------------------------------
// Statements

// SelectStatement represents a SELECT statement. All four clauses are
// always present; an absent clause has no expressions.
type SelectStatement struct {
	Position token.Position  `json:"-"`
	Columns  *ExpressionList `json:"columns"`
	Source   Expression      `json:"source"` // *Identifier or *SelectStatement
	Where    *Clause         `json:"where"`
	GroupBy  *Clause         `json:"group_by"`
	Having   *Clause         `json:"having"`
	OrderBy  *Clause         `json:"order_by"`
}

func (s *SelectStatement) Pos() token.Position { return s.Position }
func (s *SelectStatement) expressionNode()     {}

// ExpressionList represents an ordered list of expressions, such as the
// select list.
type ExpressionList struct {
	Position token.Position `json:"-"`
	Exprs    []Expression   `json:"exprs"`
}

func (l *ExpressionList) Pos() token.Position { return l.Position }

// ClauseKind distinguishes the clauses of a SELECT statement.
type ClauseKind int

const (
	Where ClauseKind = iota
	GroupBy
	Having
	OrderBy
)

var clauseKeywords = [...]string{
	Where:   "where",
	GroupBy: "group by",
	Having:  "having",
	OrderBy: "order by",
}

func (k ClauseKind) String() string {
	if k >= 0 && int(k) < len(clauseKeywords) {
		return clauseKeywords[k]
	}
	return ""
}

// MarshalText encodes the clause kind as its keyword.
func (k ClauseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Clause represents a WHERE, GROUP BY, HAVING or ORDER BY clause.
type Clause struct {
	Position token.Position `json:"-"`
	Kind     ClauseKind     `json:"kind"`
	Exprs    []Expression   `json:"exprs"`
}

func (c *Clause) Pos() token.Position { return c.Position }

// Empty reports whether the clause was absent from the query.
func (c *Clause) Empty() bool { return len(c.Exprs) == 0 }

// -----------------------------------------------------------------------------
// Expressions

// NumberLiteral represents a numeric literal.
type NumberLiteral struct {
	Position token.Position `json:"-"`
	Value    float64        `json:"value"`
}

func (n *NumberLiteral) Pos() token.Position { return n.Position }
func (n *NumberLiteral) expressionNode()     {}

// MarshalJSON handles special float values (+Inf, -Inf) that JSON doesn't support.
func (n *NumberLiteral) MarshalJSON() ([]byte, error) {
	type numberAlias NumberLiteral
	if math.IsInf(n.Value, 0) {
		v := "+Inf"
		if math.IsInf(n.Value, -1) {
			v = "-Inf"
		}
		return json.Marshal(&struct {
			*numberAlias
			Value string `json:"value"`
		}{
			numberAlias: (*numberAlias)(n),
			Value:       v,
		})
	}
	return json.Marshal((*numberAlias)(n))
}

// Wildcard is the name of the identifier produced by * in operand position.
const Wildcard = "*"

// Identifier represents a column, table or function name. Quoted string
// literals are identifiers with Quoted set.
type Identifier struct {
	Position token.Position `json:"-"`
	Name     string         `json:"name"`
	Quoted   bool           `json:"quoted,omitempty"`
}

func (i *Identifier) Pos() token.Position { return i.Position }
func (i *Identifier) expressionNode()     {}

// IsWildcard reports whether the identifier is the * column list.
func (i *Identifier) IsWildcard() bool { return !i.Quoted && i.Name == Wildcard }

// BinaryOperation represents a binary expression.
type BinaryOperation struct {
	Position token.Position `json:"-"`
	Op       Op             `json:"op"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func (b *BinaryOperation) Pos() token.Position { return b.Position }
func (b *BinaryOperation) expressionNode()     {}

// FunctionCall represents a function call.
type FunctionCall struct {
	Position  token.Position `json:"-"`
	Name      *Identifier    `json:"name"`
	Arguments []Expression   `json:"arguments"`
}

func (f *FunctionCall) Pos() token.Position { return f.Position }
func (f *FunctionCall) expressionNode()     {}

// AliasedExpression represents an expression with an alias. Expr may be a
// *SelectStatement for an aliased sub-select.
type AliasedExpression struct {
	Position token.Position `json:"-"`
	Expr     Expression     `json:"expr"`
	Alias    *Identifier    `json:"alias"`
}

func (a *AliasedExpression) Pos() token.Position { return a.Position }
func (a *AliasedExpression) expressionNode()     {}

// -----------------------------------------------------------------------------
// Operators

// Op is a binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpGt
	OpGe
	OpLt
	OpLe
	OpEq
	OpNeq
	OpAnd
	OpOr
)

var ops = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpGt:  ">",
	OpGe:  ">=",
	OpLt:  "<",
	OpLe:  "<=",
	OpEq:  "=",
	OpNeq: "<>",
	OpAnd: "and",
	OpOr:  "or",
}

// opLookup maps the lower-cased operator text to its Op.
var opLookup = map[string]Op{
	"+":   OpAdd,
	"-":   OpSub,
	"*":   OpMul,
	"/":   OpDiv,
	">":   OpGt,
	">=":  OpGe,
	"<":   OpLt,
	"<=":  OpLe,
	"=":   OpEq,
	"<>":  OpNeq,
	"and": OpAnd,
	"or":  OpOr,
}

// LookupOp returns the operator for its source text, ignoring case.
func LookupOp(s string) (Op, bool) {
	op, ok := opLookup[strings.ToLower(s)]
	return op, ok
}

func (op Op) String() string {
	if op >= 0 && int(op) < len(ops) {
		return ops[op]
	}
	return ""
}

// MarshalText encodes the operator as its symbol.
func (op Op) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// Precedence returns the binding strength of the operator; higher binds
// tighter.
func (op Op) Precedence() int {
	switch op {
	case OpOr:
		return 1
	case OpAnd:
		return 2
	case OpGt, OpGe, OpLt, OpLe, OpEq, OpNeq:
		return 3
	case OpAdd, OpSub:
		return 4
	case OpMul, OpDiv:
		return 5
	}
	return 0
}
