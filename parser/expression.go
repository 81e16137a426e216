package parser

import (
	"github.com/kyleconroy/sqltree/cst"
	"github.com/kyleconroy/sqltree/token"
)

// Operator precedence levels
const (
	LOWEST   = iota
	OR_PREC  // OR
	AND_PREC // AND
	COMPARE  // =, <>, <, >, <=, >=
	ADD_PREC // +, -
	MUL_PREC // *, /
)

// precedences is read-only after package initialization.
// Tokens without an entry do not continue an expression.
var precedences = map[token.Token]int{
	token.OR:       OR_PREC,
	token.AND:      AND_PREC,
	token.EQ:       COMPARE,
	token.NEQ:      COMPARE,
	token.LT:       COMPARE,
	token.GT:       COMPARE,
	token.LTE:      COMPARE,
	token.GTE:      COMPARE,
	token.PLUS:     ADD_PREC,
	token.MINUS:    ADD_PREC,
	token.ASTERISK: MUL_PREC,
	token.SLASH:    MUL_PREC,
}

func (p *Parser) precedence(tok token.Token) int {
	if prec, ok := precedences[tok]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression parses operators that bind tighter than precedence.
// Operators of equal precedence are left to the caller, which makes every
// level left-associative.
func (p *Parser) parseExpression(precedence int) *cst.Node {
	left := p.parseOperand()
	if left == nil {
		return nil
	}

	for precedence < p.precedence(p.current.Token) {
		left = p.parseBinary(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseBinary(left *cst.Node) *cst.Node {
	op := cst.Leaf(cst.RuleOp, p.current)
	prec := p.precedence(p.current.Token)
	p.nextToken()

	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return cst.Tree(cst.RuleBinary, op.Pos, left, op, right)
}

// parseOperand parses the innermost level of the ladder: a literal, a name,
// a call, the wildcard, or a parenthesized additive expression.
func (p *Parser) parseOperand() *cst.Node {
	if p.err != nil {
		return nil
	}
	switch p.current.Token {
	case token.NUMBER:
		return p.leaf(cst.RuleNum)
	case token.STRING:
		return p.leaf(cst.RuleString)
	case token.ASTERISK:
		return p.leaf(cst.RuleWildcard)
	case token.NAME:
		if p.peekIs(token.LPAREN) {
			return p.parseCall()
		}
		return p.leaf(cst.RuleIdent)
	case token.LPAREN:
		p.nextToken()
		// Only additive expressions may be grouped; comparisons and logical
		// operators end the group.
		expr := p.parseExpression(COMPARE)
		if expr == nil || !p.expect(token.RPAREN) {
			return nil
		}
		return expr
	}
	p.errorf("expression")
	return nil
}

func (p *Parser) leaf(rule cst.Rule) *cst.Node {
	n := cst.Leaf(rule, p.current)
	p.nextToken()
	return n
}

// parseCall parses name "(" [expr ("," expr)*] ")". The current token is
// the name.
func (p *Parser) parseCall() *cst.Node {
	name := p.leaf(cst.RuleIdent)
	p.nextToken() // skip (

	children := []*cst.Node{name}
	if p.currentIs(token.RPAREN) {
		p.nextToken()
		return cst.Tree(cst.RuleCall, name.Pos, children...)
	}

	for {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		children = append(children, arg)
		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.currentIs(token.RPAREN) {
		p.errorf(",", ")")
		return nil
	}
	p.nextToken()
	return cst.Tree(cst.RuleCall, name.Pos, children...)
}

// parseExpressionList parses expr ("," expr)*.
func (p *Parser) parseExpressionList() *cst.Node {
	pos := p.current.Pos
	var exprs []*cst.Node
	for {
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		exprs = append(exprs, expr)
		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	return cst.Tree(cst.RuleExprList, pos, exprs...)
}

// parseAsExprList parses the select list: as_expr ("," as_expr)*.
func (p *Parser) parseAsExprList() *cst.Node {
	pos := p.current.Pos
	var items []*cst.Node
	for {
		item := p.parseAsExpr()
		if item == nil {
			return nil
		}
		items = append(items, item)
		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	return cst.Tree(cst.RuleExprList, pos, items...)
}

// parseAsExpr parses one select list item:
//
//	expr [[AS] name]
//	"(" select ")" [AS] name
func (p *Parser) parseAsExpr() *cst.Node {
	pos := p.current.Pos
	if p.currentIs(token.LPAREN) && p.peekIs(token.SELECT) {
		sub := p.parseSubselect()
		if sub == nil {
			return nil
		}
		alias := p.parseAlias(true)
		if alias == nil {
			return nil
		}
		return cst.Tree(cst.RuleAsExpr, pos, sub, alias)
	}

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	alias := p.parseAlias(false)
	if alias == nil {
		if p.err != nil {
			return nil
		}
		return expr
	}
	return cst.Tree(cst.RuleAsExpr, pos, expr, alias)
}

// parseAlias parses [AS] name. Without AS, any bare name is taken as the
// alias; keywords never are, since they lex as their own tokens.
func (p *Parser) parseAlias(required bool) *cst.Node {
	if p.currentIs(token.AS) {
		p.nextToken()
		if !p.currentIs(token.NAME) {
			p.errorf("alias")
			return nil
		}
		return p.leaf(cst.RuleIdent)
	}
	if p.currentIs(token.NAME) {
		return p.leaf(cst.RuleIdent)
	}
	if required {
		p.errorf("AS", "alias")
	}
	return nil
}
