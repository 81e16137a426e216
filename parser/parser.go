// Package parser implements a parser for the sqltree query language.
//
// Parsing runs in two steps: the grammar produces a production-tagged parse
// tree (package cst), and a build step turns it into typed ast nodes.
// Parse runs both.
package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/kyleconroy/sqltree/ast"
	"github.com/kyleconroy/sqltree/cst"
	"github.com/kyleconroy/sqltree/internal/build"
	"github.com/kyleconroy/sqltree/lexer"
	"github.com/kyleconroy/sqltree/token"
)

// ParseError reports a token that does not fit the grammar at its position.
type ParseError struct {
	Pos      token.Position
	Expected []string
	Found    string
}

func (e *ParseError) Error() string {
	quoted := make([]string, len(e.Expected))
	for i, want := range e.Expected {
		quoted[i] = quotePunct(want)
	}
	expected := strings.Join(quoted, ", ")
	if len(e.Expected) > 1 {
		expected = "one of " + expected
	}
	return fmt.Sprintf("parse error at %s: expected %s, got %s", e.Pos, expected, e.Found)
}

// quotePunct wraps delimiters such as "," in quotes so a list of them
// stays readable.
func quotePunct(s string) string {
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' {
			return s
		}
	}
	return "'" + s + "'"
}

// Parser parses sqltree queries.
type Parser struct {
	lexer   *lexer.Lexer
	current lexer.Item
	peek    lexer.Item
	err     error

	// follow lists the clause keywords that could still have continued the
	// most recently finished SELECT.
	follow []string
}

// New creates a new Parser from an io.Reader.
func New(r io.Reader) *Parser {
	p := &Parser{
		lexer: lexer.New(r),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
	if p.current.Token == token.ILLEGAL {
		p.fail(p.lexer.Err())
	}
}

func (p *Parser) currentIs(t token.Token) bool {
	return p.current.Token == t
}

func (p *Parser) peekIs(t token.Token) bool {
	return p.peek.Token == t
}

// fail records the first error; later ones are dropped.
func (p *Parser) fail(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}

func (p *Parser) errorf(expected ...string) {
	p.fail(&ParseError{
		Pos:      p.current.Pos,
		Expected: expected,
		Found:    describe(p.current),
	})
}

func (p *Parser) expect(t token.Token) bool {
	if p.currentIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(t.String())
	return false
}

// expectEnd checks for the token closing a SELECT. The error lists the
// clauses that could still have followed.
func (p *Parser) expectEnd(t token.Token) bool {
	if p.currentIs(t) {
		if t != token.EOF {
			p.nextToken()
		}
		return true
	}
	expected := append(append([]string(nil), p.follow...), t.String())
	p.errorf(expected...)
	return false
}

func describe(item lexer.Item) string {
	switch item.Token {
	case token.NAME:
		return fmt.Sprintf("NAME %q", item.Value)
	case token.NUMBER:
		return "NUMBER " + item.Value
	case token.STRING:
		return "STRING '" + strings.ReplaceAll(item.Value, "'", "''") + "'"
	case token.ILLEGAL:
		return fmt.Sprintf("illegal input %q", item.Value)
	}
	return item.Token.String()
}

// Parse parses a single SELECT statement and builds its AST. Parsing is
// all-or-nothing: on error no tree is returned.
func Parse(ctx context.Context, r io.Reader) (*ast.SelectStatement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := ParseTree(r)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return build.Build(tree)
}

// ParseString parses a query held in memory.
func ParseString(query string) (*ast.SelectStatement, error) {
	return Parse(context.Background(), strings.NewReader(query))
}

// ParseFile parses the query stored in the named file.
func ParseFile(ctx context.Context, path string) (*ast.SelectStatement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(ctx, f)
}

// ParseTree parses a single SELECT statement into its parse tree without
// building the AST.
func ParseTree(r io.Reader) (*cst.Node, error) {
	p := New(r)
	return p.ParseStatement()
}

// ParseStatement parses one SELECT statement followed by the end of input.
func (p *Parser) ParseStatement() (*cst.Node, error) {
	stmt := p.parseSelect()
	if stmt != nil {
		p.expectEnd(token.EOF)
	}
	if p.err != nil {
		return nil, p.err
	}
	return stmt, nil
}

// parseSelect parses
//
//	SELECT as_expr_list FROM source [WHERE expr] [GROUP BY expr_list]
//	       [HAVING expr] [ORDER BY expr_list]
//
// Absent clauses become clause nodes without children.
func (p *Parser) parseSelect() *cst.Node {
	pos := p.current.Pos
	if !p.expect(token.SELECT) {
		return nil
	}

	columns := p.parseAsExprList()
	if columns == nil {
		return nil
	}

	if !p.currentIs(token.FROM) {
		p.errorf(selectListFollow(columns)...)
		return nil
	}
	p.nextToken()

	source := p.parseSource()
	if source == nil {
		return nil
	}

	where := p.parseExprClause(token.WHERE, cst.RuleWhereClause)
	groupBy := p.parseListClause(token.GROUP, cst.RuleGroupClause)
	having := p.parseExprClause(token.HAVING, cst.RuleHavingClause)
	orderBy := p.parseListClause(token.ORDER, cst.RuleOrderClause)
	if p.err != nil {
		return nil
	}

	p.follow = p.follow[:0]
	for _, c := range []struct {
		clause  *cst.Node
		keyword token.Token
	}{
		{where, token.WHERE},
		{groupBy, token.GROUP},
		{having, token.HAVING},
		{orderBy, token.ORDER},
	} {
		if len(c.clause.Children) > 0 {
			p.follow = p.follow[:0]
			continue
		}
		p.follow = append(p.follow, c.keyword.String())
	}

	return cst.Tree(cst.RuleSelect, pos, columns, source, where, groupBy, having, orderBy)
}

// selectListFollow lists what could have come after the last select list
// item. An unaliased item could still have been extended or aliased.
func selectListFollow(columns *cst.Node) []string {
	last := columns.Children[len(columns.Children)-1]
	if last.Rule == cst.RuleAsExpr {
		return []string{token.COMMA.String(), token.FROM.String()}
	}
	return []string{"operator", token.AS.String(), "alias", token.COMMA.String(), token.FROM.String()}
}

// parseSource parses the FROM target: a table name or a parenthesized
// sub-select.
func (p *Parser) parseSource() *cst.Node {
	switch {
	case p.currentIs(token.NAME):
		leaf := cst.Leaf(cst.RuleIdent, p.current)
		p.nextToken()
		return leaf
	case p.currentIs(token.LPAREN) && p.peekIs(token.SELECT):
		return p.parseSubselect()
	}
	p.errorf("table name", "(")
	return nil
}

// parseSubselect parses "(" select ")". The current token is "(".
func (p *Parser) parseSubselect() *cst.Node {
	p.nextToken() // skip (
	sub := p.parseSelect()
	if sub == nil || !p.expectEnd(token.RPAREN) {
		return nil
	}
	return sub
}

func (p *Parser) parseExprClause(keyword token.Token, rule cst.Rule) *cst.Node {
	pos := p.current.Pos
	if p.err != nil || !p.currentIs(keyword) {
		return cst.Tree(rule, pos)
	}
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return cst.Tree(rule, pos)
	}
	return cst.Tree(rule, pos, expr)
}

func (p *Parser) parseListClause(keyword token.Token, rule cst.Rule) *cst.Node {
	pos := p.current.Pos
	if p.err != nil || !p.currentIs(keyword) {
		return cst.Tree(rule, pos)
	}
	p.nextToken()
	if !p.expect(token.BY) {
		return cst.Tree(rule, pos)
	}
	list := p.parseExpressionList()
	if list == nil {
		return cst.Tree(rule, pos)
	}
	return cst.Tree(rule, pos, list)
}
