// Package token defines constants representing the lexical tokens of the
// sqltree query language.
package token

import "fmt"

// Token represents a lexical token.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF

	// Literals
	NAME   // identifiers
	NUMBER // integer or decimal literals
	STRING // single-quoted literals

	// Operators
	PLUS      // +
	MINUS     // -
	ASTERISK  // *
	SLASH     // /
	AMPERSAND // &
	PIPE      // |
	EQ        // =
	NEQ       // <>
	LT        // <
	GT        // >
	LTE       // <=
	GTE       // >=

	// Delimiters
	LPAREN // (
	RPAREN // )
	COMMA  // ,

	// Keywords
	keyword_beg
	AND
	AS
	BY
	FROM
	GROUP
	HAVING
	OR
	ORDER
	SELECT
	WHERE
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	NAME:   "NAME",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	AMPERSAND: "&",
	PIPE:      "|",
	EQ:        "=",
	NEQ:       "<>",
	LT:        "<",
	GT:        ">",
	LTE:       "<=",
	GTE:       ">=",

	LPAREN: "(",
	RPAREN: ")",
	COMMA:  ",",

	AND:    "AND",
	AS:     "AS",
	BY:     "BY",
	FROM:   "FROM",
	GROUP:  "GROUP",
	HAVING: "HAVING",
	OR:     "OR",
	ORDER:  "ORDER",
	SELECT: "SELECT",
	WHERE:  "WHERE",
}

func (tok Token) String() string {
	if tok >= 0 && int(tok) < len(tokens) {
		return tokens[tok]
	}
	return ""
}

// Keywords maps upper-cased keyword strings to their token types. It is
// filled once in init and only read afterwards.
var Keywords map[string]Token

func init() {
	Keywords = make(map[string]Token)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		Keywords[tokens[i]] = i
	}
}

// Lookup returns the token type for an upper-cased identifier string.
// If the string is a keyword, it returns the keyword token.
// Otherwise, it returns NAME.
func Lookup(ident string) Token {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return NAME
}

// IsKeyword returns true if the token is a keyword.
func (tok Token) IsKeyword() bool {
	return tok > keyword_beg && tok < keyword_end
}

// IsOperator returns true if the token is one of the operator symbols.
func (tok Token) IsOperator() bool {
	return tok >= PLUS && tok <= GTE
}

// Position represents a source position.
type Position struct {
	Offset int // byte offset
	Line   int // line number (1-based)
	Column int // column number (1-based)
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}
