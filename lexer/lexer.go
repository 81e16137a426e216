// Package lexer implements a lexer for the sqltree query language.
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kyleconroy/sqltree/token"
)

// LexError reports input that does not form a token.
type LexError struct {
	Pos token.Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Msg)
}

// Lexer tokenizes query input.
type Lexer struct {
	reader *bufio.Reader
	ch     rune // current character
	width  int  // byte width of ch
	pos    token.Position
	eof    bool
	err    *LexError
}

// Item represents a lexical token with its value and position.
type Item struct {
	Token token.Token
	Value string
	Pos   token.Position
}

// New creates a new Lexer from an io.Reader.
func New(r io.Reader) *Lexer {
	l := &Lexer{
		reader: bufio.NewReader(r),
		pos:    token.Position{Offset: 0, Line: 1, Column: 0},
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.eof {
		l.ch = 0
		return
	}

	// Advance past the character we are leaving.
	l.pos.Offset += l.width
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}

	r, size, err := l.reader.ReadRune()
	if err != nil {
		l.ch = 0
		l.width = 0
		l.eof = true
		return
	}
	l.ch = r
	l.width = size
}

func (l *Lexer) peekChar() rune {
	if l.eof {
		return 0
	}
	bytes, _ := l.reader.Peek(utf8.UTFMax)
	if len(bytes) == 0 {
		return 0
	}
	r, _ := utf8.DecodeRune(bytes)
	return r
}

func (l *Lexer) skipWhitespace() {
	for !l.eof && (unicode.IsSpace(l.ch) || l.ch == '\uFEFF') {
		l.readChar()
	}
}

// Err returns the error behind the last ILLEGAL item, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

func (l *Lexer) illegal(pos token.Position, value, msg string) Item {
	if l.err == nil {
		l.err = &LexError{Pos: pos, Msg: msg}
	}
	return Item{Token: token.ILLEGAL, Value: value, Pos: pos}
}

// NextToken returns the next token from the input. Comments are consumed
// and never returned.
func (l *Lexer) NextToken() Item {
	for {
		l.skipWhitespace()

		pos := l.pos
		if l.eof {
			return Item{Token: token.EOF, Value: "", Pos: pos}
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			if !l.skipBlockComment() {
				return l.illegal(pos, "/*", "unterminated block comment")
			}
			continue
		}

		return l.readToken(pos)
	}
}

func (l *Lexer) readToken(pos token.Position) Item {
	switch l.ch {
	case '+':
		l.readChar()
		return Item{Token: token.PLUS, Value: "+", Pos: pos}
	case '-':
		l.readChar()
		return Item{Token: token.MINUS, Value: "-", Pos: pos}
	case '*':
		l.readChar()
		return Item{Token: token.ASTERISK, Value: "*", Pos: pos}
	case '/':
		l.readChar()
		return Item{Token: token.SLASH, Value: "/", Pos: pos}
	case '&':
		l.readChar()
		return Item{Token: token.AMPERSAND, Value: "&", Pos: pos}
	case '|':
		l.readChar()
		return Item{Token: token.PIPE, Value: "|", Pos: pos}
	case '=':
		l.readChar()
		return Item{Token: token.EQ, Value: "=", Pos: pos}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			l.readChar()
			return Item{Token: token.LTE, Value: "<=", Pos: pos}
		case '>':
			l.readChar()
			l.readChar()
			return Item{Token: token.NEQ, Value: "<>", Pos: pos}
		}
		l.readChar()
		return Item{Token: token.LT, Value: "<", Pos: pos}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Item{Token: token.GTE, Value: ">=", Pos: pos}
		}
		l.readChar()
		return Item{Token: token.GT, Value: ">", Pos: pos}
	case '(':
		l.readChar()
		return Item{Token: token.LPAREN, Value: "(", Pos: pos}
	case ')':
		l.readChar()
		return Item{Token: token.RPAREN, Value: ")", Pos: pos}
	case ',':
		l.readChar()
		return Item{Token: token.COMMA, Value: ",", Pos: pos}
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
	case '\'':
		return l.readString()
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier()
		}
	}
	ch := l.ch
	l.readChar()
	return l.illegal(pos, string(ch), fmt.Sprintf("unexpected character %q", ch))
}

func (l *Lexer) skipLineComment() {
	for !l.eof && l.ch != '\n' {
		l.readChar()
	}
}

// skipBlockComment reports whether the closing */ was found.
func (l *Lexer) skipBlockComment() bool {
	// Skip /*
	l.readChar()
	l.readChar()

	for !l.eof {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
	return false
}

func (l *Lexer) readString() Item {
	pos := l.pos
	var sb strings.Builder
	l.readChar() // skip opening quote

	for !l.eof {
		if l.ch == '\'' {
			// '' inside a literal is one quote
			if l.peekChar() == '\'' {
				sb.WriteRune('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return Item{Token: token.STRING, Value: sb.String(), Pos: pos}
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return l.illegal(pos, "'"+sb.String(), "unterminated string literal")
}

func (l *Lexer) readNumber() Item {
	pos := l.pos
	var sb strings.Builder

	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	// 1. and 1.5 are both decimals
	if l.ch == '.' {
		sb.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			sb.WriteRune(l.ch)
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				sb.WriteRune(l.ch)
				l.readChar()
			}
			if !isDigit(l.ch) {
				return l.illegal(pos, sb.String(), "malformed exponent in number")
			}
			for isDigit(l.ch) {
				sb.WriteRune(l.ch)
				l.readChar()
			}
		}
	}

	// 1e and 2x are not a number followed by an alias
	if isIdentStart(l.ch) {
		for isIdentChar(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.illegal(pos, sb.String(), fmt.Sprintf("malformed number %q", sb.String()))
	}

	return Item{Token: token.NUMBER, Value: sb.String(), Pos: pos}
}

func (l *Lexer) readIdentifier() Item {
	pos := l.pos
	var sb strings.Builder

	for isIdentChar(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	ident := sb.String()
	return Item{Token: lookupIdent(ident), Value: ident, Pos: pos}
}

// lookupIdent matches keywords case-insensitively over ASCII only, so
// lookalikes such as "ſelect" stay names.
func lookupIdent(ident string) token.Token {
	for i := 0; i < len(ident); i++ {
		if ident[i] >= utf8.RuneSelf {
			return token.NAME
		}
	}
	return token.Lookup(strings.ToUpper(ident))
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentChar(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Tokenize returns all tokens from the reader, ending with EOF. It stops at
// the first illegal token and returns its *LexError.
func Tokenize(r io.Reader) ([]Item, error) {
	l := New(r)
	var items []Item
	for {
		item := l.NextToken()
		if item.Token == token.ILLEGAL {
			return nil, l.Err()
		}
		items = append(items, item)
		if item.Token == token.EOF {
			break
		}
	}
	return items, nil
}
