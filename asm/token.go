package asm

import (
	"strings"
)

// TokenKind classifies a lexeme.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_EOF       = TokenKind(0)  // end of input
	TOKEN_NEWLINE   = TokenKind(1)  // newline
	TOKEN_IDENT     = TokenKind(2)  // identifier
	TOKEN_REGISTER  = TokenKind(3)  // register
	TOKEN_NUMBER    = TokenKind(4)  // number
	TOKEN_STRING    = TokenKind(5)  // string
	TOKEN_DIRECTIVE = TokenKind(6)  // directive
	TOKEN_EXPR      = TokenKind(7)  // expression
	TOKEN_COLON     = TokenKind(8)  // ':'
	TOKEN_COMMA     = TokenKind(9)  // ','
	TOKEN_HASH      = TokenKind(10) // '#'
	TOKEN_LBRACKET  = TokenKind(11) // '['
	TOKEN_RBRACKET  = TokenKind(12) // ']'
	TOKEN_BANG      = TokenKind(13) // '!'
	TOKEN_MINUS     = TokenKind(14) // '-'
	TOKEN_ERROR     = TokenKind(15) // error
)

// Token is a single lexeme. Value is set for numbers and characters,
// Register for registers, and Err for error tokens. For strings and
// expressions Text is the decoded content without delimiters.
type Token struct {
	Kind     TokenKind
	Line     int
	Text     string
	Value    int64
	Register Register
	Err      error
}

// Is reports if the token is an identifier with the given lower case name.
func (tok Token) Is(name string) bool {
	return tok.Kind == TOKEN_IDENT && strings.ToLower(tok.Text) == name
}

// Terminal is true for the tokens that end a statement.
func (tok Token) Terminal() bool {
	return tok.Kind == TOKEN_NEWLINE || tok.Kind == TOKEN_EOF
}
