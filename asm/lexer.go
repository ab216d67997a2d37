package asm

import (
	"math"
	"strconv"
	"strings"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

// Lexer splits source text into tokens on demand. It scans forward only,
// and after an error token it only returns end of input.
type Lexer struct {
	input []byte
	pos   int
	line  int
	done  bool
}

// NewLexer creates a lexer positioned at the first line of input.
func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Line returns the current line number.
func (lex *Lexer) Line() int {
	return lex.line
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

var escapes = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'e':  0x1b,
}

// ParseRegister decodes a register name, including the sp, wsp, xzr, wzr,
// lr and fp aliases.
func ParseRegister(name string) (reg Register, ok bool) {
	name = strings.ToLower(name)
	switch name {
	case "sp":
		return Register{Index: arm64.REG_SP, Wide: true, SP: true}, true
	case "wsp":
		return Register{Index: arm64.REG_SP, SP: true}, true
	case "xzr":
		return Register{Index: arm64.REG_ZR, Wide: true}, true
	case "wzr":
		return Register{Index: arm64.REG_ZR}, true
	case "lr":
		return Register{Index: arm64.REG_LR, Wide: true}, true
	case "fp":
		return Register{Index: arm64.REG_FP, Wide: true}, true
	}

	if len(name) < 2 || (name[0] != 'x' && name[0] != 'w') {
		return
	}
	digits := name[1:]
	if len(digits) > 1 && digits[0] == '0' {
		return
	}
	for n := range len(digits) {
		if !isDigit(digits[n]) {
			return
		}
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index > 30 {
		return
	}

	reg = Register{Index: arm64.Reg(index), Wide: name[0] == 'x'}
	ok = true
	return
}

func (lex *Lexer) peekByte(offset int) byte {
	if lex.pos+offset >= len(lex.input) {
		return 0
	}
	return lex.input[lex.pos+offset]
}

func (lex *Lexer) fail(tok Token, err error) Token {
	tok.Kind = TOKEN_ERROR
	tok.Err = err
	lex.done = true
	return tok
}

// Next returns the next token.
func (lex *Lexer) Next() (tok Token) {
	for {
		tok = Token{Line: lex.line}

		if lex.done {
			tok.Kind = TOKEN_EOF
			return
		}

		for lex.pos < len(lex.input) {
			c := lex.input[lex.pos]
			if c != ' ' && c != '\t' && c != '\r' && c != '\f' && c != '\v' {
				break
			}
			lex.pos++
		}

		if lex.pos >= len(lex.input) {
			lex.done = true
			tok.Kind = TOKEN_EOF
			return
		}

		c := lex.input[lex.pos]

		// Comments run to, but do not include, the end of the line.
		if c == ';' || (c == '/' && lex.peekByte(1) == '/') {
			for lex.pos < len(lex.input) && lex.input[lex.pos] != '\n' {
				lex.pos++
			}
			continue
		}

		switch {
		case c == '\n':
			lex.pos++
			lex.line++
			tok.Kind = TOKEN_NEWLINE
			tok.Text = "\n"
		case c == ',':
			tok = lex.single(tok, TOKEN_COMMA)
		case c == ':':
			tok = lex.single(tok, TOKEN_COLON)
		case c == '#':
			tok = lex.single(tok, TOKEN_HASH)
		case c == '[':
			tok = lex.single(tok, TOKEN_LBRACKET)
		case c == ']':
			tok = lex.single(tok, TOKEN_RBRACKET)
		case c == '!':
			tok = lex.single(tok, TOKEN_BANG)
		case c == '-' && isDigit(lex.peekByte(1)):
			tok = lex.number(tok)
		case c == '-':
			tok = lex.single(tok, TOKEN_MINUS)
		case isDigit(c):
			tok = lex.number(tok)
		case c == '\'':
			tok = lex.character(tok)
		case c == '"':
			tok = lex.quoted(tok)
		case c == '$' && lex.peekByte(1) == '(':
			tok = lex.expression(tok)
		case c == '.' && isIdentChar(lex.peekByte(1)):
			start := lex.pos
			lex.pos++
			for lex.pos < len(lex.input) && isIdentChar(lex.input[lex.pos]) {
				lex.pos++
			}
			tok.Kind = TOKEN_DIRECTIVE
			tok.Text = string(lex.input[start:lex.pos])
		case isIdentStart(c):
			tok = lex.identifier(tok)
		default:
			tok.Text = string(c)
			tok = lex.fail(tok, ErrCharacter(rune(c)))
		}

		return
	}
}

func (lex *Lexer) single(tok Token, kind TokenKind) Token {
	tok.Kind = kind
	tok.Text = string(lex.input[lex.pos])
	lex.pos++
	return tok
}

func (lex *Lexer) identifier(tok Token) Token {
	start := lex.pos
	for lex.pos < len(lex.input) && isIdentChar(lex.input[lex.pos]) {
		lex.pos++
	}

	// b.<cond> is a single mnemonic.
	if lex.pos-start == 1 && (lex.input[start]|0x20) == 'b' &&
		lex.peekByte(0) == '.' && isIdentStart(lex.peekByte(1)) {
		lex.pos++
		for lex.pos < len(lex.input) && isIdentChar(lex.input[lex.pos]) {
			lex.pos++
		}
	}

	tok.Text = string(lex.input[start:lex.pos])
	reg, ok := ParseRegister(tok.Text)
	if ok {
		tok.Kind = TOKEN_REGISTER
		tok.Register = reg
		return tok
	}

	tok.Kind = TOKEN_IDENT
	return tok
}

func (lex *Lexer) number(tok Token) Token {
	start := lex.pos
	negative := false
	if lex.input[lex.pos] == '-' {
		negative = true
		lex.pos++
	}

	base := 10
	if lex.input[lex.pos] == '0' {
		switch lex.peekByte(1) {
		case 'x', 'X':
			base = 16
			lex.pos += 2
		case 'b', 'B':
			base = 2
			lex.pos += 2
		}
	}

	body := lex.pos
	for lex.pos < len(lex.input) && isIdentChar(lex.input[lex.pos]) {
		lex.pos++
	}

	tok.Text = string(lex.input[start:lex.pos])
	digits := string(lex.input[body:lex.pos])
	if len(digits) == 0 {
		return lex.fail(tok, ErrLiteral(tok.Text))
	}

	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return lex.fail(tok, ErrLiteral(tok.Text))
	}

	switch {
	case negative && value > 1<<63:
		return lex.fail(tok, ErrLiteral(tok.Text))
	case negative:
		tok.Value = -int64(value)
	case base == 10 && value > math.MaxInt64:
		return lex.fail(tok, ErrLiteral(tok.Text))
	default:
		tok.Value = int64(value)
	}

	tok.Kind = TOKEN_NUMBER
	return tok
}

// escaped decodes one, possibly escaped, character of a quoted literal.
func (lex *Lexer) escaped() (c byte, ok bool) {
	if lex.pos >= len(lex.input) || lex.input[lex.pos] == '\n' {
		return
	}
	c = lex.input[lex.pos]
	lex.pos++
	if c != '\\' {
		ok = true
		return
	}
	if lex.pos >= len(lex.input) {
		return
	}
	c, ok = escapes[lex.input[lex.pos]]
	lex.pos++
	return
}

func (lex *Lexer) character(tok Token) Token {
	start := lex.pos
	lex.pos++

	if lex.peekByte(0) == '\'' {
		lex.pos++
		tok.Text = string(lex.input[start:lex.pos])
		return lex.fail(tok, ErrLiteral(tok.Text))
	}

	c, ok := lex.escaped()
	if !ok || lex.peekByte(0) != '\'' {
		tok.Text = string(lex.input[start:lex.pos])
		return lex.fail(tok, ErrLiteral(tok.Text))
	}
	lex.pos++

	tok.Kind = TOKEN_NUMBER
	tok.Text = string(lex.input[start:lex.pos])
	tok.Value = int64(c)
	return tok
}

func (lex *Lexer) quoted(tok Token) Token {
	lex.pos++

	var text strings.Builder
	for {
		if lex.pos >= len(lex.input) || lex.input[lex.pos] == '\n' {
			tok.Text = text.String()
			return lex.fail(tok, ErrStringUnterminated)
		}
		if lex.input[lex.pos] == '"' {
			lex.pos++
			break
		}
		if lex.input[lex.pos] == '\\' && lex.peekByte(1) != 0 {
			if _, ok := escapes[lex.peekByte(1)]; !ok {
				tok.Text = text.String()
				return lex.fail(tok, ErrLiteral(string(lex.input[lex.pos:lex.pos+2])))
			}
		}
		c, ok := lex.escaped()
		if !ok {
			tok.Text = text.String()
			return lex.fail(tok, ErrStringUnterminated)
		}
		text.WriteByte(c)
	}

	tok.Kind = TOKEN_STRING
	tok.Text = text.String()
	return tok
}

func (lex *Lexer) expression(tok Token) Token {
	lex.pos += 2
	start := lex.pos
	depth := 1
	for depth > 0 {
		if lex.pos >= len(lex.input) || lex.input[lex.pos] == '\n' {
			tok.Text = string(lex.input[start:lex.pos])
			return lex.fail(tok, ErrExpressionUnterminated)
		}
		switch lex.input[lex.pos] {
		case '(':
			depth++
		case ')':
			depth--
		}
		lex.pos++
	}

	tok.Kind = TOKEN_EXPR
	tok.Text = string(lex.input[start : lex.pos-1])
	return tok
}
