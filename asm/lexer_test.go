package asm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(text string) (toks []Token) {
	lex := NewLexer([]byte(text))
	for {
		tok := lex.Next()
		toks = append(toks, tok)
		if tok.Kind == TOKEN_EOF {
			return
		}
	}
}

func lexKinds(text string) (kinds []TokenKind) {
	for _, tok := range lexAll(text) {
		kinds = append(kinds, tok.Kind)
	}
	return
}

func TestLexerStatement(t *testing.T) {
	assert := assert.New(t)

	kinds := lexKinds("loop: ldr x0, [sp, #-16]! ; comment\n")
	assert.Equal([]TokenKind{
		TOKEN_IDENT, TOKEN_COLON, TOKEN_IDENT, TOKEN_REGISTER, TOKEN_COMMA,
		TOKEN_LBRACKET, TOKEN_REGISTER, TOKEN_COMMA, TOKEN_HASH, TOKEN_NUMBER,
		TOKEN_RBRACKET, TOKEN_BANG, TOKEN_NEWLINE, TOKEN_EOF,
	}, kinds)

	kinds = lexKinds("// only a comment\n.data\nb.eq x // tail")
	assert.Equal([]TokenKind{
		TOKEN_NEWLINE, TOKEN_DIRECTIVE, TOKEN_NEWLINE, TOKEN_IDENT, TOKEN_IDENT, TOKEN_EOF,
	}, kinds)

	toks := lexAll("b.eq done\nmov x1, x2")
	assert.Equal("b.eq", toks[0].Text)
	assert.Equal(1, toks[0].Line)
	assert.Equal("mov", toks[3].Text)
	assert.Equal(2, toks[3].Line)

	// A minus not followed by a digit is punctuation.
	kinds = lexKinds("#-$(1)")
	assert.Equal([]TokenKind{TOKEN_HASH, TOKEN_MINUS, TOKEN_EXPR, TOKEN_EOF}, kinds)
}

func TestLexerNumbers(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text  string
		value int64
	}{
		{"0", 0},
		{"42", 42},
		{"-7", -7},
		{"0x10", 16},
		{"0XfF", 255},
		{"0b101", 5},
		{"-0x10", -16},
		{"0xffffffffffffffff", -1},
		{"9223372036854775807", 9223372036854775807},
		{"-9223372036854775808", -9223372036854775808},
		{"'a'", 'a'},
		{"'\\n'", '\n'},
		{"'\\0'", 0},
		{"'\\e'", 0x1b},
		{"'\\''", '\''},
	}

	for _, entry := range table {
		toks := lexAll(entry.text)
		if !assert.Equal(TOKEN_NUMBER, toks[0].Kind, entry.text) {
			continue
		}
		assert.Equal(entry.value, toks[0].Value, entry.text)
	}
}

func TestLexerRegisters(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		reg  Register
	}{
		{"x0", Register{Index: 0, Wide: true}},
		{"X30", Register{Index: 30, Wide: true}},
		{"w7", Register{Index: 7}},
		{"sp", Register{Index: 31, Wide: true, SP: true}},
		{"wsp", Register{Index: 31, SP: true}},
		{"xzr", Register{Index: 31, Wide: true}},
		{"WZR", Register{Index: 31}},
		{"lr", Register{Index: 30, Wide: true}},
		{"fp", Register{Index: 29, Wide: true}},
	}

	for _, entry := range table {
		toks := lexAll(entry.text)
		assert.Equal(TOKEN_REGISTER, toks[0].Kind, entry.text)
		assert.Equal(entry.reg, toks[0].Register, entry.text)
	}

	// Not registers.
	for _, text := range []string{"x31", "w32", "x01", "xa", "spx"} {
		toks := lexAll(text)
		assert.Equal(TOKEN_IDENT, toks[0].Kind, text)
	}
}

func TestLexerStrings(t *testing.T) {
	assert := assert.New(t)

	toks := lexAll(`"hi\n\t\"there\"" $(1 + (2*3))`)
	assert.Equal(TOKEN_STRING, toks[0].Kind)
	assert.Equal("hi\n\t\"there\"", toks[0].Text)
	assert.Equal(TOKEN_EXPR, toks[1].Kind)
	assert.Equal("1 + (2*3)", toks[1].Text)
}

func TestLexerErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		err  error
	}{
		{"12ab", ErrLiteral("12ab")},
		{"0x", ErrLiteral("0x")},
		{"0b102", ErrLiteral("0b102")},
		{"18446744073709551616", ErrLiteral("18446744073709551616")},
		{"9223372036854775808", ErrLiteral("9223372036854775808")},
		{"''", ErrLiteral("''")},
		{"\"abc", ErrStringUnterminated},
		{"\"abc\ndef\"", ErrStringUnterminated},
		{"$(1 + (2)", ErrExpressionUnterminated},
		{"@", ErrCharacter('@')},
	}

	for _, entry := range table {
		toks := lexAll("nop\n" + entry.text + " more tokens")
		assert.Equal(4, len(toks), entry.text)
		bad := toks[2]
		assert.Equal(TOKEN_ERROR, bad.Kind, entry.text)
		assert.Equal(2, bad.Line, entry.text)
		assert.Equal(entry.err, bad.Err, entry.text)
		assert.True(errors.Is(bad.Err, LEX_ERROR), entry.text)
		// Nothing follows an error.
		assert.Equal(TOKEN_EOF, toks[3].Kind, entry.text)
	}
}
