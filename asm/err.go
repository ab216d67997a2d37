package asm

import (
	"errors"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
	"github.com/u6170252806-cmd/EmberOS-sub001/translate"
)

var f = translate.From

// ErrorKind classifies every assembler diagnostic. Use errors.Is to test the
// kind of any error returned from this package.
type ErrorKind int

//go:generate go tool stringer -linecomment -type=ErrorKind
const (
	LEX_ERROR          = ErrorKind(0) // lex error
	SYNTAX_ERROR       = ErrorKind(1) // syntax error
	RESOURCE_EXHAUSTED = ErrorKind(2) // resource exhausted
	SEMANTIC_ERROR     = ErrorKind(3) // semantic error
	IO_ERROR           = ErrorKind(4) // io error
)

func (kind ErrorKind) Error() string {
	return f(kind.String())
}

// kindError is a sentinel error of a specific kind.
type kindError struct {
	kind ErrorKind
	text string
}

func newError(kind ErrorKind, text string) error {
	return &kindError{kind: kind, text: text}
}

func (err *kindError) Error() string {
	return err.text
}

func (err *kindError) Is(target error) bool {
	return target == err.kind
}

var (
	// Lexer errors
	ErrStringUnterminated     = newError(LEX_ERROR, f("unterminated string"))
	ErrExpressionUnterminated = newError(LEX_ERROR, f("unterminated expression"))

	// Parser errors
	ErrExpectedNewline   = newError(SYNTAX_ERROR, f("expected newline after statement"))
	ErrExpectedStatement = newError(SYNTAX_ERROR, f("expected instruction or directive"))
	ErrOperandCount      = newError(SYNTAX_ERROR, f("too many operands"))
	ErrExpectedOperand   = newError(SYNTAX_ERROR, f("expected operand"))
	ErrExpectedRegister  = newError(SYNTAX_ERROR, f("expected register"))
	ErrExpectedBracket   = newError(SYNTAX_ERROR, f("expected ']'"))
	ErrPostIndex         = newError(SYNTAX_ERROR, f("post-index after offset"))

	// Capacity errors
	ErrNodesExhausted      = newError(RESOURCE_EXHAUSTED, f("node pool exhausted"))
	ErrStatementsExhausted = newError(RESOURCE_EXHAUSTED, f("statement list full"))
	ErrSymbolsExhausted    = newError(RESOURCE_EXHAUSTED, f("symbol table full"))
	ErrCodeOverflow        = newError(RESOURCE_EXHAUSTED, f("code buffer overflow"))

	// Generator errors
	ErrOperands      = newError(SEMANTIC_ERROR, f("invalid operands"))
	ErrWidthMismatch = newError(SEMANTIC_ERROR, f("mixed register widths"))
	ErrAlignment     = newError(SEMANTIC_ERROR, f("target not word aligned"))
	ErrCondition     = newError(SEMANTIC_ERROR, f("invalid condition"))
)

// ErrCharacter is an unexpected input character.
type ErrCharacter rune

func (err ErrCharacter) Error() string {
	return f("unexpected character %q", rune(err))
}

func (err ErrCharacter) Is(target error) bool {
	return target == LEX_ERROR
}

// ErrLiteral is a malformed numeric or character literal.
type ErrLiteral string

func (err ErrLiteral) Error() string {
	return f("invalid literal '%v'", string(err))
}

func (err ErrLiteral) Is(target error) bool {
	return target == LEX_ERROR
}

// ErrParseExpression is a $(...) expression that does not evaluate to an
// integer.
type ErrParseExpression struct {
	Expr string
	Err  error
}

func (err *ErrParseExpression) Error() string {
	if err.Err != nil {
		return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
	}
	return f("$(%v) is not a valid expression", err.Expr)
}

func (err *ErrParseExpression) Unwrap() error {
	return err.Err
}

func (err *ErrParseExpression) Is(target error) bool {
	return target == SYNTAX_ERROR
}

// ErrSymbolDuplicate is the second definition of a symbol.
type ErrSymbolDuplicate struct {
	Name   string
	LineNo int // Line of the first definition.
}

func (err *ErrSymbolDuplicate) Error() string {
	return f("symbol '%v' already defined on line %d", err.Name, err.LineNo)
}

func (err *ErrSymbolDuplicate) Is(target error) bool {
	return target == SEMANTIC_ERROR
}

type ErrSymbolUndefined string

func (err ErrSymbolUndefined) Error() string {
	return f("undefined symbol '%v'", string(err))
}

func (err ErrSymbolUndefined) Is(target error) bool {
	return target == SEMANTIC_ERROR
}

type ErrSymbolName string

func (err ErrSymbolName) Error() string {
	return f("symbol name '%v' too long", string(err))
}

func (err ErrSymbolName) Is(target error) bool {
	return target == SEMANTIC_ERROR
}

type ErrMnemonicUnsupported string

func (err ErrMnemonicUnsupported) Error() string {
	return f("unsupported mnemonic '%v'", string(err))
}

func (err ErrMnemonicUnsupported) Is(target error) bool {
	return target == SEMANTIC_ERROR
}

type ErrDirectiveUnsupported string

func (err ErrDirectiveUnsupported) Error() string {
	return f("unsupported directive '%v'", string(err))
}

func (err ErrDirectiveUnsupported) Is(target error) bool {
	return target == SEMANTIC_ERROR
}

type ErrSection string

func (err ErrSection) Error() string {
	return f("unknown section '%v'", string(err))
}

func (err ErrSection) Is(target error) bool {
	return target == SEMANTIC_ERROR
}

// ErrRange is an operand that does not fit its encoding field.
type ErrRange struct {
	Field string
	Value int64
}

func (err *ErrRange) Error() string {
	return f("operand out of range: %v %d", err.Field, err.Value)
}

func (err *ErrRange) Is(target error) bool {
	return target == SEMANTIC_ERROR
}

// ErrRegisterReserved is an explicit use of a dispatcher owned register.
type ErrRegisterReserved arm64.Reg

func (err ErrRegisterReserved) Error() string {
	return f("register reserved: x%d", int(err))
}

func (err ErrRegisterReserved) Is(target error) bool {
	return target == SEMANTIC_ERROR
}

// ErrIO wraps a failure to read the source.
type ErrIO struct {
	Err error
}

func (err *ErrIO) Error() string {
	return f("read failed: %v", err.Err)
}

func (err *ErrIO) Unwrap() error {
	return err.Err
}

func (err *ErrIO) Is(target error) bool {
	return target == IO_ERROR
}

// ErrAssembly is the single diagnostic of a failed parse or generation.
type ErrAssembly struct {
	LineNo int
	Err    error
}

func (err *ErrAssembly) Error() string {
	return f("line %d: %v", err.LineNo, err.Err)
}

func (err *ErrAssembly) Unwrap() error {
	return err.Err
}

// Kind returns the classification of the wrapped error.
func (err *ErrAssembly) Kind() (kind ErrorKind) {
	for kind = LEX_ERROR; kind <= IO_ERROR; kind++ {
		if errors.Is(err.Err, kind) {
			return
		}
	}
	return SEMANTIC_ERROR
}

// atLine wraps err for line lineno, unless it is already wrapped.
func atLine(lineno int, err error) error {
	if err == nil {
		return nil
	}
	var asmErr *ErrAssembly
	if errors.As(err, &asmErr) {
		return err
	}
	return &ErrAssembly{LineNo: lineno, Err: err}
}
