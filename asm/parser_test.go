package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

func parse(limits Limits, lines ...string) (*Tree, error) {
	asm := &Assembler{Limits: limits}
	return asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
}

var (
	x0 = Register{Index: 0, Wide: true}
	x1 = Register{Index: 1, Wide: true}
	x2 = Register{Index: 2, Wide: true}
	sp = Register{Index: 31, Wide: true, SP: true}
)

func TestParserStatements(t *testing.T) {
	assert := assert.New(t)

	tree, err := parse(Limits{},
		"",
		"start: add x0, x1, x2, lsl #3",
		"done:",
		"  .asciz \"ok\"",
		"  B.EQ start",
	)
	if !assert.NoError(err) {
		return
	}

	var kinds []NodeKind
	var names []string
	var lines []int
	for _, node := range tree.All() {
		kinds = append(kinds, node.Kind)
		names = append(names, node.Name)
		lines = append(lines, node.LineNo)
	}
	assert.Equal([]NodeKind{NODE_LABEL, NODE_INSTRUCTION, NODE_LABEL, NODE_DIRECTIVE, NODE_INSTRUCTION}, kinds)
	assert.Equal([]string{"start", "add", "done", ".asciz", "b.eq"}, names)
	assert.Equal([]int{2, 2, 3, 4, 5}, lines)

	add := tree.Statements[1]
	assert.Equal([]Operand{x0, x1, x2, Shift{Type: arm64.SHIFT_LSL, Amount: 3}}, tree.Arena.Operands(add))
	assert.Equal([]Operand{String{Text: "ok"}}, tree.Arena.Operands(tree.Statements[3]))
	assert.Equal([]Operand{LabelRef{Name: "start"}}, tree.Arena.Operands(tree.Statements[4]))

	// Program, five statements, and six operands.
	assert.Equal(1+5+6, tree.Arena.Len())
	assert.Equal(NODE_PROGRAM, tree.Arena.Node(tree.Root).Kind)
}

func TestParserOperands(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		line string
		ops  []Operand
	}{
		{"mov x0, #10", []Operand{x0, Immediate{Value: 10}}},
		{"mov x0, 10", []Operand{x0, Immediate{Value: 10}}},
		{"mov x0, #-10", []Operand{x0, Immediate{Value: -10}}},
		{"mov x0, -$(2*5)", []Operand{x0, Immediate{Value: -10}}},
		{"mov x0, #'A'", []Operand{x0, Immediate{Value: 65}}},
		{"adr x0, #msg", []Operand{x0, LabelRef{Name: "msg"}}},
		{"cset x0, eq", []Operand{x0, LabelRef{Name: "eq"}}},
		{"ldr x0, [x1]", []Operand{x0, Memory{Base: x1, Mode: arm64.ADDR_OFFSET}}},
		{"ldr x0, [x1, #8]", []Operand{x0, Memory{Base: x1, Offset: 8, Mode: arm64.ADDR_OFFSET}}},
		{"ldr x0, [x1, -8]", []Operand{x0, Memory{Base: x1, Offset: -8, Mode: arm64.ADDR_OFFSET}}},
		{"str x0, [sp, #-16]!", []Operand{x0, Memory{Base: sp, Offset: -16, Mode: arm64.ADDR_PRE}}},
		{"ldr x0, [sp], #16", []Operand{x0, Memory{Base: sp, Offset: 16, Mode: arm64.ADDR_POST}}},
		{"ldr x0, [x1, x2]", []Operand{x0, Memory{Base: x1, Index: x2, HasIndex: true, Mode: arm64.ADDR_OFFSET}}},
		{"ldr x0, [x1, table]", []Operand{x0, Memory{Base: x1, Symbol: "table", Mode: arm64.ADDR_OFFSET}}},
		{"ror x0, x1, ror #2", []Operand{x0, x1, Shift{Type: arm64.SHIFT_ROR, Amount: 2}}},
		{".section .data", []Operand{String{Text: ".data"}}},
		{"ret", nil},
	}

	for _, entry := range table {
		tree, err := parse(Limits{}, entry.line)
		if !assert.NoError(err, entry.line) {
			continue
		}
		ops := tree.Arena.Operands(tree.Statements[0])
		if entry.ops == nil {
			assert.Empty(ops, entry.line)
			continue
		}
		assert.Equal(entry.ops, ops, entry.line)
	}
}

func TestParserExpressions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", 0x40)

	tree, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".equ N, 3",
		"mov x0, $(N*N + BASE)",
		"mov x1, $(LINENO)",
		"mov x2, $(0xffffffffffffffff)",
	}, "\n")))
	if !assert.NoError(err) {
		return
	}

	assert.Equal(Immediate{Value: 0x49}, tree.Arena.Operands(tree.Statements[1])[1])
	assert.Equal(Immediate{Value: 3}, tree.Arena.Operands(tree.Statements[2])[1])
	assert.Equal(Immediate{Value: -1}, tree.Arena.Operands(tree.Statements[3])[1])

	_, err = parse(Limits{}, "nop", "mov x0, $(1 +)")
	assert.True(errors.Is(err, SYNTAX_ERROR))
	var exprErr *ErrParseExpression
	assert.True(errors.As(err, &exprErr))

	_, err = parse(Limits{}, "mov x0, $(\"text\")")
	assert.True(errors.As(err, &exprErr))
}

func TestParserErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		lines  []string
		lineno int
		err    error
		kind   ErrorKind
	}{
		{[]string{"nop", "", "add x0 x1"}, 3, ErrExpectedNewline, SYNTAX_ERROR},
		{[]string{", x0"}, 1, ErrExpectedStatement, SYNTAX_ERROR},
		{[]string{"add x0, ,"}, 1, ErrExpectedOperand, SYNTAX_ERROR},
		{[]string{"ldr x0, [#1]"}, 1, ErrExpectedRegister, SYNTAX_ERROR},
		{[]string{"ldr x0, [x1", "nop"}, 1, ErrExpectedBracket, SYNTAX_ERROR},
		{[]string{"ldr x0, [x1, #4], #8"}, 1, ErrPostIndex, SYNTAX_ERROR},
		{[]string{".byte 1,2,3,4,5,6,7,8,9"}, 1, ErrOperandCount, SYNTAX_ERROR},
		{[]string{"nop", "mov x0, #12ab"}, 2, ErrLiteral("12ab"), LEX_ERROR},
		{[]string{"nop", "nop", "mov x0, @"}, 3, ErrCharacter('@'), LEX_ERROR},
		{[]string{"prt \"oops"}, 1, ErrStringUnterminated, LEX_ERROR},
	}

	for _, entry := range table {
		tree, err := parse(Limits{}, entry.lines...)
		assert.Nil(tree, entry.lines)
		var asmErr *ErrAssembly
		if !assert.True(errors.As(err, &asmErr), entry.lines) {
			continue
		}
		assert.Equal(entry.lineno, asmErr.LineNo, entry.lines)
		assert.True(errors.Is(err, entry.err), entry.lines)
		assert.True(errors.Is(err, entry.kind), entry.lines)
		assert.Equal(entry.kind, asmErr.Kind(), entry.lines)
	}
}

func TestParserCapacity(t *testing.T) {
	assert := assert.New(t)

	// Program, instruction and three operands.
	_, err := parse(Limits{Nodes: 5}, "add x0, x1, x2")
	assert.NoError(err)

	_, err = parse(Limits{Nodes: 4}, "add x0, x1, x2")
	assert.True(errors.Is(err, ErrNodesExhausted))
	assert.True(errors.Is(err, RESOURCE_EXHAUSTED))

	_, err = parse(Limits{Statements: 2}, "nop", "nop")
	assert.NoError(err)

	_, err = parse(Limits{Statements: 2}, "nop", "nop", "nop")
	assert.True(errors.Is(err, ErrStatementsExhausted))
	var asmErr *ErrAssembly
	if assert.True(errors.As(err, &asmErr)) {
		assert.Equal(3, asmErr.LineNo)
	}
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestParserIO(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(failReader{})
	assert.True(errors.Is(err, IO_ERROR))
	assert.ErrorContains(err, "device gone")
}
