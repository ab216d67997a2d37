package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

func TestPeephole(t *testing.T) {
	assert := assert.New(t)

	const (
		movX0X0   = arm64.Word(0xaa0003e0) // mov x0, x0
		movW0W0   = arm64.Word(0x2a0003e0) // mov w0, w0
		movX1X0   = arm64.Word(0xaa0003e1) // mov x1, x0
		movX0X1   = arm64.Word(0xaa0103e0) // mov x0, x1
		movX2X0   = arm64.Word(0xaa0003e2) // mov x2, x0
		addX0Imm0 = arm64.Word(0x91000000) // add x0, x0, #0
		addW0Imm0 = arm64.Word(0x11000000) // add w0, w0, #0
		addX1X0   = arm64.Word(0x91000001) // add x1, x0, #0
		strX0Sp8  = arm64.Word(0xf90007e0) // str x0, [sp, #8]
		ldrX0Sp8  = arm64.Word(0xf94007e0) // ldr x0, [sp, #8]
		ldrX1Sp8  = arm64.Word(0xf94007e1) // ldr x1, [sp, #8]
		ldrX0X0   = arm64.Word(0xf9400000) // ldr x0, [x0]
		strX0X0   = arm64.Word(0xf9000000) // str x0, [x0]
		addX2X1X3 = arm64.Word(0x8b030022) // add x2, x1, x3
		addX2X0X3 = arm64.Word(0x8b030002) // add x2, x0, x3
		addX2X3X1 = arm64.Word(0x8b010062) // add x2, x3, x1
		addX2X3X0 = arm64.Word(0x8b000062) // add x2, x3, x0
		andX2X1X1 = arm64.Word(0x8a010022) // and x2, x1, x1
		andX2X0X0 = arm64.Word(0x8a000002) // and x2, x0, x0
		addW2W1W3 = arm64.Word(0x0b030022) // add w2, w1, w3
		movX1Zr   = arm64.Word(0xaa1f03e1) // mov x1, xzr
	)

	table := []struct {
		name     string
		prev     arm64.Word
		cur      arm64.Word
		newPrev  arm64.Word
		newCur   arm64.Word
		expected bool
	}{
		{"self move", arm64.NOP, movX0X0, arm64.NOP, arm64.NOP, true},
		{"self move after op", addX2X1X3, movX0X0, addX2X1X3, arm64.NOP, true},
		{"32-bit self move zero extends", arm64.NOP, movW0W0, arm64.NOP, movW0W0, false},
		{"swap back", movX1X0, movX0X1, movX1X0, arm64.NOP, true},
		{"add zero", arm64.NOP, addX0Imm0, arm64.NOP, arm64.NOP, true},
		{"32-bit add zero", arm64.NOP, addW0Imm0, arm64.NOP, addW0Imm0, false},
		{"add zero to another register", arm64.NOP, addX1X0, arm64.NOP, addX1X0, false},
		{"reload", strX0Sp8, ldrX0Sp8, strX0Sp8, arm64.NOP, true},
		{"load other register", strX0Sp8, ldrX1Sp8, strX0Sp8, ldrX1Sp8, false},
		{"reload through itself", strX0X0, ldrX0X0, strX0X0, ldrX0X0, false},
		{"forward rn", movX1X0, addX2X1X3, movX1X0, addX2X0X3, true},
		{"forward rm", movX1X0, addX2X3X1, movX1X0, addX2X3X0, true},
		{"forward both", movX1X0, andX2X1X1, movX1X0, andX2X0X0, true},
		{"forward unrelated", movX2X0, addX2X1X3, movX2X0, addX2X1X3, false},
		{"forward 32-bit", movX1X0, addW2W1W3, movX1X0, addW2W1W3, false},
		{"forward from zero", movX1Zr, addX2X1X3, movX1Zr, addX2X1X3, false},
		{"nothing", arm64.NOP, addX2X1X3, arm64.NOP, addX2X1X3, false},
	}

	for _, entry := range table {
		newPrev, newCur, changed := Peephole(entry.prev, entry.cur)
		assert.Equal(entry.expected, changed, entry.name)
		assert.Equal(entry.newPrev, newPrev, entry.name)
		assert.Equal(entry.newCur, newCur, entry.name)
	}
}

func TestPeepholePure(t *testing.T) {
	assert := assert.New(t)

	prev, cur := arm64.Word(0xaa0003e1), arm64.Word(0x8b030022)
	a1, a2, a3 := Peephole(prev, cur)
	b1, b2, b3 := Peephole(prev, cur)
	assert.Equal(a1, b1)
	assert.Equal(a2, b2)
	assert.Equal(a3, b3)
}
