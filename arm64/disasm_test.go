package arm64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word     Word
		pc       uint64
		expected string
	}{
		{0x91004020, 0, "add x0, x1, #16"},
		{0x910003fd, 0, "mov x29, sp"},
		{0xf100141f, 0, "cmp x0, #5"},
		{0x8b010002, 0, "add x2, x0, x1"},
		{0xaa0003e1, 0, "mov x1, x0"},
		{0xd2800140, 0, "movz x0, #0xa"},
		{0xf2a24680, 0, "movk x0, #0x1234, lsl #16"},
		{0x92401c00, 0, "and x0, x0, #0xff"},
		{0xd37cec20, 0, "lsl x0, x1, #4"},
		{0x9ac20820, 0, "udiv x0, x1, x2"},
		{0x9b027c20, 0, "mul x0, x1, x2"},
		{0x9a820020, 0, "csel x0, x1, x2, eq"},
		{0x9a9f17e0, 0, "cset x0, eq"},
		{0x14000002, 0x1000, "b 0x1008"},
		{0x54000040, 0x1000, "b.eq 0x1008"},
		{0xb4000040, 0x1000, "cbz x0, 0x1008"},
		{0xd65f03c0, 0, "ret"},
		{0x10000040, 0x1000, "adr x0, 0x1008"},
		{0xf9400420, 0, "ldr x0, [x1, #8]"},
		{0xb90007e0, 0, "str w0, [sp, #4]"},
		{0x39400020, 0, "ldrb w0, [x1]"},
		{0xa9bf7bfd, 0, "stp x29, x30, [sp, #-16]!"},
		{0xa8c17bfd, 0, "ldp x29, x30, [sp], #16"},
		{NOP, 0, "nop"},
		{MakeBarrier(BARRIER_DMB, 11), 0, "dmb ish"},
		{0xd4002041, 0, "svc #0x102"},
		{0xd4200000, 0, "brk #0x0"},
		{0x00000000, 0, ".word 0x00000000"},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, Disassemble(entry.word, entry.pc), "%#08x", uint32(entry.word))
	}
}

func TestDecodeLoadStore(t *testing.T) {
	assert := assert.New(t)

	inst := Decode(MakeLoadStoreIndexed(LS_LDR, ADDR_UNSCALED, 0, 1, -8))
	assert.Equal(CLASS_LOAD_STORE, inst.Class)
	assert.Equal(ADDR_UNSCALED, inst.Mode)
	assert.Equal(int64(-8), inst.Imm)
	assert.Equal("ldr x0, [x1, #-8]", inst.Text(0))

	inst = Decode(MakeLoadStoreIndexed(LS_STRB, ADDR_POST, 2, 3, 1))
	assert.Equal(ADDR_POST, inst.Mode)
	assert.False(inst.Wide)
	assert.Equal("strb w2, [x3], #1", inst.Text(0))

	inst = Decode(MakeLoadStoreReg(LS_LDR, 0, 1, 2))
	assert.Equal(ADDR_REGISTER, inst.Mode)
	assert.Equal("ldr x0, [x1, x2]", inst.Text(0))

	inst = Decode(MakeLoadLiteral(LS_LDRSW, 4, 2))
	assert.Equal(ADDR_LITERAL, inst.Mode)
	assert.Equal(LS_LDRSW, inst.Ls)
	assert.True(inst.Wide)
	assert.Equal("ldrsw x4, 0x108", inst.Text(0x100))
}

func TestWords(t *testing.T) {
	assert := assert.New(t)

	code := []byte{0x1f, 0x20, 0x03, 0xd5, 0xc0, 0x03, 0x5f, 0xd6, 0xff}

	var pcs []uint64
	var words []Word
	for pc, word := range Words(code, 0x1000) {
		pcs = append(pcs, pc)
		words = append(words, word)
	}

	assert.Equal([]uint64{0x1000, 0x1004}, pcs)
	assert.Equal([]Word{NOP, 0xd65f03c0}, words)
}
