package arm64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name     string
		word     Word
		expected Word
	}{
		{"add x0, x1, #16", MakeAddSubImm(ADDSUB_ADD, true, 0, 1, 16, false), 0x91004020},
		{"mov x29, sp", MakeAddSubImm(ADDSUB_ADD, true, REG_FP, REG_SP, 0, false), 0x910003fd},
		{"cmp x0, #5", MakeAddSubImm(ADDSUB_SUBS, true, REG_ZR, 0, 5, false), 0xf100141f},
		{"add x2, x0, x1", MakeAddSubReg(ADDSUB_ADD, true, 2, 0, 1, SHIFT_LSL, 0), 0x8b010002},
		{"mov x1, x0", MakeLogicalReg(LOGIC_ORR, false, true, 1, REG_ZR, 0, SHIFT_LSL, 0), 0xaa0003e1},
		{"mov x0, #10", MakeMoveWide(MOVE_Z, true, 0, 10, 0), 0xd2800140},
		{"movk x0, #0x1234, lsl #16", MakeMoveWide(MOVE_K, true, 0, 0x1234, 1), 0xf2a24680},
		{"lsl x0, x1, #4", MakeBitfield(BITFIELD_UBFM, true, 0, 1, 60, 59), 0xd37cec20},
		{"udiv x0, x1, x2", MakeData2(DATA2_UDIV, true, 0, 1, 2), 0x9ac20820},
		{"mul x0, x1, x2", MakeData3(false, true, 0, 1, 2, REG_ZR), 0x9b027c20},
		{"csel x0, x1, x2, eq", MakeCondSelect(CONDSEL_CSEL, true, 0, 1, 2, COND_EQ), 0x9a820020},
		{"cset x0, eq", MakeCondSelect(CONDSEL_CSINC, true, 0, REG_ZR, REG_ZR, COND_NE), 0x9a9f17e0},
		{"b +8", MakeBranch(false, 2), 0x14000002},
		{"b.eq +8", MakeBranchCond(COND_EQ, 2), 0x54000040},
		{"cbz x0, +8", MakeCompareBranch(false, true, 0, 2), 0xb4000040},
		{"ret", MakeBranchReg(BRANCH_RET, REG_LR), 0xd65f03c0},
		{"adr x0, +8", MakeAdr(0, 8), 0x10000040},
		{"ldr x0, [x1, #8]", MakeLoadStoreUnsigned(LS_LDR, 0, 1, 1), 0xf9400420},
		{"str w0, [sp, #4]", MakeLoadStoreUnsigned(LS_STRW, 0, REG_SP, 1), 0xb90007e0},
		{"ldrb w0, [x1]", MakeLoadStoreUnsigned(LS_LDRB, 0, 1, 0), 0x39400020},
		{"stp x29, x30, [sp, #-16]!", MakeLoadStorePair(false, true, ADDR_PRE, REG_FP, REG_LR, REG_SP, -2), 0xa9bf7bfd},
		{"ldp x29, x30, [sp], #16", MakeLoadStorePair(true, true, ADDR_POST, REG_FP, REG_LR, REG_SP, 2), 0xa8c17bfd},
		{"nop", MakeHint(HINT_NOP), NOP},
		{"svc #0x102", MakeException(EXCEPTION_SVC, 0x102), 0xd4002041},
		{"svc #0x1ff", MakeException(EXCEPTION_SVC, 0x1ff), 0xd4003fe1},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, entry.word, entry.name)
	}
}

func TestEncodeLogicalImm(t *testing.T) {
	assert := assert.New(t)

	n, immr, imms, ok := EncodeBitmask(0xff, true)
	assert.True(ok)
	assert.Equal(Word(0x92401c00), MakeLogicalImm(LOGIC_AND, true, 0, 0, n, immr, imms))
}

func TestBranchBackward(t *testing.T) {
	assert := assert.New(t)

	word := MakeBranch(false, -1)
	assert.Equal(Word(0x17ffffff), word)

	inst := Decode(word)
	assert.Equal(CLASS_BRANCH, inst.Class)
	assert.Equal(int64(-4), inst.Imm)

	target, ok := inst.Target(0x1004)
	assert.True(ok)
	assert.Equal(uint64(0x1000), target)
}
