package arm64

// Inst is a decoded instruction. Only the fields relevant to Class are set.
type Inst struct {
	Word  Word
	Class Class
	Op    int  // Class specific operation (AddSubOp, LogicOp, ...).
	Wide  bool // 64-bit operation size.

	Rd  Reg // Destination, or transfer register Rt.
	Rn  Reg // First source, or base register.
	Rm  Reg // Second source, or index register.
	Ra  Reg // Third source, or second transfer register Rt2.
	Imm int64

	Shift  ShiftType
	Amount uint32
	Invert bool // Logical register forms with an inverted operand.

	N, Immr, Imms uint32

	Cond Cond
	Mode AddrMode
	Ls   LoadStore
	Load bool // Pair loads.
}

func signExtend(value uint32, width uint) int64 {
	shift := 64 - width
	return int64(uint64(value)<<shift) >> shift
}

// Decode classifies a word. Unrecognised words decode as CLASS_UNKNOWN.
func Decode(word Word) (inst Inst) {
	w := uint32(word)

	inst.Word = word
	inst.Wide = w&(1<<31) != 0
	inst.Rd = Reg(w & 31)
	inst.Rn = Reg((w >> 5) & 31)
	inst.Rm = Reg((w >> 16) & 31)

	switch {
	case w&0x1f800000 == 0x11000000:
		inst.Class = CLASS_ADDSUB_IMM
		inst.Op = int((w >> 29) & 3)
		inst.Imm = int64((w >> 10) & 0xfff)
		if w&(1<<22) != 0 {
			inst.Imm <<= 12
		}
	case w&0x1f200000 == 0x0b000000:
		inst.Class = CLASS_ADDSUB_REG
		inst.Op = int((w >> 29) & 3)
		inst.Shift = ShiftType((w >> 22) & 3)
		inst.Amount = (w >> 10) & 0x3f
	case w&0x1f000000 == 0x0a000000:
		inst.Class = CLASS_LOGICAL_REG
		inst.Op = int((w >> 29) & 3)
		inst.Shift = ShiftType((w >> 22) & 3)
		inst.Invert = w&(1<<21) != 0
		inst.Amount = (w >> 10) & 0x3f
	case w&0x1f800000 == 0x12000000:
		inst.Class = CLASS_LOGICAL_IMM
		inst.Op = int((w >> 29) & 3)
		inst.N = (w >> 22) & 1
		inst.Immr = (w >> 16) & 0x3f
		inst.Imms = (w >> 10) & 0x3f
		value, ok := DecodeBitmask(inst.N, inst.Immr, inst.Imms, inst.Wide)
		if !ok {
			inst.Class = CLASS_UNKNOWN
			break
		}
		inst.Imm = int64(value)
	case w&0x1f800000 == 0x12800000:
		inst.Class = CLASS_MOVE_WIDE
		inst.Op = int((w >> 29) & 3)
		inst.Imm = int64((w >> 5) & 0xffff)
		inst.Amount = ((w >> 21) & 3) * 16
		if inst.Op == 1 || (!inst.Wide && inst.Amount >= 32) {
			inst.Class = CLASS_UNKNOWN
		}
	case w&0x1f800000 == 0x13000000:
		inst.Class = CLASS_BITFIELD
		inst.Op = int((w >> 29) & 3)
		inst.N = (w >> 22) & 1
		inst.Immr = (w >> 16) & 0x3f
		inst.Imms = (w >> 10) & 0x3f
		if inst.Op == 3 || (inst.N == 1) != inst.Wide {
			inst.Class = CLASS_UNKNOWN
		}
	case w&0x7fa00000 == 0x13800000:
		inst.Class = CLASS_EXTRACT
		inst.Imms = (w >> 10) & 0x3f
	case w&0x7fe00000 == 0x1ac00000:
		inst.Class = CLASS_DATA2
		inst.Op = int((w >> 10) & 0x3f)
		switch DataOp2(inst.Op) {
		case DATA2_UDIV, DATA2_SDIV, DATA2_LSLV, DATA2_LSRV, DATA2_ASRV, DATA2_RORV:
		default:
			inst.Class = CLASS_UNKNOWN
		}
	case w&0x7fe00000 == 0x1b000000:
		inst.Class = CLASS_DATA3
		inst.Ra = Reg((w >> 10) & 31)
		if w&(1<<15) != 0 {
			inst.Op = 1
		}
	case w&0x3fe00800 == 0x1a800000:
		inst.Class = CLASS_COND_SELECT
		inst.Op = int((w>>30)&1)<<1 | int((w>>10)&1)
		inst.Cond = Cond((w >> 12) & 15)
	case w&0x7c000000 == 0x14000000:
		inst.Class = CLASS_BRANCH
		if w&(1<<31) != 0 {
			inst.Op = 1
		}
		inst.Imm = signExtend(w&0x3ffffff, 26) * 4
	case w&0xff000010 == 0x54000000:
		inst.Class = CLASS_BRANCH_COND
		inst.Cond = Cond(w & 15)
		inst.Imm = signExtend((w>>5)&0x7ffff, 19) * 4
	case w&0x7e000000 == 0x34000000:
		inst.Class = CLASS_COMPARE_BRANCH
		if w&(1<<24) != 0 {
			inst.Op = 1
		}
		inst.Imm = signExtend((w>>5)&0x7ffff, 19) * 4
	case w&0xff9ffc1f == 0xd61f0000:
		inst.Class = CLASS_BRANCH_REG
		inst.Op = int((w >> 21) & 3)
	case w&0x9f000000 == 0x10000000:
		inst.Class = CLASS_ADR
		inst.Wide = true
		inst.Imm = signExtend(((w>>5)&0x7ffff)<<2|(w>>29)&3, 21)
	case w&0x3f000000 == 0x18000000:
		inst.Class = CLASS_LOAD_STORE
		inst.Mode = ADDR_LITERAL
		inst.Imm = signExtend((w>>5)&0x7ffff, 19) * 4
		switch w >> 30 {
		case 0:
			inst.Ls = LS_LDRW
		case 1:
			inst.Ls = LS_LDR
		case 2:
			inst.Ls = LS_LDRSW
		default:
			inst.Class = CLASS_UNKNOWN
		}
	case w&0x3f000000 == 0x39000000:
		inst.Class = CLASS_LOAD_STORE
		inst.Mode = ADDR_OFFSET
		inst.Ls = MakeLoadStore(w>>30, (w>>22)&3)
		inst.Imm = int64((w>>10)&0xfff) << inst.Ls.Size()
	case w&0x3f200c00 == 0x38200800:
		inst.Class = CLASS_LOAD_STORE
		inst.Ls = MakeLoadStore(w>>30, (w>>22)&3)
		inst.Mode = ADDR_REGISTER
		if (w>>13)&7 != 3 || w&(1<<12) != 0 {
			inst.Class = CLASS_UNKNOWN
		}
	case w&0x3f200000 == 0x38000000:
		inst.Class = CLASS_LOAD_STORE
		inst.Ls = MakeLoadStore(w>>30, (w>>22)&3)
		inst.Imm = signExtend((w>>12)&0x1ff, 9)
		switch (w >> 10) & 3 {
		case 0:
			inst.Mode = ADDR_UNSCALED
		case 1:
			inst.Mode = ADDR_POST
		case 3:
			inst.Mode = ADDR_PRE
		default:
			inst.Class = CLASS_UNKNOWN
		}
	case w&0x3e000000 == 0x28000000:
		inst.Class = CLASS_LOAD_STORE_PAIR
		inst.Ra = Reg((w >> 10) & 31)
		inst.Load = w&(1<<22) != 0
		switch w >> 30 {
		case 0:
			inst.Wide = false
		case 2:
			inst.Wide = true
		default:
			inst.Class = CLASS_UNKNOWN
		}
		scale := uint(2)
		if inst.Wide {
			scale = 3
		}
		inst.Imm = signExtend((w>>15)&0x7f, 7) << scale
		switch (w >> 23) & 3 {
		case 1:
			inst.Mode = ADDR_POST
		case 2:
			inst.Mode = ADDR_OFFSET
		case 3:
			inst.Mode = ADDR_PRE
		default:
			inst.Class = CLASS_UNKNOWN
		}
	case w&0xfffff01f == 0xd503201f:
		inst.Class = CLASS_HINT
		inst.Op = int((w >> 5) & 0x7f)
	case w&0xfffff01f == 0xd503301f:
		inst.Class = CLASS_BARRIER
		inst.Op = int((w >> 5) & 7)
		inst.Imm = int64((w >> 8) & 15)
		switch BarrierOp(inst.Op) {
		case BARRIER_DSB, BARRIER_DMB, BARRIER_ISB:
		default:
			inst.Class = CLASS_UNKNOWN
		}
	case w&0xffe0001f == 0xd4200000:
		inst.Class = CLASS_EXCEPTION
		inst.Op = int(EXCEPTION_BRK)
		inst.Imm = int64((w >> 5) & 0xffff)
	case w&0xffe0001c == 0xd4000000 && w&3 != 0:
		inst.Class = CLASS_EXCEPTION
		inst.Op = int(w & 3)
		inst.Imm = int64((w >> 5) & 0xffff)
	}

	if inst.Class == CLASS_LOAD_STORE {
		inst.Wide = inst.Ls.Wide()
		if inst.Ls.String() == "ldst?" {
			inst.Class = CLASS_UNKNOWN
		}
	}

	return
}

// Target returns the absolute destination of a pc relative instruction.
func (inst Inst) Target(pc uint64) (target uint64, ok bool) {
	switch inst.Class {
	case CLASS_BRANCH, CLASS_BRANCH_COND, CLASS_COMPARE_BRANCH, CLASS_ADR:
	case CLASS_LOAD_STORE:
		if inst.Mode != ADDR_LITERAL {
			return
		}
	default:
		return
	}
	target = uint64(int64(pc) + inst.Imm)
	ok = true
	return
}
