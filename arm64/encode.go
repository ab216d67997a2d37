package arm64

// Word is a single encoded instruction.
type Word uint32

// NOP is the canonical no-operation word.
const NOP = Word(0xd503201f)

func sf(wide bool) uint32 {
	if wide {
		return 1 << 31
	}
	return 0
}

func bit(set bool, pos uint) uint32 {
	if set {
		return 1 << pos
	}
	return 0
}

// MakeAddSubImm encodes ADD/ADDS/SUB/SUBS (immediate). Register 31 is SP for
// rn, and for rd unless the flags are set.
func MakeAddSubImm(op AddSubOp, wide bool, rd, rn Reg, imm12 uint32, shift12 bool) Word {
	return Word(sf(wide) | uint32(op)<<29 | 0x11000000 | bit(shift12, 22) |
		(imm12&0xfff)<<10 | uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeAddSubReg encodes ADD/ADDS/SUB/SUBS (shifted register).
func MakeAddSubReg(op AddSubOp, wide bool, rd, rn, rm Reg, shift ShiftType, amount uint32) Word {
	return Word(sf(wide) | uint32(op)<<29 | 0x0b000000 | uint32(shift&3)<<22 |
		uint32(rm&31)<<16 | (amount&0x3f)<<10 | uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeLogicalReg encodes AND/ORR/EOR/ANDS (shifted register). With invert
// set these become BIC/ORN/EON/BICS.
func MakeLogicalReg(op LogicOp, invert bool, wide bool, rd, rn, rm Reg, shift ShiftType, amount uint32) Word {
	return Word(sf(wide) | uint32(op)<<29 | 0x0a000000 | uint32(shift&3)<<22 | bit(invert, 21) |
		uint32(rm&31)<<16 | (amount&0x3f)<<10 | uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeLogicalImm encodes AND/ORR/EOR/ANDS (immediate) from an already
// computed bitmask triple, see EncodeBitmask.
func MakeLogicalImm(op LogicOp, wide bool, rd, rn Reg, n, immr, imms uint32) Word {
	return Word(sf(wide) | uint32(op)<<29 | 0x12000000 | (n&1)<<22 |
		(immr&0x3f)<<16 | (imms&0x3f)<<10 | uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeMoveWide encodes MOVN/MOVZ/MOVK. hw is the 16-bit half word index.
func MakeMoveWide(op MoveWideOp, wide bool, rd Reg, imm16 uint32, hw uint32) Word {
	return Word(sf(wide) | uint32(op)<<29 | 0x12800000 | (hw&3)<<21 |
		(imm16&0xffff)<<5 | uint32(rd&31))
}

// MakeBitfield encodes SBFM/BFM/UBFM.
func MakeBitfield(op BitfieldOp, wide bool, rd, rn Reg, immr, imms uint32) Word {
	return Word(sf(wide) | uint32(op)<<29 | 0x13000000 | bit(wide, 22) |
		(immr&0x3f)<<16 | (imms&0x3f)<<10 | uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeExtract encodes EXTR, which with rn == rm is ROR (immediate).
func MakeExtract(wide bool, rd, rn, rm Reg, lsb uint32) Word {
	return Word(sf(wide) | 0x13800000 | bit(wide, 22) | uint32(rm&31)<<16 |
		(lsb&0x3f)<<10 | uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeData2 encodes the two source data processing class (divides and
// variable shifts).
func MakeData2(op DataOp2, wide bool, rd, rn, rm Reg) Word {
	return Word(sf(wide) | 0x1ac00000 | uint32(rm&31)<<16 | (uint32(op)&0x3f)<<10 |
		uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeData3 encodes MADD, or MSUB when sub is set.
func MakeData3(sub bool, wide bool, rd, rn, rm, ra Reg) Word {
	return Word(sf(wide) | 0x1b000000 | uint32(rm&31)<<16 | bit(sub, 15) |
		uint32(ra&31)<<10 | uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeCondSelect encodes CSEL/CSINC/CSINV/CSNEG.
func MakeCondSelect(op CondSelOp, wide bool, rd, rn, rm Reg, cond Cond) Word {
	return Word(sf(wide) | (uint32(op)>>1)<<30 | 0x1a800000 | uint32(rm&31)<<16 |
		uint32(cond&15)<<12 | (uint32(op)&1)<<10 | uint32(rn&31)<<5 | uint32(rd&31))
}

// MakeBranch encodes B, or BL when link is set. imm26 is in words.
func MakeBranch(link bool, imm26 int64) Word {
	return Word(bit(link, 31) | 0x14000000 | uint32(imm26)&0x3ffffff)
}

// MakeBranchCond encodes B.cond. imm19 is in words.
func MakeBranchCond(cond Cond, imm19 int64) Word {
	return Word(0x54000000 | (uint32(imm19)&0x7ffff)<<5 | uint32(cond&15))
}

// MakeCompareBranch encodes CBZ, or CBNZ when nonzero is set. imm19 is in words.
func MakeCompareBranch(nonzero bool, wide bool, rt Reg, imm19 int64) Word {
	return Word(sf(wide) | 0x34000000 | bit(nonzero, 24) | (uint32(imm19)&0x7ffff)<<5 | uint32(rt&31))
}

// MakeBranchReg encodes BR/BLR/RET.
func MakeBranchReg(op BranchRegOp, rn Reg) Word {
	return Word(0xd61f0000 | uint32(op&3)<<21 | uint32(rn&31)<<5)
}

// MakeAdr encodes ADR. imm21 is in bytes.
func MakeAdr(rd Reg, imm21 int64) Word {
	imm := uint32(imm21)
	return Word(0x10000000 | (imm&3)<<29 | ((imm>>2)&0x7ffff)<<5 | uint32(rd&31))
}

// MakeLoadLiteral encodes LDR (literal). ls must be LS_LDRW, LS_LDR or
// LS_LDRSW. imm19 is in words.
func MakeLoadLiteral(ls LoadStore, rt Reg, imm19 int64) Word {
	var opc uint32
	switch ls {
	case LS_LDR:
		opc = 1
	case LS_LDRSW:
		opc = 2
	}
	return Word(opc<<30 | 0x18000000 | (uint32(imm19)&0x7ffff)<<5 | uint32(rt&31))
}

// MakeLoadStoreUnsigned encodes the unsigned scaled offset form. imm12 is
// already divided by the access size.
func MakeLoadStoreUnsigned(ls LoadStore, rt, rn Reg, imm12 uint32) Word {
	return Word(ls.Size()<<30 | 0x39000000 | ls.Opc()<<22 | (imm12&0xfff)<<10 |
		uint32(rn&31)<<5 | uint32(rt&31))
}

// MakeLoadStoreIndexed encodes the 9-bit signed byte offset forms: unscaled
// (LDUR/STUR), pre-index and post-index.
func MakeLoadStoreIndexed(ls LoadStore, mode AddrMode, rt, rn Reg, imm9 int64) Word {
	var idx uint32
	switch mode {
	case ADDR_POST:
		idx = 1
	case ADDR_PRE:
		idx = 3
	}
	return Word(ls.Size()<<30 | 0x38000000 | ls.Opc()<<22 | (uint32(imm9)&0x1ff)<<12 |
		idx<<10 | uint32(rn&31)<<5 | uint32(rt&31))
}

// MakeLoadStoreReg encodes the register offset form with a 64-bit index and
// no shift.
func MakeLoadStoreReg(ls LoadStore, rt, rn, rm Reg) Word {
	return Word(ls.Size()<<30 | 0x38206800 | ls.Opc()<<22 | uint32(rm&31)<<16 |
		uint32(rn&31)<<5 | uint32(rt&31))
}

// MakeLoadStorePair encodes LDP/STP. imm7 is already divided by the register
// size. mode is ADDR_OFFSET, ADDR_PRE or ADDR_POST.
func MakeLoadStorePair(load bool, wide bool, mode AddrMode, rt, rt2, rn Reg, imm7 int64) Word {
	var opc, idx uint32
	if wide {
		opc = 2
	}
	switch mode {
	case ADDR_POST:
		idx = 1
	case ADDR_OFFSET:
		idx = 2
	case ADDR_PRE:
		idx = 3
	}
	return Word(opc<<30 | 0x28000000 | idx<<23 | bit(load, 22) | (uint32(imm7)&0x7f)<<15 |
		uint32(rt2&31)<<10 | uint32(rn&31)<<5 | uint32(rt&31))
}

// MakeHint encodes NOP/YIELD/WFE/WFI/SEV/SEVL.
func MakeHint(op HintOp) Word {
	return Word(0xd503201f | (uint32(op)&0x7f)<<5)
}

// MakeBarrier encodes DSB/DMB/ISB with a CRm option.
func MakeBarrier(op BarrierOp, option uint8) Word {
	return Word(0xd503301f | uint32(option&15)<<8 | (uint32(op)&7)<<5)
}

// MakeException encodes SVC/HVC/SMC/BRK.
func MakeException(op ExceptionOp, imm16 uint16) Word {
	if op == EXCEPTION_BRK {
		return Word(0xd4200000 | uint32(imm16)<<5)
	}
	return Word(0xd4000000 | uint32(imm16)<<5 | uint32(op&3))
}
