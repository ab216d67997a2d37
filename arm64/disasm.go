package arm64

import (
	"encoding/binary"
	"fmt"
	"iter"
	"strings"
)

// RegName names a register. sp selects SP over ZR for index 31.
func RegName(reg Reg, wide bool, sp bool) string {
	switch {
	case reg == 31 && sp && wide:
		return "sp"
	case reg == 31 && sp:
		return "wsp"
	case reg == 31 && wide:
		return "xzr"
	case reg == 31:
		return "wzr"
	case wide:
		return fmt.Sprintf("x%d", reg)
	default:
		return fmt.Sprintf("w%d", reg)
	}
}

func shifted(text string, shift ShiftType, amount uint32) string {
	if amount == 0 && shift == SHIFT_LSL {
		return text
	}
	return fmt.Sprintf("%s, %v #%d", text, shift, amount)
}

func memory(base Reg, offset int64) string {
	if offset == 0 {
		return fmt.Sprintf("[%s]", RegName(base, true, true))
	}
	return fmt.Sprintf("[%s, #%d]", RegName(base, true, true), offset)
}

// Text renders the instruction as assembly text. pc is the address of the
// instruction, used to print absolute branch targets.
func (inst Inst) Text(pc uint64) (text string) {
	r := func(reg Reg) string { return RegName(reg, inst.Wide, false) }
	rsp := func(reg Reg) string { return RegName(reg, inst.Wide, true) }
	target, _ := inst.Target(pc)

	switch inst.Class {
	case CLASS_ADDSUB_IMM:
		op := AddSubOp(inst.Op)
		switch {
		case op == ADDSUB_ADD && inst.Imm == 0 && (inst.Rd == 31 || inst.Rn == 31):
			text = fmt.Sprintf("mov %s, %s", rsp(inst.Rd), rsp(inst.Rn))
		case op == ADDSUB_SUBS && inst.Rd == 31:
			text = fmt.Sprintf("cmp %s, #%d", rsp(inst.Rn), inst.Imm)
		case op == ADDSUB_ADDS && inst.Rd == 31:
			text = fmt.Sprintf("cmn %s, #%d", rsp(inst.Rn), inst.Imm)
		case op.SetsFlags():
			text = fmt.Sprintf("%v %s, %s, #%d", op, r(inst.Rd), rsp(inst.Rn), inst.Imm)
		default:
			text = fmt.Sprintf("%v %s, %s, #%d", op, rsp(inst.Rd), rsp(inst.Rn), inst.Imm)
		}
	case CLASS_ADDSUB_REG:
		op := AddSubOp(inst.Op)
		switch {
		case op == ADDSUB_SUBS && inst.Rd == 31:
			text = shifted(fmt.Sprintf("cmp %s, %s", r(inst.Rn), r(inst.Rm)), inst.Shift, inst.Amount)
		case op == ADDSUB_ADDS && inst.Rd == 31:
			text = shifted(fmt.Sprintf("cmn %s, %s", r(inst.Rn), r(inst.Rm)), inst.Shift, inst.Amount)
		case op == ADDSUB_SUB && inst.Rn == 31:
			text = shifted(fmt.Sprintf("neg %s, %s", r(inst.Rd), r(inst.Rm)), inst.Shift, inst.Amount)
		default:
			text = shifted(fmt.Sprintf("%v %s, %s, %s", op, r(inst.Rd), r(inst.Rn), r(inst.Rm)), inst.Shift, inst.Amount)
		}
	case CLASS_LOGICAL_REG:
		op := LogicOp(inst.Op)
		name := op.String()
		if inst.Invert {
			name = [...]string{"bic", "orn", "eon", "bics"}[op]
		}
		switch {
		case op == LOGIC_ORR && !inst.Invert && inst.Rn == 31 && inst.Amount == 0:
			text = fmt.Sprintf("mov %s, %s", r(inst.Rd), r(inst.Rm))
		case op == LOGIC_ORR && inst.Invert && inst.Rn == 31:
			text = shifted(fmt.Sprintf("mvn %s, %s", r(inst.Rd), r(inst.Rm)), inst.Shift, inst.Amount)
		case op == LOGIC_ANDS && !inst.Invert && inst.Rd == 31:
			text = shifted(fmt.Sprintf("tst %s, %s", r(inst.Rn), r(inst.Rm)), inst.Shift, inst.Amount)
		default:
			text = shifted(fmt.Sprintf("%s %s, %s, %s", name, r(inst.Rd), r(inst.Rn), r(inst.Rm)), inst.Shift, inst.Amount)
		}
	case CLASS_LOGICAL_IMM:
		op := LogicOp(inst.Op)
		switch {
		case op == LOGIC_ORR && inst.Rn == 31:
			text = fmt.Sprintf("mov %s, #0x%x", rsp(inst.Rd), uint64(inst.Imm))
		case op == LOGIC_ANDS && inst.Rd == 31:
			text = fmt.Sprintf("tst %s, #0x%x", r(inst.Rn), uint64(inst.Imm))
		case op == LOGIC_ANDS:
			text = fmt.Sprintf("%v %s, %s, #0x%x", op, r(inst.Rd), r(inst.Rn), uint64(inst.Imm))
		default:
			text = fmt.Sprintf("%v %s, %s, #0x%x", op, rsp(inst.Rd), r(inst.Rn), uint64(inst.Imm))
		}
	case CLASS_MOVE_WIDE:
		text = fmt.Sprintf("%v %s, #0x%x", MoveWideOp(inst.Op), r(inst.Rd), inst.Imm)
		if inst.Amount != 0 {
			text += fmt.Sprintf(", lsl #%d", inst.Amount)
		}
	case CLASS_BITFIELD:
		width := uint32(32)
		if inst.Wide {
			width = 64
		}
		op := BitfieldOp(inst.Op)
		switch {
		case op == BITFIELD_UBFM && inst.Imms == width-1:
			text = fmt.Sprintf("lsr %s, %s, #%d", r(inst.Rd), r(inst.Rn), inst.Immr)
		case op == BITFIELD_UBFM && inst.Imms+1 == inst.Immr:
			text = fmt.Sprintf("lsl %s, %s, #%d", r(inst.Rd), r(inst.Rn), width-1-inst.Imms)
		case op == BITFIELD_SBFM && inst.Imms == width-1:
			text = fmt.Sprintf("asr %s, %s, #%d", r(inst.Rd), r(inst.Rn), inst.Immr)
		default:
			text = fmt.Sprintf("%v %s, %s, #%d, #%d", op, r(inst.Rd), r(inst.Rn), inst.Immr, inst.Imms)
		}
	case CLASS_EXTRACT:
		if inst.Rn == inst.Rm {
			text = fmt.Sprintf("ror %s, %s, #%d", r(inst.Rd), r(inst.Rn), inst.Imms)
		} else {
			text = fmt.Sprintf("extr %s, %s, %s, #%d", r(inst.Rd), r(inst.Rn), r(inst.Rm), inst.Imms)
		}
	case CLASS_DATA2:
		text = fmt.Sprintf("%v %s, %s, %s", DataOp2(inst.Op), r(inst.Rd), r(inst.Rn), r(inst.Rm))
	case CLASS_DATA3:
		switch {
		case inst.Op == 0 && inst.Ra == 31:
			text = fmt.Sprintf("mul %s, %s, %s", r(inst.Rd), r(inst.Rn), r(inst.Rm))
		case inst.Op == 0:
			text = fmt.Sprintf("madd %s, %s, %s, %s", r(inst.Rd), r(inst.Rn), r(inst.Rm), r(inst.Ra))
		default:
			text = fmt.Sprintf("msub %s, %s, %s, %s", r(inst.Rd), r(inst.Rn), r(inst.Rm), r(inst.Ra))
		}
	case CLASS_COND_SELECT:
		op := CondSelOp(inst.Op)
		if op == CONDSEL_CSINC && inst.Rn == 31 && inst.Rm == 31 && inst.Cond < COND_AL {
			text = fmt.Sprintf("cset %s, %v", r(inst.Rd), inst.Cond.Invert())
		} else {
			text = fmt.Sprintf("%v %s, %s, %s, %v", op, r(inst.Rd), r(inst.Rn), r(inst.Rm), inst.Cond)
		}
	case CLASS_BRANCH:
		name := "b"
		if inst.Op == 1 {
			name = "bl"
		}
		text = fmt.Sprintf("%s 0x%x", name, target)
	case CLASS_BRANCH_COND:
		text = fmt.Sprintf("b.%v 0x%x", inst.Cond, target)
	case CLASS_COMPARE_BRANCH:
		name := "cbz"
		if inst.Op == 1 {
			name = "cbnz"
		}
		text = fmt.Sprintf("%s %s, 0x%x", name, r(inst.Rd), target)
	case CLASS_BRANCH_REG:
		op := BranchRegOp(inst.Op)
		if op == BRANCH_RET && inst.Rn == REG_LR {
			text = "ret"
		} else {
			text = fmt.Sprintf("%v %s", op, RegName(inst.Rn, true, false))
		}
	case CLASS_ADR:
		text = fmt.Sprintf("adr %s, 0x%x", r(inst.Rd), target)
	case CLASS_LOAD_STORE:
		rt := r(inst.Rd)
		base := RegName(inst.Rn, true, true)
		switch inst.Mode {
		case ADDR_OFFSET, ADDR_UNSCALED:
			text = fmt.Sprintf("%v %s, %s", inst.Ls, rt, memory(inst.Rn, inst.Imm))
		case ADDR_PRE:
			text = fmt.Sprintf("%v %s, [%s, #%d]!", inst.Ls, rt, base, inst.Imm)
		case ADDR_POST:
			text = fmt.Sprintf("%v %s, [%s], #%d", inst.Ls, rt, base, inst.Imm)
		case ADDR_REGISTER:
			text = fmt.Sprintf("%v %s, [%s, %s]", inst.Ls, rt, base, RegName(inst.Rm, true, false))
		case ADDR_LITERAL:
			text = fmt.Sprintf("%v %s, 0x%x", inst.Ls, rt, target)
		}
	case CLASS_LOAD_STORE_PAIR:
		name := "stp"
		if inst.Load {
			name = "ldp"
		}
		regs := fmt.Sprintf("%s %s, %s", name, r(inst.Rd), r(inst.Ra))
		base := RegName(inst.Rn, true, true)
		switch inst.Mode {
		case ADDR_OFFSET:
			text = fmt.Sprintf("%s, %s", regs, memory(inst.Rn, inst.Imm))
		case ADDR_PRE:
			text = fmt.Sprintf("%s, [%s, #%d]!", regs, base, inst.Imm)
		case ADDR_POST:
			text = fmt.Sprintf("%s, [%s], #%d", regs, base, inst.Imm)
		}
	case CLASS_HINT:
		if inst.Op <= int(HINT_SEVL) {
			text = HintOp(inst.Op).String()
		} else {
			text = fmt.Sprintf("hint #%d", inst.Op)
		}
	case CLASS_BARRIER:
		option := fmt.Sprintf("#%d", inst.Imm)
		for name, value := range BarrierOption {
			if int64(value) == inst.Imm {
				option = name
				break
			}
		}
		text = fmt.Sprintf("%v %s", BarrierOp(inst.Op), option)
	case CLASS_EXCEPTION:
		text = fmt.Sprintf("%v #0x%x", ExceptionOp(inst.Op), inst.Imm)
	default:
		text = fmt.Sprintf(".word 0x%08x", uint32(inst.Word))
	}

	return strings.TrimSpace(text)
}

// Disassemble decodes and renders a single word located at pc.
func Disassemble(word Word, pc uint64) string {
	return Decode(word).Text(pc)
}

// Words iterates the little endian instruction words of code, keyed by
// address. A trailing partial word is ignored.
func Words(code []byte, base uint64) iter.Seq2[uint64, Word] {
	return func(yield func(uint64, Word) bool) {
		for offset := 0; offset+4 <= len(code); offset += 4 {
			word := Word(binary.LittleEndian.Uint32(code[offset:]))
			if !yield(base+uint64(offset), word) {
				return
			}
		}
	}
}
