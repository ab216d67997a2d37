package asm

import (
	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

// moveReg matches the 64-bit register move `mov xd, xm`, that is
// `orr xd, xzr, xm`.
func moveReg(inst arm64.Inst) (rd, rm arm64.Reg, ok bool) {
	if inst.Class != arm64.CLASS_LOGICAL_REG || !inst.Wide || inst.Invert ||
		arm64.LogicOp(inst.Op) != arm64.LOGIC_ORR || inst.Rn != arm64.REG_ZR ||
		inst.Shift != arm64.SHIFT_LSL || inst.Amount != 0 {
		return
	}
	return inst.Rd, inst.Rm, true
}

// Peephole rewrites an adjacent pair of instructions. Rewrites never change
// the program size: a removed instruction becomes a NOP. When there is no
// previous instruction in the run, pass arm64.NOP as prev.
func Peephole(prev, cur arm64.Word) (newPrev, newCur arm64.Word, changed bool) {
	newPrev, newCur = prev, cur

	p := arm64.Decode(prev)
	c := arm64.Decode(cur)

	// mov xA, xA
	if rd, rm, ok := moveReg(c); ok && rd == rm {
		newCur = arm64.NOP
		changed = true
		return
	}

	// mov xA, xB; mov xB, xA
	if pd, pm, ok := moveReg(p); ok && pd != arm64.REG_ZR && pm != arm64.REG_ZR {
		if cd, cm, ok := moveReg(c); ok && cd == pm && cm == pd {
			newCur = arm64.NOP
			changed = true
			return
		}
	}

	// add xA, xA, #0
	if c.Class == arm64.CLASS_ADDSUB_IMM && c.Wide && arm64.AddSubOp(c.Op) == arm64.ADDSUB_ADD &&
		c.Imm == 0 && c.Rd == c.Rn {
		newCur = arm64.NOP
		changed = true
		return
	}

	// str xT, [xN, #o]; ldr xT, [xN, #o]
	if p.Class == arm64.CLASS_LOAD_STORE && c.Class == arm64.CLASS_LOAD_STORE &&
		p.Mode == arm64.ADDR_OFFSET && c.Mode == arm64.ADDR_OFFSET &&
		p.Ls == arm64.LS_STR && c.Ls == arm64.LS_LDR &&
		p.Rd == c.Rd && p.Rn == c.Rn && p.Imm == c.Imm && c.Rd != c.Rn {
		newCur = arm64.NOP
		changed = true
		return
	}

	// mov xA, xB; op xD, xA, ... => op xD, xB, ...
	if pd, pm, ok := moveReg(p); ok && pd != pm && pd != arm64.REG_ZR && pm != arm64.REG_ZR {
		switch c.Class {
		case arm64.CLASS_ADDSUB_REG, arm64.CLASS_LOGICAL_REG:
		default:
			return
		}
		if !c.Wide {
			return
		}
		word := uint32(cur)
		if c.Rn == pd {
			word = word&^(31<<5) | uint32(pm)<<5
		}
		if c.Rm == pd {
			word = word&^(31<<16) | uint32(pm)<<16
		}
		if arm64.Word(word) != cur {
			newCur = arm64.Word(word)
			changed = true
		}
	}

	return
}
