package asm

import (
	"strings"

	"github.com/u6170252806-cmd/EmberOS-sub001/abi"
	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

var addSubMap = map[string]arm64.AddSubOp{
	"add":  arm64.ADDSUB_ADD,
	"adds": arm64.ADDSUB_ADDS,
	"sub":  arm64.ADDSUB_SUB,
	"subs": arm64.ADDSUB_SUBS,
	"cmn":  arm64.ADDSUB_ADDS,
	"cmp":  arm64.ADDSUB_SUBS,
	"neg":  arm64.ADDSUB_SUB,
	"negs": arm64.ADDSUB_SUBS,
}

var logicMap = map[string]arm64.LogicOp{
	"and":  arm64.LOGIC_AND,
	"orr":  arm64.LOGIC_ORR,
	"eor":  arm64.LOGIC_EOR,
	"ands": arm64.LOGIC_ANDS,
	"bic":  arm64.LOGIC_AND,
	"orn":  arm64.LOGIC_ORR,
	"eon":  arm64.LOGIC_EOR,
	"bics": arm64.LOGIC_ANDS,
	"tst":  arm64.LOGIC_ANDS,
	"mvn":  arm64.LOGIC_ORR,
}

var moveWideMap = map[string]arm64.MoveWideOp{
	"movn": arm64.MOVE_N,
	"movz": arm64.MOVE_Z,
	"movk": arm64.MOVE_K,
}

var data2Map = map[string]arm64.DataOp2{
	"udiv": arm64.DATA2_UDIV,
	"sdiv": arm64.DATA2_SDIV,
	"lsl":  arm64.DATA2_LSLV,
	"lsr":  arm64.DATA2_LSRV,
	"asr":  arm64.DATA2_ASRV,
	"ror":  arm64.DATA2_RORV,
}

var condSelMap = map[string]arm64.CondSelOp{
	"csel":  arm64.CONDSEL_CSEL,
	"csinc": arm64.CONDSEL_CSINC,
	"csinv": arm64.CONDSEL_CSINV,
	"csneg": arm64.CONDSEL_CSNEG,
}

var hintMap = map[string]arm64.HintOp{
	"nop":   arm64.HINT_NOP,
	"yield": arm64.HINT_YIELD,
	"wfe":   arm64.HINT_WFE,
	"wfi":   arm64.HINT_WFI,
	"sev":   arm64.HINT_SEV,
	"sevl":  arm64.HINT_SEVL,
}

var barrierMap = map[string]arm64.BarrierOp{
	"dsb": arm64.BARRIER_DSB,
	"dmb": arm64.BARRIER_DMB,
	"isb": arm64.BARRIER_ISB,
}

var exceptionMap = map[string]arm64.ExceptionOp{
	"brk": arm64.EXCEPTION_BRK,
	"svc": arm64.EXCEPTION_SVC,
	"hvc": arm64.EXCEPTION_HVC,
	"smc": arm64.EXCEPTION_SMC,
}

var branchRegMap = map[string]arm64.BranchRegOp{
	"br":  arm64.BRANCH_BR,
	"blr": arm64.BRANCH_BLR,
	"ret": arm64.BRANCH_RET,
}

func zr(wide bool) Register {
	return Register{Index: arm64.REG_ZR, Wide: wide}
}

func bitWidth(wide bool) int64 {
	if wide {
		return 64
	}
	return 32
}

// field checks that register 31 is written as sp when the encoding reads it
// as SP, and as xzr/wzr otherwise.
func field(reg Register, sp bool) (index arm64.Reg, err error) {
	if reg.Index == 31 && reg.SP != sp {
		err = ErrOperands
		return
	}
	index = reg.Index
	return
}

func sameWidth(regs ...Register) (err error) {
	for _, reg := range regs[1:] {
		if reg.Wide != regs[0].Wide {
			err = ErrWidthMismatch
			return
		}
	}
	return
}

func registers(ops []Operand, count int) (regs []Register, err error) {
	if len(ops) < count {
		err = ErrOperands
		return
	}
	regs = make([]Register, count)
	for n := range count {
		reg, ok := ops[n].(Register)
		if !ok {
			err = ErrOperands
			return
		}
		regs[n] = reg
	}
	return
}

func checkReserved(ops []Operand) (err error) {
	check := func(reg Register) error {
		if reg.Index != 31 && abi.Reserved(reg.Index) {
			return ErrRegisterReserved(reg.Index)
		}
		return nil
	}
	for _, op := range ops {
		switch op := op.(type) {
		case Register:
			err = check(op)
		case Memory:
			err = check(op.Base)
			if err == nil && op.HasIndex {
				err = check(op.Index)
			}
		}
		if err != nil {
			return
		}
	}
	return
}

// shiftOf decodes an optional trailing shift operand at ops[n].
func shiftOf(ops []Operand, n int, wide bool, ror bool) (shift arm64.ShiftType, amount uint32, err error) {
	if len(ops) <= n {
		return
	}
	sh, ok := ops[n].(Shift)
	if !ok || (sh.Type == arm64.SHIFT_ROR && !ror) {
		err = ErrOperands
		return
	}
	if sh.Amount < 0 || sh.Amount >= bitWidth(wide) {
		err = &ErrRange{Field: sh.Type.String(), Value: sh.Amount}
		return
	}
	shift = sh.Type
	amount = uint32(sh.Amount)
	return
}

func isValue(op Operand) bool {
	switch op.(type) {
	case Immediate, LabelRef:
		return true
	}
	return false
}

// displacement resolves a pc relative target into a signed field of width
// bits. Branch fields count words, and need a word aligned target.
func (gen *Generator) displacement(op Operand, name string, width uint, words bool) (disp int64, err error) {
	if !isValue(op) {
		err = ErrOperands
		return
	}
	target, err := gen.resolve(op)
	if err != nil {
		return
	}
	disp = target - int64(gen.pc())
	if words {
		if target%4 != 0 || disp%4 != 0 {
			err = ErrAlignment
			return
		}
		disp /= 4
	}
	limit := int64(1) << (width - 1)
	if disp < -limit || disp >= limit {
		err = &ErrRange{Field: name, Value: disp}
	}
	return
}

// encode lowers a single instruction at the current location.
func (gen *Generator) encode(name string, ops []Operand) (word arm64.Word, err error) {
	err = checkReserved(ops)
	if err != nil {
		return
	}

	switch name {
	case "add", "adds", "sub", "subs":
		word, err = gen.addSub(addSubMap[name], ops)
	case "cmp", "cmn":
		if len(ops) < 2 {
			err = ErrOperands
			return
		}
		rn, ok := ops[0].(Register)
		if !ok {
			err = ErrOperands
			return
		}
		word, err = gen.addSub(addSubMap[name], append([]Operand{zr(rn.Wide)}, ops...))
	case "neg", "negs":
		if len(ops) < 2 {
			err = ErrOperands
			return
		}
		rd, ok := ops[0].(Register)
		if !ok {
			err = ErrOperands
			return
		}
		args := append([]Operand{rd, zr(rd.Wide)}, ops[1:]...)
		if !isValue(args[2]) {
			word, err = gen.addSub(addSubMap[name], args)
		} else {
			err = ErrOperands
		}
	case "and", "ands", "orr", "eor":
		word, err = gen.logical(logicMap[name], false, ops)
	case "bic", "bics", "orn", "eon":
		word, err = gen.logical(logicMap[name], true, ops)
	case "tst":
		if len(ops) < 2 {
			err = ErrOperands
			return
		}
		rn, ok := ops[0].(Register)
		if !ok {
			err = ErrOperands
			return
		}
		word, err = gen.logical(arm64.LOGIC_ANDS, false, append([]Operand{zr(rn.Wide)}, ops...))
	case "mvn":
		if len(ops) < 2 {
			err = ErrOperands
			return
		}
		rd, ok := ops[0].(Register)
		if !ok || isValue(ops[1]) {
			err = ErrOperands
			return
		}
		word, err = gen.logical(arm64.LOGIC_ORR, true, append([]Operand{rd, zr(rd.Wide)}, ops[1:]...))
	case "mov":
		word, err = gen.move(ops)
	case "movz", "movn", "movk":
		word, err = gen.moveWide(moveWideMap[name], ops)
	case "mul", "madd", "msub":
		count := 4
		if name == "mul" {
			count = 3
		}
		var regs []Register
		regs, err = registers(ops, count)
		if err != nil {
			return
		}
		if len(ops) != count {
			err = ErrOperands
			return
		}
		if count == 3 {
			regs = append(regs, zr(regs[0].Wide))
		}
		word, err = gen.data3(name == "msub", regs)
	case "udiv", "sdiv":
		word, err = gen.data2(data2Map[name], ops)
	case "lsl", "lsr", "asr", "ror":
		if len(ops) == 3 && isValue(ops[2]) {
			word, err = gen.shiftImm(name, ops)
		} else {
			word, err = gen.data2(data2Map[name], ops)
		}
	case "csel", "csinc", "csinv", "csneg":
		word, err = gen.condSelect(condSelMap[name], ops)
	case "cset":
		word, err = gen.condSet(ops)
	case "b", "bl":
		if len(ops) != 1 {
			err = ErrOperands
			return
		}
		var disp int64
		disp, err = gen.displacement(ops[0], "imm26", 26, true)
		if err != nil {
			return
		}
		word = arm64.MakeBranch(name == "bl", disp)
	case "cbz", "cbnz":
		word, err = gen.compareBranch(name == "cbnz", ops)
	case "br", "blr", "ret":
		word, err = gen.branchReg(branchRegMap[name], ops)
	case "adr":
		word, err = gen.adr(ops)
	case "ldr", "str", "ldrb", "strb", "ldrh", "strh", "ldrsb", "ldrsh", "ldrsw":
		word, err = gen.loadStore(name, ops)
	case "ldp", "stp":
		word, err = gen.pair(name == "ldp", ops)
	case "nop", "yield", "wfe", "wfi", "sev", "sevl":
		if len(ops) != 0 {
			err = ErrOperands
			return
		}
		word = arm64.MakeHint(hintMap[name])
	case "dmb", "dsb", "isb":
		word, err = gen.barrier(barrierMap[name], ops)
	case "svc", "hvc", "smc", "brk":
		if len(ops) != 1 || !isValue(ops[0]) {
			err = ErrOperands
			return
		}
		var imm int64
		imm, err = gen.resolve(ops[0])
		if err != nil {
			return
		}
		if imm < 0 || imm > 0xffff {
			err = &ErrRange{Field: "imm16", Value: imm}
			return
		}
		word = arm64.MakeException(exceptionMap[name], uint16(imm))
	default:
		if cond, ok := branchCond(name); ok {
			word, err = gen.branchCond(cond, ops)
			return
		}
		service, ok := abi.Lookup(name)
		if !ok {
			err = ErrMnemonicUnsupported(name)
			return
		}
		if len(ops) != 0 {
			err = ErrOperands
			return
		}
		word = abi.EncodeSVC(service.Code)
	}

	return
}

// branchCond decodes the b.<cond> and b<cond> mnemonics.
func branchCond(name string) (cond arm64.Cond, ok bool) {
	switch {
	case strings.HasPrefix(name, "b."):
		cond, ok = arm64.ParseCond(name[2:])
	case len(name) == 3 && name[0] == 'b':
		cond, ok = arm64.ParseCond(name[1:])
	}
	return
}

func (gen *Generator) addSub(op arm64.AddSubOp, ops []Operand) (word arm64.Word, err error) {
	if len(ops) < 3 || len(ops) > 4 {
		err = ErrOperands
		return
	}
	regs, err := registers(ops, 2)
	if err != nil {
		return
	}
	rd, rn := regs[0], regs[1]

	if rm, ok := ops[2].(Register); ok {
		err = sameWidth(rd, rn, rm)
		if err != nil {
			return
		}
		if rd.SP || rn.SP || rm.SP {
			err = ErrOperands
			return
		}
		var shift arm64.ShiftType
		var amount uint32
		shift, amount, err = shiftOf(ops, 3, rd.Wide, false)
		if err != nil {
			return
		}
		word = arm64.MakeAddSubReg(op, rd.Wide, rd.Index, rn.Index, rm.Index, shift, amount)
		return
	}

	if !isValue(ops[2]) {
		err = ErrOperands
		return
	}
	err = sameWidth(rd, rn)
	if err != nil {
		return
	}

	value, err := gen.resolve(ops[2])
	if err != nil {
		return
	}
	original := value

	shift12 := false
	if len(ops) == 4 {
		sh, ok := ops[3].(Shift)
		if !ok || sh.Type != arm64.SHIFT_LSL || (sh.Amount != 0 && sh.Amount != 12) {
			err = ErrOperands
			return
		}
		shift12 = sh.Amount == 12
	}

	if value < 0 {
		op = op.Negate()
		value = -value
	}
	if !shift12 && value > 0xfff && value&0xfff == 0 {
		shift12 = true
		value >>= 12
	}
	if value < 0 || value > 0xfff {
		err = &ErrRange{Field: "imm12", Value: original}
		return
	}

	rdIndex, err := field(rd, !op.SetsFlags())
	if err != nil {
		return
	}
	rnIndex, err := field(rn, true)
	if err != nil {
		return
	}

	word = arm64.MakeAddSubImm(op, rd.Wide, rdIndex, rnIndex, uint32(value), shift12)
	return
}

// bitmaskOf checks the width of a logical immediate and encodes it.
func bitmaskOf(value int64, wide bool) (n, immr, imms uint32, err error) {
	u := uint64(value)
	if !wide {
		if value < -(1<<31) || value > 0xffffffff {
			err = &ErrRange{Field: "bitmask", Value: value}
			return
		}
		u &= 0xffffffff
	}
	n, immr, imms, ok := arm64.EncodeBitmask(u, wide)
	if !ok {
		err = &ErrRange{Field: "bitmask", Value: value}
	}
	return
}

func (gen *Generator) logical(op arm64.LogicOp, invert bool, ops []Operand) (word arm64.Word, err error) {
	if len(ops) < 3 || len(ops) > 4 {
		err = ErrOperands
		return
	}
	regs, err := registers(ops, 2)
	if err != nil {
		return
	}
	rd, rn := regs[0], regs[1]

	if rm, ok := ops[2].(Register); ok {
		err = sameWidth(rd, rn, rm)
		if err != nil {
			return
		}
		if rd.SP || rn.SP || rm.SP {
			err = ErrOperands
			return
		}
		var shift arm64.ShiftType
		var amount uint32
		shift, amount, err = shiftOf(ops, 3, rd.Wide, true)
		if err != nil {
			return
		}
		word = arm64.MakeLogicalReg(op, invert, rd.Wide, rd.Index, rn.Index, rm.Index, shift, amount)
		return
	}

	if len(ops) != 3 || !isValue(ops[2]) {
		err = ErrOperands
		return
	}
	err = sameWidth(rd, rn)
	if err != nil {
		return
	}
	value, err := gen.resolve(ops[2])
	if err != nil {
		return
	}
	if invert {
		value = ^value
		if !rd.Wide {
			value &= 0xffffffff
		}
	}
	n, immr, imms, err := bitmaskOf(value, rd.Wide)
	if err != nil {
		return
	}

	rdIndex, err := field(rd, op != arm64.LOGIC_ANDS)
	if err != nil {
		return
	}
	rnIndex, err := field(rn, false)
	if err != nil {
		return
	}

	word = arm64.MakeLogicalImm(op, rd.Wide, rdIndex, rnIndex, n, immr, imms)
	return
}

// move lowers mov to a register move, MOVZ, MOVN or a bitmask ORR, in that
// order of preference.
func (gen *Generator) move(ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 2 {
		err = ErrOperands
		return
	}
	rd, ok := ops[0].(Register)
	if !ok {
		err = ErrOperands
		return
	}

	if rm, ok := ops[1].(Register); ok {
		err = sameWidth(rd, rm)
		if err != nil {
			return
		}
		if rd.SP || rm.SP {
			var rdIndex, rmIndex arm64.Reg
			rdIndex, err = field(rd, true)
			if err != nil {
				return
			}
			rmIndex, err = field(rm, true)
			if err != nil {
				return
			}
			word = arm64.MakeAddSubImm(arm64.ADDSUB_ADD, rd.Wide, rdIndex, rmIndex, 0, false)
			return
		}
		word = arm64.MakeLogicalReg(arm64.LOGIC_ORR, false, rd.Wide, rd.Index, arm64.REG_ZR, rm.Index, arm64.SHIFT_LSL, 0)
		return
	}

	if !isValue(ops[1]) {
		err = ErrOperands
		return
	}
	value, err := gen.resolve(ops[1])
	if err != nil {
		return
	}

	width := bitWidth(rd.Wide)
	u := uint64(value)
	if !rd.Wide {
		if value < -(1<<31) || value > 0xffffffff {
			err = &ErrRange{Field: "mov", Value: value}
			return
		}
		u &= 0xffffffff
	}

	if !rd.SP {
		mask := uint64(0xffff)
		for hw := range uint32(width / 16) {
			shift := hw * 16
			if u&^(mask<<shift) == 0 {
				word = arm64.MakeMoveWide(arm64.MOVE_Z, rd.Wide, rd.Index, uint32(u>>shift), hw)
				return
			}
		}
		nu := ^u
		if !rd.Wide {
			nu &= 0xffffffff
		}
		for hw := range uint32(width / 16) {
			shift := hw * 16
			if nu&^(mask<<shift) == 0 {
				word = arm64.MakeMoveWide(arm64.MOVE_N, rd.Wide, rd.Index, uint32(nu>>shift), hw)
				return
			}
		}
	}

	n, immr, imms, ok := arm64.EncodeBitmask(u, rd.Wide)
	if !ok {
		err = &ErrRange{Field: "mov", Value: value}
		return
	}
	rdIndex, err := field(rd, true)
	if err != nil {
		return
	}
	word = arm64.MakeLogicalImm(arm64.LOGIC_ORR, rd.Wide, rdIndex, arm64.REG_ZR, n, immr, imms)
	return
}

func (gen *Generator) moveWide(op arm64.MoveWideOp, ops []Operand) (word arm64.Word, err error) {
	if len(ops) < 2 || len(ops) > 3 || !isValue(ops[1]) {
		err = ErrOperands
		return
	}
	rd, ok := ops[0].(Register)
	if !ok || rd.SP {
		err = ErrOperands
		return
	}
	imm, err := gen.resolve(ops[1])
	if err != nil {
		return
	}
	if imm < 0 || imm > 0xffff {
		err = &ErrRange{Field: "imm16", Value: imm}
		return
	}
	var hw uint32
	if len(ops) == 3 {
		sh, ok := ops[2].(Shift)
		if !ok || sh.Type != arm64.SHIFT_LSL {
			err = ErrOperands
			return
		}
		if sh.Amount < 0 || sh.Amount%16 != 0 || sh.Amount >= bitWidth(rd.Wide) {
			err = &ErrRange{Field: "lsl", Value: sh.Amount}
			return
		}
		hw = uint32(sh.Amount / 16)
	}
	word = arm64.MakeMoveWide(op, rd.Wide, rd.Index, uint32(imm), hw)
	return
}

func plain(regs ...Register) (err error) {
	err = sameWidth(regs...)
	if err != nil {
		return
	}
	for _, reg := range regs {
		if reg.SP {
			err = ErrOperands
			return
		}
	}
	return
}

func (gen *Generator) data3(sub bool, regs []Register) (word arm64.Word, err error) {
	err = plain(regs...)
	if err != nil {
		return
	}
	word = arm64.MakeData3(sub, regs[0].Wide, regs[0].Index, regs[1].Index, regs[2].Index, regs[3].Index)
	return
}

func (gen *Generator) data2(op arm64.DataOp2, ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 3 {
		err = ErrOperands
		return
	}
	regs, err := registers(ops, 3)
	if err != nil {
		return
	}
	err = plain(regs...)
	if err != nil {
		return
	}
	word = arm64.MakeData2(op, regs[0].Wide, regs[0].Index, regs[1].Index, regs[2].Index)
	return
}

// shiftImm lowers the immediate shifts to their bitfield and extract aliases.
func (gen *Generator) shiftImm(name string, ops []Operand) (word arm64.Word, err error) {
	regs, err := registers(ops, 2)
	if err != nil {
		return
	}
	rd, rn := regs[0], regs[1]
	err = plain(rd, rn)
	if err != nil {
		return
	}
	amount, err := gen.resolve(ops[2])
	if err != nil {
		return
	}
	width := bitWidth(rd.Wide)
	if amount < 0 || amount >= width {
		err = &ErrRange{Field: name, Value: amount}
		return
	}
	s := uint32(amount)
	w := uint32(width)

	switch name {
	case "lsl":
		word = arm64.MakeBitfield(arm64.BITFIELD_UBFM, rd.Wide, rd.Index, rn.Index, (w-s)%w, w-1-s)
	case "lsr":
		word = arm64.MakeBitfield(arm64.BITFIELD_UBFM, rd.Wide, rd.Index, rn.Index, s, w-1)
	case "asr":
		word = arm64.MakeBitfield(arm64.BITFIELD_SBFM, rd.Wide, rd.Index, rn.Index, s, w-1)
	case "ror":
		word = arm64.MakeExtract(rd.Wide, rd.Index, rn.Index, rn.Index, s)
	}
	return
}

func condOf(op Operand) (cond arm64.Cond, err error) {
	ref, ok := op.(LabelRef)
	if !ok {
		err = ErrCondition
		return
	}
	cond, ok = arm64.ParseCond(ref.Name)
	if !ok {
		err = ErrCondition
	}
	return
}

func (gen *Generator) condSelect(op arm64.CondSelOp, ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 4 {
		err = ErrOperands
		return
	}
	regs, err := registers(ops, 3)
	if err != nil {
		return
	}
	err = plain(regs...)
	if err != nil {
		return
	}
	cond, err := condOf(ops[3])
	if err != nil {
		return
	}
	word = arm64.MakeCondSelect(op, regs[0].Wide, regs[0].Index, regs[1].Index, regs[2].Index, cond)
	return
}

func (gen *Generator) condSet(ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 2 {
		err = ErrOperands
		return
	}
	rd, ok := ops[0].(Register)
	if !ok || rd.SP {
		err = ErrOperands
		return
	}
	cond, err := condOf(ops[1])
	if err != nil {
		return
	}
	if cond >= arm64.COND_AL {
		err = ErrCondition
		return
	}
	word = arm64.MakeCondSelect(arm64.CONDSEL_CSINC, rd.Wide, rd.Index, arm64.REG_ZR, arm64.REG_ZR, cond.Invert())
	return
}

func (gen *Generator) branchCond(cond arm64.Cond, ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 1 {
		err = ErrOperands
		return
	}
	disp, err := gen.displacement(ops[0], "imm19", 19, true)
	if err != nil {
		return
	}
	word = arm64.MakeBranchCond(cond, disp)
	return
}

func (gen *Generator) compareBranch(nonzero bool, ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 2 {
		err = ErrOperands
		return
	}
	rt, ok := ops[0].(Register)
	if !ok || rt.SP {
		err = ErrOperands
		return
	}
	disp, err := gen.displacement(ops[1], "imm19", 19, true)
	if err != nil {
		return
	}
	word = arm64.MakeCompareBranch(nonzero, rt.Wide, rt.Index, disp)
	return
}

func (gen *Generator) branchReg(op arm64.BranchRegOp, ops []Operand) (word arm64.Word, err error) {
	rn := Register{Index: arm64.REG_LR, Wide: true}
	switch {
	case len(ops) == 0 && op == arm64.BRANCH_RET:
	case len(ops) == 1:
		var ok bool
		rn, ok = ops[0].(Register)
		if !ok || rn.SP || !rn.Wide {
			err = ErrOperands
			return
		}
	default:
		err = ErrOperands
		return
	}
	word = arm64.MakeBranchReg(op, rn.Index)
	return
}

func (gen *Generator) adr(ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 2 {
		err = ErrOperands
		return
	}
	rd, ok := ops[0].(Register)
	if !ok || rd.SP || !rd.Wide {
		err = ErrOperands
		return
	}
	disp, err := gen.displacement(ops[1], "imm21", 21, false)
	if err != nil {
		return
	}
	word = arm64.MakeAdr(rd.Index, disp)
	return
}

// loadStoreOf selects the operation for a mnemonic and transfer register.
func loadStoreOf(name string, wide bool) (ls arm64.LoadStore, err error) {
	switch name {
	case "ldr":
		ls = arm64.LS_LDRW
		if wide {
			ls = arm64.LS_LDR
		}
	case "str":
		ls = arm64.LS_STRW
		if wide {
			ls = arm64.LS_STR
		}
	case "ldrsb":
		ls = arm64.LS_LDRSBW
		if wide {
			ls = arm64.LS_LDRSB
		}
	case "ldrsh":
		ls = arm64.LS_LDRSHW
		if wide {
			ls = arm64.LS_LDRSH
		}
	case "ldrb", "strb", "ldrh", "strh":
		if wide {
			err = ErrWidthMismatch
			return
		}
		ls = map[string]arm64.LoadStore{
			"ldrb": arm64.LS_LDRB,
			"strb": arm64.LS_STRB,
			"ldrh": arm64.LS_LDRH,
			"strh": arm64.LS_STRH,
		}[name]
	case "ldrsw":
		if !wide {
			err = ErrWidthMismatch
			return
		}
		ls = arm64.LS_LDRSW
	}
	return
}

// address resolves the base register and byte offset of a memory operand.
func (gen *Generator) address(mem Memory) (base arm64.Reg, offset int64, err error) {
	if !mem.Base.Wide {
		err = ErrOperands
		return
	}
	base, err = field(mem.Base, true)
	if err != nil {
		return
	}
	offset = mem.Offset
	if mem.Symbol != "" {
		var value int64
		value, err = gen.symbols.Resolve(mem.Symbol)
		if err != nil {
			return
		}
		offset += value
	}
	return
}

func (gen *Generator) loadStore(name string, ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 2 {
		err = ErrOperands
		return
	}
	rt, ok := ops[0].(Register)
	if !ok || rt.SP {
		err = ErrOperands
		return
	}
	ls, err := loadStoreOf(name, rt.Wide)
	if err != nil {
		return
	}

	mem, ok := ops[1].(Memory)
	if !ok {
		// pc relative literal
		switch ls {
		case arm64.LS_LDR, arm64.LS_LDRW, arm64.LS_LDRSW:
		default:
			err = ErrOperands
			return
		}
		var disp int64
		disp, err = gen.displacement(ops[1], "imm19", 19, true)
		if err != nil {
			return
		}
		word = arm64.MakeLoadLiteral(ls, rt.Index, disp)
		return
	}

	base, offset, err := gen.address(mem)
	if err != nil {
		return
	}

	if mem.HasIndex {
		if mem.Mode != arm64.ADDR_OFFSET || offset != 0 || !mem.Index.Wide || mem.Index.SP {
			err = ErrOperands
			return
		}
		word = arm64.MakeLoadStoreReg(ls, rt.Index, base, mem.Index.Index)
		return
	}

	size := int64(1) << ls.Size()
	switch {
	case mem.Mode == arm64.ADDR_OFFSET && offset >= 0 && offset%size == 0 && offset/size <= 0xfff:
		word = arm64.MakeLoadStoreUnsigned(ls, rt.Index, base, uint32(offset/size))
	case offset >= -256 && offset <= 255:
		mode := mem.Mode
		if mode == arm64.ADDR_OFFSET {
			mode = arm64.ADDR_UNSCALED
		}
		word = arm64.MakeLoadStoreIndexed(ls, mode, rt.Index, base, offset)
	default:
		err = &ErrRange{Field: "offset", Value: offset}
	}
	return
}

func (gen *Generator) pair(load bool, ops []Operand) (word arm64.Word, err error) {
	if len(ops) != 3 {
		err = ErrOperands
		return
	}
	regs, err := registers(ops, 2)
	if err != nil {
		return
	}
	err = plain(regs...)
	if err != nil {
		return
	}
	mem, ok := ops[2].(Memory)
	if !ok || mem.HasIndex {
		err = ErrOperands
		return
	}
	base, offset, err := gen.address(mem)
	if err != nil {
		return
	}
	scale := int64(4)
	if regs[0].Wide {
		scale = 8
	}
	if offset%scale != 0 || offset/scale < -64 || offset/scale > 63 {
		err = &ErrRange{Field: "imm7", Value: offset}
		return
	}
	word = arm64.MakeLoadStorePair(load, regs[0].Wide, mem.Mode, regs[0].Index, regs[1].Index, base, offset/scale)
	return
}

func (gen *Generator) barrier(op arm64.BarrierOp, ops []Operand) (word arm64.Word, err error) {
	option := uint8(15)
	switch {
	case len(ops) == 0:
	case len(ops) > 1:
		err = ErrOperands
		return
	default:
		switch arg := ops[0].(type) {
		case LabelRef:
			value, ok := arm64.BarrierOption[strings.ToLower(arg.Name)]
			if !ok {
				err = ErrOperands
				return
			}
			option = value
		case Immediate:
			if arg.Value < 0 || arg.Value > 15 {
				err = &ErrRange{Field: "option", Value: arg.Value}
				return
			}
			option = uint8(arg.Value)
		default:
			err = ErrOperands
			return
		}
	}
	word = arm64.MakeBarrier(op, option)
	return
}
