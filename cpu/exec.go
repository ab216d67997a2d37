package cpu

import (
	"math"
	"math/bits"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

func mask(wide bool) uint64 {
	if wide {
		return math.MaxUint64
	}
	return math.MaxUint32
}

func width(wide bool) uint32 {
	if wide {
		return 64
	}
	return 32
}

func signBit(value uint64, wide bool) bool {
	return value>>(width(wide)-1)&1 != 0
}

func signExtend(value uint64, size uint32) uint64 {
	shift := 64 - size
	return uint64(int64(value<<shift) >> shift)
}

func rotateRight(value uint64, amount uint32, wide bool) uint64 {
	size := width(wide)
	amount %= size
	value &= mask(wide)
	if amount == 0 {
		return value
	}
	return (value>>amount | value<<(size-amount)) & mask(wide)
}

func shiftValue(value uint64, shift arm64.ShiftType, amount uint32, wide bool) uint64 {
	value &= mask(wide)
	amount %= width(wide)
	switch shift {
	case arm64.SHIFT_LSR:
		value >>= amount
	case arm64.SHIFT_ASR:
		value = uint64(int64(signExtend(value, width(wide))) >> amount)
	case arm64.SHIFT_ROR:
		value = rotateRight(value, amount, wide)
	default:
		value <<= amount
	}
	return value & mask(wide)
}

// addWithCarry returns x + y + carry in the operation width and the NZCV
// flags it produces.
func addWithCarry(x, y uint64, carry bool, wide bool) (result uint64, n, z, c, v bool) {
	var cin uint64
	if carry {
		cin = 1
	}
	x &= mask(wide)
	y &= mask(wide)

	if wide {
		var cout uint64
		result, cout = bits.Add64(x, y, cin)
		c = cout != 0
	} else {
		sum := x + y + cin
		result = sum & math.MaxUint32
		c = sum>>32 != 0
	}

	n = signBit(result, wide)
	z = result == 0
	v = signBit((x^result)&(y^result), wide)
	return
}

func (cpu *Cpu) setFlags(n, z, c, v bool) {
	cpu.N, cpu.Z, cpu.C, cpu.V = n, z, c, v
}

// Condition evaluates a condition code against the flags.
func (cpu *Cpu) Condition(cond arm64.Cond) (ok bool) {
	switch cond &^ 1 {
	case arm64.COND_EQ:
		ok = cpu.Z
	case arm64.COND_CS:
		ok = cpu.C
	case arm64.COND_MI:
		ok = cpu.N
	case arm64.COND_VS:
		ok = cpu.V
	case arm64.COND_HI:
		ok = cpu.C && !cpu.Z
	case arm64.COND_GE:
		ok = cpu.N == cpu.V
	case arm64.COND_GT:
		ok = !cpu.Z && cpu.N == cpu.V
	default:
		return true
	}
	if cond&1 != 0 {
		ok = !ok
	}
	return
}

// reg reads a register truncated to the operation width.
func (cpu *Cpu) reg(reg arm64.Reg, wide bool, sp bool) uint64 {
	return cpu.Get(reg, sp) & mask(wide)
}

// setReg writes a register, zero extending W results.
func (cpu *Cpu) setReg(reg arm64.Reg, wide bool, sp bool, value uint64) {
	cpu.Set(reg, sp, value&mask(wide))
}

func lowMask(length uint32) uint64 {
	if length >= 64 {
		return math.MaxUint64
	}
	return 1<<length - 1
}

// bitfield implements SBFM, BFM and UBFM.
func (cpu *Cpu) bitfield(inst arm64.Inst) {
	size := width(inst.Wide)
	src := cpu.reg(inst.Rn, inst.Wide, false)
	r, s := inst.Immr, inst.Imms

	// The field lands in destination bits low..top.
	var field uint64
	var low, top uint32
	if s >= r {
		length := s - r + 1
		field = (src >> r) & lowMask(length)
		top = length - 1
	} else {
		length := s + 1
		low = size - r
		field = (src & lowMask(length)) << low
		top = low + length - 1
	}

	value := field
	switch arm64.BitfieldOp(inst.Op) {
	case arm64.BITFIELD_SBFM:
		if src>>s&1 != 0 {
			value |= mask(inst.Wide) &^ lowMask(top+1)
		}
	case arm64.BITFIELD_BFM:
		keep := lowMask(top+1) &^ lowMask(low)
		value = cpu.reg(inst.Rd, inst.Wide, false)&^keep | field&keep
	}

	cpu.setReg(inst.Rd, inst.Wide, false, value)
}

func (cpu *Cpu) extract(inst arm64.Inst) {
	lsb := inst.Imms
	hi := cpu.reg(inst.Rn, inst.Wide, false)
	lo := cpu.reg(inst.Rm, inst.Wide, false)
	value := lo
	if lsb != 0 {
		value = lo>>lsb | hi<<(width(inst.Wide)-lsb)
	}
	cpu.setReg(inst.Rd, inst.Wide, false, value)
}

func (cpu *Cpu) data2(inst arm64.Inst) {
	x := cpu.reg(inst.Rn, inst.Wide, false)
	y := cpu.reg(inst.Rm, inst.Wide, false)
	var value uint64

	switch arm64.DataOp2(inst.Op) {
	case arm64.DATA2_UDIV:
		if y != 0 {
			value = x / y
		}
	case arm64.DATA2_SDIV:
		size := width(inst.Wide)
		a := int64(signExtend(x, size))
		b := int64(signExtend(y, size))
		switch {
		case b == 0:
		case b == -1:
			value = uint64(-a)
		default:
			value = uint64(a / b)
		}
	case arm64.DATA2_LSLV:
		value = shiftValue(x, arm64.SHIFT_LSL, uint32(y), inst.Wide)
	case arm64.DATA2_LSRV:
		value = shiftValue(x, arm64.SHIFT_LSR, uint32(y), inst.Wide)
	case arm64.DATA2_ASRV:
		value = shiftValue(x, arm64.SHIFT_ASR, uint32(y), inst.Wide)
	case arm64.DATA2_RORV:
		value = shiftValue(x, arm64.SHIFT_ROR, uint32(y), inst.Wide)
	}

	cpu.setReg(inst.Rd, inst.Wide, false, value)
}

func (cpu *Cpu) condSelect(inst arm64.Inst) {
	value := cpu.reg(inst.Rn, inst.Wide, false)
	if !cpu.Condition(inst.Cond) {
		value = cpu.reg(inst.Rm, inst.Wide, false)
		switch arm64.CondSelOp(inst.Op) {
		case arm64.CONDSEL_CSINC:
			value++
		case arm64.CONDSEL_CSINV:
			value = ^value
		case arm64.CONDSEL_CSNEG:
			value = -value
		}
	}
	cpu.setReg(inst.Rd, inst.Wide, false, value)
}

// address computes the effective address of a load or store, and the base
// register value to write back.
func (cpu *Cpu) address(inst arm64.Inst) (addr uint64, writeback bool, base uint64) {
	rn := cpu.Get(inst.Rn, true)
	switch inst.Mode {
	case arm64.ADDR_PRE:
		addr = rn + uint64(inst.Imm)
		writeback, base = true, addr
	case arm64.ADDR_POST:
		addr = rn
		writeback, base = true, rn+uint64(inst.Imm)
	case arm64.ADDR_REGISTER:
		addr = rn + cpu.Get(inst.Rm, false)
	case arm64.ADDR_LITERAL:
		addr = cpu.Pc + uint64(inst.Imm)
	default:
		addr = rn + uint64(inst.Imm)
	}
	return
}

func (cpu *Cpu) loadStore(inst arm64.Inst) (err error) {
	addr, writeback, base := cpu.address(inst)
	size := 1 << inst.Ls.Size()

	if inst.Ls.Load() {
		var value uint64
		value, err = cpu.Memory.Load(addr, size)
		if err != nil {
			return
		}
		if inst.Ls.Signed() {
			value = signExtend(value, uint32(size*8))
		}
		cpu.setReg(inst.Rd, inst.Ls.Wide(), false, value)
	} else {
		err = cpu.Memory.Store(addr, size, cpu.Get(inst.Rd, false))
		if err != nil {
			return
		}
	}

	if writeback {
		cpu.Set(inst.Rn, true, base)
	}
	return
}

func (cpu *Cpu) loadStorePair(inst arm64.Inst) (err error) {
	addr, writeback, base := cpu.address(inst)
	size := 4
	if inst.Wide {
		size = 8
	}

	if inst.Load {
		var first, second uint64
		first, err = cpu.Memory.Load(addr, size)
		if err != nil {
			return
		}
		second, err = cpu.Memory.Load(addr+uint64(size), size)
		if err != nil {
			return
		}
		cpu.setReg(inst.Rd, inst.Wide, false, first)
		cpu.setReg(inst.Ra, inst.Wide, false, second)
	} else {
		err = cpu.Memory.Store(addr, size, cpu.Get(inst.Rd, false))
		if err != nil {
			return
		}
		err = cpu.Memory.Store(addr+uint64(size), size, cpu.Get(inst.Ra, false))
		if err != nil {
			return
		}
	}

	if writeback {
		cpu.Set(inst.Rn, true, base)
	}
	return
}

// Execute executes a single decoded instruction located at the program
// counter, and advances the program counter.
func (cpu *Cpu) Execute(inst arm64.Inst) (err error) {
	pc := cpu.Pc
	next := pc + 4

	switch inst.Class {
	case arm64.CLASS_ADDSUB_IMM, arm64.CLASS_ADDSUB_REG:
		op := arm64.AddSubOp(inst.Op)
		var x, y uint64
		sp := inst.Class == arm64.CLASS_ADDSUB_IMM
		x = cpu.reg(inst.Rn, inst.Wide, sp)
		if sp {
			y = uint64(inst.Imm)
		} else {
			y = shiftValue(cpu.Get(inst.Rm, false), inst.Shift, inst.Amount, inst.Wide)
		}
		carry := false
		if op.Subtract() {
			y = ^y
			carry = true
		}
		result, n, z, c, v := addWithCarry(x, y, carry, inst.Wide)
		if op.SetsFlags() {
			cpu.setFlags(n, z, c, v)
		}
		cpu.setReg(inst.Rd, inst.Wide, sp && !op.SetsFlags(), result)
	case arm64.CLASS_LOGICAL_IMM, arm64.CLASS_LOGICAL_REG:
		op := arm64.LogicOp(inst.Op)
		x := cpu.reg(inst.Rn, inst.Wide, false)
		y := uint64(inst.Imm)
		sp := inst.Class == arm64.CLASS_LOGICAL_IMM && op != arm64.LOGIC_ANDS
		if inst.Class == arm64.CLASS_LOGICAL_REG {
			y = shiftValue(cpu.Get(inst.Rm, false), inst.Shift, inst.Amount, inst.Wide)
			if inst.Invert {
				y = ^y
			}
		}
		var result uint64
		switch op {
		case arm64.LOGIC_AND, arm64.LOGIC_ANDS:
			result = x & y
		case arm64.LOGIC_ORR:
			result = x | y
		case arm64.LOGIC_EOR:
			result = x ^ y
		}
		result &= mask(inst.Wide)
		if op == arm64.LOGIC_ANDS {
			cpu.setFlags(signBit(result, inst.Wide), result == 0, false, false)
		}
		cpu.setReg(inst.Rd, inst.Wide, sp, result)
	case arm64.CLASS_MOVE_WIDE:
		field := uint64(inst.Imm) << inst.Amount
		var value uint64
		switch arm64.MoveWideOp(inst.Op) {
		case arm64.MOVE_N:
			value = ^field
		case arm64.MOVE_Z:
			value = field
		case arm64.MOVE_K:
			value = cpu.Get(inst.Rd, false)&^(0xffff<<inst.Amount) | field
		}
		cpu.setReg(inst.Rd, inst.Wide, false, value)
	case arm64.CLASS_BITFIELD:
		cpu.bitfield(inst)
	case arm64.CLASS_EXTRACT:
		cpu.extract(inst)
	case arm64.CLASS_DATA2:
		cpu.data2(inst)
	case arm64.CLASS_DATA3:
		product := cpu.Get(inst.Rn, false) * cpu.Get(inst.Rm, false)
		acc := cpu.Get(inst.Ra, false)
		if inst.Op == 1 {
			acc -= product
		} else {
			acc += product
		}
		cpu.setReg(inst.Rd, inst.Wide, false, acc)
	case arm64.CLASS_COND_SELECT:
		cpu.condSelect(inst)
	case arm64.CLASS_BRANCH:
		if inst.Op == 1 {
			cpu.Register[arm64.REG_LR] = next
		}
		next, _ = inst.Target(pc)
	case arm64.CLASS_BRANCH_COND:
		if cpu.Condition(inst.Cond) {
			next, _ = inst.Target(pc)
		}
	case arm64.CLASS_COMPARE_BRANCH:
		zero := cpu.reg(inst.Rd, inst.Wide, false) == 0
		if zero == (inst.Op == 0) {
			next, _ = inst.Target(pc)
		}
	case arm64.CLASS_BRANCH_REG:
		target := cpu.Get(inst.Rn, false)
		if arm64.BranchRegOp(inst.Op) == arm64.BRANCH_BLR {
			cpu.Register[arm64.REG_LR] = next
		}
		next = target
	case arm64.CLASS_ADR:
		target, _ := inst.Target(pc)
		cpu.setReg(inst.Rd, true, false, target)
	case arm64.CLASS_LOAD_STORE:
		err = cpu.loadStore(inst)
	case arm64.CLASS_LOAD_STORE_PAIR:
		err = cpu.loadStorePair(inst)
	case arm64.CLASS_HINT, arm64.CLASS_BARRIER:
		// Single processor, in order: nothing to wait for.
	case arm64.CLASS_EXCEPTION:
		switch arm64.ExceptionOp(inst.Op) {
		case arm64.EXCEPTION_SVC:
			err = &ErrTrap{Imm: uint16(inst.Imm)}
		case arm64.EXCEPTION_BRK:
			err = ErrBrk(inst.Imm)
			return
		default:
			err = ErrInstruction(inst.Word)
			return
		}
	default:
		err = ErrInstruction(inst.Word)
		return
	}

	if err != nil && !isTrap(err) {
		return
	}

	cpu.Pc = next
	return
}

func isTrap(err error) bool {
	_, ok := err.(*ErrTrap)
	return ok
}
