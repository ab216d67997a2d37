package arm64

import (
	"strings"
)

// Reg is a general purpose register index. Index 31 names SP or ZR
// depending on the instruction class.
type Reg uint8

const (
	REG_FP = Reg(29) // Frame pointer.
	REG_LR = Reg(30) // Link register.
	REG_SP = Reg(31) // Stack pointer, in classes that address it.
	REG_ZR = Reg(31) // Zero register, everywhere else.
)

// Cond is a condition code, as used by b.cond and the conditional selects.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_EQ = Cond(0)  // eq
	COND_NE = Cond(1)  // ne
	COND_CS = Cond(2)  // cs
	COND_CC = Cond(3)  // cc
	COND_MI = Cond(4)  // mi
	COND_PL = Cond(5)  // pl
	COND_VS = Cond(6)  // vs
	COND_VC = Cond(7)  // vc
	COND_HI = Cond(8)  // hi
	COND_LS = Cond(9)  // ls
	COND_GE = Cond(10) // ge
	COND_LT = Cond(11) // lt
	COND_GT = Cond(12) // gt
	COND_LE = Cond(13) // le
	COND_AL = Cond(14) // al
	COND_NV = Cond(15) // nv
)

var condAlias = map[string]Cond{
	"hs": COND_CS,
	"lo": COND_CC,
}

// ParseCond parses a condition name, including the hs and lo aliases.
func ParseCond(name string) (cond Cond, ok bool) {
	name = strings.ToLower(name)
	cond, ok = condAlias[name]
	if ok {
		return
	}
	for cond = COND_EQ; cond <= COND_NV; cond++ {
		if cond.String() == name {
			ok = true
			return
		}
	}
	return
}

// Invert returns the opposite condition.
func (cond Cond) Invert() Cond {
	return cond ^ 1
}

// ShiftType is the shift applied to the second source register.
type ShiftType int

//go:generate go tool stringer -linecomment -type=ShiftType
const (
	SHIFT_LSL = ShiftType(0) // lsl
	SHIFT_LSR = ShiftType(1) // lsr
	SHIFT_ASR = ShiftType(2) // asr
	SHIFT_ROR = ShiftType(3) // ror
)

// ParseShift parses a shift mnemonic.
func ParseShift(name string) (shift ShiftType, ok bool) {
	name = strings.ToLower(name)
	for shift = SHIFT_LSL; shift <= SHIFT_ROR; shift++ {
		if shift.String() == name {
			ok = true
			return
		}
	}
	return
}

// AddSubOp selects add or subtract, with or without setting flags.
type AddSubOp int

//go:generate go tool stringer -linecomment -type=AddSubOp
const (
	ADDSUB_ADD  = AddSubOp(0) // add
	ADDSUB_ADDS = AddSubOp(1) // adds
	ADDSUB_SUB  = AddSubOp(2) // sub
	ADDSUB_SUBS = AddSubOp(3) // subs
)

// SetsFlags is true for the S forms.
func (op AddSubOp) SetsFlags() bool {
	return op&1 != 0
}

// Subtract is true for sub and subs.
func (op AddSubOp) Subtract() bool {
	return op&2 != 0
}

// Negate swaps add and subtract, keeping the flag setting.
func (op AddSubOp) Negate() AddSubOp {
	return op ^ 2
}

// LogicOp is a logical operation. The register form may invert its second
// operand, giving bic, orn, eon and bics.
type LogicOp int

//go:generate go tool stringer -linecomment -type=LogicOp
const (
	LOGIC_AND  = LogicOp(0) // and
	LOGIC_ORR  = LogicOp(1) // orr
	LOGIC_EOR  = LogicOp(2) // eor
	LOGIC_ANDS = LogicOp(3) // ands
)

// MoveWideOp selects movn, movz or movk.
type MoveWideOp int

const (
	MOVE_N = MoveWideOp(0)
	MOVE_Z = MoveWideOp(2)
	MOVE_K = MoveWideOp(3)
)

func (op MoveWideOp) String() string {
	switch op {
	case MOVE_N:
		return "movn"
	case MOVE_Z:
		return "movz"
	case MOVE_K:
		return "movk"
	}
	return "movw?"
}

// BitfieldOp selects the bitfield move variant.
type BitfieldOp int

//go:generate go tool stringer -linecomment -type=BitfieldOp
const (
	BITFIELD_SBFM = BitfieldOp(0) // sbfm
	BITFIELD_BFM  = BitfieldOp(1) // bfm
	BITFIELD_UBFM = BitfieldOp(2) // ubfm
)

// DataOp2 is the opcode field of the two source data processing class.
type DataOp2 int

const (
	DATA2_UDIV = DataOp2(0x02)
	DATA2_SDIV = DataOp2(0x03)
	DATA2_LSLV = DataOp2(0x08)
	DATA2_LSRV = DataOp2(0x09)
	DATA2_ASRV = DataOp2(0x0a)
	DATA2_RORV = DataOp2(0x0b)
)

var data2Names = map[DataOp2]string{
	DATA2_UDIV: "udiv",
	DATA2_SDIV: "sdiv",
	DATA2_LSLV: "lsl",
	DATA2_LSRV: "lsr",
	DATA2_ASRV: "asr",
	DATA2_RORV: "ror",
}

func (op DataOp2) String() string {
	name, ok := data2Names[op]
	if !ok {
		return "data2?"
	}
	return name
}

// CondSelOp selects the conditional select variant.
type CondSelOp int

//go:generate go tool stringer -linecomment -type=CondSelOp
const (
	CONDSEL_CSEL  = CondSelOp(0) // csel
	CONDSEL_CSINC = CondSelOp(1) // csinc
	CONDSEL_CSINV = CondSelOp(2) // csinv
	CONDSEL_CSNEG = CondSelOp(3) // csneg
)

// BranchRegOp selects the branch to register variant.
type BranchRegOp int

//go:generate go tool stringer -linecomment -type=BranchRegOp
const (
	BRANCH_BR  = BranchRegOp(0) // br
	BRANCH_BLR = BranchRegOp(1) // blr
	BRANCH_RET = BranchRegOp(2) // ret
)

// HintOp is the hint number of the hint class.
type HintOp int

//go:generate go tool stringer -linecomment -type=HintOp
const (
	HINT_NOP   = HintOp(0) // nop
	HINT_YIELD = HintOp(1) // yield
	HINT_WFE   = HintOp(2) // wfe
	HINT_WFI   = HintOp(3) // wfi
	HINT_SEV   = HintOp(4) // sev
	HINT_SEVL  = HintOp(5) // sevl
)

// BarrierOp selects the memory barrier.
type BarrierOp int

const (
	BARRIER_DSB = BarrierOp(4)
	BARRIER_DMB = BarrierOp(5)
	BARRIER_ISB = BarrierOp(6)
)

func (op BarrierOp) String() string {
	switch op {
	case BARRIER_DSB:
		return "dsb"
	case BARRIER_DMB:
		return "dmb"
	case BARRIER_ISB:
		return "isb"
	}
	return "barrier?"
}

// BarrierOption names the CRm domain field of a barrier.
var BarrierOption = map[string]uint8{
	"oshld": 1,
	"oshst": 2,
	"osh":   3,
	"nshld": 5,
	"nshst": 6,
	"nsh":   7,
	"ishld": 9,
	"ishst": 10,
	"ish":   11,
	"ld":    13,
	"st":    14,
	"sy":    15,
}

// ExceptionOp selects the exception generating instruction.
type ExceptionOp int

//go:generate go tool stringer -linecomment -type=ExceptionOp
const (
	EXCEPTION_BRK = ExceptionOp(0) // brk
	EXCEPTION_SVC = ExceptionOp(1) // svc
	EXCEPTION_HVC = ExceptionOp(2) // hvc
	EXCEPTION_SMC = ExceptionOp(3) // smc
)

// AddrMode is the addressing mode of a single or pair load/store.
type AddrMode int

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	ADDR_OFFSET   = AddrMode(0) // offset
	ADDR_PRE      = AddrMode(1) // pre
	ADDR_POST     = AddrMode(2) // post
	ADDR_UNSCALED = AddrMode(3) // unscaled
	ADDR_REGISTER = AddrMode(4) // register
	ADDR_LITERAL  = AddrMode(5) // literal
)

// LoadStore names a single register load or store by its size and opc fields.
type LoadStore int

const (
	LS_STRB   = LoadStore(0)
	LS_LDRB   = LoadStore(1)
	LS_LDRSB  = LoadStore(2)
	LS_LDRSBW = LoadStore(3)
	LS_STRH   = LoadStore(4)
	LS_LDRH   = LoadStore(5)
	LS_LDRSH  = LoadStore(6)
	LS_LDRSHW = LoadStore(7)
	LS_STRW   = LoadStore(8)
	LS_LDRW   = LoadStore(9)
	LS_LDRSW  = LoadStore(10)
	LS_STR    = LoadStore(12)
	LS_LDR    = LoadStore(13)
)

var loadStoreNames = [...]string{
	"strb", "ldrb", "ldrsb", "ldrsb",
	"strh", "ldrh", "ldrsh", "ldrsh",
	"str", "ldr", "ldrsw", "",
	"str", "ldr", "", "",
}

func (ls LoadStore) String() string {
	if ls < 0 || int(ls) >= len(loadStoreNames) || loadStoreNames[ls] == "" {
		return "ldst?"
	}
	return loadStoreNames[ls]
}

// MakeLoadStore returns the operation for the given size and opc fields.
func MakeLoadStore(size, opc uint32) LoadStore {
	return LoadStore(size<<2 | opc)
}

// Size is the log2 of the access size in bytes.
func (ls LoadStore) Size() uint32 {
	return uint32(ls) >> 2
}

// Opc is the opc field: 0 store, 1 load, 2 and 3 signed loads.
func (ls LoadStore) Opc() uint32 {
	return uint32(ls) & 3
}

// Load is true if the operation reads memory.
func (ls LoadStore) Load() bool {
	return ls.Opc() != 0
}

// Signed is true for the sign-extending loads.
func (ls LoadStore) Signed() bool {
	return ls.Opc() >= 2
}

// Wide is true if the transfer register is a 64-bit X register.
func (ls LoadStore) Wide() bool {
	switch ls {
	case LS_LDRSB, LS_LDRSH, LS_LDRSW, LS_STR, LS_LDR:
		return true
	}
	return false
}

// Class is the encoding class of a decoded instruction.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_UNKNOWN         = Class(0)  // unknown
	CLASS_ADDSUB_IMM      = Class(1)  // add/sub immediate
	CLASS_ADDSUB_REG      = Class(2)  // add/sub register
	CLASS_LOGICAL_IMM     = Class(3)  // logical immediate
	CLASS_LOGICAL_REG     = Class(4)  // logical register
	CLASS_MOVE_WIDE       = Class(5)  // move wide
	CLASS_BITFIELD        = Class(6)  // bitfield
	CLASS_EXTRACT         = Class(7)  // extract
	CLASS_DATA2           = Class(8)  // data processing 2 source
	CLASS_DATA3           = Class(9)  // data processing 3 source
	CLASS_COND_SELECT     = Class(10) // conditional select
	CLASS_BRANCH          = Class(11) // branch
	CLASS_BRANCH_COND     = Class(12) // conditional branch
	CLASS_COMPARE_BRANCH  = Class(13) // compare and branch
	CLASS_BRANCH_REG      = Class(14) // branch register
	CLASS_ADR             = Class(15) // pc relative address
	CLASS_LOAD_STORE      = Class(16) // load/store
	CLASS_LOAD_STORE_PAIR = Class(17) // load/store pair
	CLASS_HINT            = Class(18) // hint
	CLASS_BARRIER         = Class(19) // barrier
	CLASS_EXCEPTION       = Class(20) // exception
)
