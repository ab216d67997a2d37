package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

var _cpu_defines = map[string]int64{
	"REG_FP": int64(arm64.REG_FP),
	"REG_LR": int64(arm64.REG_LR),
}

// Cpu is the simulation context of the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [31]uint64 // x0 - x30.
	Sp       uint64     // Stack pointer.
	Pc       uint64     // Program counter.

	N, Z, C, V bool // Condition flags.

	Memory Memory // Address space.

	Ticks int // Instructions retired since reset.
}

// NewCpu creates a processor with size bytes of memory.
func NewCpu(size uint) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: make(Memory, size),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, int64] {
	return maps.All(_cpu_defines)
}

// Reset the processor state.
// - Clears the registers, flags and memory.
// - Zeros the tick counter.
// - Sets the program counter, stack pointer and link register.
func (cpu *Cpu) Reset(pc, sp, lr uint64) {
	if cpu.Verbose {
		log.Printf("cpu: reset pc=0x%x sp=0x%x lr=0x%x", pc, sp, lr)
	}

	clear(cpu.Register[:])
	clear(cpu.Memory)
	cpu.N, cpu.Z, cpu.C, cpu.V = false, false, false, false
	cpu.Ticks = 0

	cpu.Pc = pc
	cpu.Sp = sp
	cpu.Register[arm64.REG_LR] = lr
}

// Flags returns NZCV as the low four bits.
func (cpu *Cpu) Flags() (nzcv uint8) {
	for n, flag := range []bool{cpu.V, cpu.C, cpu.Z, cpu.N} {
		if flag {
			nzcv |= 1 << n
		}
	}
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var lines []string
	for reg := range arm64.Reg(31) {
		lines = append(lines, fmt.Sprintf("% 4s: %016x", arm64.RegName(reg, true, false), cpu.Register[reg]))
	}
	lines = append(lines,
		fmt.Sprintf("% 4s: %016x", "sp", cpu.Sp),
		fmt.Sprintf("% 4s: %016x", "pc", cpu.Pc),
		fmt.Sprintf("% 4s: %s", "nzcv", cpu.flagText()),
	)
	text = strings.Join(lines, "\n") + "\n"
	return
}

func (cpu *Cpu) flagText() string {
	text := []byte("nzcv")
	for n, flag := range []bool{cpu.N, cpu.Z, cpu.C, cpu.V} {
		if flag {
			text[n] -= 'a' - 'A'
		}
	}
	return string(text)
}

// Get reads a register. Index 31 is SP when sp is set, else zero.
func (cpu *Cpu) Get(reg arm64.Reg, sp bool) uint64 {
	switch {
	case reg < 31:
		return cpu.Register[reg]
	case sp:
		return cpu.Sp
	}
	return 0
}

// Set writes a register. Index 31 is SP when sp is set, else the write is
// discarded.
func (cpu *Cpu) Set(reg arm64.Reg, sp bool, value uint64) {
	switch {
	case reg < 31:
		cpu.Register[reg] = value
	case sp:
		cpu.Sp = value
	}
}

// Fetch reads the instruction at the program counter.
func (cpu *Cpu) Fetch() (word arm64.Word, err error) {
	if cpu.Pc&3 != 0 {
		err = ErrPcAlignment
		return
	}
	value, err := cpu.Memory.Load(cpu.Pc, 4)
	if err != nil {
		return
	}
	word = arm64.Word(value)
	return
}

// Tick executes a single instruction. A supervisor call returns an ErrTrap
// with the program counter advanced past it.
func (cpu *Cpu) Tick() (err error) {
	word, err := cpu.Fetch()
	if err != nil {
		return
	}

	inst := arm64.Decode(word)
	if cpu.Verbose {
		log.Printf("cpu: %08x: %08x  %v", cpu.Pc, uint32(word), inst.Text(cpu.Pc))
	}

	err = cpu.Execute(inst)
	if err == nil || isTrap(err) {
		cpu.Ticks++
	}

	return
}
