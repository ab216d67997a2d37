package emulator

import (
	"errors"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/u6170252806-cmd/EmberOS-sub001/abi"
	"github.com/u6170252806-cmd/EmberOS-sub001/asm"
	"github.com/u6170252806-cmd/EmberOS-sub001/cpu"
	"github.com/u6170252806-cmd/EmberOS-sub001/internal"
	"github.com/u6170252806-cmd/EmberOS-sub001/io"
)

const (
	MEMORY_SIZE  = 64 * 1024  // Default memory, in bytes.
	STEP_LIMIT   = 10_000_000 // Default instruction limit.
	EXIT_ADDRESS = 0xfffffffc // Initial link register: returning here ends the program.
	RANDOM_SEED  = 12345      // Initial state of the rnd generator.
)

var _emulator_defines = map[string]int64{
	"MEMORY_SIZE":  MEMORY_SIZE,
	"EXIT_ADDRESS": EXIT_ADDRESS,
}

// Emulator state. CPU + services.
type Emulator struct {
	Verbose  bool       // If set, enables verbose logging.
	*cpu.Cpu            // Reference to the CPU simulation.
	Program  *asm.Image // Reference to the currently running program image.

	MemorySize uint // Bytes of memory, applied on Reset.
	StepLimit  int  // Instructions allowed per run, unlimited if zero.

	Console io.Console   // Console for prt, inp and friends.
	Files   io.FileStore // File store for the file services.
	Canvas  Canvas       // Character canvas for the drawing services.

	Sleep func(time.Duration) // Blocks for the sleep service.
	Now   func() time.Time    // Clock for the tick service.

	Halted bool // Set once the program stops.

	seed  uint32
	start time.Time
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:        cpu.NewCpu(MEMORY_SIZE),
		Program:    &asm.Image{},
		MemorySize: MEMORY_SIZE,
		StepLimit:  STEP_LIMIT,
		Sleep:      time.Sleep,
		Now:        time.Now,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, int64] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Console.Defines(),
		emu.Files.Defines(),
		emu.Canvas.Defines(),
	)
}

// Reset the emulator state, and load the program.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = ErrProgramMissing
		return
	}

	if emu.Cpu == nil || uint(len(emu.Cpu.Memory)) != emu.MemorySize {
		emu.Cpu = cpu.NewCpu(emu.MemorySize)
	}
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(emu.Program.Entry, uint64(emu.MemorySize), EXIT_ADDRESS)

	text, err := emu.Cpu.Memory.Slice(emu.Program.Base, len(emu.Program.Bytes))
	if err != nil {
		err = errors.Join(ErrProgramSize, err)
		return
	}
	copy(text, emu.Program.Bytes)

	emu.Canvas.Reset()
	emu.Halted = false
	emu.seed = RANDOM_SEED
	emu.start = emu.Now()

	if emu.Verbose {
		log.Printf("emulator: reset, %d bytes at 0x%x, entry 0x%x", len(emu.Program.Bytes), emu.Program.Base, emu.Program.Entry)
	}

	return
}

// Ticks returns the instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line of the next instruction, or 0 if unknown.
func (emu *Emulator) LineNo() int {
	lineno, _ := emu.Program.Line(emu.Cpu.Pc)
	return lineno
}

// end is the address just past the loaded image.
func (emu *Emulator) end() uint64 {
	return emu.Program.Base + uint64(len(emu.Program.Bytes))
}

// Tick performs a single instruction of the emulator. done is set when the
// program halts, returns to EXIT_ADDRESS, or runs off the end of its image.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			lineno, _ := emu.Program.Line(pc)
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if !emu.Halted && (pc == EXIT_ADDRESS || pc == emu.end()) {
		if emu.Verbose {
			log.Printf("emulator: exit at 0x%x", pc)
		}
		emu.Halted = true
	}
	if emu.Halted {
		done = true
		return
	}

	if emu.StepLimit > 0 && emu.Cpu.Ticks >= emu.StepLimit {
		err = ErrStepLimit
		return
	}

	err = emu.Cpu.Tick()
	var trap *cpu.ErrTrap
	if errors.As(err, &trap) {
		err = emu.dispatch(abi.Code(trap.Imm))
		done = emu.Halted
	}

	return
}

// Run ticks the emulator until the program stops.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: %d instructions", emu.Cpu.Ticks)
	}

	return
}
