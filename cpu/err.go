package cpu

import (
	"errors"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
	"github.com/u6170252806-cmd/EmberOS-sub001/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrMemoryFault        = errors.New(f("memory fault"))
	ErrInstructionUnknown = errors.New(f("instruction unknown"))
	ErrPcAlignment        = errors.New(f("pc unaligned"))
	ErrBreakpoint         = errors.New(f("breakpoint"))
	ErrTrapped            = errors.New(f("trap"))
)

// ErrMemory is an access outside of memory.
type ErrMemory struct {
	Address uint64
	Size    int
}

func (err *ErrMemory) Error() string {
	return f("memory fault at 0x%x, %d bytes", err.Address, err.Size)
}

func (err *ErrMemory) Is(target error) bool {
	return target == ErrMemoryFault
}

// ErrInstruction is a word the processor does not execute.
type ErrInstruction arm64.Word

func (err ErrInstruction) Error() string {
	return f("instruction 0x%08x unknown", uint32(err))
}

func (err ErrInstruction) Is(target error) bool {
	return target == ErrInstructionUnknown
}

// ErrBrk is a brk instruction.
type ErrBrk uint16

func (err ErrBrk) Error() string {
	return f("breakpoint #0x%x", uint16(err))
}

func (err ErrBrk) Is(target error) bool {
	return target == ErrBreakpoint
}

// ErrTrap is a supervisor call. The program counter already addresses the
// instruction after the svc.
type ErrTrap struct {
	Imm uint16
}

func (err *ErrTrap) Error() string {
	return f("svc #0x%x", err.Imm)
}

func (err *ErrTrap) Is(target error) bool {
	return target == ErrTrapped
}
