package emulator

import (
	"errors"

	"github.com/u6170252806-cmd/EmberOS-sub001/abi"
	"github.com/u6170252806-cmd/EmberOS-sub001/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrProgramMissing = errors.New(f("no program"))
	ErrProgramSize    = errors.New(f("program does not fit in memory"))
	ErrServiceUnknown = errors.New(f("service unknown"))
	ErrStepLimit      = errors.New(f("step limit exceeded"))
)

// ErrService is a supervisor call with a code missing from the service
// table.
type ErrService abi.Code

func (err ErrService) Error() string {
	return f("service 0x%03x unknown", uint16(err))
}

func (err ErrService) Is(target error) bool {
	return target == ErrServiceUnknown
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint64
	LineNo int // Source line, or 0 if unknown.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d (pc 0x%x) %v", err.LineNo, err.Pc, err.Err)
	}
	return f("pc 0x%x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
