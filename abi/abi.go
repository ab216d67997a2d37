package abi

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
	"github.com/u6170252806-cmd/EmberOS-sub001/translate"
)

var f = translate.From

// Code is the imm16 of the svc instruction that requests a service.
type Code uint16

func (code Code) String() string {
	service, ok := Decode(code)
	if !ok {
		return fmt.Sprintf("svc#0x%03x", uint16(code))
	}
	return service.Name
}

const (
	// Console
	SERVICE_PRT  = Code(0x100)
	SERVICE_PRTC = Code(0x101)
	SERVICE_PRTN = Code(0x102)
	SERVICE_INP  = Code(0x103)
	SERVICE_INPS = Code(0x104)
	SERVICE_PRTX = Code(0x105)

	// Canvas
	SERVICE_CLS    = Code(0x110)
	SERVICE_SETC   = Code(0x111)
	SERVICE_PLOT   = Code(0x112)
	SERVICE_LINE   = Code(0x113)
	SERVICE_BOX    = Code(0x114)
	SERVICE_RESET  = Code(0x115)
	SERVICE_CANVAS = Code(0x116)

	// Files
	SERVICE_FCREAT = Code(0x120)
	SERVICE_FWRITE = Code(0x121)
	SERVICE_FREAD  = Code(0x122)
	SERVICE_FDEL   = Code(0x123)
	SERVICE_FCOPY  = Code(0x124)
	SERVICE_FMOVE  = Code(0x125)
	SERVICE_FEXIST = Code(0x126)

	// Memory
	SERVICE_STRLEN = Code(0x130)
	SERVICE_MEMCPY = Code(0x131)
	SERVICE_MEMSET = Code(0x132)
	SERVICE_ABS    = Code(0x133)

	// System
	SERVICE_SLEEP = Code(0x1f0)
	SERVICE_RND   = Code(0x1f1)
	SERVICE_TICK  = Code(0x1f2)
	SERVICE_HALT  = Code(0x1ff)
)

const (
	ReservedFirst = arm64.Reg(26) // Dispatcher saved pc.
	ReservedLast  = arm64.Reg(28) // Dispatcher scratch.

	REG_SAVED_PC = arm64.Reg(26)
	REG_CODE     = arm64.Reg(27)
	REG_SCRATCH  = arm64.Reg(28)
)

// Service describes a single extended mnemonic.
type Service struct {
	Name    string // Mnemonic, lower case.
	Code    Code   // svc immediate.
	Arity   int    // Arguments in x0..x(Arity-1).
	Returns bool   // Result in x0.
	Narrow  bool   // First argument is read through its w view.
	Help    string // One line description.
}

// Table is the complete extended opcode table, in code order.
var Table = []Service{
	{"prt", SERVICE_PRT, 1, false, false, f("print the NUL terminated string at x0")},
	{"prtc", SERVICE_PRTC, 1, false, true, f("print the character in w0")},
	{"prtn", SERVICE_PRTN, 1, false, false, f("print x0 as a signed decimal")},
	{"inp", SERVICE_INP, 0, true, false, f("read one character")},
	{"inps", SERVICE_INPS, 2, true, false, f("read a line into x0, at most x1 bytes")},
	{"prtx", SERVICE_PRTX, 1, false, true, f("print w0 as hexadecimal")},

	{"cls", SERVICE_CLS, 0, false, false, f("clear the canvas")},
	{"setc", SERVICE_SETC, 2, false, false, f("set foreground x0 and background x1 colours")},
	{"plot", SERVICE_PLOT, 3, false, false, f("put character x2 at column x0, row x1")},
	{"line", SERVICE_LINE, 5, false, false, f("draw a line from (x0,x1) to (x2,x3) with character x4")},
	{"box", SERVICE_BOX, 4, false, false, f("draw a box at (x0,x1) of size x2 by x3")},
	{"reset", SERVICE_RESET, 0, false, false, f("reset the canvas colours")},
	{"canvas", SERVICE_CANVAS, 2, false, false, f("create a canvas of width x0 and height x1")},

	{"fcreat", SERVICE_FCREAT, 1, true, false, f("create the file named at x0")},
	{"fwrite", SERVICE_FWRITE, 3, true, false, f("write x2 bytes from x1 to the file named at x0")},
	{"fread", SERVICE_FREAD, 3, true, false, f("read up to x2 bytes into x1 from the file named at x0")},
	{"fdel", SERVICE_FDEL, 1, true, false, f("delete the file named at x0")},
	{"fcopy", SERVICE_FCOPY, 2, true, false, f("copy the file named at x0 to x1")},
	{"fmove", SERVICE_FMOVE, 2, true, false, f("rename the file named at x0 to x1")},
	{"fexist", SERVICE_FEXIST, 1, true, false, f("test if the file named at x0 exists")},

	{"strlen", SERVICE_STRLEN, 1, true, false, f("length of the NUL terminated string at x0")},
	{"memcpy", SERVICE_MEMCPY, 3, false, false, f("copy x2 bytes from x1 to x0")},
	{"memset", SERVICE_MEMSET, 3, false, false, f("fill x2 bytes at x0 with x1")},
	{"abs", SERVICE_ABS, 1, true, false, f("absolute value of x0")},

	{"sleep", SERVICE_SLEEP, 1, false, false, f("sleep for x0 milliseconds")},
	{"rnd", SERVICE_RND, 1, true, false, f("random number below x0")},
	{"tick", SERVICE_TICK, 0, true, false, f("milliseconds since reset")},
	{"halt", SERVICE_HALT, 0, false, false, f("stop the program")},
}

var (
	byName = map[string]int{}
	byCode = map[Code]int{}
)

func init() {
	for n, service := range Table {
		if _, ok := byName[service.Name]; ok {
			panic(fmt.Sprintf("abi: duplicate service name %q", service.Name))
		}
		if _, ok := byCode[service.Code]; ok {
			panic(fmt.Sprintf("abi: duplicate service code 0x%x", uint16(service.Code)))
		}
		byName[service.Name] = n
		byCode[service.Code] = n
	}
}

// Lookup finds a service by mnemonic, ignoring case.
func Lookup(name string) (service Service, ok bool) {
	n, ok := byName[strings.ToLower(name)]
	if ok {
		service = Table[n]
	}
	return
}

// Decode finds a service by code.
func Decode(code Code) (service Service, ok bool) {
	n, ok := byCode[code]
	if ok {
		service = Table[n]
	}
	return
}

// Services iterates the table in code order.
func Services() iter.Seq[Service] {
	return slices.Values(Table)
}

// EncodeSVC returns the instruction requesting the service.
func EncodeSVC(code Code) arm64.Word {
	return arm64.MakeException(arm64.EXCEPTION_SVC, uint16(code))
}

// DecodeSVC extracts the service code of an svc instruction.
func DecodeSVC(word arm64.Word) (code Code, ok bool) {
	if uint32(word)&0xffe0001f != 0xd4000001 {
		return
	}
	code = Code((uint32(word) >> 5) & 0xffff)
	ok = true
	return
}

// Reserved is true for the registers the dispatcher owns.
func Reserved(reg arm64.Reg) bool {
	return reg >= ReservedFirst && reg <= ReservedLast
}

// Arguments returns the argument registers of a service.
func (service Service) Arguments() []arm64.Reg {
	regs := make([]arm64.Reg, service.Arity)
	for n := range regs {
		regs[n] = arm64.Reg(n)
	}
	return regs
}
