package emulator

import (
	"errors"
	"fmt"
	stdio "io"
	"log"
	"strconv"
	"time"

	"github.com/u6170252806-cmd/EmberOS-sub001/abi"
	"github.com/u6170252806-cmd/EmberOS-sub001/io"
)

// serviceFunc performs a service. args holds x0..x(arity-1), with the first
// argument already narrowed for services that read w0.
type serviceFunc func(emu *Emulator, args []uint64) (result uint64, err error)

var services = map[abi.Code]serviceFunc{
	abi.SERVICE_PRT:  servicePrt,
	abi.SERVICE_PRTC: servicePrtc,
	abi.SERVICE_PRTN: servicePrtn,
	abi.SERVICE_INP:  serviceInp,
	abi.SERVICE_INPS: serviceInps,
	abi.SERVICE_PRTX: servicePrtx,

	abi.SERVICE_CLS:    serviceCls,
	abi.SERVICE_SETC:   serviceSetc,
	abi.SERVICE_PLOT:   servicePlot,
	abi.SERVICE_LINE:   serviceLine,
	abi.SERVICE_BOX:    serviceBox,
	abi.SERVICE_RESET:  serviceReset,
	abi.SERVICE_CANVAS: serviceCanvas,

	abi.SERVICE_FCREAT: serviceFcreat,
	abi.SERVICE_FWRITE: serviceFwrite,
	abi.SERVICE_FREAD:  serviceFread,
	abi.SERVICE_FDEL:   serviceFdel,
	abi.SERVICE_FCOPY:  serviceFcopy,
	abi.SERVICE_FMOVE:  serviceFmove,
	abi.SERVICE_FEXIST: serviceFexist,

	abi.SERVICE_STRLEN: serviceStrlen,
	abi.SERVICE_MEMCPY: serviceMemcpy,
	abi.SERVICE_MEMSET: serviceMemset,
	abi.SERVICE_ABS:    serviceAbs,

	abi.SERVICE_SLEEP: serviceSleep,
	abi.SERVICE_RND:   serviceRnd,
	abi.SERVICE_TICK:  serviceTick,
	abi.SERVICE_HALT:  serviceHalt,
}

// dispatch performs the service requested by an svc. The program counter
// already addresses the instruction after the svc.
func (emu *Emulator) dispatch(code abi.Code) (err error) {
	service, ok := abi.Decode(code)
	handler, found := services[code]
	if !ok || !found {
		err = ErrService(code)
		return
	}

	regs := &emu.Cpu.Register
	args := make([]uint64, service.Arity)
	copy(args, regs[:service.Arity])
	if service.Narrow && len(args) > 0 {
		args[0] &= 0xffffffff
	}

	// The dispatcher owns x26-x28 across every trap.
	regs[abi.REG_SAVED_PC] = emu.Cpu.Pc
	regs[abi.REG_CODE] = uint64(code)
	regs[abi.REG_SCRATCH] = regs[0]

	if emu.Verbose {
		log.Printf("emulator: %v %x", service.Name, args)
	}

	result, err := handler(emu, args)
	if err != nil {
		return
	}
	if service.Returns {
		regs[0] = result
	}

	return
}

func boolResult(err error) (result uint64) {
	if err == nil {
		result = 1
	}
	return
}

// length converts a byte count register, which a program may set to any
// value, to a size that can only succeed if it fits in memory.
func (emu *Emulator) length(value uint64) int {
	return int(min(value, uint64(len(emu.Cpu.Memory))+1))
}

// fileName reads a NUL terminated file name from memory.
func (emu *Emulator) fileName(addr uint64) (name string, err error) {
	text, err := emu.Cpu.Memory.CString(addr, io.FILE_NAME_MAX)
	if err != nil {
		return
	}
	name = string(text)
	return
}

func (emu *Emulator) fileResult(op string, err error) uint64 {
	if err != nil && emu.Verbose {
		log.Printf("emulator: %v: %v", op, err)
	}
	return boolResult(err)
}

// Console

func servicePrt(emu *Emulator, args []uint64) (result uint64, err error) {
	text, err := emu.Cpu.Memory.CString(args[0], 0)
	if err != nil {
		return
	}
	_, err = emu.Console.Write(text)
	return
}

func servicePrtc(emu *Emulator, args []uint64) (result uint64, err error) {
	err = emu.Console.Putc(byte(args[0]))
	return
}

func servicePrtn(emu *Emulator, args []uint64) (result uint64, err error) {
	err = emu.Console.Puts(strconv.FormatInt(int64(args[0]), 10))
	return
}

func serviceInp(emu *Emulator, args []uint64) (result uint64, err error) {
	value, err := emu.Console.Getc()
	if errors.Is(err, stdio.EOF) {
		result = ^uint64(0)
		err = nil
		return
	}
	result = uint64(value)
	return
}

func serviceInps(emu *Emulator, args []uint64) (result uint64, err error) {
	limit := int(min(args[1], io.LINE_MAX))
	line, err := emu.Console.ReadLine(limit)
	if errors.Is(err, stdio.EOF) {
		err = nil
	}
	if err != nil {
		return
	}
	buffer, err := emu.Cpu.Memory.Slice(args[0], len(line)+1)
	if err != nil {
		return
	}
	copy(buffer, line)
	buffer[len(line)] = 0
	result = uint64(len(line))
	return
}

func servicePrtx(emu *Emulator, args []uint64) (result uint64, err error) {
	err = emu.Console.Puts(fmt.Sprintf("0x%x", uint32(args[0])))
	return
}

// Canvas

func serviceCls(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.Canvas.Clear()
	return
}

func serviceSetc(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.Canvas.SetColor(Color(args[0]&7), Color(args[1]&7))
	return
}

func servicePlot(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.Canvas.Plot(int(args[0]&0xff), int(args[1]&0xff), byte(args[2]))
	return
}

func serviceLine(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.Canvas.Line(int(args[0]&0xff), int(args[1]&0xff), int(args[2]&0xff), int(args[3]&0xff), byte(args[4]))
	return
}

func serviceBox(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.Canvas.Box(int(args[0]&0xff), int(args[1]&0xff), int(args[2]&0xff), int(args[3]&0xff))
	return
}

func serviceReset(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.Canvas.ResetColor()
	return
}

func serviceCanvas(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.Canvas.Create(int(args[0]&0xff), int(args[1]&0xff))
	return
}

// Files

func serviceFcreat(emu *Emulator, args []uint64) (result uint64, err error) {
	name, err := emu.fileName(args[0])
	if err != nil {
		return
	}
	result = emu.fileResult("fcreat", emu.Files.Create(name))
	return
}

func serviceFwrite(emu *Emulator, args []uint64) (result uint64, err error) {
	name, err := emu.fileName(args[0])
	if err != nil {
		return
	}
	data, err := emu.Cpu.Memory.Slice(args[1], emu.length(args[2]))
	if err != nil {
		return
	}
	n, werr := emu.Files.Write(name, data)
	if emu.fileResult("fwrite", werr) == 1 {
		result = uint64(n)
	}
	return
}

func serviceFread(emu *Emulator, args []uint64) (result uint64, err error) {
	name, err := emu.fileName(args[0])
	if err != nil {
		return
	}
	data, rerr := emu.Files.Read(name, emu.length(args[2]))
	if emu.fileResult("fread", rerr) == 0 {
		return
	}
	buffer, err := emu.Cpu.Memory.Slice(args[1], len(data))
	if err != nil {
		return
	}
	result = uint64(copy(buffer, data))
	return
}

func serviceFdel(emu *Emulator, args []uint64) (result uint64, err error) {
	name, err := emu.fileName(args[0])
	if err != nil {
		return
	}
	result = emu.fileResult("fdel", emu.Files.Delete(name))
	return
}

func (emu *Emulator) fileNames(args []uint64) (from, to string, err error) {
	from, err = emu.fileName(args[0])
	if err != nil {
		return
	}
	to, err = emu.fileName(args[1])
	return
}

func serviceFcopy(emu *Emulator, args []uint64) (result uint64, err error) {
	from, to, err := emu.fileNames(args)
	if err != nil {
		return
	}
	result = emu.fileResult("fcopy", emu.Files.Copy(from, to))
	return
}

func serviceFmove(emu *Emulator, args []uint64) (result uint64, err error) {
	from, to, err := emu.fileNames(args)
	if err != nil {
		return
	}
	result = emu.fileResult("fmove", emu.Files.Move(from, to))
	return
}

func serviceFexist(emu *Emulator, args []uint64) (result uint64, err error) {
	name, err := emu.fileName(args[0])
	if err != nil {
		return
	}
	if emu.Files.Exists(name) {
		result = 1
	}
	return
}

// Memory

func serviceStrlen(emu *Emulator, args []uint64) (result uint64, err error) {
	text, err := emu.Cpu.Memory.CString(args[0], 0)
	result = uint64(len(text))
	return
}

func serviceMemcpy(emu *Emulator, args []uint64) (result uint64, err error) {
	size := emu.length(args[2])
	if size == 0 {
		return
	}
	src, err := emu.Cpu.Memory.Slice(args[1], size)
	if err != nil {
		return
	}
	dst, err := emu.Cpu.Memory.Slice(args[0], size)
	if err != nil {
		return
	}
	copy(dst, src)
	return
}

func serviceMemset(emu *Emulator, args []uint64) (result uint64, err error) {
	size := emu.length(args[2])
	if size == 0 {
		return
	}
	dst, err := emu.Cpu.Memory.Slice(args[0], size)
	if err != nil {
		return
	}
	for n := range dst {
		dst[n] = byte(args[1])
	}
	return
}

func serviceAbs(emu *Emulator, args []uint64) (result uint64, err error) {
	value := int64(args[0])
	if value < 0 {
		value = -value
	}
	result = uint64(value)
	return
}

// System

func serviceSleep(emu *Emulator, args []uint64) (result uint64, err error) {
	if emu.Sleep != nil {
		emu.Sleep(time.Duration(args[0]&0xffff) * time.Millisecond)
	}
	return
}

func serviceRnd(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.seed = emu.seed*1103515245 + 12345
	limit := uint32(args[0])
	if limit == 0 {
		limit = 1
	}
	result = uint64((emu.seed >> 16) % limit)
	return
}

func serviceTick(emu *Emulator, args []uint64) (result uint64, err error) {
	result = uint64(emu.Now().Sub(emu.start).Milliseconds())
	return
}

func serviceHalt(emu *Emulator, args []uint64) (result uint64, err error) {
	emu.Halted = true
	return
}
