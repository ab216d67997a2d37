package cpu

import (
	"bytes"
)

// Memory is the flat, little endian address space of the processor,
// starting at address zero.
type Memory []byte

// Slice returns the size bytes at addr, sharing storage with memory.
func (mem Memory) Slice(addr uint64, size int) (data []byte, err error) {
	if size < 0 || addr > uint64(len(mem)) || uint64(size) > uint64(len(mem))-addr {
		err = &ErrMemory{Address: addr, Size: size}
		return
	}
	data = mem[addr : addr+uint64(size)]
	return
}

// Load reads a little endian value of 1, 2, 4 or 8 bytes.
func (mem Memory) Load(addr uint64, size int) (value uint64, err error) {
	data, err := mem.Slice(addr, size)
	if err != nil {
		return
	}
	for n := size - 1; n >= 0; n-- {
		value = value<<8 | uint64(data[n])
	}
	return
}

// Store writes the low size bytes of value, little endian.
func (mem Memory) Store(addr uint64, size int, value uint64) (err error) {
	data, err := mem.Slice(addr, size)
	if err != nil {
		return
	}
	for n := range size {
		data[n] = byte(value >> (8 * n))
	}
	return
}

// CString returns the bytes at addr up to a NUL, the end of memory, or limit
// bytes when limit is positive. Only a start address outside of memory is an
// error.
func (mem Memory) CString(addr uint64, limit int) (text []byte, err error) {
	if addr >= uint64(len(mem)) {
		err = &ErrMemory{Address: addr, Size: 1}
		return
	}
	text = mem[addr:]
	if limit > 0 && len(text) > limit {
		text = text[:limit]
	}
	if end := bytes.IndexByte(text, 0); end >= 0 {
		text = text[:end]
	}
	return
}
