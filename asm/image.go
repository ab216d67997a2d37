package asm

import (
	"encoding/binary"
	"fmt"
	"iter"
	"strings"

	"github.com/u6170252806-cmd/EmberOS-sub001/abi"
	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

// Image is a flat little endian program, loaded at Base.
type Image struct {
	Base    uint64
	Entry   uint64
	Bytes   []byte
	Symbols []Symbol
	Lines   map[uint64]int // Source line of each instruction address.
}

// NewImage wraps a raw binary, as produced by casm -o, for loading at base.
func NewImage(data []byte, base uint64) *Image {
	return &Image{
		Base:  base,
		Entry: base,
		Bytes: data,
	}
}

// Symbol finds a symbol by case insensitive name.
func (img *Image) Symbol(name string) (sym Symbol, ok bool) {
	for _, sym = range img.Symbols {
		if strings.EqualFold(sym.Name, name) {
			ok = true
			return
		}
	}
	sym = Symbol{}
	return
}

// Label returns the name of a label defined at addr.
func (img *Image) Label(addr uint64) (name string, ok bool) {
	for _, sym := range img.Symbols {
		if sym.Defined && !sym.Constant && uint64(sym.Value) == addr {
			return sym.Name, true
		}
	}
	return
}

// Line returns the source line that emitted the instruction at addr.
func (img *Image) Line(addr uint64) (lineno int, ok bool) {
	lineno, ok = img.Lines[addr]
	return
}

// Word returns the instruction word at addr.
func (img *Image) Word(addr uint64) (word arm64.Word, ok bool) {
	if addr < img.Base || addr+4 > img.Base+uint64(len(img.Bytes)) {
		return
	}
	offset := addr - img.Base
	word = arm64.Word(binary.LittleEndian.Uint32(img.Bytes[offset:]))
	ok = true
	return
}

// Words iterates every whole word of the image, keyed by address.
func (img *Image) Words() iter.Seq2[uint64, arm64.Word] {
	return arm64.Words(img.Bytes, img.Base)
}

// Disassemble renders a word, naming extended services by their mnemonic.
func Disassemble(word arm64.Word, pc uint64) string {
	if code, ok := abi.DecodeSVC(word); ok {
		if service, ok := abi.Decode(code); ok {
			return service.Name
		}
	}
	return arm64.Disassemble(word, pc)
}

// Listing iterates the disassembly of the image, one line per word, with
// labels prefixed.
func (img *Image) Listing() iter.Seq2[uint64, string] {
	return func(yield func(uint64, string) bool) {
		for addr, word := range img.Words() {
			text := fmt.Sprintf("%08x  %08x  %s", addr, uint32(word), Disassemble(word, addr))
			if label, ok := img.Label(addr); ok {
				text = fmt.Sprintf("%s:\n%s", label, text)
			}
			if !yield(addr, text) {
				return
			}
		}
	}
}
