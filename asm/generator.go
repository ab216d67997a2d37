package asm

import (
	"encoding/binary"
	"log"
	"math/bits"
	"slices"
	"strings"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
	"github.com/u6170252806-cmd/EmberOS-sub001/internal"
)

// MaxAlign is the largest .align/.p2align exponent.
const MaxAlign = 12

// Generator lowers a syntax tree into an image in two passes. Pass 1 assigns
// addresses and fills the symbol table. Pass 2 encodes.
type Generator struct {
	Verbose         bool             // If set, verbosely logs the generator actions.
	DisablePeephole bool             // If set, emits instructions unchanged.
	Base            uint64           // Load address of the image.
	Limits          Limits           // Budgets. Zero fields use DefaultLimits.
	Equates         map[string]int64 // Constants defined before the source.

	limits  Limits
	symbols SymbolTable
	code    []byte
	offset  int
	section Section
	pass    int
	lineno  int
	prev    int           // Offset of the previous instruction of the peephole run, or -1.
	pending []SymbolIndex // Labels directly before the next instruction.
	lines   map[uint64]int
}

// Reset clears the buffer, symbols, section, pass and peephole state.
func (gen *Generator) Reset() {
	gen.limits = gen.Limits.withDefaults()
	gen.symbols.Capacity = gen.limits.Symbols
	gen.symbols.NameLimit = gen.limits.SymbolName
	gen.symbols.Reset()
	if cap(gen.code) < gen.limits.CodeSize {
		gen.code = make([]byte, 0, gen.limits.CodeSize)
	}
	gen.code = gen.code[:0]
	gen.offset = 0
	gen.section = SECTION_TEXT
	gen.pass = 0
	gen.lineno = 0
	gen.prev = -1
	gen.pending = gen.pending[:0]
	gen.lines = make(map[uint64]int)
}

// Generate assembles tree. On failure the image is nil and err is a single
// *ErrAssembly.
func (gen *Generator) Generate(tree *Tree) (img *Image, err error) {
	gen.Reset()

	defer func() {
		if err != nil {
			err = atLine(gen.lineno, err)
			img = nil
		}
	}()

	for name, value := range internal.IterSeq2Sorted(gen.Equates) {
		gen.symbols.Predefine(name, value)
	}

	for pass := 1; pass <= 2; pass++ {
		gen.pass = pass
		gen.offset = 0
		gen.section = SECTION_TEXT
		gen.prev = -1
		gen.pending = gen.pending[:0]
		err = gen.walk(tree)
		if err != nil {
			return
		}
	}

	img = &Image{
		Base:  gen.Base,
		Entry: gen.Base,
		Bytes: slices.Clone(gen.code),
		Lines: gen.lines,
	}
	for _, sym := range gen.symbols.All() {
		img.Symbols = append(img.Symbols, sym)
	}
	if entry, ok := img.Symbol("_start"); ok && entry.Defined {
		img.Entry = uint64(entry.Value)
	}

	if gen.Verbose {
		log.Printf("asm: %d bytes, %d symbols, entry 0x%x", len(img.Bytes), len(img.Symbols), img.Entry)
	}

	return
}

func (gen *Generator) walk(tree *Tree) (err error) {
	for index, node := range tree.All() {
		gen.lineno = node.LineNo
		switch node.Kind {
		case NODE_LABEL:
			err = gen.label(node)
		case NODE_INSTRUCTION:
			err = gen.instruction(node.Name, tree.Arena.Operands(index))
		case NODE_DIRECTIVE:
			err = gen.directive(node.Name, tree.Arena.Operands(index))
		}
		if err != nil {
			return
		}
	}
	return
}

// pc is the address of the location counter.
func (gen *Generator) pc() uint64 {
	return gen.Base + uint64(gen.offset)
}

func (gen *Generator) label(node *Node) (err error) {
	gen.prev = -1
	if gen.pass != 1 {
		return
	}
	index, err := gen.symbols.Define(node.Name, int64(gen.pc()), node.LineNo, gen.section, false)
	if err != nil {
		return
	}
	gen.pending = append(gen.pending, index)
	return
}

func (gen *Generator) reserve(size int) (err error) {
	if gen.offset+size > gen.limits.CodeSize {
		err = ErrCodeOverflow
	}
	return
}

func (gen *Generator) instruction(name string, ops []Operand) (err error) {
	// Instructions are word aligned. Labels directly before the
	// instruction move with it.
	err = gen.align(4)
	if err != nil {
		return
	}
	for _, index := range gen.pending {
		gen.symbols.Symbol(index).Value = int64(gen.pc())
	}
	gen.pending = gen.pending[:0]

	err = gen.reserve(4)
	if err != nil {
		return
	}

	if gen.pass == 1 {
		gen.offset += 4
		return
	}

	word, err := gen.encode(name, ops)
	if err != nil {
		return
	}

	gen.code = binary.LittleEndian.AppendUint32(gen.code, uint32(word))
	gen.lines[gen.pc()] = gen.lineno

	if !gen.DisablePeephole {
		prev := arm64.NOP
		if gen.prev >= 0 {
			prev = arm64.Word(binary.LittleEndian.Uint32(gen.code[gen.prev:]))
		}
		newPrev, newCur, changed := Peephole(prev, word)
		if changed {
			if gen.Verbose {
				log.Printf("asm: %d: peephole %v => %v", gen.lineno,
					arm64.Disassemble(word, gen.pc()), arm64.Disassemble(newCur, gen.pc()))
			}
			if gen.prev >= 0 {
				binary.LittleEndian.PutUint32(gen.code[gen.prev:], uint32(newPrev))
			}
			binary.LittleEndian.PutUint32(gen.code[gen.offset:], uint32(newCur))
		}
	}

	gen.prev = gen.offset
	gen.offset += 4
	return
}

// data emits raw bytes, and ends the peephole run.
func (gen *Generator) data(data ...byte) (err error) {
	gen.prev = -1
	err = gen.reserve(len(data))
	if err != nil {
		return
	}
	if gen.pass == 2 {
		gen.code = append(gen.code, data...)
	}
	gen.offset += len(data)
	return
}

// fill emits count copies of a byte.
func (gen *Generator) fill(count int, value byte) (err error) {
	gen.prev = -1
	err = gen.reserve(count)
	if err != nil {
		return
	}
	if gen.pass == 2 {
		for range count {
			gen.code = append(gen.code, value)
		}
	}
	gen.offset += count
	return
}

// align pads to a power of two boundary, with NOPs when in the text section
// and the padding is word aligned.
func (gen *Generator) align(alignment int) (err error) {
	pad := (alignment - gen.offset%alignment) % alignment
	if pad == 0 {
		return
	}
	if gen.section == SECTION_TEXT && pad%4 == 0 && gen.offset%4 == 0 {
		for range pad / 4 {
			err = gen.data(binary.LittleEndian.AppendUint32(nil, uint32(arm64.NOP))...)
			if err != nil {
				return
			}
		}
		return
	}
	return gen.fill(pad, 0)
}

// resolve returns the value of an immediate or symbol operand. In pass 1
// only symbols defined earlier in the source resolve.
func (gen *Generator) resolve(op Operand) (value int64, err error) {
	switch op := op.(type) {
	case Immediate:
		value = op.Value
	case LabelRef:
		value, err = gen.symbols.Resolve(op.Name)
	default:
		err = ErrOperands
	}
	return
}

var dataWidth = map[string]int{
	".byte":  1,
	".hword": 2,
	".short": 2,
	".word":  4,
	".long":  4,
	".quad":  8,
}

func (gen *Generator) directive(name string, ops []Operand) (err error) {
	gen.prev = -1
	gen.pending = gen.pending[:0]

	switch name {
	case ".text":
		gen.section = SECTION_TEXT
	case ".data":
		gen.section = SECTION_DATA
	case ".bss":
		gen.section = SECTION_BSS
	case ".section":
		if len(ops) < 1 {
			err = ErrOperands
			return
		}
		var section string
		switch op := ops[0].(type) {
		case String:
			section = op.Text
		case LabelRef:
			section = op.Name
		default:
			err = ErrOperands
			return
		}
		section = strings.ToLower(section)
		switch {
		case strings.HasPrefix(section, ".text"):
			gen.section = SECTION_TEXT
		case strings.HasPrefix(section, ".data"), strings.HasPrefix(section, ".rodata"):
			gen.section = SECTION_DATA
		case strings.HasPrefix(section, ".bss"):
			gen.section = SECTION_BSS
		default:
			err = ErrSection(section)
		}
	case ".global", ".globl":
		if len(ops) == 0 {
			err = ErrOperands
			return
		}
		if gen.pass != 1 {
			return
		}
		for _, op := range ops {
			ref, ok := op.(LabelRef)
			if !ok {
				err = ErrOperands
				return
			}
			var index SymbolIndex
			index, err = gen.symbols.Intern(ref.Name, gen.lineno)
			if err != nil {
				return
			}
			gen.symbols.Symbol(index).Global = true
		}
	case ".equ", ".set":
		if len(ops) != 2 {
			err = ErrOperands
			return
		}
		ref, ok := ops[0].(LabelRef)
		if !ok {
			err = ErrOperands
			return
		}
		if gen.pass != 1 {
			return
		}
		var value int64
		value, err = gen.resolve(ops[1])
		if err != nil {
			return
		}
		_, err = gen.symbols.Define(ref.Name, value, gen.lineno, gen.section, true)
	case ".align", ".p2align":
		if len(ops) != 1 {
			err = ErrOperands
			return
		}
		var power int64
		power, err = gen.resolve(ops[0])
		if err != nil {
			return
		}
		if power < 0 || power > MaxAlign {
			err = &ErrRange{Field: name, Value: power}
			return
		}
		err = gen.align(1 << power)
	case ".balign":
		if len(ops) != 1 {
			err = ErrOperands
			return
		}
		var alignment int64
		alignment, err = gen.resolve(ops[0])
		if err != nil {
			return
		}
		if alignment <= 0 || alignment > 1<<MaxAlign || bits.OnesCount64(uint64(alignment)) != 1 {
			err = &ErrRange{Field: name, Value: alignment}
			return
		}
		err = gen.align(int(alignment))
	case ".byte", ".hword", ".short", ".word", ".long", ".quad":
		if len(ops) == 0 {
			err = ErrOperands
			return
		}
		width := dataWidth[name]
		for _, op := range ops {
			err = gen.value(name, width, op)
			if err != nil {
				return
			}
		}
	case ".space", ".skip":
		if len(ops) < 1 || len(ops) > 2 {
			err = ErrOperands
			return
		}
		var size, value int64
		size, err = gen.resolve(ops[0])
		if err != nil {
			return
		}
		if size < 0 || size > int64(gen.limits.CodeSize) {
			err = &ErrRange{Field: name, Value: size}
			return
		}
		if len(ops) == 2 {
			value, err = gen.resolve(ops[1])
			if err != nil {
				return
			}
			if value < -128 || value > 255 {
				err = &ErrRange{Field: name, Value: value}
				return
			}
		}
		err = gen.fill(int(size), byte(value))
	case ".ascii", ".asciz", ".string":
		if len(ops) == 0 {
			err = ErrOperands
			return
		}
		for _, op := range ops {
			str, ok := op.(String)
			if !ok {
				err = ErrOperands
				return
			}
			data := []byte(str.Text)
			if name != ".ascii" {
				data = append(data, 0)
			}
			err = gen.data(data...)
			if err != nil {
				return
			}
		}
	default:
		err = ErrDirectiveUnsupported(name)
	}

	return
}

// value emits a single data value of width bytes. In pass 1 only the size
// matters, so symbols may still be undefined.
func (gen *Generator) value(name string, width int, op Operand) (err error) {
	var value int64
	if gen.pass == 2 {
		value, err = gen.resolve(op)
		if err != nil {
			return
		}
		if width < 8 {
			lo := -(int64(1) << (width*8 - 1))
			hi := int64(1)<<(width*8) - 1
			if value < lo || value > hi {
				err = &ErrRange{Field: name, Value: value}
				return
			}
		}
	} else {
		switch op.(type) {
		case Immediate, LabelRef:
		default:
			err = ErrOperands
			return
		}
	}

	buf := binary.LittleEndian.AppendUint64(nil, uint64(value))
	return gen.data(buf[:width]...)
}
