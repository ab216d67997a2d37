package asm

import (
	"io"
	"log"
)

// Assembler is a two pass AArch64 assembler, with the extended service
// mnemonics of the EmberOS kernel.
type Assembler struct {
	Verbose         bool   // If set, verbosely logs the assembler actions.
	DisablePeephole bool   // If set, emits instructions exactly as written.
	Base            uint64 // Load address of the image.
	Limits          Limits // Budgets. Zero fields use DefaultLimits.

	predefine map[string]int64 // Predefines
}

// Predefine defines an equate visible to $(...) expressions and operands.
// Predefines do not use up the symbol budget, and a definition in the source
// takes precedence.
func (asm *Assembler) Predefine(name string, value int64) {
	if asm.predefine == nil {
		asm.predefine = map[string]int64{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Parse reads all of input and builds its syntax tree.
func (asm *Assembler) Parse(input io.Reader) (tree *Tree, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		err = &ErrAssembly{Err: &ErrIO{Err: err}}
		return
	}

	p := newParser(text, asm.Limits, asm.predefine)
	p.verbose = asm.Verbose
	tree, err = p.parse()
	if err != nil {
		return
	}

	if asm.Verbose {
		log.Printf("asm: parsed %d statements, %d nodes", len(tree.Statements), tree.Arena.Len())
	}

	return
}

// Assemble parses and generates input in one step.
func (asm *Assembler) Assemble(input io.Reader) (img *Image, err error) {
	tree, err := asm.Parse(input)
	if err != nil {
		return
	}

	gen := &Generator{
		Verbose:         asm.Verbose,
		DisablePeephole: asm.DisablePeephole,
		Base:            asm.Base,
		Limits:          asm.Limits,
		Equates:         asm.predefine,
	}
	img, err = gen.Generate(tree)
	return
}
