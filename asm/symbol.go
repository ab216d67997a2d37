package asm

import (
	"iter"
	"strings"
)

// Section is an output section. All sections share one location counter.
type Section int

//go:generate go tool stringer -linecomment -type=Section
const (
	SECTION_TEXT = Section(0) // .text
	SECTION_DATA = Section(1) // .data
	SECTION_BSS  = Section(2) // .bss
)

// SymbolIndex addresses a symbol in a SymbolTable.
type SymbolIndex int32

// Symbol is a label, equate or global declaration.
type Symbol struct {
	Name     string
	Value    int64
	Defined  bool
	Global   bool
	Constant bool // Defined by .equ or .set, rather than as a label.
	Line     int  // Line of the definition, or first reference.
	Section  Section
}

// SymbolTable is a fixed capacity arena of symbols with case insensitive
// names. Predefined constants sit outside the arena, and resolve only when
// the source does not define the name itself.
type SymbolTable struct {
	Capacity  int
	NameLimit int

	symbols    []Symbol
	index      map[string]SymbolIndex
	predefined map[string]int64
}

// Reset removes every symbol and predefine.
func (table *SymbolTable) Reset() {
	table.symbols = table.symbols[:0]
	if table.index == nil {
		table.index = make(map[string]SymbolIndex, table.Capacity)
	}
	clear(table.index)
	clear(table.predefined)
}

// Predefine sets a constant that does not count towards Capacity.
func (table *SymbolTable) Predefine(name string, value int64) {
	if table.predefined == nil {
		table.predefined = make(map[string]int64)
	}
	table.predefined[strings.ToLower(name)] = value
}

// Len is the number of symbols.
func (table *SymbolTable) Len() int {
	return len(table.symbols)
}

// Find looks up a symbol by name.
func (table *SymbolTable) Find(name string) (index SymbolIndex, ok bool) {
	index, ok = table.index[strings.ToLower(name)]
	return
}

// Symbol returns the symbol at index.
func (table *SymbolTable) Symbol(index SymbolIndex) *Symbol {
	return &table.symbols[index]
}

// Intern returns the symbol for name, creating an undefined one if needed.
func (table *SymbolTable) Intern(name string, lineno int) (index SymbolIndex, err error) {
	index, ok := table.Find(name)
	if ok {
		return
	}
	if len(name) > table.NameLimit {
		err = ErrSymbolName(name)
		return
	}
	if len(table.symbols) >= table.Capacity {
		err = ErrSymbolsExhausted
		return
	}
	if table.index == nil {
		table.index = make(map[string]SymbolIndex, table.Capacity)
	}
	index = SymbolIndex(len(table.symbols))
	table.symbols = append(table.symbols, Symbol{Name: name, Line: lineno})
	table.index[strings.ToLower(name)] = index
	return
}

// Define gives a symbol its value. A name can only be defined once.
func (table *SymbolTable) Define(name string, value int64, lineno int, section Section, constant bool) (index SymbolIndex, err error) {
	index, err = table.Intern(name, lineno)
	if err != nil {
		return
	}
	sym := table.Symbol(index)
	if sym.Defined {
		err = &ErrSymbolDuplicate{Name: name, LineNo: sym.Line}
		return
	}
	sym.Value = value
	sym.Defined = true
	sym.Constant = constant
	sym.Line = lineno
	sym.Section = section
	return
}

// Resolve returns the value of a defined symbol, or else of a predefine.
func (table *SymbolTable) Resolve(name string) (value int64, err error) {
	index, ok := table.Find(name)
	if ok && table.Symbol(index).Defined {
		value = table.Symbol(index).Value
		return
	}
	value, ok = table.predefined[strings.ToLower(name)]
	if !ok {
		err = ErrSymbolUndefined(name)
	}
	return
}

// All iterates the symbols in creation order.
func (table *SymbolTable) All() iter.Seq2[SymbolIndex, Symbol] {
	return func(yield func(SymbolIndex, Symbol) bool) {
		for n, sym := range table.symbols {
			if !yield(SymbolIndex(n), sym) {
				return
			}
		}
	}
}
