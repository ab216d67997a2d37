package asm

// Limits are the fixed budgets of a single assembly.
type Limits struct {
	Nodes      int // Syntax tree node pool.
	Statements int // Top level statements.
	Symbols    int // Symbol table entries.
	SymbolName int // Longest symbol name, in bytes.
	CodeSize   int // Output image capacity, in bytes.
}

// DefaultLimits are the budgets used for any zero field of Limits.
var DefaultLimits = Limits{
	Nodes:      512,
	Statements: 256,
	Symbols:    64,
	SymbolName: 32,
	CodeSize:   4096,
}

// withDefaults fills in any unset budget.
func (limits Limits) withDefaults() Limits {
	if limits.Nodes <= 0 {
		limits.Nodes = DefaultLimits.Nodes
	}
	if limits.Statements <= 0 {
		limits.Statements = DefaultLimits.Statements
	}
	if limits.Symbols <= 0 {
		limits.Symbols = DefaultLimits.Symbols
	}
	if limits.SymbolName <= 0 {
		limits.SymbolName = DefaultLimits.SymbolName
	}
	if limits.CodeSize <= 0 {
		limits.CodeSize = DefaultLimits.CodeSize
	}
	return limits
}
