package asm

import (
	"fmt"
	"iter"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

// MaxOperands is the operand capacity of an instruction or directive.
const MaxOperands = 8

// NodeKind is the kind of a syntax tree node.
type NodeKind int

//go:generate go tool stringer -linecomment -type=NodeKind
const (
	NODE_PROGRAM     = NodeKind(0) // program
	NODE_LABEL       = NodeKind(1) // label
	NODE_INSTRUCTION = NodeKind(2) // instruction
	NODE_DIRECTIVE   = NodeKind(3) // directive
	NODE_REGISTER    = NodeKind(4) // register
	NODE_IMMEDIATE   = NodeKind(5) // immediate
	NODE_LABEL_REF   = NodeKind(6) // label reference
	NODE_MEMORY      = NodeKind(7) // memory
	NODE_STRING      = NodeKind(8) // string
	NODE_SHIFT       = NodeKind(9) // shift
)

// Operand is the payload of an operand node. The set of implementations is
// closed: Register, Immediate, LabelRef, Memory, String and Shift.
type Operand interface {
	fmt.Stringer
	Kind() NodeKind
	operand()
}

// Register is a register operand.
type Register struct {
	Index arm64.Reg
	Wide  bool // x view, rather than w.
	SP    bool // Written as sp or wsp.
}

func (Register) operand()       {}
func (Register) Kind() NodeKind { return NODE_REGISTER }

func (reg Register) String() string {
	return arm64.RegName(reg.Index, reg.Wide, reg.SP)
}

// Immediate is a constant operand.
type Immediate struct {
	Value int64
}

func (Immediate) operand()       {}
func (Immediate) Kind() NodeKind { return NODE_IMMEDIATE }

func (imm Immediate) String() string {
	return fmt.Sprintf("#%d", imm.Value)
}

// LabelRef names a symbol. Conditions and barrier options are also parsed
// as label references, and interpreted by the instruction that uses them.
type LabelRef struct {
	Name string
}

func (LabelRef) operand()       {}
func (LabelRef) Kind() NodeKind { return NODE_LABEL_REF }

func (ref LabelRef) String() string {
	return ref.Name
}

// Memory is a bracketed address operand.
type Memory struct {
	Base     Register
	Index    Register
	HasIndex bool
	Offset   int64
	Symbol   string // Added to Offset when set.
	Mode     arm64.AddrMode
}

func (Memory) operand()       {}
func (Memory) Kind() NodeKind { return NODE_MEMORY }

func (mem Memory) String() string {
	inner := mem.Base.String()
	switch {
	case mem.HasIndex:
		inner += ", " + mem.Index.String()
	case mem.Symbol != "" && mem.Mode != arm64.ADDR_POST:
		inner += ", #" + mem.Symbol
	case mem.Offset != 0 && mem.Mode != arm64.ADDR_POST:
		inner += fmt.Sprintf(", #%d", mem.Offset)
	}
	switch mem.Mode {
	case arm64.ADDR_PRE:
		return "[" + inner + "]!"
	case arm64.ADDR_POST:
		return fmt.Sprintf("[%s], #%d", inner, mem.Offset)
	}
	return "[" + inner + "]"
}

// String is a quoted string operand.
type String struct {
	Text string
}

func (String) operand()       {}
func (String) Kind() NodeKind { return NODE_STRING }

func (str String) String() string {
	return fmt.Sprintf("%q", str.Text)
}

// Shift is a shift modifier such as `lsl #12`.
type Shift struct {
	Type   arm64.ShiftType
	Amount int64
}

func (Shift) operand()       {}
func (Shift) Kind() NodeKind { return NODE_SHIFT }

func (shift Shift) String() string {
	return fmt.Sprintf("%v #%d", shift.Type, shift.Amount)
}

// NodeIndex addresses a node in an Arena.
type NodeIndex int32

// NODE_NONE is the invalid node index.
const NODE_NONE = NodeIndex(-1)

// Node is a syntax tree node.
type Node struct {
	Kind     NodeKind
	LineNo   int
	Name     string  // Label, mnemonic or directive name.
	Operand  Operand // Payload of operand nodes.
	Operands [MaxOperands]NodeIndex
	Count    int // Number of valid Operands.
}

// Arena is a fixed capacity pool of nodes.
type Arena struct {
	nodes    []Node
	capacity int
}

// NewArena creates an arena that holds at most capacity nodes.
func NewArena(capacity int) *Arena {
	return &Arena{
		nodes:    make([]Node, 0, capacity),
		capacity: capacity,
	}
}

// New allocates a node.
func (arena *Arena) New(node Node) (index NodeIndex, err error) {
	if len(arena.nodes) >= arena.capacity {
		err = ErrNodesExhausted
		index = NODE_NONE
		return
	}
	index = NodeIndex(len(arena.nodes))
	arena.nodes = append(arena.nodes, node)
	return
}

// Node returns the node at index.
func (arena *Arena) Node(index NodeIndex) *Node {
	return &arena.nodes[index]
}

// Len is the number of allocated nodes.
func (arena *Arena) Len() int {
	return len(arena.nodes)
}

// Reset releases every node.
func (arena *Arena) Reset() {
	arena.nodes = arena.nodes[:0]
}

// AddOperand appends an operand child to the instruction or directive at
// parent.
func (arena *Arena) AddOperand(parent NodeIndex, lineno int, op Operand) (err error) {
	node := arena.Node(parent)
	if node.Count >= MaxOperands {
		err = ErrOperandCount
		return
	}
	index, err := arena.New(Node{Kind: op.Kind(), LineNo: lineno, Operand: op})
	if err != nil {
		return
	}
	node = arena.Node(parent)
	node.Operands[node.Count] = index
	node.Count++
	return
}

// Operands returns the operand payloads of a node, in source order.
func (arena *Arena) Operands(index NodeIndex) []Operand {
	node := arena.Node(index)
	ops := make([]Operand, node.Count)
	for n := range node.Count {
		ops[n] = arena.Node(node.Operands[n]).Operand
	}
	return ops
}

// Tree is a parsed program.
type Tree struct {
	Arena      *Arena
	Root       NodeIndex   // The NODE_PROGRAM node.
	Statements []NodeIndex // Label, instruction and directive nodes, in order.
}

// All iterates the statements of the program.
func (tree *Tree) All() iter.Seq2[NodeIndex, *Node] {
	return func(yield func(NodeIndex, *Node) bool) {
		for _, index := range tree.Statements {
			if !yield(index, tree.Arena.Node(index)) {
				return
			}
		}
	}
}
