package asm

import (
	"log"
	"strings"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

// parser is a recursive descent parser over a Lexer, with a single token of
// lookahead.
type parser struct {
	verbose bool
	limits  Limits
	lexer   *Lexer
	peeked  *Token
	tree    *Tree
	equates map[string]int64 // Integer equates known so far, for $(...).
	lineno  int
}

func newParser(input []byte, limits Limits, equates map[string]int64) (p *parser) {
	p = &parser{
		limits:  limits.withDefaults(),
		lexer:   NewLexer(input),
		equates: map[string]int64{},
	}
	for name, value := range equates {
		p.equates[name] = value
	}
	return
}

func (p *parser) next() (tok Token) {
	if p.peeked != nil {
		tok = *p.peeked
		p.peeked = nil
	} else {
		tok = p.lexer.Next()
	}
	p.lineno = tok.Line
	return
}

func (p *parser) peek() Token {
	if p.peeked == nil {
		tok := p.lexer.Next()
		p.peeked = &tok
	}
	return *p.peeked
}

// parse builds the syntax tree of the whole input.
func (p *parser) parse() (tree *Tree, err error) {
	defer func() {
		if err != nil {
			err = atLine(p.lineno, err)
			tree = nil
		}
	}()

	arena := NewArena(p.limits.Nodes)
	root, err := arena.New(Node{Kind: NODE_PROGRAM, LineNo: 1})
	if err != nil {
		return
	}
	p.tree = &Tree{
		Arena:      arena,
		Root:       root,
		Statements: make([]NodeIndex, 0, p.limits.Statements),
	}

	for {
		tok := p.next()
		switch tok.Kind {
		case TOKEN_EOF:
			tree = p.tree
			return
		case TOKEN_NEWLINE:
			continue
		}
		err = p.statement(tok)
		if err != nil {
			return
		}
	}
}

func (p *parser) append(node Node) (index NodeIndex, err error) {
	if len(p.tree.Statements) >= p.limits.Statements {
		err = ErrStatementsExhausted
		return
	}
	index, err = p.tree.Arena.New(node)
	if err != nil {
		return
	}
	p.tree.Statements = append(p.tree.Statements, index)
	return
}

func (p *parser) statement(tok Token) (err error) {
	switch {
	case tok.Kind == TOKEN_ERROR:
		err = tok.Err
	case tok.Kind == TOKEN_IDENT && p.peek().Kind == TOKEN_COLON:
		p.next()
		if p.verbose {
			log.Printf("asm: %d: label %v", tok.Line, tok.Text)
		}
		_, err = p.append(Node{Kind: NODE_LABEL, LineNo: tok.Line, Name: tok.Text})
		if err != nil {
			return
		}
		// A label may share its line with a statement.
		next := p.next()
		switch next.Kind {
		case TOKEN_NEWLINE:
		case TOKEN_EOF:
			p.peeked = &next
		default:
			err = p.statement(next)
		}
	case tok.Kind == TOKEN_IDENT:
		err = p.operation(NODE_INSTRUCTION, tok)
	case tok.Kind == TOKEN_DIRECTIVE:
		err = p.operation(NODE_DIRECTIVE, tok)
	default:
		err = ErrExpectedStatement
	}

	return
}

// operation parses an instruction or directive with its operand list.
func (p *parser) operation(kind NodeKind, tok Token) (err error) {
	name := strings.ToLower(tok.Text)
	index, err := p.append(Node{Kind: kind, LineNo: tok.Line, Name: name})
	if err != nil {
		return
	}

	if !p.peek().Terminal() {
		for {
			var op Operand
			op, err = p.operand(kind == NODE_DIRECTIVE)
			if err != nil {
				return
			}
			err = p.tree.Arena.AddOperand(index, tok.Line, op)
			if err != nil {
				return
			}
			if p.peek().Kind != TOKEN_COMMA {
				break
			}
			p.next()
		}
	}

	end := p.next()
	switch end.Kind {
	case TOKEN_ERROR:
		err = end.Err
		return
	case TOKEN_NEWLINE:
	case TOKEN_EOF:
		p.peeked = &end
	default:
		err = ErrExpectedNewline
		return
	}

	if kind == NODE_DIRECTIVE {
		p.noteEquate(index)
	}

	if p.verbose {
		log.Printf("asm: %d: %v %v", tok.Line, name, p.tree.Arena.Operands(index))
	}

	return
}

// noteEquate records integer .equ/.set values for later expressions.
func (p *parser) noteEquate(index NodeIndex) {
	node := p.tree.Arena.Node(index)
	if (node.Name != ".equ" && node.Name != ".set") || node.Count != 2 {
		return
	}
	ops := p.tree.Arena.Operands(index)
	name, ok := ops[0].(LabelRef)
	if !ok {
		return
	}
	switch value := ops[1].(type) {
	case Immediate:
		p.equates[name.Name] = value.Value
	case LabelRef:
		equ, ok := p.equates[value.Name]
		if ok {
			p.equates[name.Name] = equ
		}
	}
}

// immediate parses NUMBER, EXPR, or a negated NUMBER/EXPR.
func (p *parser) immediate(tok Token) (value int64, ok bool, err error) {
	switch tok.Kind {
	case TOKEN_NUMBER:
		value = tok.Value
		ok = true
	case TOKEN_EXPR:
		value, err = p.evaluate(tok.Text, tok.Line)
		ok = err == nil
	case TOKEN_MINUS:
		next := p.peek()
		if next.Kind != TOKEN_NUMBER && next.Kind != TOKEN_EXPR {
			return
		}
		value, ok, err = p.immediate(p.next())
		value = -value
	case TOKEN_ERROR:
		err = tok.Err
	}
	return
}

func (p *parser) operand(directive bool) (op Operand, err error) {
	var value int64
	var ok bool

	tok := p.next()

	switch tok.Kind {
	case TOKEN_ERROR:
		err = tok.Err
		return
	case TOKEN_REGISTER:
		op = tok.Register
		return
	case TOKEN_STRING:
		op = String{Text: tok.Text}
		return
	case TOKEN_LBRACKET:
		op, err = p.memory()
		return
	case TOKEN_DIRECTIVE:
		if directive {
			// .section .data
			op = String{Text: strings.ToLower(tok.Text)}
			return
		}
	case TOKEN_HASH:
		next := p.next()
		if next.Kind == TOKEN_IDENT {
			op = LabelRef{Name: next.Text}
			return
		}
		value, ok, err = p.immediate(next)
		if err != nil {
			return
		}
		if ok {
			op = Immediate{Value: value}
			return
		}
	case TOKEN_IDENT:
		shift, isShift := arm64.ParseShift(tok.Text)
		next := p.peek().Kind
		if !isShift || (next != TOKEN_HASH && next != TOKEN_NUMBER && next != TOKEN_EXPR) {
			op = LabelRef{Name: tok.Text}
			return
		}
		amount := p.next()
		if amount.Kind == TOKEN_HASH {
			amount = p.next()
		}
		value, ok, err = p.immediate(amount)
		if err != nil {
			return
		}
		if ok {
			op = Shift{Type: shift, Amount: value}
			return
		}
	default:
		value, ok, err = p.immediate(tok)
		if err != nil {
			return
		}
		if ok {
			op = Immediate{Value: value}
			return
		}
	}

	err = ErrExpectedOperand
	return
}

// memory parses the remainder of a bracketed address, after the '['.
func (p *parser) memory() (op Operand, err error) {
	base := p.next()
	if base.Kind == TOKEN_ERROR {
		err = base.Err
		return
	}
	if base.Kind != TOKEN_REGISTER {
		err = ErrExpectedRegister
		return
	}

	mem := Memory{Base: base.Register, Mode: arm64.ADDR_OFFSET}
	offset := false

	tok := p.next()
	if tok.Kind == TOKEN_COMMA {
		offset = true
		tok = p.next()
		if tok.Kind == TOKEN_HASH {
			tok = p.next()
		}
		switch tok.Kind {
		case TOKEN_REGISTER:
			mem.Index = tok.Register
			mem.HasIndex = true
		case TOKEN_IDENT:
			mem.Symbol = tok.Text
		default:
			var ok bool
			mem.Offset, ok, err = p.immediate(tok)
			if err != nil {
				return
			}
			if !ok {
				err = ErrExpectedOperand
				return
			}
		}
		tok = p.next()
	}

	if tok.Kind == TOKEN_ERROR {
		err = tok.Err
		return
	}
	if tok.Kind != TOKEN_RBRACKET {
		err = ErrExpectedBracket
		return
	}

	switch p.peek().Kind {
	case TOKEN_BANG:
		p.next()
		mem.Mode = arm64.ADDR_PRE
	case TOKEN_COMMA:
		p.next()
		if offset {
			err = ErrPostIndex
			return
		}
		tok = p.next()
		if tok.Kind == TOKEN_HASH {
			tok = p.next()
		}
		var ok bool
		mem.Offset, ok, err = p.immediate(tok)
		if err != nil {
			return
		}
		if !ok {
			err = ErrExpectedOperand
			return
		}
		mem.Mode = arm64.ADDR_POST
	}

	op = mem
	return
}
