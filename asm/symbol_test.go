package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable(t *testing.T) {
	assert := assert.New(t)

	table := &SymbolTable{Capacity: 3, NameLimit: 8}
	table.Reset()

	index, err := table.Intern("Loop", 4)
	assert.NoError(err)
	assert.False(table.Symbol(index).Defined)

	_, err = table.Resolve("loop")
	assert.ErrorIs(err, ErrSymbolUndefined("loop"))

	defined, err := table.Define("LOOP", 0x40, 7, SECTION_TEXT, false)
	assert.NoError(err)
	assert.Equal(index, defined)

	value, err := table.Resolve("loop")
	assert.NoError(err)
	assert.Equal(int64(0x40), value)
	assert.Equal(7, table.Symbol(index).Line)

	_, err = table.Define("loop", 0, 9, SECTION_TEXT, false)
	var dup *ErrSymbolDuplicate
	if assert.ErrorAs(err, &dup) {
		assert.Equal(7, dup.LineNo)
	}
	assert.ErrorIs(err, SEMANTIC_ERROR)

	_, err = table.Intern("muchtoolong", 1)
	assert.ErrorIs(err, ErrSymbolName("muchtoolong"))

	_, err = table.Define("SIZE", 16, 10, SECTION_DATA, true)
	assert.NoError(err)
	_, err = table.Intern("buf", 11)
	assert.NoError(err)
	_, err = table.Intern("more", 12)
	assert.ErrorIs(err, ErrSymbolsExhausted)
	assert.ErrorIs(err, RESOURCE_EXHAUSTED)

	var names []string
	for _, sym := range table.All() {
		names = append(names, sym.Name)
	}
	assert.Equal([]string{"Loop", "SIZE", "buf"}, names)

	table.Reset()
	assert.Equal(0, table.Len())
	_, ok := table.Find("loop")
	assert.False(ok)
}
