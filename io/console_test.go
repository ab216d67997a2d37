package io

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_Getc(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Input: strings.NewReader("ab")}

	value, err := con.Getc()
	assert.NoError(err)
	assert.Equal(byte('a'), value)

	value, err = con.Getc()
	assert.NoError(err)
	assert.Equal(byte('b'), value)

	_, err = con.Getc()
	assert.ErrorIs(err, io.EOF)

	// No input is always at end of file.
	_, err = (&Console{}).Getc()
	assert.ErrorIs(err, io.EOF)
}

func TestConsole_Output(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Output: output}

	assert.NoError(con.Putc('x'))
	assert.NoError(con.Puts("yz\n"))
	assert.Equal("xyz\n", output.String())

	// No output discards.
	assert.NoError((&Console{}).Puts("lost"))
}

func TestConsole_ReadLine(t *testing.T) {
	table := [...]struct {
		input string
		limit int
		line  string
		err   error
	}{
		{"hello\nworld\n", 0, "hello", nil},
		{"hello\r", 0, "hello", nil},
		{"abcdef\n", 4, "abc", nil},
		{"ab\bc\n", 0, "ac", nil},
		{"\x7f\x7fab\n", 0, "ab", nil},
		{"tail", 0, "tail", nil},
		{"\n", 0, "", nil},
		{"", 0, "", io.EOF},
		{strings.Repeat("x", 300), 1000, strings.Repeat("x", LINE_MAX-1), nil},
		{strings.Repeat("y", 100), 0, strings.Repeat("y", LINE_DEFAULT-1), nil},
	}

	for n, entry := range table {
		con := &Console{Input: strings.NewReader(entry.input)}
		line, err := con.ReadLine(entry.limit)
		if entry.err != nil {
			assert.ErrorIs(t, err, entry.err, "case %d", n)
			continue
		}
		assert.NoError(t, err, "case %d", n)
		assert.Equal(t, entry.line, string(line), "case %d", n)
	}
}

func TestConsole_ReadLineEcho(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Input: strings.NewReader("ab\x7fc\n"), Output: output, Echo: true}

	line, err := con.ReadLine(0)
	assert.NoError(err)
	assert.Equal("ac", string(line))
	assert.Equal("ab\b \bc\n", output.String())
}

func TestConsole_ReadLineContinues(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Input: strings.NewReader("one\ntwo\n")}

	line, err := con.ReadLine(0)
	assert.NoError(err)
	assert.Equal("one", string(line))

	line, err = con.ReadLine(0)
	assert.NoError(err)
	assert.Equal("two", string(line))
}
