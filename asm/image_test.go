package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

func TestImageRoundTrip(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"start: add x0, x1, #1",
		"    mov x0, #10",
		"    movk x0, #0x1234, lsl #16",
		"    mov x0, #0x5555555555555555",
		"    ldr x0, [x1, #8]",
		"    ldr x0, [x1, #-8]",
		"    ldr x0, [x1, x2]",
		"    str x0, [sp, #-16]!",
		"    ldr x0, [sp], #16",
		"    stp x29, x30, [sp, #-16]!",
		"    cmp x0, #5",
		"    cset x0, eq",
		"    lsl x0, x1, #4",
		"    asr w0, w1, #31",
		"    mov x29, sp",
		"    tst x0, #1",
		"    neg x0, x1",
		"    mvn x0, x1",
		"    dmb ish",
		"    b.ne start",
		"    cbz x0, start",
		"    bl start",
		"    prtn",
		"    ret",
	}

	asm := &Assembler{DisablePeephole: true}
	img, err := assemble(asm, source...)
	if !assert.NoError(err) {
		return
	}

	var text []string
	for addr, word := range img.Words() {
		line := Disassemble(word, addr)
		assert.NotContains(line, ".word", line)
		text = append(text, line)
	}

	again, err := assemble(asm, text...)
	if !assert.NoError(err, strings.Join(text, "\n")) {
		return
	}
	assert.Equal(img.Bytes, again.Bytes)
}

func TestImageListing(t *testing.T) {
	assert := assert.New(t)

	img, err := assemble(&Assembler{}, "_start: add x0, x1, #1", "halt", ".word 0")
	if !assert.NoError(err) {
		return
	}

	var lines []string
	for _, line := range img.Listing() {
		lines = append(lines, line)
	}
	assert.Equal([]string{
		"_start:\n00000000  91000420  add x0, x1, #1",
		"00000004  d4003fe1  halt",
		"00000008  00000000  .word 0x00000000",
	}, lines)

	word, ok := img.Word(4)
	assert.True(ok)
	assert.Equal(arm64.Word(0xd4003fe1), word)
	_, ok = img.Word(10)
	assert.False(ok)

	label, ok := img.Label(0)
	assert.True(ok)
	assert.Equal("_start", label)
}

func TestNewImage(t *testing.T) {
	assert := assert.New(t)

	img := NewImage([]byte{0x1f, 0x20, 0x03, 0xd5, 0xff}, 0x400)
	assert.Equal(uint64(0x400), img.Entry)

	var words []arm64.Word
	for addr, word := range img.Words() {
		assert.Equal(uint64(0x400), addr)
		words = append(words, word)
	}
	assert.Equal([]arm64.Word{arm64.NOP}, words)
}
