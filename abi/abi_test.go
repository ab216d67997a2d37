package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

func TestTable(t *testing.T) {
	assert := assert.New(t)

	names := map[string]bool{}
	codes := map[Code]bool{}
	prev := Code(0)
	for service := range Services() {
		assert.False(names[service.Name], service.Name)
		assert.False(codes[service.Code], service.Name)
		assert.Greater(service.Code, prev, service.Name)
		names[service.Name] = true
		codes[service.Code] = true
		prev = service.Code

		found, ok := Lookup(service.Name)
		assert.True(ok)
		assert.Equal(service, found)

		found, ok = Decode(service.Code)
		assert.True(ok)
		assert.Equal(service, found)

		word := EncodeSVC(service.Code)
		code, ok := DecodeSVC(word)
		assert.True(ok)
		assert.Equal(service.Code, code)

		assert.Equal(service.Arity, len(service.Arguments()))
		assert.NotEmpty(service.Help)
	}

	assert.Equal(28, len(names))
}

func TestContract(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name  string
		code  Code
		arity int
	}{
		{"prt", 0x100, 1},
		{"prtn", 0x102, 1},
		{"inps", 0x104, 2},
		{"line", 0x113, 5},
		{"box", 0x114, 4},
		{"canvas", 0x116, 2},
		{"fwrite", 0x121, 3},
		{"fexist", 0x126, 1},
		{"abs", 0x133, 1},
		{"rnd", 0x1f1, 1},
		{"halt", 0x1ff, 0},
	}

	for _, entry := range table {
		service, ok := Lookup(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(entry.code, service.Code, entry.name)
		assert.Equal(entry.arity, service.Arity, entry.name)
	}

	assert.Equal(arm64.Word(0xd4002041), EncodeSVC(SERVICE_PRTN))
	assert.Equal(arm64.Word(0xd4003fe1), EncodeSVC(SERVICE_HALT))
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	service, ok := Lookup("PRTN")
	assert.True(ok)
	assert.Equal(SERVICE_PRTN, service.Code)

	_, ok = Lookup("frobnicate")
	assert.False(ok)

	_, ok = Decode(0x1fe)
	assert.False(ok)

	assert.Equal("halt", SERVICE_HALT.String())
	assert.Equal("svc#0x1fe", Code(0x1fe).String())
}

func TestDecodeSVC(t *testing.T) {
	assert := assert.New(t)

	_, ok := DecodeSVC(arm64.MakeException(arm64.EXCEPTION_BRK, 0x100))
	assert.False(ok)

	_, ok = DecodeSVC(arm64.MakeException(arm64.EXCEPTION_HVC, 0x100))
	assert.False(ok)

	_, ok = DecodeSVC(arm64.NOP)
	assert.False(ok)

	code, ok := DecodeSVC(0xd4000001)
	assert.True(ok)
	assert.Equal(Code(0), code)
}

func TestReserved(t *testing.T) {
	assert := assert.New(t)

	for reg := arm64.Reg(0); reg < 32; reg++ {
		assert.Equal(reg >= 26 && reg <= 28, Reserved(reg), "x%d", reg)
	}
}
