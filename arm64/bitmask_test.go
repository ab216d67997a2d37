package arm64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmask(t *testing.T) {
	assert := assert.New(t)

	n, immr, imms, ok := EncodeBitmask(0x5555555555555555, true)
	assert.True(ok)
	assert.Equal(uint32(0), n)
	assert.Equal(uint32(0), immr)
	assert.Equal(uint32(0x3c), imms)

	for _, value := range []uint64{
		0xff,
		0xff00,
		0x5555555555555555,
		0x00ff00ff00ff00ff,
		0x8000000000000000,
		0xfffffffffffffffe,
		0x0f0f0f0f0f0f0f0f,
	} {
		n, immr, imms, ok := EncodeBitmask(value, true)
		assert.True(ok, "%#x", value)
		decoded, ok := DecodeBitmask(n, immr, imms, true)
		assert.True(ok, "%#x", value)
		assert.Equal(value, decoded, "%#x", value)
	}

	for _, value := range []uint64{0xff, 0x80000000, 0xfffffffe, 0x0ff00ff0} {
		n, immr, imms, ok := EncodeBitmask(value, false)
		assert.True(ok, "%#x", value)
		assert.Equal(uint32(0), n)
		decoded, ok := DecodeBitmask(n, immr, imms, false)
		assert.True(ok, "%#x", value)
		assert.Equal(value, decoded, "%#x", value)
	}
}

func TestBitmaskInvalid(t *testing.T) {
	assert := assert.New(t)

	for _, value := range []uint64{0, ^uint64(0), 0x1234, 0x5} {
		_, _, _, ok := EncodeBitmask(value, true)
		assert.False(ok, "%#x", value)
	}

	_, _, _, ok := EncodeBitmask(0xffffffff, false)
	assert.False(ok)

	// N=1 is reserved for 32-bit operations.
	_, ok = DecodeBitmask(1, 0, 0, false)
	assert.False(ok)
}
