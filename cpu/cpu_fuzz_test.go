package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
)

func FuzzCpu(f *testing.F) {
	for _, word := range []uint32{
		0x00000000, 0xffffffff, 0xd503201f, 0x8b010002, 0x93407c00,
		0x13017c20, 0xd4000001, 0x9ac00c20, 0xf8408c20, 0xa9bf7bfd,
	} {
		f.Add(word, uint64(0x40))
	}

	f.Fuzz(func(t *testing.T, word uint32, value uint64) {
		assert := assert.New(t)

		cpu := NewCpu(0x100)
		cpu.Reset(0, 0x100, 0)
		for reg := range cpu.Register {
			cpu.Register[reg] = value + uint64(reg)
		}
		load(cpu, 0, arm64.Word(word))

		err := cpu.Tick()
		if err == nil {
			return
		}

		known := []error{ErrMemoryFault, ErrInstructionUnknown, ErrPcAlignment, ErrBreakpoint, ErrTrapped}
		found := false
		for _, target := range known {
			if errors.Is(err, target) {
				found = true
			}
		}
		assert.True(found, "0x%08x: %v", word, err)
	})
}
