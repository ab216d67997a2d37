package arm64

import (
	"math/bits"
)

func ones(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

func rotateRight(value uint64, shift uint, width uint) uint64 {
	shift %= width
	if shift == 0 {
		return value & ones(width)
	}
	return ((value >> shift) | (value << (width - shift))) & ones(width)
}

// EncodeBitmask computes the N, immr and imms fields of a logical immediate.
// ok is false when the value is not a replicated, rotated run of ones.
func EncodeBitmask(value uint64, wide bool) (n, immr, imms uint32, ok bool) {
	width := uint(32)
	if wide {
		width = 64
	}
	value &= ones(width)
	if value == 0 || value == ones(width) {
		return
	}
	if !wide {
		value |= value << 32
	}

	// Smallest repeating element.
	size := uint(64)
	for size > 2 {
		half := size / 2
		if value&ones(half) != (value>>half)&ones(half) {
			break
		}
		size = half
	}

	elem := value & ones(size)
	count := uint(bits.OnesCount64(elem))
	run := ones(count)

	// Find the rotation that turns a low run of ones into the element.
	for rot := uint(0); rot < size; rot++ {
		if rotateRight(run, rot, size) == elem {
			if size == 64 {
				n = 1
			}
			immr = uint32(rot)
			imms = uint32((^(size-1)<<1)|(count-1)) & 0x3f
			ok = true
			return
		}
	}

	return
}

// DecodeBitmask expands the N, immr and imms fields of a logical immediate.
// ok is false for reserved encodings.
func DecodeBitmask(n, immr, imms uint32, wide bool) (value uint64, ok bool) {
	combined := (n&1)<<6 | (^imms & 0x3f)
	if combined == 0 {
		return
	}
	length := uint(bits.Len32(combined) - 1)
	if length < 1 {
		return
	}
	size := uint(1) << length
	if !wide && size == 64 {
		return
	}
	levels := uint32(size - 1)
	s := uint(imms & levels)
	r := uint(immr & levels)
	if s == uint(levels) {
		return
	}

	elem := rotateRight(ones(s+1), r, size)
	for filled := size; filled < 64; filled *= 2 {
		elem |= elem << filled
	}

	value = elem
	if !wide {
		value &= ones(32)
	}
	ok = true
	return
}
