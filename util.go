package huffman

import (
	mathbits "math/bits"
)

// ceilLog2 returns the smallest k such that 2**k >= x.  ceilLog2(0) and
// ceilLog2(1) are both 0.
func ceilLog2(x uint64) uint {
	if x <= 1 {
		return 0
	}
	return uint(64 - mathbits.LeadingZeros64(x-1))
}

// saturatingAdd returns a+b, clamped to the maximum uint64.
func saturatingAdd(a, b uint64) uint64 {
	sum, carry := mathbits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return sum
}

func isASCIISpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// saturatingMul returns a*b, clamped to the maximum uint64.
func saturatingMul(a, b uint64) uint64 {
	hi, lo := mathbits.Mul64(a, b)
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}
