package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Statistics summarizes how well a CodeTable compresses the token stream
// its FrequencyTable was counted from.
type Statistics struct {
	// Tokens is the number of tokens counted.
	Tokens uint64

	// Distinct is the number of distinct symbols.
	Distinct int

	// FixedWidth is the number of bits per symbol of a fixed-width code
	// for the same alphabet.
	FixedWidth int

	// EncodedBits is the length of the Huffman encoding of every counted
	// token.
	EncodedBits uint64

	// AverageCodeLength is the expected Huffman code length, in bits per
	// symbol.
	AverageCodeLength float64

	// CompressionRatio is FixedWidth / AverageCodeLength.
	CompressionRatio float64
}

// ComputeStatistics computes every field of Statistics.  ct must have been
// generated from ft.
func ComputeStatistics(ft *FrequencyTable, ct *CodeTable) Statistics {
	var encodedBits uint64
	for _, sym := range ft.Symbols() {
		encodedBits = saturatingAdd(encodedBits, saturatingMul(ft.Count(sym), uint64(codeSize(ct, sym))))
	}
	return Statistics{
		Tokens:            ft.Total(),
		Distinct:          ft.Len(),
		FixedWidth:        FixedWidthBits(ft.Len()),
		EncodedBits:       encodedBits,
		AverageCodeLength: AverageCodeLength(ft, ct),
		CompressionRatio:  CompressionRatio(ft, ct),
	}
}

// AverageCodeLength returns the sum over all symbols s of
// (count(s) / total) * len(code(s)), or 0 if no tokens were counted.
func AverageCodeLength(ft *FrequencyTable, ct *CodeTable) float64 {
	total := ft.Total()
	if total == 0 {
		return 0.0
	}
	var avg float64
	for _, sym := range ft.Symbols() {
		p := float64(ft.Count(sym)) / float64(total)
		avg += p * float64(codeSize(ct, sym))
	}
	return avg
}

// CompressionRatio returns FixedWidthBits(distinct) divided by the average
// code length.  Alphabets of zero or one symbol have a ratio of exactly 1.
func CompressionRatio(ft *FrequencyTable, ct *CodeTable) float64 {
	distinct := ft.Len()
	if distinct <= 1 {
		return 1.0
	}
	avg := AverageCodeLength(ft, ct)
	assert.Assertf(avg > 0, "average code length %g for %d symbols", avg, distinct)
	return float64(FixedWidthBits(distinct)) / avg
}

// FixedWidthBits returns ceil(log2(distinct)), the bits per symbol needed to
// give each of distinct symbols its own fixed-width code.
func FixedWidthBits(distinct int) int {
	if distinct <= 1 {
		return 0
	}
	return int(ceilLog2(uint64(distinct)))
}

// Dump writes a programmer-readable debugging dump of the Statistics to the
// given writer.
func (s Statistics) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Statistics{\n")
	fmt.Fprintf(&buf, "\tTokens = %d\n", s.Tokens)
	fmt.Fprintf(&buf, "\tDistinct = %d\n", s.Distinct)
	fmt.Fprintf(&buf, "\tFixedWidth = %d\n", s.FixedWidth)
	fmt.Fprintf(&buf, "\tEncodedBits = %d\n", s.EncodedBits)
	fmt.Fprintf(&buf, "\tAverageCodeLength = %.4f\n", s.AverageCodeLength)
	fmt.Fprintf(&buf, "\tCompressionRatio = %.4f\n", s.CompressionRatio)
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func codeSize(ct *CodeTable, sym Symbol) int {
	code, found := ct.Lookup(sym)
	assert.Assertf(found, "symbol %q has no code", string(sym))
	return len(code)
}
