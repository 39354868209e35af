package huffman

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
)

// Encoder implements a static Huffman encoder for token streams.
//
// Use proceeds in phases: one of the Analyze methods counts the tokens of a
// source, Build constructs the tree and code table from those counts, and
// then Encode and the statistics methods may be called any number of times.
// Every Analyze call discards the previous tree and code table, so Build must
// be called again before encoding.
//
// The zero value is an Encoder that has analyzed an empty source.  An Encoder
// is not safe for concurrent use.
//
type Encoder struct {
	freqs *FrequencyTable
	tree  *Tree
	codes *CodeTable
}

// Analyze counts the given tokens, replacing any previous counts and
// invalidating any previous build.
func (e *Encoder) Analyze(tokens []Symbol) {
	e.reset(NewFrequencyTable(tokens))
}

// AnalyzeReader counts the whitespace-delimited tokens read from r,
// replacing any previous counts and invalidating any previous build.  If
// reading fails, the Encoder is left in the state of having analyzed an
// empty source.
func (e *Encoder) AnalyzeReader(r io.Reader) error {
	ft, err := ReadFrequencyTable(r)
	if err != nil {
		e.reset(nil)
		return err
	}
	e.reset(ft)
	return nil
}

// AnalyzeFile counts the whitespace-delimited tokens of the named file.  If
// the file cannot be opened or is a directory, the returned error matches
// ErrSourceNotFound and the Encoder is left in the state of having analyzed
// an empty source.
func (e *Encoder) AnalyzeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		e.reset(nil)
		return &SourceNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	fi, err := f.Stat()
	if err == nil && fi.IsDir() {
		err = errors.New("is a directory")
	}
	if err != nil {
		e.reset(nil)
		return &SourceNotFoundError{Path: path, Err: err}
	}
	return e.AnalyzeReader(f)
}

func (e *Encoder) reset(ft *FrequencyTable) {
	*e = Encoder{freqs: ft}
}

// Build constructs the Huffman tree and code table for the current counts.
// Building from an empty source is valid and yields an empty code table.
func (e *Encoder) Build() {
	tree := BuildTree(e.freqs)
	codes := GenerateCodes(tree)
	e.tree, e.codes = tree, codes
}

// Built returns true iff Build has been called since the last Analyze.
func (e *Encoder) Built() bool {
	return e.codes != nil
}

// Frequencies returns the current counts.
func (e *Encoder) Frequencies() *FrequencyTable {
	if e.freqs == nil {
		return NewFrequencyTable(nil)
	}
	return e.freqs
}

// Tree returns the current tree, or nil if Built() is false.
func (e *Encoder) Tree() *Tree {
	return e.tree
}

// Codes returns the current code table, or nil if Built() is false.
func (e *Encoder) Codes() *CodeTable {
	return e.codes
}

// Encode concatenates the codes of the given tokens, in order.  A token
// that was not seen during analysis yields an *UnknownSymbolError and no
// output.
func (e *Encoder) Encode(tokens []Symbol) (string, error) {
	size, err := e.EncodedLen(tokens)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(int(size))
	for _, sym := range tokens {
		code, _ := e.codes.Lookup(sym)
		sb.WriteString(code)
	}
	return sb.String(), nil
}

// EncodeReader tokenizes r and encodes the result.
func (e *Encoder) EncodeReader(r io.Reader) (string, error) {
	if !e.Built() {
		return "", ErrNotBuilt
	}
	tokens, err := Tokenize(r)
	if err != nil {
		return "", err
	}
	return e.Encode(tokens)
}

// EncodedLen returns the number of bits Encode would produce for tokens.
func (e *Encoder) EncodedLen(tokens []Symbol) (uint64, error) {
	if !e.Built() {
		return 0, ErrNotBuilt
	}
	var size uint64
	for index, sym := range tokens {
		code, found := e.codes.Lookup(sym)
		if !found {
			return 0, &UnknownSymbolError{Symbol: sym, Index: index}
		}
		size += uint64(len(code))
	}
	return size, nil
}

// AverageCodeLength returns the expected code length, in bits per symbol, of
// the current code over the current counts.
func (e *Encoder) AverageCodeLength() (float64, error) {
	if !e.Built() {
		return 0, ErrNotBuilt
	}
	return AverageCodeLength(e.freqs, e.codes), nil
}

// CompressionRatio returns the ratio of fixed-width bits per symbol to the
// expected Huffman bits per symbol.
func (e *Encoder) CompressionRatio() (float64, error) {
	if !e.Built() {
		return 0, ErrNotBuilt
	}
	return CompressionRatio(e.freqs, e.codes), nil
}

// Statistics returns the full set of statistics for the current build.
func (e *Encoder) Statistics() (Statistics, error) {
	if !e.Built() {
		return Statistics{}, ErrNotBuilt
	}
	return ComputeStatistics(e.freqs, e.codes), nil
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e *Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	_, _ = e.Frequencies().Dump(&buf)
	if e.Built() {
		_, _ = e.tree.Dump(&buf)
		_, _ = e.codes.Dump(&buf)
		stats, _ := e.Statistics()
		_, _ = stats.Dump(&buf)
	} else {
		buf.WriteString("(not built)\n")
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
