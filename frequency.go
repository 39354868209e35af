package huffman

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// maxTokenSize is the longest token that ReadFrequencyTable and Tokenize
// will accept from an io.Reader.
const maxTokenSize = 64 << 20

// FrequencyTable counts the occurrences of each distinct Symbol in a token
// sequence.  Symbols are remembered in first-seen order; that order is what
// BuildTree uses to break ties between equal frequencies.
//
// A nil *FrequencyTable behaves like an empty one.
type FrequencyTable struct {
	symbols []Symbol
	counts  []uint64
	index   map[Symbol]int32
	total   uint64
}

// NewFrequencyTable counts the given tokens.
func NewFrequencyTable(tokens []Symbol) *FrequencyTable {
	ft := &FrequencyTable{index: make(map[Symbol]int32)}
	for _, sym := range tokens {
		ft.add(sym)
	}
	return ft
}

// ReadFrequencyTable counts the whitespace-delimited tokens read from r.
func ReadFrequencyTable(r io.Reader) (*FrequencyTable, error) {
	ft := &FrequencyTable{index: make(map[Symbol]int32)}
	err := scanTokens(r, ft.add)
	if err != nil {
		return nil, err
	}
	return ft, nil
}

func (ft *FrequencyTable) add(sym Symbol) {
	i, found := ft.index[sym]
	if !found {
		assert.Assertf(len(ft.symbols) < math.MaxInt32, "too many distinct symbols: %d", len(ft.symbols))
		i = int32(len(ft.symbols))
		ft.index[sym] = i
		ft.symbols = append(ft.symbols, sym)
		ft.counts = append(ft.counts, 0)
	}
	ft.counts[i]++
	ft.total++
}

// Len returns the number of distinct symbols.
func (ft *FrequencyTable) Len() int {
	if ft == nil {
		return 0
	}
	return len(ft.symbols)
}

// Total returns the number of tokens counted, which is also the sum of all
// counts.
func (ft *FrequencyTable) Total() uint64 {
	if ft == nil {
		return 0
	}
	return ft.total
}

// Count returns the number of occurrences of sym, or 0 if it never appeared.
func (ft *FrequencyTable) Count(sym Symbol) uint64 {
	if ft == nil {
		return 0
	}
	if i, found := ft.index[sym]; found {
		return ft.counts[i]
	}
	return 0
}

// Contains returns true iff sym appeared at least once.
func (ft *FrequencyTable) Contains(sym Symbol) bool {
	if ft == nil {
		return false
	}
	_, found := ft.index[sym]
	return found
}

// Symbols returns the distinct symbols in first-seen order.
func (ft *FrequencyTable) Symbols() []Symbol {
	if ft == nil {
		return nil
	}
	out := make([]Symbol, len(ft.symbols))
	copy(out, ft.symbols)
	return out
}

// Dump writes a programmer-readable debugging dump of the FrequencyTable to
// the given writer.
func (ft *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", ft.Len())
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.Total())
	for _, sym := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%q) = %d\n", string(sym), ft.Count(sym))
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Tokenize splits the contents of r into tokens separated by ASCII
// whitespace.
func Tokenize(r io.Reader) ([]Symbol, error) {
	var out []Symbol
	err := scanTokens(r, func(sym Symbol) {
		out = append(out, sym)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TokenizeString splits s into tokens separated by ASCII whitespace.
func TokenizeString(s string) []Symbol {
	fields := strings.FieldsFunc(s, func(ch rune) bool {
		return ch < 0x80 && isASCIISpace(byte(ch))
	})
	out := make([]Symbol, len(fields))
	for i, field := range fields {
		out[i] = Symbol(field)
	}
	return out
}

func scanTokens(r io.Reader, fn func(Symbol)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxTokenSize)
	sc.Split(scanASCIIWords)
	for sc.Scan() {
		fn(Symbol(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read tokens: %w", err)
	}
	return nil
}

// scanASCIIWords is bufio.ScanWords restricted to ASCII whitespace, so that
// bytes such as U+0085 and U+00A0 stay inside tokens.
func scanASCIIWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isASCIISpace(data[start]) {
		start++
	}
	for i := start; i < len(data); i++ {
		if isASCIISpace(data[i]) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

var _ bufio.SplitFunc = scanASCIIWords
