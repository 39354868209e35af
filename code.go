package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol of an alphabet to its Huffman code, written as
// a string of '0' and '1' characters.
//
// A nil *CodeTable behaves like an empty one.
type CodeTable struct {
	codes   map[Symbol]string
	minSize int
	maxSize int
}

// GenerateCodes assigns to every leaf of t the path from the root to that
// leaf, with '0' for a left edge and '1' for a right edge.  A root that is
// itself a leaf is assigned "0" rather than the empty string.
func GenerateCodes(t *Tree) *CodeTable {
	ct := &CodeTable{codes: make(map[Symbol]string, (len(t.nodes)+1)/2)}
	if t.root == noNode {
		return ct
	}

	type stackItem struct {
		index int32
		depth int32
		bit   byte
	}

	path := make([]byte, t.Depth())
	stack := make([]stackItem, 0, len(path)+1)
	stack = append(stack, stackItem{index: t.root})

	for len(stack) != 0 {
		last := len(stack) - 1
		item := stack[last]
		stack = stack[:last]

		if item.depth > 0 {
			path[item.depth-1] = item.bit
		}

		n := t.nodes[item.index]
		if n.symbol != noSymbol {
			code := "0"
			if item.depth > 0 {
				code = string(path[:item.depth])
			}
			ct.add(t.symbols[n.symbol], code)
			continue
		}

		assert.Assertf(n.left != noNode, "internal node %d has no left child", item.index)
		if n.right != noNode {
			stack = append(stack, stackItem{n.right, item.depth + 1, '1'})
		}
		stack = append(stack, stackItem{n.left, item.depth + 1, '0'})
	}

	return ct
}

func (ct *CodeTable) add(sym Symbol, code string) {
	_, dupe := ct.codes[sym]
	assert.Assertf(!dupe, "symbol %q reached twice", string(sym))
	size := len(code)
	if len(ct.codes) == 0 {
		ct.minSize = size
		ct.maxSize = size
	} else if ct.minSize > size {
		ct.minSize = size
	} else if ct.maxSize < size {
		ct.maxSize = size
	}
	ct.codes[sym] = code
}

// Len returns the number of symbols with a code.
func (ct *CodeTable) Len() int {
	if ct == nil {
		return 0
	}
	return len(ct.codes)
}

// Lookup returns the code for sym.  The second result is false if sym has
// no code.
func (ct *CodeTable) Lookup(sym Symbol) (string, bool) {
	if ct == nil {
		return "", false
	}
	code, found := ct.codes[sym]
	return code, found
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable) MinSize() int {
	if ct == nil {
		return 0
	}
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() int {
	if ct == nil {
		return 0
	}
	return ct.maxSize
}

// Symbols returns every symbol with a code, sorted by (code length, code).
func (ct *CodeTable) Symbols() []Symbol {
	if ct == nil {
		return nil
	}
	sorted := make(byCode, 0, len(ct.codes))
	for sym, code := range ct.codes {
		sorted = append(sorted, symbolAndCode{sym, code})
	}
	sorted.Sort()
	out := make([]Symbol, len(sorted))
	for i, item := range sorted {
		out[i] = item.symbol
	}
	return out
}

// IsPrefixFree returns true iff no code is a prefix of another.
func (ct *CodeTable) IsPrefixFree() bool {
	if ct.Len() < 2 {
		return true
	}
	codes := make([]string, 0, len(ct.codes))
	for _, code := range ct.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	// If x is a prefix of y, every string sorted between them also has x as
	// a prefix, so checking neighbors is enough.
	for i := 1; i < len(codes); i++ {
		a, b := codes[i-1], codes[i]
		if len(a) <= len(b) && b[:len(a)] == a {
			return false
		}
	}
	return true
}

// Fingerprint returns a 64-bit hash of the (symbol, code) assignments.  Two
// tables have the same fingerprint iff they assign the same codes, barring
// hash collisions.
func (ct *CodeTable) Fingerprint() uint64 {
	var scratch [binary.MaxVarintLen64]byte
	d := xxhash.New()
	writeString := func(s string) {
		n := binary.PutUvarint(scratch[:], uint64(len(s)))
		_, _ = d.Write(scratch[:n])
		_, _ = d.WriteString(s)
	}
	for _, sym := range ct.Symbols() {
		writeString(string(sym))
		writeString(ct.codes[sym])
	}
	return d.Sum64()
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.MaxSize())
	for _, sym := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tLookup(%q) = %q\n", string(sym), ct.codes[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a brief description of this CodeTable.
func (ct *CodeTable) String() string {
	return fmt.Sprintf("(Huffman code with %d symbols, with code lengths of %d .. %d bits)", ct.Len(), ct.MinSize(), ct.MaxSize())
}

var _ fmt.Stringer = (*CodeTable)(nil)

// type symbolAndCode + type byCode {{{

type symbolAndCode struct {
	symbol Symbol
	code   string
}

type byCode []symbolAndCode

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if len(a.code) != len(b.code) {
		return len(a.code) < len(b.code)
	}
	if a.code != b.code {
		return a.code < b.code
	}
	return a.symbol < b.symbol
}

var _ sort.Interface = byCode(nil)

// }}}
