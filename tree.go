package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Tree is a Huffman prefix tree stored as a flat arena of nodes addressed by
// index.  Leaves occupy indices [0, n) in the first-seen order of their
// symbols; every other node is created after its children, so a parent's
// index is always greater than the indices of its children.
//
// Three kinds of node exist:
//
//     leaf      carries a Symbol, has no children
//     internal  carries no Symbol, has a left and a right child
//     wrapper   carries no Symbol, has only a left child (the lone leaf of a
//               single-symbol alphabet)
//
type Tree struct {
	nodes   []node
	symbols []Symbol
	root    int32
}

type node struct {
	freq   uint64
	symbol int32
	left   int32
	right  int32
}

// BuildTree constructs the Huffman tree for ft by repeatedly merging the two
// nodes of lowest frequency.
//
// Ties are broken by node index: among nodes of equal frequency, the one
// with the lower index is taken first, and the first node taken becomes the
// left child.  Leaves are indexed in first-seen order and merged nodes are
// indexed in order of creation, so identical tables always yield identical
// trees.
//
// An empty table yields an empty tree.  A table with one symbol yields a
// wrapper root above the single leaf, which gives that symbol a 1-bit code.
//
func BuildTree(ft *FrequencyTable) *Tree {
	numLeaves := ft.Len()
	t := &Tree{root: noNode}
	if numLeaves == 0 {
		return t
	}

	t.symbols = ft.symbols
	t.nodes = make([]node, 0, 2*numLeaves)
	var sum uint64
	for i := 0; i < numLeaves; i++ {
		freq := ft.counts[i]
		sum += freq
		t.nodes = append(t.nodes, node{freq: freq, symbol: int32(i), left: noNode, right: noNode})
	}
	assert.Assertf(sum == ft.total, "FrequencyTable total %d != sum of counts %d", ft.total, sum)

	if numLeaves == 1 {
		t.nodes = append(t.nodes, node{freq: t.nodes[0].freq, symbol: noSymbol, left: 0, right: noNode})
		t.root = 1
		return t
	}

	h := freqHeap{list: make([]indexAndFreq, numLeaves, numLeaves+1)}
	for i := range h.list {
		h.list[i] = indexAndFreq{int32(i), t.nodes[i].freq}
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(indexAndFreq)
		b := heap.Pop(&h).(indexAndFreq)

		index := int32(len(t.nodes))
		freq := saturatingAdd(a.freq, b.freq)
		t.nodes = append(t.nodes, node{freq: freq, symbol: noSymbol, left: a.index, right: b.index})
		heap.Push(&h, indexAndFreq{index, freq})
	}

	root := heap.Pop(&h).(indexAndFreq)
	assert.Assertf(int(root.index) == len(t.nodes)-1, "root %d is not the last node %d", root.index, len(t.nodes)-1)
	assert.Assertf(len(t.nodes) == 2*numLeaves-1, "%d leaves produced %d nodes", numLeaves, len(t.nodes))
	t.root = root.index
	return t
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// IsEmpty returns true iff the tree has no root.
func (t *Tree) IsEmpty() bool {
	return t.root == noNode
}

// Root returns the index of the root node, or -1 if the tree is empty.
func (t *Tree) Root() int {
	return int(t.root)
}

// Freq returns the frequency of node i, i.e. the sum of the frequencies of
// the leaves beneath it.
func (t *Tree) Freq(i int) uint64 {
	return t.nodes[i].freq
}

// Children returns the indices of the left and right children of node i.
// Absent children are reported as -1.
func (t *Tree) Children(i int) (left int, right int) {
	n := t.nodes[i]
	return int(n.left), int(n.right)
}

// IsLeaf returns true iff node i carries a Symbol.
func (t *Tree) IsLeaf(i int) bool {
	return t.nodes[i].symbol != noSymbol
}

// Symbol returns the Symbol of leaf i.  The second result is false for
// nodes that are not leaves.
func (t *Tree) Symbol(i int) (Symbol, bool) {
	n := t.nodes[i]
	if n.symbol == noSymbol {
		return "", false
	}
	return t.symbols[n.symbol], true
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	depths := t.depths()
	var max int32
	for _, d := range depths {
		if max < d {
			max = d
		}
	}
	return int(max)
}

// depths computes the depth of every node.  Children always have smaller
// indices than their parents, so a single descending sweep from the root
// visits each parent before its children.
func (t *Tree) depths() []int32 {
	if t.root == noNode {
		return nil
	}
	depths := make([]int32, len(t.nodes))
	for i := t.root; i >= 0; i-- {
		n := t.nodes[i]
		if n.left != noNode {
			depths[n.left] = depths[i] + 1
		}
		if n.right != noNode {
			depths[n.right] = depths[i] + 1
		}
	}
	return depths
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.root)
	for i, n := range t.nodes {
		switch {
		case n.symbol != noSymbol:
			fmt.Fprintf(&buf, "\tNode(%d) = leaf %q freq %d\n", i, string(t.symbols[n.symbol]), n.freq)
		case n.right == noNode:
			fmt.Fprintf(&buf, "\tNode(%d) = {%d} freq %d\n", i, n.left, n.freq)
		default:
			fmt.Fprintf(&buf, "\tNode(%d) = {%d, %d} freq %d\n", i, n.left, n.right, n.freq)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type indexAndFreq + type freqHeap {{{

type indexAndFreq struct {
	index int32
	freq  uint64
}

type freqHeap struct {
	list []indexAndFreq
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.index < b.index
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(indexAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
