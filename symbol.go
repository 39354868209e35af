package huffman

// Symbol represents a token in the alphabet being coded.  Symbols compare by
// value.
type Symbol string

// noSymbol marks arena nodes that do not carry a Symbol.
const noSymbol = int32(-1)

// noNode marks an absent child or an absent root.
const noNode = int32(-1)
