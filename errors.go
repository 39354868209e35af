package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when a token source cannot be opened.
	ErrSourceNotFound = errors.New("token source not found")

	// ErrUnknownSymbol is matched by errors.Is for every *UnknownSymbolError.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrNotBuilt is returned when encoding or computing statistics without
	// a code built from the current frequency table.
	ErrNotBuilt = errors.New("Huffman code has not been built for the current frequencies")
)

// UnknownSymbolError reports a token that has no code in the current
// CodeTable, i.e. one that never appeared during analysis.
type UnknownSymbolError struct {
	Symbol Symbol

	// Index is the position of the offending token in the encoded stream.
	Index int
}

// Error fulfills the error interface.
func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("%v: %q at token index %d", ErrUnknownSymbol, string(err.Symbol), err.Index)
}

// Is returns true for ErrUnknownSymbol.
func (err *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

var _ error = (*UnknownSymbolError)(nil)

// SourceNotFoundError reports a token source that could not be opened.
type SourceNotFoundError struct {
	Path string
	Err  error
}

// Error fulfills the error interface.
func (err *SourceNotFoundError) Error() string {
	return fmt.Sprintf("%v: %q: %v", ErrSourceNotFound, err.Path, err.Err)
}

// Is returns true for ErrSourceNotFound.
func (err *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}

// Unwrap returns the underlying error from the operating system.
func (err *SourceNotFoundError) Unwrap() error {
	return err.Err
}

var _ error = (*SourceNotFoundError)(nil)
