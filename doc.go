// Package huffman implements static Huffman codes over an alphabet of
// whitespace-delimited string tokens.  An Encoder counts token frequencies,
// builds an optimal prefix-free code, encodes token streams into strings of
// '0' and '1' characters, and reports the expected code length and the
// compression ratio against a fixed-width code.
//
// Typical use:
//
//     var e huffman.Encoder
//     if err := e.AnalyzeFile("input.txt"); err != nil {
//             return err
//     }
//     e.Build()
//     bits, err := e.Encode(huffman.TokenizeString("a b a"))
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
