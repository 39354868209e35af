package huffman

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeTestEncoder(t *testing.T, text string) *Encoder {
	t.Helper()
	var e Encoder
	e.Analyze(TokenizeString(text))
	e.Build()
	return &e
}

func TestEncoder(t *testing.T) {
	e := makeTestEncoder(t, "a a a b b c")

	expectDump := strings.Join([]string{
		"Encoder{\n",
		"FrequencyTable{\n",
		"\tLen() = 3\n",
		"\tTotal() = 6\n",
		"\tCount(\"a\") = 3\n",
		"\tCount(\"b\") = 2\n",
		"\tCount(\"c\") = 1\n",
		"}\n",
		"Tree{\n",
		"\tRoot() = 4\n",
		"\tNode(0) = leaf \"a\" freq 3\n",
		"\tNode(1) = leaf \"b\" freq 2\n",
		"\tNode(2) = leaf \"c\" freq 1\n",
		"\tNode(3) = {2, 1} freq 3\n",
		"\tNode(4) = {0, 3} freq 6\n",
		"}\n",
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 2\n",
		"\tLookup(\"a\") = \"0\"\n",
		"\tLookup(\"c\") = \"10\"\n",
		"\tLookup(\"b\") = \"11\"\n",
		"}\n",
		"Statistics{\n",
		"\tTokens = 6\n",
		"\tDistinct = 3\n",
		"\tFixedWidth = 2\n",
		"\tEncodedBits = 9\n",
		"\tAverageCodeLength = 1.5000\n",
		"\tCompressionRatio = 1.3333\n",
		"}\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = e.Dump(&buf)
	actualDump := buf.String()
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	bits, err := e.Encode(TokenizeString("a b c a"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if expect := "011100"; bits != expect {
		t.Errorf("wrong encoding:\n\texpect: %s\n\tactual: %s", expect, bits)
	}

	avg, err := e.AverageCodeLength()
	if err != nil {
		t.Fatalf("AverageCodeLength failed: %v", err)
	}
	if expect := 9.0 / 6.0; math.Abs(avg-expect) > 1e-12 {
		t.Errorf("wrong average code length: expected %g, got %g", expect, avg)
	}

	ratio, err := e.CompressionRatio()
	if err != nil {
		t.Fatalf("CompressionRatio failed: %v", err)
	}
	if expect := 2.0 / 1.5; math.Abs(ratio-expect) > 1e-12 {
		t.Errorf("wrong compression ratio: expected %g, got %g", expect, ratio)
	}
}

func TestEncoder_SingleSymbol(t *testing.T) {
	e := makeTestEncoder(t, "x x x x")

	bits, err := e.Encode(TokenizeString("x x x"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if expect := "000"; bits != expect {
		t.Errorf("wrong encoding: expected %q, got %q", expect, bits)
	}

	stats, err := e.Statistics()
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.AverageCodeLength != 1.0 {
		t.Errorf("expected average code length 1, got %g", stats.AverageCodeLength)
	}
	if stats.CompressionRatio != 1.0 {
		t.Errorf("expected compression ratio 1, got %g", stats.CompressionRatio)
	}
	if stats.FixedWidth != 0 {
		t.Errorf("expected fixed width 0, got %d", stats.FixedWidth)
	}
}

func TestEncoder_Empty(t *testing.T) {
	e := makeTestEncoder(t, " \t\n ")

	if n := e.Codes().Len(); n != 0 {
		t.Errorf("expected empty code table, got %d codes", n)
	}
	if !e.Tree().IsEmpty() {
		t.Errorf("expected empty tree, got root %d", e.Tree().Root())
	}

	bits, err := e.Encode(nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if bits != "" {
		t.Errorf("expected empty encoding, got %q", bits)
	}

	avg, _ := e.AverageCodeLength()
	if avg != 0.0 {
		t.Errorf("expected average code length 0, got %g", avg)
	}
	ratio, _ := e.CompressionRatio()
	if ratio != 1.0 {
		t.Errorf("expected compression ratio 1, got %g", ratio)
	}
}

func TestEncoder_ZeroValue(t *testing.T) {
	var e Encoder
	if e.Built() {
		t.Errorf("zero Encoder claims to be built")
	}
	if _, err := e.Encode(nil); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("expected ErrNotBuilt, got %v", err)
	}
	e.Build()
	if !e.Built() {
		t.Errorf("Encoder not built after Build")
	}
	if n := e.Frequencies().Total(); n != 0 {
		t.Errorf("expected 0 tokens, got %d", n)
	}
}

func TestEncoder_UnknownSymbol(t *testing.T) {
	e := makeTestEncoder(t, "x y")

	bits, err := e.Encode(TokenizeString("x z"))
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	if bits != "" {
		t.Errorf("expected no output, got %q", bits)
	}

	var use *UnknownSymbolError
	if !errors.As(err, &use) {
		t.Fatalf("expected *UnknownSymbolError, got %T", err)
	}
	if use.Symbol != "z" || use.Index != 1 {
		t.Errorf("wrong error details: %+v", *use)
	}

	expectMsg := "unknown symbol: \"z\" at token index 1"
	if actualMsg := err.Error(); expectMsg != actualMsg {
		t.Errorf("wrong message:\n\texpect: %s\n\tactual: %s", expectMsg, actualMsg)
	}

	if _, err := e.EncodedLen([]Symbol{"z"}); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("EncodedLen: expected ErrUnknownSymbol, got %v", err)
	}
}

func TestEncoder_AnalyzeInvalidatesBuild(t *testing.T) {
	e := makeTestEncoder(t, "a a b")
	if !e.Built() {
		t.Fatalf("expected Encoder to be built")
	}

	e.Analyze(TokenizeString("c d d d"))
	if e.Built() || e.Codes() != nil || e.Tree() != nil {
		t.Fatalf("Analyze left a stale build behind")
	}
	if _, err := e.Encode(TokenizeString("c")); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("Encode: expected ErrNotBuilt, got %v", err)
	}
	if _, err := e.EncodeReader(strings.NewReader("c d")); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("EncodeReader: expected ErrNotBuilt, got %v", err)
	}
	if _, err := e.AverageCodeLength(); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("AverageCodeLength: expected ErrNotBuilt, got %v", err)
	}
	if _, err := e.CompressionRatio(); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("CompressionRatio: expected ErrNotBuilt, got %v", err)
	}
	if _, err := e.Statistics(); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("Statistics: expected ErrNotBuilt, got %v", err)
	}

	if n := e.Frequencies().Count("a"); n != 0 {
		t.Errorf("counts accumulated across Analyze calls: Count(\"a\") = %d", n)
	}

	e.Build()
	if _, err := e.Encode(TokenizeString("a")); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol for a symbol from the previous source, got %v", err)
	}
	bits, err := e.Encode(TokenizeString("d c"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if expect := "10"; bits != expect {
		t.Errorf("wrong encoding: expected %q, got %q", expect, bits)
	}
}

func TestEncoder_AnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.txt")
	err := os.WriteFile(path, []byte("GET /\nPOST /api\nGET /\n"), 0o666)
	if err != nil {
		t.Fatalf("os.WriteFile failed: %v", err)
	}

	var e Encoder
	if err := e.AnalyzeFile(path); err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	ft := e.Frequencies()
	if ft.Total() != 6 || ft.Len() != 4 {
		t.Errorf("wrong counts: Total() = %d, Len() = %d", ft.Total(), ft.Len())
	}
	if n := ft.Count("/"); n != 2 {
		t.Errorf("expected Count(\"/\") = 2, got %d", n)
	}

	e.Build()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("os.Open failed: %v", err)
	}
	defer f.Close()
	bits, err := e.EncodeReader(f)
	if err != nil {
		t.Fatalf("EncodeReader failed: %v", err)
	}
	stats, _ := e.Statistics()
	if uint64(len(bits)) != stats.EncodedBits {
		t.Errorf("encoded %d bits, statistics report %d", len(bits), stats.EncodedBits)
	}
}

func TestEncoder_AnalyzeFile_NotFound(t *testing.T) {
	e := makeTestEncoder(t, "a b")

	path := filepath.Join(t.TempDir(), "missing.txt")
	err := e.AnalyzeFile(path)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected error to wrap os.ErrNotExist, got %v", err)
	}

	var snf *SourceNotFoundError
	if !errors.As(err, &snf) || snf.Path != path {
		t.Errorf("expected *SourceNotFoundError for %q, got %#v", path, err)
	}

	if e.Built() || e.Frequencies().Len() != 0 {
		t.Errorf("failed AnalyzeFile left previous state behind")
	}
}

func TestEncoder_AnalyzeFile_Directory(t *testing.T) {
	e := makeTestEncoder(t, "a b")

	dir := t.TempDir()
	err := e.AnalyzeFile(dir)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}

	var snf *SourceNotFoundError
	if !errors.As(err, &snf) || snf.Path != dir {
		t.Errorf("expected *SourceNotFoundError for %q, got %#v", dir, err)
	}

	if e.Built() || e.Frequencies().Len() != 0 {
		t.Errorf("failed AnalyzeFile left previous state behind")
	}
}
