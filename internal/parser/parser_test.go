package parser

import (
	"testing"

	"go.coldcutz.net/brc/internal/key"
	"go.coldcutz.net/brc/internal/records"
)

func TestDigitsToValuePositive(t *testing.T) {
	if got, want := digitsToValue([]byte("535.4")), int16(5354); got != want {
		t.Errorf("digitsToValue(%q) = %d, want %d", "535.4", got, want)
	}
}

func TestDigitsToValueNegative(t *testing.T) {
	if got, want := digitsToValue([]byte("-535.4")), int16(-5354); got != want {
		t.Errorf("digitsToValue(%q) = %d, want %d", "-535.4", got, want)
	}
}

func runParser(t *testing.T, parse func(key.Hasher, []byte, Sink)) records.Records {
	t.Helper()
	tbl := records.New()
	parse(key.LiteHasher{}, []byte("jill;3.4\njack;1.2\njill;2.3\njill;4.5\n"), tbl)
	return tbl
}

func TestByteScanMultiLineFrame(t *testing.T) {
	got := records.ExportText(runParser(t, ParseByteScan))
	want := "{jack=1.2/1.2/1.2, jill=2.3/3.4/4.5}\n"
	if got != want {
		t.Errorf("ParseByteScan: ExportText() = %q, want %q", got, want)
	}
}

func TestSIMDMultiLineFrame(t *testing.T) {
	got := records.ExportText(runParser(t, ParseSIMD))
	want := "{jack=1.2/1.2/1.2, jill=2.3/3.4/4.5}\n"
	if got != want {
		t.Errorf("ParseSIMD: ExportText() = %q, want %q", got, want)
	}
}

func TestByteScanAndSIMDAgreeOnTrailingLineWithoutNewline(t *testing.T) {
	frame := []byte("a;1.0\nb;2.0\nc;3.0")

	byteScan := records.New()
	ParseByteScan(key.LiteHasher{}, frame, byteScan)

	simd := records.New()
	ParseSIMD(key.LiteHasher{}, frame, simd)

	got, want := records.ExportText(byteScan), records.ExportText(simd)
	if got != want {
		t.Errorf("ParseByteScan and ParseSIMD disagree: %q != %q", got, want)
	}
	if want != "{a=1.0/1.0/1.0, b=2.0/2.0/2.0, c=3.0/3.0/3.0}\n" {
		t.Errorf("unexpected export: %q", want)
	}
}

func TestByteScanAndSIMDAgreeOnLinesStraddlingWordBoundaries(t *testing.T) {
	// Station names chosen so separators land at varying offsets relative
	// to 8-byte words and the 64-byte SWAR window, exercising the SIMD
	// parser's window-refill path.
	frame := []byte(
		"abcdefghij;12.3\n" +
			"k;45.6\n" +
			"lmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwx;78.9\n" +
			"y;0.1\n",
	)

	byteScan := records.New()
	ParseByteScan(key.LiteHasher{}, frame, byteScan)

	simd := records.New()
	ParseSIMD(key.LiteHasher{}, frame, simd)

	got, want := records.ExportText(byteScan), records.ExportText(simd)
	if got != want {
		t.Errorf("ParseByteScan and ParseSIMD disagree across word boundaries: %q != %q", got, want)
	}
}

func TestEmptyFrameYieldsNoEntries(t *testing.T) {
	for _, parse := range []func(key.Hasher, []byte, Sink){ParseByteScan, ParseSIMD} {
		tbl := records.New()
		parse(key.LiteHasher{}, nil, tbl)
		if got := tbl.Len(); got != 0 {
			t.Errorf("empty frame: Len() = %d, want 0", got)
		}
	}
}
