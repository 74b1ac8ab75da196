package parser

import (
	"encoding/binary"

	"go.coldcutz.net/brc/internal/key"
)

// laneWidth is the window size processed before refilling. The Rust
// original vectorizes over 64-byte AVX-512 lanes; Go has no portable
// cross-platform SIMD intrinsic without cgo or per-arch assembly, so this
// port uses SWAR (SIMD-within-a-register) over 8-byte machine words
// instead -- eight word-parallel steps per 64-byte window, same shape as
// the reference, narrower lanes. Output is required to be identical to
// ParseByteScan regardless of lane width.
const laneWidth = 64
const wordWidth = 8

// broadcast replicates b into all 8 bytes of a uint64.
func broadcast(b byte) uint64 {
	return 0x0101010101010101 * uint64(b)
}

// wordHasByte returns a mask with the high bit of each byte lane set
// where that lane of word equals the byte broadcast in pattern (an exact
// per-lane zero-byte test applied to word^pattern; no carry crosses lanes).
func wordHasByte(word uint64, pattern uint64) uint64 {
	const low7 = 0x7F7F7F7F7F7F7F7F
	x := word ^ pattern
	return ^(((x & low7) + low7) | x | low7)
}

// findSeparators finds every ';' and '\n' offset within window, in
// ascending order, using word-parallel scanning with a scalar tail for
// any remainder shorter than one word.
func findSeparators(window []byte) []int {
	semiPattern := broadcast(';')
	newlinePattern := broadcast('\n')

	var offsets []int
	i := 0
	for i+wordWidth <= len(window) {
		word := binary.LittleEndian.Uint64(window[i : i+wordWidth])
		mask := wordHasByte(word, semiPattern) | wordHasByte(word, newlinePattern)
		for mask != 0 {
			lane := trailingZeroBytes(mask)
			offsets = append(offsets, i+lane)
			mask &^= 0xFF << (uint(lane) * 8)
		}
		i += wordWidth
	}
	for ; i < len(window); i++ {
		if window[i] == ';' || window[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// trailingZeroBytes returns the index (0..7) of the least-significant set
// byte lane in mask.
func trailingZeroBytes(mask uint64) int {
	for lane := 0; lane < wordWidth; lane++ {
		if mask&(0xFF<<(uint(lane)*8)) != 0 {
			return lane
		}
	}
	return 0
}

// lineParser walks a buffer producing (name, value) pairs by refilling a
// laneWidth-byte window of separator offsets and consuming them in pairs,
// same two-offset-per-line shape as the reference SIMD parser: each line
// consumes one ';' offset and one '\n' offset.
type lineParser struct {
	buffer  []byte
	cursor  int // start of the next unparsed line
	scanned int // how far separator-scanning has progressed; >= cursor
	next    []int
}

func newLineParser(buffer []byte) *lineParser {
	return &lineParser{buffer: buffer}
}

// fill extends the separator queue, refilling laneWidth bytes at a time,
// until either two offsets are queued (enough for one full line) or the
// buffer is exhausted. A single window may end mid-name, so this loops
// rather than refilling only once.
func (p *lineParser) fill() {
	for len(p.next) < 2 && p.scanned < len(p.buffer) {
		end := p.scanned + laneWidth
		if end > len(p.buffer) {
			end = len(p.buffer)
		}
		for _, rel := range findSeparators(p.buffer[p.scanned:end]) {
			p.next = append(p.next, p.scanned+rel)
		}
		p.scanned = end
	}
}

func (p *lineParser) parseLine() ([]byte, int, bool) {
	p.fill()

	if len(p.next) >= 2 {
		semi, newline := p.next[0], p.next[1]
		p.next = p.next[2:]

		name := p.buffer[p.cursor:semi]
		value := p.buffer[semi+1 : newline]
		p.cursor = newline + 1

		return name, semiValue(value), true
	}

	if len(p.next) == 1 {
		// A trailing line with no '\n' (stream end): the last queued
		// offset must be the ';', and whatever follows is the value.
		semi := p.next[0]
		if p.buffer[semi] == ';' && semi+1 < len(p.buffer) {
			name := p.buffer[p.cursor:semi]
			value := p.buffer[semi+1:]
			p.next = nil
			p.cursor = len(p.buffer)
			return name, semiValue(value), true
		}
	}

	return nil, 0, false
}

func semiValue(b []byte) int {
	return int(digitsToValue(b))
}

// ParseSIMD is the word-parallel line parser. It must produce the same
// (name, value) sequence as ParseByteScan for any well-formed frame.
func ParseSIMD(hasher key.Hasher, frame []byte, sink Sink) {
	p := newLineParser(frame)
	for {
		name, value, ok := p.parseLine()
		if !ok {
			return
		}
		sink.Insert(key.New(hasher, name), int16(value))
	}
}
