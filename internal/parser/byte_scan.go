package parser

import "go.coldcutz.net/brc/internal/key"

// ParseByteScan scans frame forward a byte at a time, locating ';' as the
// name terminator and '\n' as the line terminator, and inserts every
// (name, value) pair into sink. An empty frame yields no pairs. The final
// line of the final frame of a stream may lack a trailing '\n'; it is
// still parsed as long as a ';' is followed by at least one value byte,
// the same condition the SIMD variant applies.
func ParseByteScan(hasher key.Hasher, frame []byte, sink Sink) {
	lineStart := 0
	n := len(frame)
	for lineStart < n {
		semi := -1
		lineEnd := -1
		i := lineStart
		for i < n {
			switch frame[i] {
			case ';':
				if semi < 0 {
					semi = i
				}
			case '\n':
				lineEnd = i
			}
			if lineEnd >= 0 {
				break
			}
			i++
		}
		if semi < 0 {
			// No separator found before running out of bytes: nothing
			// more to parse in this frame.
			return
		}
		if lineEnd < 0 {
			// Final line of the final frame with no trailing newline.
			if semi+1 >= n {
				return
			}
			lineEnd = n
		}

		name := frame[lineStart:semi]
		value := digitsToValue(frame[semi+1 : lineEnd])
		sink.Insert(key.New(hasher, name), value)

		lineStart = lineEnd + 1
	}
}
