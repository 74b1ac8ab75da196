// Package reader implements the chunking reader: it turns an io.Reader
// byte stream into a sequence of line-aligned frames delivered through a
// bounded, back-pressured hand-off.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"go.coldcutz.net/brc/internal/config"
)

// ChunkingReader drives ingestion of a single stream and hands line-aligned
// frames to any number of concurrent consumers via Pop. Read must be
// called at most once per instance.
type ChunkingReader struct {
	readChunk     int
	maxFrameBytes int

	frames chan []byte // line-aligned frames awaiting a worker
	empty  chan []byte // recycled buffers available for the producer to fill

	waiting    atomic.Int32 // consumers currently parked in Pop
	inProgress atomic.Bool
	closedCh   chan struct{}
}

// New returns a ChunkingReader configured with the compiled-in defaults.
func New() *ChunkingReader {
	return NewSized(config.ReadChunk, config.MaxFrameBytes, 0)
}

// NewSized returns a ChunkingReader with explicit chunk sizes. poolSize is
// the number of export buffers that cycle between producer and consumers;
// 0 selects a reasonable default -- callers that know their worker count N
// should pass N+1, keeping memory bounded to (N+1) * MaxFrameBytes.
func NewSized(readChunk, maxFrameBytes, poolSize int) *ChunkingReader {
	if readChunk <= 0 {
		readChunk = config.ReadChunk
	}
	if maxFrameBytes <= 0 {
		maxFrameBytes = config.MaxFrameBytes
	}
	if poolSize <= 0 {
		poolSize = 9 // 8 workers + 1, a reasonable default
	}

	r := &ChunkingReader{
		readChunk:     readChunk,
		maxFrameBytes: maxFrameBytes,
		frames:        make(chan []byte, poolSize),
		empty:         make(chan []byte, poolSize),
		closedCh:      make(chan struct{}),
	}
	for i := 0; i < poolSize; i++ {
		r.empty <- make([]byte, 0, maxFrameBytes)
	}
	return r
}

// InProgress reports whether Read has been started on this instance.
func (r *ChunkingReader) InProgress() bool {
	return r.inProgress.Load()
}

// Read drives ingestion of src to completion: it repeatedly fills an
// export buffer, flushing it as a line-aligned frame to consumers when a
// flush trigger fires (EOF, low headroom, or a waiting consumer). Read may
// be called at most once per instance; a second call is a programmer error
// and panics.
func (r *ChunkingReader) Read(src io.Reader) error {
	if !r.inProgress.CompareAndSwap(false, true) {
		panic("reader.ChunkingReader: Read called twice on the same instance")
	}
	defer close(r.closedCh)

	br := bufio.NewReaderSize(src, r.readChunk)

	readBuf := make([]byte, r.readChunk)
	lineBuf := make([]byte, 0, config.MaxLineLength)

	export := <-r.empty

	for {
		n, readErr := br.Read(readBuf)
		if n > 0 {
			export = append(export, readBuf[:n]...)
		}
		eof := errors.Is(readErr, io.EOF)
		if readErr != nil && !eof {
			return fmt.Errorf("reading input stream: %w", readErr)
		}

		headroomLow := cap(export)-len(export) <= r.readChunk+config.MaxLineLength
		consumerWaiting := r.waiting.Load() > 0

		if !eof && !headroomLow && !consumerWaiting {
			continue
		}

		// Flush trigger fired: read out to the next newline so every
		// frame we hand off ends on a line boundary, then push it.
		var lineErr error
		lineBuf, lineErr = readLine(br, lineBuf[:0])
		export = append(export, lineBuf...)

		lineEOF := errors.Is(lineErr, io.EOF)
		if lineErr != nil && !lineEOF {
			return fmt.Errorf("reading to line boundary: %w", lineErr)
		}

		if len(export) > 0 {
			r.frames <- export
		}

		if eof || lineEOF {
			return nil
		}

		export = <-r.empty
	}
}

// readLine reads from br, one buffered byte at a time, up to and
// including the next '\n', appending onto dst. The scratch buffer this is
// called with is bounded by MaxLineLength.
func readLine(br *bufio.Reader, dst []byte) ([]byte, error) {
	for {
		b, err := br.ReadByte()
		if err == nil {
			dst = append(dst, b)
			if b == '\n' {
				return dst, nil
			}
			continue
		}
		return dst, err
	}
}

// Pop blocks until a frame is available or the stream is exhausted. Once
// the final frame has been delivered to some consumer and no frame
// remains, it returns (nil, false), and does so on every later call too.
func (r *ChunkingReader) Pop() ([]byte, bool) {
	r.waiting.Add(1)
	defer r.waiting.Add(-1)

	select {
	case f := <-r.frames:
		return f, true
	case <-r.closedCh:
		select {
		case f := <-r.frames:
			return f, true
		default:
			return nil, false
		}
	}
}

// Recycle returns a frame's backing buffer to the reader once a worker is
// done parsing it, so the producer can reuse it without allocating.
func (r *ChunkingReader) Recycle(frame []byte) {
	select {
	case r.empty <- frame[:0]:
	default:
		// Pool is already full (can happen if the caller double-recycles
		// or the reader was abandoned mid-stream); drop it rather than
		// block a worker.
	}
}
