// Package worker implements the worker pool coordinator: it spawns N
// parser tasks sharing one ChunkingReader, each building a local
// StationRecords table, then folds them into a single merged result.
package worker

import (
	"sync"

	"go.coldcutz.net/brc/internal/key"
	"go.coldcutz.net/brc/internal/parser"
	"go.coldcutz.net/brc/internal/reader"
	"go.coldcutz.net/brc/internal/records"
)

// ParseFunc is one of parser.ParseByteScan or parser.ParseSIMD.
type ParseFunc func(hasher key.Hasher, frame []byte, sink parser.Sink)

// TableFactory builds an empty, worker-local Records table.
type TableFactory func() records.Records

// Run spawns n worker goroutines, each repeatedly popping frames from r
// until the stream is exhausted, parsing with parse, and accumulating into
// a table built by newTable. N=1 degenerates to a single worker. Workers
// consume frames in arbitrary interleaving; the result is deterministic
// regardless of interleaving because merge is associative and commutative
// and the final export imposes a total order.
func Run(r *reader.ChunkingReader, n int, hasher key.Hasher, parse ParseFunc, newTable TableFactory) records.Records {
	if n < 1 {
		n = 1
	}

	locals := make([]records.Records, n)
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()

			local := newTable()
			for {
				frame, ok := r.Pop()
				if !ok {
					break
				}
				parse(hasher, frame, local)
				r.Recycle(frame)
			}
			locals[i] = local
		}()
	}

	wg.Wait()

	final := newTable()
	for _, local := range locals {
		final.Merge(local)
	}
	return final
}
