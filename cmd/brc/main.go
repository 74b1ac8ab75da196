// Command brc computes per-station min/mean/max temperature statistics
// from a large semicolon-separated measurements file, emitting the
// stations in sorted order to an output file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"go.coldcutz.net/go-stuff/utils"

	"go.coldcutz.net/brc/internal/config"
	"go.coldcutz.net/brc/internal/key"
	"go.coldcutz.net/brc/internal/parser"
	"go.coldcutz.net/brc/internal/reader"
	"go.coldcutz.net/brc/internal/records"
	"go.coldcutz.net/brc/internal/worker"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
var traceprofile = flag.String("trace", "", "write trace to `file`")

var file = flag.String("file", config.DefaultInputPath, "input measurements file")
var output = flag.String("output", config.DefaultOutputPath, "output file")
var threads = flag.Int("threads", 0, "worker count (0 = runtime.NumCPU())")
var chunkSize = flag.Int("chunk-size", config.ReadChunk, "reader read-chunk size, in bytes")
var maxChunkSize = flag.Int("max-chunk-size", config.MaxFrameBytes, "export-buffer capacity, in bytes")
var hashFlag = flag.String("hash", "lite", "station-name hash strategy: lite, xxhash, or siphash")
var tableFlag = flag.String("table", "intmap", "aggregation table backend: intmap or swiss")
var simdFlag = flag.Bool("simd", false, "use the word-parallel line parser instead of the byte-scan one")

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}

	if *traceprofile != "" {
		f, err := os.Create(*traceprofile)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}

	_, done, log, err := utils.StdSetup()
	if err != nil {
		panic(err)
	}
	done() // use default signal stuff

	if err := run(log); err != nil {
		log.Error("error", "err", err)
		os.Exit(1)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic(err)
		}
	}
}

func run(log *slog.Logger) error {
	n := *threads
	if n <= 0 {
		n = runtime.NumCPU()
	}

	log.Info("parameters",
		"file", *file,
		"output", *output,
		"threads", n,
		"chunk_size", *chunkSize,
		"max_chunk_size", *maxChunkSize,
		"hash", *hashFlag,
		"table", *tableFlag,
		"simd", *simdFlag,
	)

	hasher, err := resolveHasher(*hashFlag)
	if err != nil {
		return err
	}
	newTable, err := resolveTableFactory(*tableFlag)
	if err != nil {
		return err
	}
	parse := parser.ParseByteScan
	if *simdFlag {
		parse = parser.ParseSIMD
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("opening input file %q: %w", *file, err)
	}
	defer f.Close()

	r := reader.NewSized(*chunkSize, *maxChunkSize, n+1)

	readErrCh := make(chan error, 1)
	go func() {
		readErrCh <- r.Read(f)
	}()

	result := worker.Run(r, n, hasher, parse, newTable)

	if err := <-readErrCh; err != nil {
		return fmt.Errorf("reading %q: %w", *file, err)
	}

	if err := records.ExportFile(result, *output); err != nil {
		return err
	}

	return nil
}

func resolveHasher(name string) (key.Hasher, error) {
	switch name {
	case "lite", "":
		return key.LiteHasher{}, nil
	case "xxhash":
		return key.XXHasher{}, nil
	case "siphash":
		return key.NewSipHasher(), nil
	default:
		return nil, fmt.Errorf("unknown --hash strategy %q", name)
	}
}

func resolveTableFactory(name string) (worker.TableFactory, error) {
	switch name {
	case "intmap", "":
		return func() records.Records { return records.New() }, nil
	case "swiss":
		return func() records.Records { return records.NewSwiss() }, nil
	default:
		return nil, fmt.Errorf("unknown --table backend %q", name)
	}
}
