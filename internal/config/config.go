// Package config holds the compiled-in defaults for the ingestion pipeline.
package config

// MaxLineLength bounds a single "<station>;<value>\n" line: <= 30 bytes
// of station name plus separators and the scaled decimal value.
const MaxLineLength = 30

// ReadChunk is the size of a single underlying stream read.
const ReadChunk = 524288

// FrameMultiplier is K in MaxFrameBytes = ReadChunk*K + MaxLineLength.
const FrameMultiplier = 16

// MaxFrameBytes is the capacity of one export buffer handed from the
// reader to a worker. Every frame the reader produces fits within it.
const MaxFrameBytes = ReadChunk*FrameMultiplier + MaxLineLength

// DefaultInputPath is used when --file is not given.
const DefaultInputPath = "measurements.txt"

// DefaultOutputPath is used when --output is not given.
const DefaultOutputPath = "output.txt"

// ExpectedStations sizes the aggregation table; the canonical dataset has
// on the order of 500 distinct station names.
const ExpectedStations = 512
