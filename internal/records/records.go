// Package records implements StationRecords: the mapping from station name
// to StationStats, with insert, merge, sorted iteration and text/file
// export. Two interchangeable backends are provided (see table_intmap.go
// and table_swiss.go); both satisfy Records and produce identical output.
package records

import (
	"fmt"
	"os"
	"strings"

	"go.coldcutz.net/brc/internal/key"
	"go.coldcutz.net/brc/internal/stats"
)

// Records is the public contract for an aggregation table, satisfied by
// every backend in this package.
type Records interface {
	// Insert creates or extends the entry for k with scaled value v.
	Insert(k key.LiteHashKey, v int16)
	// Get returns the stats for a station name, if present.
	Get(k key.LiteHashKey) (stats.StationStats, bool)
	// Len returns the total number of observations across all stations
	// (the sum of Count), not the number of distinct stations.
	Len() uint64
	// Merge folds other into the receiver in place. Associative and
	// commutative; an empty table is the identity.
	Merge(other Records)
	// SortedEntries returns (name, stats) pairs in ascending byte order
	// of name.
	SortedEntries() []Entry
}

// Entry is one (name, stats) pair as yielded by sorted iteration.
type Entry struct {
	Name  []byte
	Stats stats.StationStats
}

// ExportText renders r as "{name=min/mean/max, ...}\n" in ascending byte
// order of station name.
func ExportText(r Records) string {
	entries := r.SortedEntries()
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Stats.Format(e.Name)
	}
	var b strings.Builder
	b.Grow(2 + len(entries)*24)
	b.WriteByte('{')
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("}\n")
	return b.String()
}

// ExportFile writes ExportText(r) to path, truncating any existing file.
// I/O errors are returned to the caller as fatal.
func ExportFile(r Records, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(ExportText(r)); err != nil {
		return fmt.Errorf("writing output file %q: %w", path, err)
	}
	return nil
}
