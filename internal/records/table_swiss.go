package records

import (
	"slices"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/maps"

	"go.coldcutz.net/brc/internal/config"
	"go.coldcutz.net/brc/internal/key"
	"go.coldcutz.net/brc/internal/stats"
)

// SwissTable is the alternate StationRecords backend, selected with
// --table=swiss, built on dolthub's swiss table implementation.
//
// swiss.Map keys on plain strings rather than a digest, since Go's
// built-in comparable constraint can't express "compare by precomputed
// hash, fall back to byte equality" the way intmap's raw uint64 keys can;
// the station name string itself is the natural comparable key here.
type SwissTable struct {
	m *swiss.Map[string, *stats.StationStats]
}

// NewSwiss returns an empty SwissTable pre-sized for the canonical
// dataset's ~500 distinct stations.
func NewSwiss() *SwissTable {
	return &SwissTable{m: swiss.NewMap[string, *stats.StationStats](config.ExpectedStations)}
}

// Insert implements Records.
func (t *SwissTable) Insert(k key.LiteHashKey, v int16) {
	name := string(k.Bytes())
	if s, ok := t.m.Get(name); ok {
		s.Extend(v)
		return
	}
	s := stats.Single(v)
	t.m.Put(name, &s)
}

// Get implements Records.
func (t *SwissTable) Get(k key.LiteHashKey) (stats.StationStats, bool) {
	s, ok := t.m.Get(string(k.Bytes()))
	if !ok {
		return stats.StationStats{}, false
	}
	return *s, true
}

// Len implements Records.
func (t *SwissTable) Len() uint64 {
	var total uint64
	t.m.Iter(func(_ string, s *stats.StationStats) bool {
		total += s.Count
		return false
	})
	return total
}

// Merge implements Records.
func (t *SwissTable) Merge(other Records) {
	for _, e := range other.SortedEntries() {
		name := string(e.Name)
		if s, ok := t.m.Get(name); ok {
			s.Merge(e.Stats)
			continue
		}
		s := e.Stats
		t.m.Put(name, &s)
	}
}

// SortedEntries implements Records.
func (t *SwissTable) SortedEntries() []Entry {
	byName := make(map[string]stats.StationStats, t.m.Count())
	t.m.Iter(func(name string, s *stats.StationStats) bool {
		byName[name] = *s
		return false
	})

	names := maps.Keys(byName)
	slices.Sort(names)

	out := make([]Entry, len(names))
	for i, name := range names {
		out[i] = Entry{Name: []byte(name), Stats: byName[name]}
	}
	return out
}
