package records

import (
	"slices"

	"github.com/kamstrup/intmap"
	"golang.org/x/exp/maps"

	"go.coldcutz.net/brc/internal/config"
	"go.coldcutz.net/brc/internal/key"
	"go.coldcutz.net/brc/internal/stats"
)

// entry is one station's key plus running stats. Several entries can
// share a bucket when their digests collide; Table disambiguates by
// full key equality.
type entry struct {
	key   key.LiteHashKey
	stats stats.StationStats
}

// Table is the primary StationRecords backend. It uses intmap.Map, whose
// uint64 keys are taken as the bucket identity directly rather than being
// rehashed internally -- a pre-hashed identity map. Buckets hold a short
// slice of entries to absorb the rare digest collision.
type Table struct {
	buckets *intmap.Map[uint64, []*entry]
	count   uint64
}

// New returns an empty Table pre-sized for the canonical dataset's ~500
// distinct stations.
func New() *Table {
	return &Table{buckets: intmap.New[uint64, []*entry](config.ExpectedStations)}
}

// Insert implements Records.
func (t *Table) Insert(k key.LiteHashKey, v int16) {
	digest := k.Digest()
	bucket, ok := t.buckets.Get(digest)
	if ok {
		for _, e := range bucket {
			if e.key.Equal(k) {
				e.stats.Extend(v)
				return
			}
		}
	}
	s := stats.Single(v)
	t.buckets.Put(digest, append(bucket, &entry{key: k, stats: s}))
	t.count++
}

// Get implements Records.
func (t *Table) Get(k key.LiteHashKey) (stats.StationStats, bool) {
	bucket, ok := t.buckets.Get(k.Digest())
	if !ok {
		return stats.StationStats{}, false
	}
	for _, e := range bucket {
		if e.key.Equal(k) {
			return e.stats, true
		}
	}
	return stats.StationStats{}, false
}

// Len implements Records: the sum of Count across all stations.
func (t *Table) Len() uint64 {
	var total uint64
	t.buckets.ForEach(func(_ uint64, bucket []*entry) {
		for _, e := range bucket {
			total += e.stats.Count
		}
	})
	return total
}

// Merge implements Records. A *Table is merged bucket by bucket; any other
// backend is merged entry by entry through its SortedEntries.
func (t *Table) Merge(other Records) {
	o, ok := other.(*Table)
	if !ok {
		// Fall back to the generic path so mixed backends still merge
		// correctly, e.g. when combining worker pools configured with
		// different --table flags in tests.
		for _, e := range other.SortedEntries() {
			t.mergeOne(e.Name, e.Stats)
		}
		return
	}
	o.buckets.ForEach(func(digest uint64, bucket []*entry) {
		existing, _ := t.buckets.Get(digest)
		for _, incoming := range bucket {
			merged := false
			for _, e := range existing {
				if e.key.Equal(incoming.key) {
					e.stats.Merge(incoming.stats)
					merged = true
					break
				}
			}
			if !merged {
				existing = append(existing, &entry{key: incoming.key, stats: incoming.stats})
				t.count++
			}
		}
		t.buckets.Put(digest, existing)
	})
}

func (t *Table) mergeOne(name []byte, s stats.StationStats) {
	k := key.New(key.LiteHasher{}, name)
	bucket, ok := t.buckets.Get(k.Digest())
	if ok {
		for _, e := range bucket {
			if e.key.Equal(k) {
				e.stats.Merge(s)
				return
			}
		}
	}
	t.buckets.Put(k.Digest(), append(bucket, &entry{key: k, stats: s}))
	t.count++
}

// SortedEntries implements Records: collect names into a plain map, pull
// the keys out with maps.Keys, sort them, then look each one back up.
func (t *Table) SortedEntries() []Entry {
	byName := make(map[string]stats.StationStats, t.count)
	t.buckets.ForEach(func(_ uint64, bucket []*entry) {
		for _, e := range bucket {
			byName[string(e.key.Bytes())] = e.stats
		}
	})

	names := maps.Keys(byName)
	slices.Sort(names)

	out := make([]Entry, len(names))
	for i, name := range names {
		out[i] = Entry{Name: []byte(name), Stats: byName[name]}
	}
	return out
}
