// Package stats implements the per-station running statistic used by the
// aggregation pipeline: min, max, sum and count of scaled temperature
// readings, with an associative, commutative merge.
package stats

import (
	"fmt"
	"math"
)

// StationStats is the running min/max/sum/count for one station.
// Temperatures are stored scaled by 10 (one implicit decimal digit), so
// 12.3 is stored as 123.
type StationStats struct {
	Min   int16
	Max   int16
	Sum   int32
	Count uint64
}

// Default returns the merge identity: Min/Max at their sentinel extremes,
// Sum and Count at zero. Merging any stats with the identity is a no-op.
func Default() StationStats {
	return StationStats{
		Min: math.MaxInt16,
		Max: math.MinInt16,
	}
}

// Single builds the stats for exactly one observation.
func Single(v int16) StationStats {
	return StationStats{Min: v, Max: v, Sum: int32(v), Count: 1}
}

// Extend folds one more scaled observation into the stats in place.
func (s *StationStats) Extend(v int16) {
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
	s.Sum += int32(v)
	s.Count++
}

// Merge combines other into s in place. Merge is associative and
// commutative, and Default() is its identity.
func (s *StationStats) Merge(other StationStats) {
	if other.Min < s.Min {
		s.Min = other.Min
	}
	if other.Max > s.Max {
		s.Max = other.Max
	}
	s.Sum += other.Sum
	s.Count += other.Count
}

// Format renders "<name>=<min>/<mean>/<max>" with one fractional digit each,
// matching the 1BRC output convention. The mean divides the integer sum by
// count as a single-precision float, then by 10, same as the reference
// dataset's expected rounding.
func (s StationStats) Format(name []byte) string {
	mean := float32(s.Sum) / float32(s.Count) / 10
	return fmt.Sprintf("%s=%.1f/%.1f/%.1f", name, float32(s.Min)/10, mean, float32(s.Max)/10)
}
