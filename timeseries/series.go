package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Series represents a canonical time series: strictly increasing unique
// timestamps paired with finite values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string // resolved target column name
	Freq       *Freq  // inferred sampling frequency, nil when unknown
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// First returns the first timestamp of the series.
func (s *Series) First() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[0]
}

// Last returns the last timestamp of the series.
func (s *Series) Last() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[len(s.Timestamps)-1]
}

// Span returns the time covered by the series, max(ds) - min(ds).
func (s *Series) Span() time.Duration {
	if len(s.Timestamps) < 2 {
		return 0
	}
	return s.Last().Sub(s.First())
}

// Slice returns a slice of the series from start to end (exclusive). The
// frequency and name are carried over.
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name, Freq: s.Freq}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, end-start)
	copy(timestamps, s.Timestamps[start:end])

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Freq:       s.Freq,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Freq:       s.Freq,
	}
}

// At returns the value at the given timestamp and whether it exists.
func (s *Series) At(ts time.Time) (float64, bool) {
	i := sort.Search(len(s.Timestamps), func(i int) bool {
		return !s.Timestamps[i].Before(ts)
	})
	if i < len(s.Timestamps) && s.Timestamps[i].Equal(ts) {
		return s.Values[i], true
	}
	return 0, false
}

// Canonicalize sorts (timestamp, value) pairs ascending and collapses
// duplicate timestamps by the arithmetic mean of their values. The result
// has strictly increasing unique timestamps. Canonicalizing an already
// canonical series returns an equal series.
func Canonicalize(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	if len(timestamps) == 0 {
		return nil, errors.New("cannot canonicalize an empty series")
	}

	idx := make([]int, len(timestamps))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return timestamps[idx[a]].Before(timestamps[idx[b]])
	})

	outTS := make([]time.Time, 0, len(timestamps))
	outVals := make([]float64, 0, len(values))

	i := 0
	for i < len(idx) {
		ts := timestamps[idx[i]]
		sum := 0.0
		count := 0
		for i < len(idx) && timestamps[idx[i]].Equal(ts) {
			sum += values[idx[i]]
			count++
			i++
		}
		outTS = append(outTS, ts)
		outVals = append(outVals, sum/float64(count))
	}

	return &Series{
		Timestamps: outTS,
		Values:     outVals,
	}, nil
}
