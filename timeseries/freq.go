package timeseries

import (
	"time"
)

// Freq describes a regular sampling frequency. Duration-based frequencies
// step by a fixed interval; calendar-based ones (month start, year start)
// step via calendar arithmetic.
type Freq struct {
	Code   string        // pandas-style offset code ("D", "W", "H", "T", "MS", "AS")
	step   time.Duration // fixed step, zero for calendar-based codes
	months int
	years  int
}

// Daily returns the default daily frequency.
func Daily() *Freq {
	return &Freq{Code: "D", step: 24 * time.Hour}
}

// Step returns the timestamp n steps after t at this frequency.
func (f *Freq) Step(t time.Time, n int) time.Time {
	switch {
	case f.months > 0:
		return t.AddDate(0, f.months*n, 0)
	case f.years > 0:
		return t.AddDate(f.years*n, 0, 0)
	default:
		return t.Add(time.Duration(n) * f.step)
	}
}

// Next returns the timestamp one step after t.
func (f *Freq) Next(t time.Time) time.Time {
	return f.Step(t, 1)
}

// String returns the frequency code.
func (f *Freq) String() string {
	return f.Code
}

// durationCodes maps fixed gaps to offset codes.
var durationCodes = []struct {
	gap  time.Duration
	code string
}{
	{time.Minute, "T"},
	{time.Hour, "H"},
	{24 * time.Hour, "D"},
	{7 * 24 * time.Hour, "W"},
}

// InferFreq infers the sampling frequency of strictly increasing
// timestamps. It returns nil when the cadence is irregular or unrecognized;
// inference failure is not an error.
func InferFreq(timestamps []time.Time) *Freq {
	if len(timestamps) < 3 {
		return nil
	}

	// Fixed-duration cadence: every gap identical.
	gap := timestamps[1].Sub(timestamps[0])
	fixed := true
	for i := 2; i < len(timestamps); i++ {
		if timestamps[i].Sub(timestamps[i-1]) != gap {
			fixed = false
			break
		}
	}
	if fixed {
		for _, dc := range durationCodes {
			if gap == dc.gap {
				return &Freq{Code: dc.code, step: gap}
			}
		}
		return nil
	}

	// Calendar cadence: exact month or year steps.
	if stepsByCalendar(timestamps, 0, 1) {
		return &Freq{Code: "MS", months: 1}
	}
	if stepsByCalendar(timestamps, 1, 0) {
		return &Freq{Code: "AS", years: 1}
	}
	return nil
}

func stepsByCalendar(timestamps []time.Time, years, months int) bool {
	for i := 1; i < len(timestamps); i++ {
		if !timestamps[i].Equal(timestamps[i-1].AddDate(years, months, 0)) {
			return false
		}
	}
	return true
}
