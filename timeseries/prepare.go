package timeseries

import (
	"fmt"
	"math"
	"time"

	"github.com/marineinsights/oceancast/tabular"
)

// PrepareError reports that no usable rows remained after cleaning.
type PrepareError struct {
	DateColumn   string
	TargetColumn string
	RawRows      int
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("no usable rows after cleaning (date column %q, target column %q, %d raw rows)",
		e.DateColumn, e.TargetColumn, e.RawRows)
}

// Prepare builds a canonical series from a raw table and resolved column
// names. Rows whose timestamp or value fails coercion are dropped; the
// survivors are sorted, duplicate timestamps are collapsed by mean, and the
// sampling frequency is inferred when possible.
func Prepare(tbl *tabular.Table, dateCol, targetCol string) (*Series, error) {
	dates, err := tbl.Records(dateCol)
	if err != nil {
		return nil, err
	}
	vals, err := tbl.Floats(targetCol)
	if err != nil {
		return nil, err
	}

	n := len(dates)
	if len(vals) < n {
		n = len(vals)
	}

	timestamps := make([]time.Time, 0, n)
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		ts, err := tabular.ParseTimestamp(dates[i])
		if err != nil {
			continue
		}
		if math.IsNaN(vals[i]) || math.IsInf(vals[i], 0) {
			continue
		}
		timestamps = append(timestamps, ts)
		values = append(values, vals[i])
	}

	if len(timestamps) == 0 {
		return nil, &PrepareError{
			DateColumn:   dateCol,
			TargetColumn: targetCol,
			RawRows:      tbl.NumRows(),
		}
	}

	s, err := Canonicalize(timestamps, values)
	if err != nil {
		return nil, err
	}
	s.Name = targetCol
	s.Freq = InferFreq(s.Timestamps)
	return s, nil
}
