// Package timeseries provides the canonical time series representation.
//
// A Series is an ordered sequence of (timestamp, value) pairs with strictly
// increasing, unique timestamps and no missing values. Prepare builds a
// Series from a raw table: it coerces the date and target columns, drops
// rows that fail coercion, sorts by timestamp, collapses duplicate
// timestamps by averaging their values, and attempts to infer the sampling
// frequency.
//
//	s, err := timeseries.Prepare(tbl, "timestamp", "sst")
//	if err != nil {
//	    // *PrepareError: zero usable rows after cleaning
//	}
//	fmt.Println(s.Len(), s.Freq)
//
// Frequency inference is best effort: an irregular series leaves Freq nil,
// and consumers fall back to a daily cadence.
package timeseries
