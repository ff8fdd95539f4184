// Package seasonality decides which seasonal components are learnable from
// the observed time span.
//
// The rule is a deliberate heuristic, not a statistical test: yearly
// seasonality is enabled only when the series spans at least 270 days, since
// shorter histories make yearly components unidentifiable. When yearly is
// disabled, weekly seasonality is enabled instead as a usable periodic
// signal for short histories. Daily seasonality is always disabled; inputs
// are not intra-day.
package seasonality

import "time"

// MinYearlySpan is the minimum series span for yearly seasonality.
const MinYearlySpan = 270 * 24 * time.Hour

// Config selects the seasonal components of a forecast run. It is chosen
// once per run and never mutated afterward.
type Config struct {
	Yearly bool
	Weekly bool
	Daily  bool
}

// ForSpan chooses the seasonal configuration for a series covering the
// given span (max(ds) - min(ds)).
func ForSpan(span time.Duration) Config {
	yearly := span >= MinYearlySpan
	return Config{
		Yearly: yearly,
		Weekly: !yearly,
		Daily:  false,
	}
}
