package evaluate

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// minResidualRows is the smallest holdout window worth testing for
// autocorrelation.
const minResidualRows = 10

// ResidualCheck is a Ljung-Box test over the holdout residuals. A small
// p-value means the residuals are autocorrelated, i.e. the model left
// temporal structure unexplained and the accuracy metrics flatter it.
type ResidualCheck struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Lags      int     `json:"lags"`
}

// Autocorrelated reports whether the test rejects independence at the
// 5% level.
func (c *ResidualCheck) Autocorrelated() bool {
	return c.PValue < 0.05
}

// acf returns the sample autocorrelation of xs for lags 0..maxLag. It
// returns nil for constant input.
func acf(xs []float64, maxLag int) []float64 {
	n := len(xs)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range xs {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range xs {
		d := v - mean
		variance += d * d
	}
	if variance == 0 {
		return nil
	}

	out := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (xs[i] - mean) * (xs[i-k] - mean)
		}
		out[k] = sum / variance
	}
	return out
}

// checkResiduals runs a Ljung-Box test on the residual sequence. It
// returns nil when the window is too short or degenerate for the test to
// mean anything.
func checkResiduals(residuals []float64) *ResidualCheck {
	n := len(residuals)
	if n < minResidualRows {
		return nil
	}

	lags := 10
	if lags >= n {
		lags = n - 1
	}

	rho := acf(residuals, lags)
	if rho == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (rho[k] * rho[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	chi := distuv.ChiSquared{K: float64(lags)}
	p := chi.Survival(q)
	if math.IsNaN(p) {
		return nil
	}

	return &ResidualCheck{Statistic: q, PValue: p, Lags: lags}
}
