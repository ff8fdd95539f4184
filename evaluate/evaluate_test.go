package evaluate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marineinsights/oceancast/forecast"
	"github.com/marineinsights/oceancast/seasonality"
	"github.com/marineinsights/oceancast/timeseries"
)

func additiveFactory() forecast.Forecaster {
	return forecast.NewAdditive(nil)
}

func dailySeries(n int, value func(i int) float64) *timeseries.Series {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	timestamps := make([]time.Time, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		timestamps[i] = start.AddDate(0, 0, i)
		values[i] = value(i)
	}
	return &timeseries.Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       "sst",
		Freq:       timeseries.Daily(),
	}
}

func TestTestSize(t *testing.T) {
	cases := []struct {
		n, want int
	}{
		{100, 20},
		{11, 2},  // round(2.2)
		{13, 3},  // round(2.6)
		{5, 1},   // small-series rule: max(1, 5/5)
		{3, 1},   // max(1, 3/5)
		{1, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TestSize(c.n, DefaultTestFraction), "n=%d", c.n)
	}
}

func TestTestSizeCustomFraction(t *testing.T) {
	assert.Equal(t, 30, TestSize(100, 0.3))
	// Out-of-range fractions fall back to the default.
	assert.Equal(t, 20, TestSize(100, 0))
	assert.Equal(t, 20, TestSize(100, 1.5))
}

func TestEvaluateDailySeries(t *testing.T) {
	series := dailySeries(100, func(i int) float64 {
		return 12 + 0.2*float64(i)
	})

	ev := New(additiveFactory, DefaultTestFraction, nil)
	res, err := ev.Evaluate(series, nil, seasonality.ForSpan(series.Span()))
	require.NoError(t, err)

	assert.Equal(t, 20, res.TestPoints)
	assert.False(t, res.PositionalFallback)
	assert.False(t, math.IsNaN(res.MAE))
	assert.GreaterOrEqual(t, res.MAE, 0.0)
	assert.GreaterOrEqual(t, res.RMSE, res.MAE)
	// A clean linear trend should be forecast almost exactly.
	assert.Less(t, res.MAE, 1.0)
}

func TestEvaluatePositionalFallback(t *testing.T) {
	// Irregular gaps defeat frequency inference. The evaluator then predicts
	// at daily steps past the training range, which cannot match the
	// held-out timestamps, so alignment degrades to positional.
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	offsets := []int{0, 1, 3, 4, 7, 9, 12, 16, 21, 27}
	timestamps := make([]time.Time, len(offsets))
	values := make([]float64, len(offsets))
	for i, d := range offsets {
		timestamps[i] = start.AddDate(0, 0, d)
		values[i] = 10 + float64(i)
	}
	series := &timeseries.Series{Timestamps: timestamps, Values: values, Name: "sst"}
	require.Nil(t, timeseries.InferFreq(series.Timestamps))

	ev := New(additiveFactory, DefaultTestFraction, nil)
	res, err := ev.Evaluate(series, nil, seasonality.ForSpan(series.Span()))
	require.NoError(t, err)

	assert.True(t, res.PositionalFallback)
	assert.Equal(t, 2, res.TestPoints)
	assert.False(t, math.IsNaN(res.MAE))
	assert.False(t, math.IsNaN(res.RMSE))
}

func TestEvaluateSingleRow(t *testing.T) {
	// A one-row series trains and scores on the same observation; it must
	// never hand the model an empty training slice.
	series := dailySeries(1, func(i int) float64 { return 7.5 })

	ev := New(additiveFactory, DefaultTestFraction, nil)
	res, err := ev.Evaluate(series, nil, seasonality.ForSpan(series.Span()))
	require.NoError(t, err)

	assert.Equal(t, 1, res.TestPoints)
	assert.False(t, res.PositionalFallback)
	require.False(t, math.IsNaN(res.MAE))
	// In-sample on the only row: near-exact up to ridge shrinkage.
	assert.Less(t, res.MAE, 0.1)
}

func TestEvaluateTinySeries(t *testing.T) {
	series := dailySeries(3, func(i int) float64 {
		return 5 + float64(i)
	})

	ev := New(additiveFactory, DefaultTestFraction, nil)
	res, err := ev.Evaluate(series, nil, seasonality.ForSpan(series.Span()))
	require.NoError(t, err)

	assert.Equal(t, 1, res.TestPoints)
	assert.False(t, math.IsNaN(res.MAE))
}

func TestMetrics(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	yhat := []float64{1, 2, 5, 4}

	assert.InDelta(t, 0.5, MAE(y, yhat), 1e-12)
	assert.InDelta(t, 1.0, RMSE(y, yhat), 1e-12)

	assert.True(t, math.IsNaN(MAE(nil, nil)))
	assert.True(t, math.IsNaN(RMSE(nil, nil)))
}
