// Package evaluate scores held-out forecast accuracy.
//
// The last max(1, round(f*n)) observations (f default 0.2) are reserved as
// the held-out window. A model is fitted on the remaining prefix, predicts
// across the held-out window at the inferred (default daily) cadence, and
// is scored by mean absolute error and root mean squared error against the
// true values. Predictions are aligned to truth by timestamp; when no
// timestamps match (a frequency mismatch), the evaluator falls back to
// positional alignment of the trailing values and flags the result.
//
// Evaluation is diagnostic only; it never gates whether a future forecast
// is produced.
package evaluate

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/marineinsights/oceancast/forecast"
	"github.com/marineinsights/oceancast/regressors"
	"github.com/marineinsights/oceancast/seasonality"
	"github.com/marineinsights/oceancast/timeseries"
)

// DefaultTestFraction is the share of observations held out for scoring.
const DefaultTestFraction = 0.2

// Result holds held-out accuracy metrics.
type Result struct {
	MAE        float64
	RMSE       float64
	TestPoints int

	// PositionalFallback is set when the timestamp join produced no rows
	// and trailing values were aligned by position instead. Positional
	// alignment can silently misalign non-overlapping index ranges, so
	// callers relying on exact accuracy should treat the metrics with
	// care when this is set.
	PositionalFallback bool

	// Residual holds a Ljung-Box autocorrelation check over the holdout
	// residuals, nil when the window is too short to test.
	Residual *ResidualCheck
}

// Evaluator runs the holdout protocol.
type Evaluator struct {
	factory  forecast.Factory
	fraction float64
	logger   *zap.SugaredLogger
}

// New creates an evaluator. A nil logger disables logging.
func New(factory forecast.Factory, testFraction float64, logger *zap.SugaredLogger) *Evaluator {
	if testFraction <= 0 || testFraction >= 1 {
		testFraction = DefaultTestFraction
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Evaluator{factory: factory, fraction: testFraction, logger: logger}
}

// TestSize returns the held-out window length for a series of n rows:
// max(1, round(fraction*n)) for n > 5, max(1, n/5) otherwise.
func TestSize(n int, fraction float64) int {
	if fraction <= 0 || fraction >= 1 {
		fraction = DefaultTestFraction
	}
	var nTest int
	if n > 5 {
		nTest = int(math.Round(fraction * float64(n)))
	} else {
		nTest = n / 5
	}
	if nTest < 1 {
		nTest = 1
	}
	return nTest
}

// Evaluate fits a model on the training prefix and scores it on the
// held-out window.
func (e *Evaluator) Evaluate(series *timeseries.Series, regs regressors.Set, cfg seasonality.Config) (*Result, error) {
	n := series.Len()
	nTest := TestSize(n, e.fraction)

	// The trailing nTest rows are the held-out window. Training keeps at
	// least one row, overlapping the window when the series is a single
	// observation.
	trainEnd := n - nTest
	if trainEnd < 1 {
		trainEnd = 1
	}
	train := series.Slice(0, trainEnd)
	test := series.Slice(n-nTest, n)

	model := e.factory()
	if err := model.Fit(train, regs, cfg); err != nil {
		return nil, err
	}

	frame, err := model.Predict(e.predictionTimes(train, nTest))
	if err != nil {
		return nil, err
	}

	truths, preds, fallback := align(test, frame, nTest)
	if fallback {
		e.logger.Warnw("no timestamps aligned between forecast and held-out window; falling back to positional alignment",
			"test_points", nTest, "inferred_freq", freqCode(series))
	}

	residuals := make([]float64, len(truths))
	for i := range truths {
		residuals[i] = truths[i] - preds[i]
	}
	check := checkResiduals(residuals)
	if check != nil && check.Autocorrelated() {
		e.logger.Warnw("holdout residuals are autocorrelated; accuracy metrics understate structural error",
			"ljung_box_q", check.Statistic, "p_value", check.PValue, "lags", check.Lags)
	}

	return &Result{
		MAE:                MAE(truths, preds),
		RMSE:               RMSE(truths, preds),
		TestPoints:         test.Len(),
		PositionalFallback: fallback,
		Residual:           check,
	}, nil
}

// predictionTimes covers the training range plus nTest steps beyond it at
// the inferred (default daily) frequency.
func (e *Evaluator) predictionTimes(train *timeseries.Series, nTest int) []time.Time {
	freq := train.Freq
	if freq == nil {
		freq = timeseries.Daily()
	}

	times := make([]time.Time, 0, train.Len()+nTest)
	times = append(times, train.Timestamps...)
	last := train.Last()
	for i := 1; i <= nTest; i++ {
		times = append(times, freq.Step(last, i))
	}
	return times
}

// align joins predictions to the held-out truth by timestamp, falling back
// to positional alignment of the trailing nTest rows when the join is
// empty.
func align(test *timeseries.Series, frame *forecast.Frame, nTest int) (truths, preds []float64, fallback bool) {
	for i, ts := range test.Timestamps {
		if yhat, ok := frame.At(ts); ok {
			truths = append(truths, test.Values[i])
			preds = append(preds, yhat)
		}
	}
	if len(truths) > 0 {
		return truths, preds, false
	}

	tail := frame.Tail(nTest)
	k := tail.Len()
	if test.Len() < k {
		k = test.Len()
	}
	truths = test.Values[test.Len()-k:]
	preds = tail.Yhat[tail.Len()-k:]
	return truths, preds, true
}

func freqCode(s *timeseries.Series) string {
	if s.Freq == nil {
		return ""
	}
	return s.Freq.Code
}
