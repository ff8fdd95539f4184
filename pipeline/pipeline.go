package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/marineinsights/oceancast/evaluate"
	"github.com/marineinsights/oceancast/forecast"
	"github.com/marineinsights/oceancast/regressors"
	"github.com/marineinsights/oceancast/seasonality"
	"github.com/marineinsights/oceancast/tabular"
	"github.com/marineinsights/oceancast/timeseries"
)

// DefaultFuturePeriods is the default projection horizon.
const DefaultFuturePeriods = 30

// Options configures one forecast run.
type Options struct {
	DataPath      string // delimited table with a header row (required)
	RegressorPath string // optional depth-profile table
	DateColumn    string // optional; auto-detected when empty
	TargetColumn  string // optional; auto-detected when empty
	TestFraction  float64
	FuturePeriods int
	OutputCSV     string // forecast tail destination; empty skips the artifact

	ModelFactory forecast.Factory // default: forecast.NewAdditive(nil)
	Registry     *Registry        // optional fitted-model cache
}

// Observation is one row of the cleaned historical series.
type Observation struct {
	DS time.Time `json:"ds"`
	Y  float64   `json:"y"`
}

// Diagnostics is the read-only run summary attached to every result.
type Diagnostics struct {
	NObservations int    `json:"n_observations"`
	TestPoints    int    `json:"test_points"`
	InferredFreq  string `json:"inferred_freq"`
	TargetCol     string `json:"target_col"`
	HasRegressors bool   `json:"has_regressors"`
	FuturePeriods int    `json:"future_periods"`
}

// Result aggregates everything a forecast run produces. It has no behavior
// beyond being read.
type Result struct {
	MAE          float64            `json:"mae"`
	RMSE         float64            `json:"rmse"`
	ForecastTail []forecast.Point   `json:"forecast_tail"`
	Historical   []Observation      `json:"historical_series"`
	Diagnostics  Diagnostics        `json:"diagnostics"`
	DepthProfile regressors.Profile `json:"depth_profile,omitempty"`
	ForecastCSV  string             `json:"forecast_csv,omitempty"`

	// PositionalFallback mirrors the evaluator's alignment warning.
	PositionalFallback bool `json:"positional_alignment_fallback,omitempty"`

	// ResidualCheck carries the evaluator's holdout residual test when one
	// was run.
	ResidualCheck *evaluate.ResidualCheck `json:"residual_check,omitempty"`

	// Projection carries the full fit/future frame split for callers that
	// render the forecast; it is not part of the serialized record.
	Projection *Projection `json:"-"`
}

// Runner executes forecast runs. The zero value is not usable; construct
// with NewRunner.
type Runner struct {
	logger *zap.SugaredLogger
}

// NewRunner creates a runner. A nil logger disables logging.
func NewRunner(logger *zap.SugaredLogger) *Runner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Runner{logger: logger}
}

// Run executes one forecast request start to finish. All entities are
// created fresh; the only cross-invocation state is the caller-supplied
// Registry.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.FuturePeriods <= 0 {
		opts.FuturePeriods = DefaultFuturePeriods
	}
	factory := opts.ModelFactory
	if factory == nil {
		factory = func() forecast.Forecaster { return forecast.NewAdditive(nil) }
	}

	data, err := os.ReadFile(opts.DataPath)
	if err != nil {
		return nil, fmt.Errorf("read input table: %w", err)
	}
	tbl, err := tabular.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("parse input table: %w", err)
	}

	dateCol, targetCol, err := tabular.DetectColumns(tbl, opts.DateColumn, opts.TargetColumn)
	if err != nil {
		return nil, err
	}
	r.logger.Debugw("resolved schema", "date_col", dateCol, "target_col", targetCol)

	series, err := timeseries.Prepare(tbl, dateCol, targetCol)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var regs regressors.Set
	var profile regressors.Profile
	if opts.RegressorPath != "" {
		regs, profile = regressors.Synthesize(opts.RegressorPath, r.logger)
	}

	cfg := seasonality.ForSpan(series.Span())
	r.logger.Debugw("run prepared",
		"n_observations", series.Len(),
		"span_days", int(series.Span().Hours()/24),
		"yearly", cfg.Yearly, "weekly", cfg.Weekly,
		"regressors", len(regs))

	evaluator := evaluate.New(factory, opts.TestFraction, r.logger)
	evalResult, err := evaluator.Evaluate(series, regs, cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := ""
	if opts.Registry != nil {
		key = Fingerprint(data,
			opts.RegressorPath,
			dateCol, targetCol,
			strconv.Itoa(opts.FuturePeriods))
	}
	projector := NewProjector(factory, opts.Registry)
	projection, err := projector.Project(series, regs, cfg, opts.FuturePeriods, key)
	if err != nil {
		return nil, err
	}

	tail := projection.Frame.Tail(opts.FuturePeriods)
	if opts.OutputCSV != "" {
		if err := tail.SaveCSV(opts.OutputCSV); err != nil {
			return nil, fmt.Errorf("write forecast tail: %w", err)
		}
	}

	return assemble(series, evalResult, tail, projection, profile, regs, opts), nil
}

// assemble merges the evaluation result, forecast tail, diagnostics, and
// historical series into one immutable result. Pure aggregation, no side
// effects.
func assemble(series *timeseries.Series, evalResult *evaluate.Result,
	tail *forecast.Frame, projection *Projection, profile regressors.Profile,
	regs regressors.Set, opts Options) *Result {

	historical := make([]Observation, series.Len())
	for i := range historical {
		historical[i] = Observation{DS: series.Timestamps[i], Y: series.Values[i]}
	}

	freqCode := "D"
	if series.Freq != nil {
		freqCode = series.Freq.Code
	}

	return &Result{
		MAE:          evalResult.MAE,
		RMSE:         evalResult.RMSE,
		ForecastTail: tail.Points(),
		Historical:   historical,
		Diagnostics: Diagnostics{
			NObservations: series.Len(),
			TestPoints:    evalResult.TestPoints,
			InferredFreq:  freqCode,
			TargetCol:     series.Name,
			HasRegressors: len(regs) > 0,
			FuturePeriods: opts.FuturePeriods,
		},
		DepthProfile:       profile,
		ForecastCSV:        opts.OutputCSV,
		PositionalFallback: evalResult.PositionalFallback,
		ResidualCheck:      evalResult.Residual,
		Projection:         projection,
	}
}
