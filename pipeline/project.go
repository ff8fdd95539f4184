package pipeline

import (
	"time"

	"github.com/marineinsights/oceancast/forecast"
	"github.com/marineinsights/oceancast/regressors"
	"github.com/marineinsights/oceancast/seasonality"
	"github.com/marineinsights/oceancast/timeseries"
)

// Projection is a forecast frame spanning the full history plus the future
// horizon, partitioned at the last observed timestamp. The split is part
// of the contract: confidence bounds are only meaningful for the future
// segment.
type Projection struct {
	Frame  *forecast.Frame // history + horizon
	Fit    *forecast.Frame // timestamps <= last observation
	Future *forecast.Frame // timestamps > last observation
}

// Projector refits on the full series and extends predictions beyond the
// last observation.
type Projector struct {
	factory  forecast.Factory
	registry *Registry
}

// NewProjector creates a projector. The registry is optional; when set,
// fitted models are reused for identical inputs.
func NewProjector(factory forecast.Factory, registry *Registry) *Projector {
	return &Projector{factory: factory, registry: registry}
}

// Project fits on the full series and predicts from the first historical
// timestamp through periods steps beyond the last, at the inferred
// (default daily) frequency. Regressor values are held fixed at their
// historical means across the future horizon. The registry key may be
// empty to bypass model reuse.
func (p *Projector) Project(series *timeseries.Series, regs regressors.Set, cfg seasonality.Config, periods int, key string) (*Projection, error) {
	fit := func() (forecast.Forecaster, error) {
		model := p.factory()
		if err := model.Fit(series, regs, cfg); err != nil {
			return nil, err
		}
		return model, nil
	}

	var model forecast.Forecaster
	var err error
	if p.registry != nil && key != "" {
		model, _, err = p.registry.GetOrFit(key, fit)
	} else {
		model, err = fit()
	}
	if err != nil {
		return nil, err
	}

	frame, err := model.Predict(p.horizonTimes(series, periods))
	if err != nil {
		return nil, err
	}

	fitFrame, futureFrame := frame.SplitAt(series.Last())
	return &Projection{Frame: frame, Fit: fitFrame, Future: futureFrame}, nil
}

// horizonTimes returns the historical timestamps plus periods future steps.
func (p *Projector) horizonTimes(series *timeseries.Series, periods int) []time.Time {
	freq := series.Freq
	if freq == nil {
		freq = timeseries.Daily()
	}

	times := make([]time.Time, 0, series.Len()+periods)
	times = append(times, series.Timestamps...)
	last := series.Last()
	for i := 1; i <= periods; i++ {
		times = append(times, freq.Step(last, i))
	}
	return times
}
