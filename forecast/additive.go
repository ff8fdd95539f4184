package forecast

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/marineinsights/oceancast/regressors"
	"github.com/marineinsights/oceancast/seasonality"
	"github.com/marineinsights/oceancast/timeseries"
)

// Seasonal periods in seconds.
const (
	yearSeconds = 365.25 * 24 * 3600
	weekSeconds = 7 * 24 * 3600
	daySeconds  = 24 * 3600
)

// AdditiveOptions configures the additive model.
type AdditiveOptions struct {
	YearlyOrder int     // Fourier order for yearly seasonality (default: 3)
	WeeklyOrder int     // Fourier order for weekly seasonality (default: 3)
	DailyOrder  int     // Fourier order for daily seasonality (default: 4)
	Ridge       float64 // Ridge regularization strength (default: 1e-4)
	Confidence  float64 // Confidence level for bounds (default: 0.95)
}

// DefaultAdditiveOptions returns the default additive model configuration.
func DefaultAdditiveOptions() *AdditiveOptions {
	return &AdditiveOptions{
		YearlyOrder: 3,
		WeeklyOrder: 3,
		DailyOrder:  4,
		Ridge:       1e-4,
		Confidence:  0.95,
	}
}

// Additive is an additive regression forecaster: linear trend plus Fourier
// seasonal terms plus constant exogenous regressors, estimated by
// ridge-regularized least squares.
type Additive struct {
	opts *AdditiveOptions

	beta     []float64
	sigma    float64
	cfg      seasonality.Config
	regs     regressors.Set
	origin   time.Time
	scale    float64 // trend normalization, seconds
	trainEnd time.Time
	n        int
	fitted   bool
}

// NewAdditive creates an unfitted additive model.
func NewAdditive(opts *AdditiveOptions) *Additive {
	if opts == nil {
		opts = DefaultAdditiveOptions()
	}
	return &Additive{opts: opts}
}

// Fit estimates the model coefficients on the given series.
func (m *Additive) Fit(series *timeseries.Series, regs regressors.Set, cfg seasonality.Config) error {
	if series == nil || series.Len() == 0 {
		return &FitError{Op: "fit", Err: errors.New("empty series")}
	}

	n := series.Len()
	m.cfg = cfg
	m.regs = regs
	m.origin = series.First()
	m.trainEnd = series.Last()
	m.n = n

	m.scale = series.Span().Seconds()
	if m.scale <= 0 {
		m.scale = 1
	}

	p := m.numParams()
	X := mat.NewDense(n, p, nil)
	for i, ts := range series.Timestamps {
		X.SetRow(i, m.features(ts))
	}
	y := mat.NewVecDense(n, series.Values)

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	sym := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			v := xtx.At(i, j)
			if i == j {
				v += m.opts.Ridge
			}
			sym.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return &FitError{Op: "fit", N: n, Err: errors.New("normal equations are not positive definite")}
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, &xty); err != nil {
		return &FitError{Op: "fit", N: n, Err: err}
	}

	m.beta = make([]float64, p)
	for i := range m.beta {
		m.beta[i] = sol.AtVec(i)
	}

	// Residual standard deviation drives the uncertainty bounds.
	sse := 0.0
	for i, ts := range series.Timestamps {
		r := series.Values[i] - floats.Dot(m.beta, m.features(ts))
		sse += r * r
	}
	dof := n - p
	if dof < 1 {
		dof = 1
	}
	m.sigma = math.Sqrt(sse / float64(dof))

	m.fitted = true
	return nil
}

// Predict returns point estimates and bounds for the given ascending
// timestamps. Bounds widen mildly for timestamps beyond the fitted range.
func (m *Additive) Predict(timestamps []time.Time) (*Frame, error) {
	if !m.fitted {
		return nil, &FitError{Op: "predict", Err: errors.New("model must be fitted before prediction")}
	}
	if len(timestamps) == 0 {
		return nil, &FitError{Op: "predict", N: m.n, Err: errors.New("no timestamps requested")}
	}

	z := normalQuantile((1 + m.opts.Confidence) / 2)

	frame := NewFrame(len(timestamps))
	h := 0
	for _, ts := range timestamps {
		yhat := floats.Dot(m.beta, m.features(ts))

		se := m.sigma
		if ts.After(m.trainEnd) {
			h++
			se *= math.Sqrt(1 + float64(h)/float64(m.n))
		}
		frame.Append(ts, yhat, yhat-z*se, yhat+z*se)
	}
	return frame, nil
}

// numParams returns the width of the design matrix.
func (m *Additive) numParams() int {
	p := 2 // intercept + trend
	if m.cfg.Yearly {
		p += 2 * m.opts.YearlyOrder
	}
	if m.cfg.Weekly {
		p += 2 * m.opts.WeeklyOrder
	}
	if m.cfg.Daily {
		p += 2 * m.opts.DailyOrder
	}
	return p + len(m.regs)
}

// features builds one design-matrix row for a timestamp.
func (m *Additive) features(ts time.Time) []float64 {
	row := make([]float64, 0, m.numParams())
	row = append(row, 1, ts.Sub(m.origin).Seconds()/m.scale)

	unix := float64(ts.Unix())
	if m.cfg.Yearly {
		row = appendFourier(row, unix, yearSeconds, m.opts.YearlyOrder)
	}
	if m.cfg.Weekly {
		row = appendFourier(row, unix, weekSeconds, m.opts.WeeklyOrder)
	}
	if m.cfg.Daily {
		row = appendFourier(row, unix, daySeconds, m.opts.DailyOrder)
	}

	// Constant regressors, broadcast to every row. They are collinear
	// with the intercept; the ridge term keeps the solve well posed.
	for _, r := range m.regs {
		row = append(row, r.Value)
	}
	return row
}

// appendFourier appends sin/cos pairs for harmonics 1..order of the period.
func appendFourier(row []float64, unix, period float64, order int) []float64 {
	for k := 1; k <= order; k++ {
		angle := 2 * math.Pi * float64(k) * unix / period
		row = append(row, math.Sin(angle), math.Cos(angle))
	}
	return row
}

// normalQuantile returns the z-value for a given probability
// (Abramowitz-Stegun rational approximation).
func normalQuantile(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	if p < 0.5 {
		return -normalQuantile(1 - p)
	}

	t := math.Sqrt(-2 * math.Log(1-p))
	c0, c1, c2 := 2.515517, 0.802853, 0.010328
	d1, d2, d3 := 1.432788, 0.189269, 0.001308

	return t - (c0+c1*t+c2*t*t)/(1+d1*t+d2*t*t+d3*t*t*t)
}
