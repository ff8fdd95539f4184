package forecast

import (
	"fmt"
	"time"

	"github.com/marineinsights/oceancast/regressors"
	"github.com/marineinsights/oceancast/seasonality"
	"github.com/marineinsights/oceancast/timeseries"
)

// Forecaster is the pluggable forecasting capability: an additive
// regression model supporting trend, optional seasonal terms, and optional
// exogenous regressors, producing point estimates with confidence bounds
// per timestamp.
type Forecaster interface {
	// Fit estimates the model on the given series. Regressor values are
	// broadcast as constants across every row.
	Fit(series *timeseries.Series, regs regressors.Set, cfg seasonality.Config) error

	// Predict returns a frame with one row per requested timestamp.
	// Timestamps must be in ascending order.
	Predict(timestamps []time.Time) (*Frame, error)
}

// Factory constructs a fresh, unfitted Forecaster. Each fit gets its own
// model instance; nothing is shared across invocations.
type Factory func() Forecaster

// FitError reports a failure of the underlying forecasting capability.
// It is fatal and carries the original cause; fit failures typically
// reflect malformed input rather than a transient condition, so there is
// no retry.
type FitError struct {
	Op  string // "fit" or "predict"
	N   int    // number of observations involved
	Err error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("forecast %s failed (n=%d): %v", e.Op, e.N, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}
