// Package forecast provides the forecasting capability and forecast frames.
//
// A Forecaster fits a model to a canonical series with optional constant
// regressors and a seasonal configuration, then predicts point estimates
// with lower/upper uncertainty bounds for arbitrary timestamps:
//
//	model := forecast.NewAdditive(nil)
//	if err := model.Fit(series, regs, cfg); err != nil {
//	    // *FitError wraps the cause
//	}
//	frame, err := model.Predict(times)
//
// The default implementation, Additive, is an additive regression model:
// linear trend plus Fourier seasonal terms plus constant exogenous
// regressors, estimated by ridge-regularized least squares. Uncertainty
// bounds come from the residual standard deviation and widen mildly with
// the forecast horizon.
//
// A Frame is the prediction output: ordered (ds, yhat, yhat_lower,
// yhat_upper) rows. SplitAt partitions it into the fit segment (timestamps
// at or before the last observation) and the future segment, and WriteCSV
// persists it in the canonical delimited format.
package forecast
