// Package oceancast provides forecasting for marine time-series data.
//
// Oceancast ingests an arbitrary delimited table of dated measurements
// (sea surface temperature, salinity, catch volumes, ...) together with an
// optional depth-profile dataset, estimates held-out forecast accuracy, and
// projects the series a configurable number of periods into the future with
// uncertainty bounds.
//
// # Quick Start
//
// Run the full pipeline against a CSV file:
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Run(context.Background(), pipeline.Options{
//	    DataPath:      "sst.csv",
//	    RegressorPath: "merged_depth.csv",
//	    FuturePeriods: 30,
//	})
//
// The result carries MAE/RMSE on a trailing held-out window, the forecast
// tail with lower/upper bounds, the cleaned historical series, and run
// diagnostics.
//
// # Packages
//
// The module is organized into the following packages:
//
//   - tabular: delimited table loading and date/target column detection
//   - timeseries: canonical (timestamp, value) series and frequency inference
//   - regressors: constant exogenous features derived from depth profiles
//   - seasonality: span-based seasonal component selection
//   - forecast: the additive forecasting model and forecast frames
//   - evaluate: train/test holdout accuracy (MAE, RMSE)
//   - pipeline: orchestration, result assembly, and the model registry
//
// Columns are auto-detected when not supplied: the date column by name
// ("date", "time", "timestamp") or by parseability, the target column by a
// preference list of marine measurement names or by non-null count.
package oceancast
