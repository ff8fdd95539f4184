// Package pipeline orchestrates a forecast run end to end.
//
// A Runner wires the stages together: load the raw table, resolve the date
// and target columns, prepare the canonical series, synthesize regressors
// from the optional depth profile, pick the seasonal configuration, score
// held-out accuracy, refit on the full history, and project the configured
// number of periods beyond the last observation. The assembled Result is a
// pure aggregate: metrics, the forecast tail, the historical series, the
// fit/future projection split, and run diagnostics.
//
// Each run constructs its own series, regressor set, and model instances;
// nothing is shared between invocations. The optional Registry is the one
// deliberate exception: an explicit, caller-owned cache of fitted models
// keyed by a content fingerprint of the input, created on first use and
// invalidated on retrain.
package pipeline
