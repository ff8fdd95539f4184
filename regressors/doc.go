// Package regressors derives constant exogenous features from a depth
// profile dataset.
//
// The auxiliary table carries a Depth column and named parameter columns
// (Salinity, pH, Chlorophyl; header spaces and periods are normalized to
// underscores). Each parameter contributes one regressor: its arithmetic
// mean over the whole table, broadcast as a constant across every row of
// the series being forecast. The regressors are deliberately not forecast
// themselves; they are held fixed at their historical mean over the future
// horizon as well.
//
// Synthesis never fails the forecast: any problem reading or parsing the
// auxiliary table degrades to an empty Set.
//
// A representative sample of at most 20 rows, evenly spaced by sorted
// depth, is exposed alongside the Set for depth-profile visualization
// downstream.
package regressors
