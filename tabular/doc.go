// Package tabular provides delimited table loading and schema detection.
//
// A Table is an arbitrary set of named columns with mixed types, loaded from
// a delimited file with a header row. No invariants are assumed about the
// input; cleaning happens downstream in the timeseries package.
//
// # Loading
//
// Load a CSV file with default options:
//
//	tbl, err := tabular.Load("sst.csv", nil)
//
// # Schema Detection
//
// When the caller does not name the date and target columns, DetectColumns
// infers them:
//
//	dateCol, targetCol, err := tabular.DetectColumns(tbl, "", "")
//
// The date column is picked by name ("date", "time", "timestamp",
// case-insensitive) or, failing that, by parseability as a timestamp. The
// target column is picked from a preference list of measurement names
// (stock_value, value, sea_surface_temp, sst, salinity, chlorophyll, catch,
// biomass, in that priority order) or, failing that, as the numeric column
// with the most non-null values.
package tabular
