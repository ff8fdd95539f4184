package tabular

import (
	"fmt"
	"strings"
)

// dateNameHints mark a column as a date column by name alone.
var dateNameHints = []string{"date", "time", "timestamp"}

// targetPreference lists target column names in priority order. The first
// hint that matches any column name wins.
var targetPreference = []string{
	"stock_value",
	"value",
	"sea_surface_temp",
	"sst",
	"salinity",
	"chlorophyll",
	"catch",
	"biomass",
}

// SchemaError reports that the date or target column could not be resolved.
type SchemaError struct {
	Missing string   // "date", "target", or "date and target"
	Columns []string // column names that were inspected
	Rows    int      // number of data rows inspected
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("could not determine %s column (columns: %s, rows: %d); provide the column name explicitly",
		e.Missing, strings.Join(e.Columns, ", "), e.Rows)
}

// DetectColumns resolves the date and target columns of a table. Columns
// supplied by the caller are used verbatim; only missing ones are inferred.
func DetectColumns(t *Table, dateCol, targetCol string) (string, string, error) {
	if dateCol == "" {
		dateCol = detectDateColumn(t)
	}
	if targetCol == "" {
		targetCol = detectTargetColumn(t)
	}

	if dateCol == "" || targetCol == "" {
		missing := "date"
		switch {
		case dateCol == "" && targetCol == "":
			missing = "date and target"
		case dateCol != "":
			missing = "target"
		}
		return "", "", &SchemaError{Missing: missing, Columns: t.Names(), Rows: t.NumRows()}
	}
	return dateCol, targetCol, nil
}

// detectDateColumn picks the first column whose name contains a date hint,
// falling back to the first column where enough values parse as timestamps.
func detectDateColumn(t *Table) string {
	for _, name := range t.Names() {
		lower := strings.ToLower(name)
		for _, hint := range dateNameHints {
			if strings.Contains(lower, hint) {
				return name
			}
		}
	}

	// No name matched; require max(10, 20% of rows) parseable values.
	threshold := t.NumRows() / 5
	if threshold < 10 {
		threshold = 10
	}
	for _, name := range t.Names() {
		recs, err := t.Records(name)
		if err != nil {
			continue
		}
		parsed := 0
		for _, r := range recs {
			if _, err := ParseTimestamp(r); err == nil {
				parsed++
				if parsed >= threshold {
					return name
				}
			}
		}
	}
	return ""
}

// detectTargetColumn picks the target by the preference list, falling back
// to the numeric column with the most non-null values.
func detectTargetColumn(t *Table) string {
	for _, hint := range targetPreference {
		for _, name := range t.Names() {
			if !t.IsNumeric(name) {
				continue
			}
			if strings.Contains(strings.ToLower(name), hint) {
				return name
			}
		}
	}

	best := ""
	bestCount := -1
	for _, name := range t.Names() {
		if !t.IsNumeric(name) {
			continue
		}
		if count := t.NonNullCount(name); count > bestCount {
			best = name
			bestCount = count
		}
	}
	return best
}
