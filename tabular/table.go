package tabular

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Options holds options for table loading.
type Options struct {
	Delimiter rune // Field delimiter (default: ',')
	HasHeader bool // Whether the file has a header row (default: true)
}

// DefaultOptions returns default options for table loading.
func DefaultOptions() *Options {
	return &Options{
		Delimiter: ',',
		HasHeader: true,
	}
}

// Table is a raw tabular dataset with named columns of mixed types.
type Table struct {
	df   dataframe.DataFrame
	path string
}

// Load reads a delimited table from a file.
func Load(path string, opts *Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer file.Close()

	tbl, err := FromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	tbl.path = path
	return tbl, nil
}

// FromReader reads a delimited table from an io.Reader.
func FromReader(r io.Reader, opts *Options) (*Table, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.HasHeader(opts.HasHeader),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Table{df: df}, nil
}

// Path returns the file path the table was loaded from, if any.
func (t *Table) Path() string {
	return t.path
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	return t.df.Names()
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return t.df.Nrow()
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// NormalizeNames replaces spaces and periods in column names with
// underscores, matching the cleanup applied to depth-profile headers.
func (t *Table) NormalizeNames() error {
	names := t.df.Names()
	normalized := make([]string, len(names))
	for i, n := range names {
		normalized[i] = NormalizeName(n)
	}
	return t.df.SetNames(normalized...)
}

// NormalizeName replaces spaces and periods in a column name with
// underscores.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, ".", "_")
}

// Records returns the raw string values of a column.
func (t *Table) Records(name string) ([]string, error) {
	col := t.df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %q: %w", name, col.Err)
	}
	return col.Records(), nil
}

// Floats returns the values of a column coerced to float64. Values that
// cannot be parsed are NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	col := t.df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %q: %w", name, col.Err)
	}
	return col.Float(), nil
}

// IsNumeric reports whether a column was detected as a numeric type.
func (t *Table) IsNumeric(name string) bool {
	col := t.df.Col(name)
	if col.Err != nil {
		return false
	}
	return col.Type() == series.Float || col.Type() == series.Int
}

// NonNullCount returns the number of usable values in a column. For numeric
// columns this is the count of non-NaN values; for string columns it is the
// count of entries that are not empty or a missing-value marker.
func (t *Table) NonNullCount(name string) int {
	if t.IsNumeric(name) {
		vals, err := t.Floats(name)
		if err != nil {
			return 0
		}
		count := 0
		for _, v := range vals {
			if !math.IsNaN(v) {
				count++
			}
		}
		return count
	}

	recs, err := t.Records(name)
	if err != nil {
		return 0
	}
	count := 0
	for _, r := range recs {
		if !isMissing(r) {
			count++
		}
	}
	return count
}

func isMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "nan", "null", "NULL":
		return true
	}
	return false
}

// timestampLayouts are tried in order when coercing strings to timestamps.
var timestampLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006-01",
	"2006",
}

// ParseTimestamp parses a string as a timestamp, trying a fixed set of
// common layouts.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, lastErr)
}
