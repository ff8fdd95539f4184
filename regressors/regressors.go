package regressors

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/marineinsights/oceancast/tabular"
)

// maxProfileRows bounds the representative depth-profile sample.
const maxProfileRows = 20

// depthColumn is required in the auxiliary table.
const depthColumn = "Depth"

// parameters maps auxiliary column names to regressor names, in the order
// the regressors are emitted.
var parameters = []struct {
	column    string
	regressor string
}{
	{"Salinity", "mean_salinity"},
	{"pH", "mean_ph"},
	{"Chlorophyl", "mean_chlorophyl"},
}

// Regressor is a named constant feature.
type Regressor struct {
	Name  string
	Value float64
}

// Set is an ordered collection of constant regressors.
type Set []Regressor

// Names returns the regressor names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, r := range s {
		names[i] = r.Name
	}
	return names
}

// Values returns the regressor values in order.
func (s Set) Values() []float64 {
	vals := make([]float64, len(s))
	for i, r := range s {
		vals[i] = r.Value
	}
	return vals
}

// Get returns the value of a named regressor.
func (s Set) Get(name string) (float64, bool) {
	for _, r := range s {
		if r.Name == name {
			return r.Value, true
		}
	}
	return 0, false
}

// ProfileRow is one sampled row of the depth profile. Parameters absent
// from the auxiliary table are NaN.
type ProfileRow struct {
	Depth      float64 `json:"depth"`
	Salinity   float64 `json:"salinity"`
	PH         float64 `json:"ph"`
	Chlorophyl float64 `json:"chlorophyl"`
}

// Profile is a depth-sorted representative sample of the auxiliary table,
// used for depth-profile visualization downstream. Forecasting does not
// depend on it.
type Profile []ProfileRow

// Synthesize loads the auxiliary table at path and derives the regressor
// set and depth-profile sample. Any failure degrades to an empty Set and
// nil Profile; it is logged but never propagated.
func Synthesize(path string, logger *zap.SugaredLogger) (Set, Profile) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	tbl, err := tabular.Load(path, nil)
	if err != nil {
		logger.Warnw("regressor synthesis degraded to empty set", "path", path, "error", err)
		return Set{}, nil
	}
	set, profile, err := FromTable(tbl)
	if err != nil {
		logger.Warnw("regressor synthesis degraded to empty set", "path", path, "error", err)
		return Set{}, nil
	}
	return set, profile
}

// FromTable derives the regressor set and depth-profile sample from an
// already loaded auxiliary table.
func FromTable(tbl *tabular.Table) (Set, Profile, error) {
	if err := tbl.NormalizeNames(); err != nil {
		return nil, nil, err
	}

	depths, err := tbl.Floats(depthColumn)
	if err != nil {
		return nil, nil, err
	}

	set := make(Set, 0, len(parameters))
	cols := make(map[string][]float64, len(parameters))
	for _, p := range parameters {
		if !tbl.HasColumn(p.column) {
			continue
		}
		vals, err := tbl.Floats(p.column)
		if err != nil {
			continue
		}
		cols[p.column] = vals
		if m, ok := meanIgnoringNaN(vals); ok {
			set = append(set, Regressor{Name: p.regressor, Value: m})
		}
	}

	return set, sampleProfile(depths, cols), nil
}

// meanIgnoringNaN computes the arithmetic mean over the non-NaN values.
func meanIgnoringNaN(vals []float64) (float64, bool) {
	clean := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return 0, false
	}
	return stat.Mean(clean, nil), true
}

// sampleProfile picks at most maxProfileRows rows evenly spaced over the
// depth-sorted table.
func sampleProfile(depths []float64, cols map[string][]float64) Profile {
	order := make([]int, 0, len(depths))
	for i, d := range depths {
		if !math.IsNaN(d) {
			order = append(order, i)
		}
	}
	if len(order) == 0 {
		return nil
	}
	sort.Slice(order, func(a, b int) bool {
		return depths[order[a]] < depths[order[b]]
	})

	n := maxProfileRows
	if len(order) < n {
		n = len(order)
	}

	profile := make(Profile, 0, n)
	for i := 0; i < n; i++ {
		pos := 0
		if n > 1 {
			pos = int(float64(i) * float64(len(order)-1) / float64(n-1))
		}
		row := order[pos]
		profile = append(profile, ProfileRow{
			Depth:      depths[row],
			Salinity:   colValue(cols, "Salinity", row),
			PH:         colValue(cols, "pH", row),
			Chlorophyl: colValue(cols, "Chlorophyl", row),
		})
	}
	return profile
}

func colValue(cols map[string][]float64, name string, row int) float64 {
	vals, ok := cols[name]
	if !ok || row >= len(vals) {
		return math.NaN()
	}
	return vals[row]
}
