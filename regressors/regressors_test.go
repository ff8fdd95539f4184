package regressors

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marineinsights/oceancast/tabular"
)

func tableFromCSV(t *testing.T, csv string) *tabular.Table {
	t.Helper()
	tbl, err := tabular.FromReader(strings.NewReader(csv), nil)
	require.NoError(t, err)
	return tbl
}

func TestFromTableMeans(t *testing.T) {
	csv := `Depth,Salinity,pH,Chlorophyl
5,30,7.9,0.4
10,32,8.0,0.6
15,34,8.1,0.8
`
	set, profile, err := FromTable(tableFromCSV(t, csv))
	require.NoError(t, err)

	require.Equal(t, []string{"mean_salinity", "mean_ph", "mean_chlorophyl"}, set.Names())

	sal, ok := set.Get("mean_salinity")
	require.True(t, ok)
	assert.Equal(t, 32.0, sal)

	ph, ok := set.Get("mean_ph")
	require.True(t, ok)
	assert.InDelta(t, 8.0, ph, 1e-12)

	chl, ok := set.Get("mean_chlorophyl")
	require.True(t, ok)
	assert.InDelta(t, 0.6, chl, 1e-12)

	require.Len(t, profile, 3)
	assert.Equal(t, 5.0, profile[0].Depth)
	assert.Equal(t, 15.0, profile[2].Depth)
}

func TestFromTableMissingParameterColumn(t *testing.T) {
	csv := `Depth,Salinity
5,30
10,32
`
	set, profile, err := FromTable(tableFromCSV(t, csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"mean_salinity"}, set.Names())
	_, ok := set.Get("mean_ph")
	assert.False(t, ok)

	require.Len(t, profile, 2)
	assert.True(t, math.IsNaN(profile[0].PH))
	assert.True(t, math.IsNaN(profile[0].Chlorophyl))
}

func TestFromTableIgnoresNaN(t *testing.T) {
	csv := `Depth,Salinity
5,30
10,NaN
15,34
`
	set, _, err := FromTable(tableFromCSV(t, csv))
	require.NoError(t, err)

	sal, ok := set.Get("mean_salinity")
	require.True(t, ok)
	assert.Equal(t, 32.0, sal)
}

func TestFromTableMissingDepth(t *testing.T) {
	csv := `Salinity,pH
30,7.9
`
	_, _, err := FromTable(tableFromCSV(t, csv))
	assert.Error(t, err)
}

func TestProfileSampleBoundedAndSorted(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Depth,Salinity\n")
	// Depths written in reverse so sampling has to sort.
	for d := 50; d >= 1; d-- {
		fmt.Fprintf(&sb, "%d,%0.1f\n", d, 30+float64(d)/10)
	}

	_, profile, err := FromTable(tableFromCSV(t, sb.String()))
	require.NoError(t, err)

	require.Len(t, profile, 20)
	assert.Equal(t, 1.0, profile[0].Depth)
	assert.Equal(t, 50.0, profile[len(profile)-1].Depth)
	for i := 1; i < len(profile); i++ {
		assert.Less(t, profile[i-1].Depth, profile[i].Depth)
	}
}

func TestSynthesizeDegradesOnMissingFile(t *testing.T) {
	set, profile := Synthesize("/nonexistent/depth.csv", nil)
	assert.Empty(t, set)
	assert.Nil(t, profile)
}

func TestSynthesizeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depth.csv")
	csv := "Depth,Salinity,pH,Chlorophyl\n5,30,7.9,0.4\n10,32,8.0,0.6\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	set, profile := Synthesize(path, nil)
	require.Len(t, set, 3)
	require.Len(t, profile, 2)

	sal, ok := set.Get("mean_salinity")
	require.True(t, ok)
	assert.Equal(t, 31.0, sal)
}
