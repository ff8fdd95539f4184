package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marineinsights/oceancast/tabular"
)

// writeSineCSV writes n daily rows of a trended sinusoid and returns the
// file path.
func writeSineCSV(t *testing.T, n int) string {
	t.Helper()
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	var sb strings.Builder
	sb.WriteString("timestamp,sst\n")
	for i := 0; i < n; i++ {
		y := 20 + 5*math.Sin(2*math.Pi*float64(i)/365.25) + 0.01*float64(i)
		fmt.Fprintf(&sb, "%s,%0.4f\n", start.AddDate(0, 0, i).Format("2006-01-02"), y)
	}

	path := filepath.Join(t.TempDir(), "sst.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func writeDepthCSV(t *testing.T) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("Depth,Salinity,pH,Chlorophyl\n")
	for d := 1; d <= 30; d++ {
		fmt.Fprintf(&sb, "%d,%0.2f,%0.2f,%0.2f\n", d*5, 30+float64(d)/10, 7.8+float64(d)/100, 0.3+float64(d)/50)
	}

	path := filepath.Join(t.TempDir(), "depth.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	dataPath := writeSineCSV(t, 400)
	outPath := filepath.Join(t.TempDir(), "forecast_output.csv")

	runner := NewRunner(nil)
	res, err := runner.Run(context.Background(), Options{
		DataPath:      dataPath,
		FuturePeriods: 30,
		OutputCSV:     outPath,
	})
	require.NoError(t, err)

	// Metrics are finite and non-negative; RMSE dominates MAE.
	require.False(t, math.IsNaN(res.MAE))
	require.False(t, math.IsNaN(res.RMSE))
	assert.GreaterOrEqual(t, res.MAE, 0.0)
	assert.GreaterOrEqual(t, res.RMSE, res.MAE)
	assert.Less(t, res.MAE, 1.0, "clean sinusoid should be forecast closely")
	assert.False(t, res.PositionalFallback)

	// The tail is exactly the future horizon, strictly after the history.
	require.Len(t, res.ForecastTail, 30)
	lastObserved := res.Historical[len(res.Historical)-1].DS
	for _, p := range res.ForecastTail {
		assert.True(t, p.DS.After(lastObserved))
		assert.LessOrEqual(t, p.YhatLower, p.Yhat)
		assert.LessOrEqual(t, p.Yhat, p.YhatUpper)
	}

	require.Len(t, res.Historical, 400)
	assert.Equal(t, 400, res.Diagnostics.NObservations)
	assert.Equal(t, 80, res.Diagnostics.TestPoints)
	assert.Equal(t, "D", res.Diagnostics.InferredFreq)
	assert.Equal(t, "sst", res.Diagnostics.TargetCol)
	assert.Equal(t, 30, res.Diagnostics.FuturePeriods)
	assert.False(t, res.Diagnostics.HasRegressors)

	// Projection partitions the frame at the last observation.
	require.NotNil(t, res.Projection)
	assert.Equal(t, 400, res.Projection.Fit.Len())
	assert.Equal(t, 30, res.Projection.Future.Len())
	assert.Equal(t, 430, res.Projection.Frame.Len())

	// The CSV artifact carries the canonical header and one row per step.
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 31)
	assert.Equal(t, "ds,yhat,yhat_lower,yhat_upper", lines[0])
	assert.Equal(t, outPath, res.ForecastCSV)
}

func TestRunWithRegressors(t *testing.T) {
	dataPath := writeSineCSV(t, 200)

	runner := NewRunner(nil)
	res, err := runner.Run(context.Background(), Options{
		DataPath:      dataPath,
		RegressorPath: writeDepthCSV(t),
	})
	require.NoError(t, err)

	assert.True(t, res.Diagnostics.HasRegressors)
	require.NotEmpty(t, res.DepthProfile)
	assert.LessOrEqual(t, len(res.DepthProfile), 20)
	assert.Equal(t, DefaultFuturePeriods, res.Diagnostics.FuturePeriods)
	require.Len(t, res.ForecastTail, DefaultFuturePeriods)
}

func TestRunRegressorFileMissingDegrades(t *testing.T) {
	dataPath := writeSineCSV(t, 100)

	runner := NewRunner(nil)
	res, err := runner.Run(context.Background(), Options{
		DataPath:      dataPath,
		RegressorPath: "/nonexistent/depth.csv",
	})
	require.NoError(t, err, "a bad regressor table must not fail the run")
	assert.False(t, res.Diagnostics.HasRegressors)
	assert.Empty(t, res.DepthProfile)
}

func TestRunMissingDataFile(t *testing.T) {
	runner := NewRunner(nil)
	_, err := runner.Run(context.Background(), Options{DataPath: "/nonexistent/input.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input table")
}

func TestRunUndetectableSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\nfoo,bar\nbaz,qux\n"), 0o644))

	runner := NewRunner(nil)
	_, err := runner.Run(context.Background(), Options{DataPath: path})
	require.Error(t, err)

	var schemaErr *tabular.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestRunExplicitColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.csv")
	var sb strings.Builder
	sb.WriteString("when,reading\n")
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "%s,%0.2f\n", start.AddDate(0, 0, i).Format("2006-01-02"), 10+0.3*float64(i))
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

	runner := NewRunner(nil)
	res, err := runner.Run(context.Background(), Options{
		DataPath:     path,
		DateColumn:   "when",
		TargetColumn: "reading",
	})
	require.NoError(t, err)
	assert.Equal(t, "reading", res.Diagnostics.TargetCol)
	assert.Equal(t, 60, res.Diagnostics.NObservations)
}

func TestRunReusesRegistry(t *testing.T) {
	dataPath := writeSineCSV(t, 120)
	reg, err := NewRegistry(4, 0)
	require.NoError(t, err)

	runner := NewRunner(nil)
	opts := Options{DataPath: dataPath, Registry: reg}

	_, err = runner.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	// Same input hits the cached model instead of fitting a second one.
	_, err = runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	// A different horizon is a different fingerprint.
	opts.FuturePeriods = 60
	_, err = runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
}

func TestRunCancelledContext(t *testing.T) {
	dataPath := writeSineCSV(t, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(nil)
	_, err := runner.Run(ctx, Options{DataPath: dataPath})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
