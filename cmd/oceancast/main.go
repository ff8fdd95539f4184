// Command oceancast runs the forecasting pipeline against delimited files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marineinsights/oceancast/pipeline"
	"github.com/marineinsights/oceancast/regressors"
)

var (
	dataPath      string
	regressorPath string
	dateColumn    string
	targetColumn  string
	testFraction  float64
	futurePeriods int
	outputCSV     string
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oceancast",
		Short: "Forecast marine time-series data with uncertainty bounds",
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	rootCmd.AddCommand(forecastCmd())
	rootCmd.AddCommand(profileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Evaluate held-out accuracy and project the series into the future",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			runner := pipeline.NewRunner(logger.Sugar())
			result, err := runner.Run(context.Background(), pipeline.Options{
				DataPath:      dataPath,
				RegressorPath: regressorPath,
				DateColumn:    dateColumn,
				TargetColumn:  targetColumn,
				TestFraction:  testFraction,
				FuturePeriods: futurePeriods,
				OutputCSV:     outputCSV,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "i", "", "Input table (CSV with header row)")
	cmd.Flags().StringVarP(&regressorPath, "regressors", "r", "", "Depth-profile table for exogenous regressors")
	cmd.Flags().StringVar(&dateColumn, "date-col", "", "Date column name (auto-detected when empty)")
	cmd.Flags().StringVar(&targetColumn, "target-col", "", "Target column name (auto-detected when empty)")
	cmd.Flags().Float64Var(&testFraction, "test-fraction", 0.2, "Share of observations held out for accuracy")
	cmd.Flags().IntVarP(&futurePeriods, "periods", "p", pipeline.DefaultFuturePeriods, "Future periods to project")
	cmd.Flags().StringVarP(&outputCSV, "output", "o", "forecast_output.csv", "Forecast tail CSV destination (empty to skip)")
	cmd.MarkFlagRequired("data")

	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the depth-profile sample and mean regressor values",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			set, profile := regressors.Synthesize(regressorPath, logger.Sugar())
			out := struct {
				Regressors map[string]float64 `json:"regressors"`
				Profile    regressors.Profile `json:"profile"`
			}{
				Regressors: make(map[string]float64, len(set)),
				Profile:    profile,
			}
			for _, reg := range set {
				out.Regressors[reg.Name] = reg.Value
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&regressorPath, "regressors", "r", "", "Depth-profile table")
	cmd.MarkFlagRequired("regressors")

	return cmd
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
