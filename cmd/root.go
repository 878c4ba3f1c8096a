// Package cmd wires the goalcast CLI together.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"goalcast/internal/config"
	"goalcast/internal/forecast"
	"goalcast/internal/ingest"
	"goalcast/internal/model"
	"goalcast/internal/suggest"
)

var (
	flagCSV      string
	flagGoalText string
	flagTarget   float64
	flagMonths   int
	flagSavings  float64
	flagBuffer   float64
	flagProtect  []string
	flagJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "goalcast",
	Short: "Savings goal forecaster",
	Long:  "Forecast whether a savings goal is reachable from your transaction history, and what to change when it isn't.",
	RunE:  runAnalyze,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagCSV, "csv", "f", "", "Transaction CSV file")
	rootCmd.PersistentFlags().StringVarP(&flagGoalText, "goal-text", "g", "", "Goal in plain language, e.g. \"Save $5,000 by June 2026\"")
	rootCmd.PersistentFlags().Float64VarP(&flagTarget, "target", "t", 0, "Target amount in dollars")
	rootCmd.PersistentFlags().IntVarP(&flagMonths, "months", "m", 0, "Months until the deadline")
	rootCmd.PersistentFlags().Float64VarP(&flagSavings, "savings", "s", 0, "Current savings toward the goal")
	rootCmd.PersistentFlags().Float64VarP(&flagBuffer, "buffer", "b", 0, "Monthly buffer held back from capacity")
	rootCmd.PersistentFlags().StringSliceVar(&flagProtect, "protect", nil, "Categories the trim suggestions must not touch")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit the raw forecast result as JSON")
}

// newLogger is the shared logger for interactive commands. Warnings and
// errors go to stderr so they never corrupt piped output.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

// goalFromFlags assembles the goal from the structured flags and the
// free-text fallback. Resolution happens inside the forecaster.
func goalFromFlags() model.Goal {
	return model.Goal{
		TargetAmount:        flagTarget,
		MonthsToDeadline:    flagMonths,
		CurrentSavings:      flagSavings,
		Buffer:              flagBuffer,
		ProtectedCategories: flagProtect,
		FreeText:            strings.TrimSpace(flagGoalText),
	}
}

// buildForecaster constructs the forecaster with the suggestion engine,
// augmented over HTTP when an endpoint is configured.
func buildForecaster(cfg config.Config, logger *logrus.Logger) *forecast.Forecaster {
	var augmenter suggest.Augmenter
	if endpoint := config.AugmentEndpoint(cfg); endpoint != "" {
		timeout := time.Duration(cfg.Augment.TimeoutSecs) * time.Second
		augmenter = suggest.NewHTTPAugmenter(endpoint, config.AugmentAPIKey(cfg), timeout)
	}

	engine := suggest.NewEngine(cfg, augmenter, logger)
	return forecast.New(cfg, engine)
}

// loadTransactions reads the CSV flag target.
func loadTransactions(path string, now time.Time) ([]model.Transaction, error) {
	if path == "" {
		return nil, fmt.Errorf("no transaction file: pass --csv")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transactions: %w", err)
	}
	defer f.Close()

	txns, err := ingest.ReadTransactions(f, now)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return txns, nil
}
