package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"goalcast/internal/cli"
	"goalcast/internal/config"
	"goalcast/internal/model"
)

var flagInteractive bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Forecast a savings goal against transaction history",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Prompt for the goal instead of reading flags")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger()

	goal := goalFromFlags()
	if flagInteractive {
		goal, err = promptGoal(goal)
		if err != nil {
			return err
		}
	}

	now := time.Now()
	txns, err := loadTransactions(flagCSV, now)
	if err != nil {
		return err
	}

	forecaster := buildForecaster(cfg, logger)
	result, err := forecaster.Analyze(context.Background(), txns, goal, now)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(cli.RenderTitle("GOALCAST"))
	fmt.Println()
	fmt.Println(cli.RenderForecast(result))
	return nil
}

// promptGoal collects the goal interactively. Flag values pre-fill the
// form so --interactive can refine a partial flag set.
func promptGoal(goal model.Goal) (model.Goal, error) {
	target := formatFloatField(goal.TargetAmount)
	months := ""
	if goal.MonthsToDeadline > 0 {
		months = strconv.Itoa(goal.MonthsToDeadline)
	}
	savings := formatFloatField(goal.CurrentSavings)
	buffer := formatFloatField(goal.Buffer)
	protect := strings.Join(goal.ProtectedCategories, ", ")
	freeText := goal.FreeText

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal in plain language").
				Description("e.g. \"Save $5,000 by June 2026\". Leave blank to use the fields below.").
				Value(&freeText),
			huh.NewInput().
				Title("Target amount ($)").
				Value(&target).
				Validate(validateOptionalFloat),
			huh.NewInput().
				Title("Months to deadline").
				Value(&months).
				Validate(validateOptionalInt),
			huh.NewInput().
				Title("Current savings ($)").
				Value(&savings).
				Validate(validateOptionalFloat),
			huh.NewInput().
				Title("Monthly buffer ($)").
				Value(&buffer).
				Validate(validateOptionalFloat),
			huh.NewInput().
				Title("Protected categories").
				Description("Comma-separated, e.g. \"Dining, Travel\"").
				Value(&protect),
		),
	)

	if err := form.Run(); err != nil {
		return model.Goal{}, fmt.Errorf("goal prompt: %w", err)
	}

	goal.FreeText = strings.TrimSpace(freeText)
	goal.TargetAmount, _ = strconv.ParseFloat(strings.TrimSpace(target), 64)
	goal.MonthsToDeadline, _ = strconv.Atoi(strings.TrimSpace(months))
	goal.CurrentSavings, _ = strconv.ParseFloat(strings.TrimSpace(savings), 64)
	goal.Buffer, _ = strconv.ParseFloat(strings.TrimSpace(buffer), 64)
	goal.ProtectedCategories = splitCategories(protect)
	return goal, nil
}

func formatFloatField(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validateOptionalFloat(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("not a number")
	}
	return nil
}

func validateOptionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("not a whole number")
	}
	return nil
}

func splitCategories(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
