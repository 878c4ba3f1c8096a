package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"goalcast/internal/cli"
	"goalcast/internal/goaltext"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Work with goal descriptions",
}

var goalParseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Preview what a goal description parses to",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGoalParse,
}

func init() {
	goalCmd.AddCommand(goalParseCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalParse(_ *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	parsed, err := goaltext.Parse(text, time.Now())
	if err != nil {
		return fmt.Errorf("parse %q: %w", text, err)
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Target amount", cli.FormatMoney(parsed.TargetAmount)},
			{"Months to deadline", cli.FormatMonths(parsed.MonthsToDeadline)},
			{"Deadline", parsed.Deadline.Format("2006-01-02")},
		},
	}))
	return nil
}
