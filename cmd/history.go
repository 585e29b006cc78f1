package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/mcqdrill/internal/console"
	"github.com/example/mcqdrill/internal/session"
)

var (
	historyDate  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous sessions",
	Long: `Without --date, list the days on which you studied.
With --date YYYY-MM-DD, show the report for that day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if historyDate == "" {
			days, err := a.store.SessionDates(ctx, historyLimit)
			if err != nil {
				return err
			}
			console.PrintSessionDates(out, days)
			return nil
		}

		day, err := time.ParseInLocation("2006-01-02", historyDate, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", historyDate)
		}
		attempts, err := a.store.AttemptsOn(ctx, day)
		if err != nil {
			return err
		}
		console.PrintHistory(out, session.BuildHistory(day, attempts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&historyDate, "date", "d", "", "day to report on (YYYY-MM-DD, UTC)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of past days to list")
}
