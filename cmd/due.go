package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/example/mcqdrill/internal/console"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show questions due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.store.DueSummary(cmd.Context(), time.Now().UTC())
		if err != nil {
			return err
		}
		console.PrintDue(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
