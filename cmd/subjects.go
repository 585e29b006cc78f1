package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/mcqdrill/internal/console"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects and their question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		subjects, err := a.store.Questions.Subjects(cmd.Context())
		if err != nil {
			return err
		}
		console.PrintSubjects(cmd.OutOrStdout(), subjects)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subjectsCmd)
}
