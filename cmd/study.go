package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/mcqdrill/internal/console"
	"github.com/example/mcqdrill/internal/session"
	"github.com/example/mcqdrill/internal/spaced_repetition"
	"github.com/example/mcqdrill/pkg/models"
)

var (
	studyLimit      int
	studySubject    string
	studySubSubject string
	studyRandom     bool
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start a study session",
	Long: `Start a study session. Questions are picked by priority: unseen and
weak questions first. Use --random for a mixed session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		limit := a.cfg.SessionSize
		if cmd.Flags().Changed("limit") {
			limit = studyLimit
		}

		engine, err := spaced_repetition.NewEngine(a.cfg.Policy)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		presenter := console.NewPresenter(cmd.InOrStdin(), out)
		defer presenter.Close()
		runner := session.NewRunner(a.store, presenter, engine, a.log)

		report, err := runner.Run(ctx, session.Options{
			Filter:    models.CandidateFilter{Subject: studySubject, SubSubject: studySubSubject},
			Limit:     limit,
			Randomize: studyRandom,
		})
		if report != nil {
			if report.Total == 0 && !report.Interrupted && err == nil {
				n, cerr := a.store.Questions.Count(cmd.Context())
				if cerr != nil {
					return cerr
				}
				if n == 0 {
					fmt.Fprintln(out, "No questions imported yet. Run: mcqdrill import FILE")
				} else {
					fmt.Fprintln(out, "Nothing to study: no questions match.")
				}
				return nil
			}
			console.PrintReport(out, report)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(studyCmd)
	studyCmd.Flags().IntVarP(&studyLimit, "limit", "n", 10, "number of questions (defaults to SESSION_SIZE)")
	studyCmd.Flags().StringVarP(&studySubject, "subject", "s", "", "only questions whose subject contains this text")
	studyCmd.Flags().StringVar(&studySubSubject, "sub-subject", "", "only questions whose sub-subject contains this text")
	studyCmd.Flags().BoolVarP(&studyRandom, "random", "r", false, "pick questions at random")
}
