package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/mcqdrill/internal/notify"
	"github.com/example/mcqdrill/internal/scheduler"
)

var remindOnce bool

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send reminders when questions are due",
	Long: `Check periodically for due questions and send a reminder inside the
notification hours. Reminders go to Telegram when TELEGRAM_BOT_TOKEN is set,
otherwise to the log. Use --once for a single check that ignores the hours.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		var notifier scheduler.Notifier = notify.NewLog(a.log)
		if a.cfg.TelegramEnabled() {
			tg, err := notify.NewTelegram(a.cfg.TelegramToken, a.cfg.TelegramChatID)
			if err != nil {
				return err
			}
			notifier = tg
		}

		s := scheduler.New(a.store, notifier, a.cfg.Reminders(), a.log)

		if remindOnce {
			sent, err := s.RunManualCheck(cmd.Context())
			if err != nil {
				return err
			}
			if !sent {
				fmt.Fprintln(cmd.OutOrStdout(), "No questions due for review.")
			}
			return nil
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		if err := s.Start(ctx); err != nil {
			return err
		}

		select {
		case sig := <-sigChan:
			a.log.Info("received signal, stopping reminders", "signal", sig.String())
		case <-ctx.Done():
		}
		cancel()
		s.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.Flags().BoolVar(&remindOnce, "once", false, "check once and exit")
}
