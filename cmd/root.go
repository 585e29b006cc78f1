package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/mcqdrill/internal/config"
	"github.com/example/mcqdrill/internal/database"
	"github.com/example/mcqdrill/internal/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "mcqdrill",
	Short: "Adaptive multiple-choice study sessions",
	Long: `mcqdrill picks the multiple-choice questions you most need to practise,
tracks how you answer them and schedules each one for review.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before the environment")
}

// app bundles what every command needs
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	store  *database.Store
	closer io.Closer
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("failed to close database", "error", err)
		}
	}
	a.closer.Close()
}

// setup loads the configuration, builds the logger and opens the database
func setup() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	log, closer, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log)

	store, err := database.Connect(cfg.Database())
	if err != nil {
		closer.Close()
		return nil, err
	}
	return &app{cfg: cfg, log: log, store: store, closer: closer}, nil
}
