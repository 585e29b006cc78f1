package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/mcqdrill/internal/console"
	"github.com/example/mcqdrill/internal/importer"
)

var (
	importSheet     string
	importBatchSize int
	importNoHeader  bool
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import questions from .xlsx, .csv, .json or .jsonl",
	Long: `Import questions. Spreadsheet and CSV columns are: question, options,
correct option, subject, sub-subject, difficulty, reasoning. Options are a
JSON array or separated by "|". Questions already stored are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := importer.DefaultConfig()
		cfg.FilePath = args[0]
		cfg.SheetName = importSheet
		cfg.BatchSize = importBatchSize
		cfg.Logger = a.log
		if importNoHeader {
			cfg.StartRow = 1
		}

		result, err := importer.Import(cmd.Context(), a.store.Questions, cfg)
		if result != nil {
			console.PrintImport(cmd.OutOrStdout(), result)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "sheet to read (first sheet by default)")
	importCmd.Flags().IntVar(&importBatchSize, "batch-size", importer.DefaultBatchSize, "questions per transaction")
	importCmd.Flags().BoolVar(&importNoHeader, "no-header", false, "the first row holds data, not column names")
}
