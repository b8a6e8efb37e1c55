package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"airlift/importer"
	"airlift/storage"
)

var (
	importInput   string
	importEventID int64
	importDBPath  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a flight schedule workbook into the local database",
	Long: `Read a schedule workbook, normalize each passenger row, and persist the
valid rows for the given event.

Rows that cannot be normalized are reported with their row number and reason;
they never abort the rest of the batch. The workbook must carry the ten
required columns in its first row.`,
	Example: `
  # Import schedules for event 7
  airlift import -i schedules.xlsx --event 7 --db ./airlift.db

  # Import with custom config file
  airlift --configFile ./custom-airlift.yaml import -i schedules.xlsx --event 7
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importEventID <= 0 {
			return fmt.Errorf("--event must be > 0")
		}

		data, err := os.ReadFile(importInput)
		if err != nil {
			return fmt.Errorf("read input file %s: %w", importInput, err)
		}

		store, err := storage.OpenSQLite(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := importer.NewService(store).Import(importEventID, data)
		if err != nil {
			return err
		}

		fmt.Println(summary.Message)
		for _, failure := range summary.FailedRecords {
			fmt.Fprintln(os.Stderr, failure)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "Input workbook path (.xlsx)")
	importCmd.Flags().Int64Var(&importEventID, "event", 0, "Event identifier the schedules belong to")
	importCmd.Flags().StringVar(&importDBPath, "db", "./airlift.db", "Path to local SQLite database")

	_ = importCmd.MarkFlagRequired("input")
	_ = importCmd.MarkFlagRequired("event")
}
