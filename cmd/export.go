package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"airlift/output"
	"airlift/storage"
)

var (
	exportEventID int64
	exportFormat  string
	exportOutput  string
	exportDBPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored flight schedules to Excel or CSV",
	Long: `Export the stored flight schedules for one event.

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Export event 7 to Excel
  airlift export --event 7 --db ./airlift.db --output ./flight-schedules.xlsx

  # Export event 7 to CSV
  airlift export --event 7 --db ./airlift.db --output ./flight-schedules.csv

  # Force Excel format independent of extension
  airlift export --event 7 --format excel --output ./flight-schedules.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportEventID <= 0 {
			return fmt.Errorf("--event must be > 0")
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.FindByEventID(exportEventID)
		if err != nil {
			return err
		}

		if err := writer.Write(exportOutput, records); err != nil {
			return err
		}

		fmt.Printf("Export completed. Records: %d, Format: %s, File: %s\n", len(records), format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "excel"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Int64Var(&exportEventID, "event", 0, "Event identifier to export")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./airlift.db", "Path to local SQLite database")

	_ = exportCmd.MarkFlagRequired("event")
	_ = exportCmd.MarkFlagRequired("output")
}
