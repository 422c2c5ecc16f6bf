package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/variant-cli/internal/export"
	"github.com/sells-group/variant-cli/internal/model"
	"github.com/sells-group/variant-cli/internal/store"
)

var (
	exportOut     string
	exportHistory string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export analysis results as CSV, spreadsheet, or PDF report",
	Long:  "Exports the most recent (or a named) history entry's results. All three formats consume the same result set.",
}

// loadExportEntry resolves the history entry to export: --history by ID,
// else the most recent run.
func loadExportEntry(cmd *cobra.Command) (*model.HistoryEntry, error) {
	kv, err := initKV()
	if err != nil {
		return nil, err
	}
	defer kv.Close() //nolint:errcheck

	ctx := cmd.Context()
	h := store.NewHistory(kv)
	if exportHistory != "" {
		entry := h.Get(ctx, exportHistory)
		if entry == nil {
			return nil, eris.Errorf("history entry %s not found", exportHistory)
		}
		return entry, nil
	}

	entry := h.Latest(ctx)
	if entry == nil {
		return nil, eris.New("no analysis runs recorded; run analyze first")
	}
	return entry, nil
}

// -- export csv --

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export as a comma-separated file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		entry, err := loadExportEntry(cmd)
		if err != nil {
			return err
		}

		if err := export.ExportCSV(entry.Results, exportOut); err != nil {
			return err
		}
		zap.L().Info("csv export complete", zap.String("path", exportOut), zap.Int("samples", len(entry.Results)))
		return nil
	},
}

// -- export xlsx --

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Export as a single-sheet spreadsheet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		entry, err := loadExportEntry(cmd)
		if err != nil {
			return err
		}

		if err := export.ExportSpreadsheet(export.XLSXWriter{}, entry.Results, exportOut); err != nil {
			return err
		}
		zap.L().Info("xlsx export complete", zap.String("path", exportOut), zap.Int("samples", len(entry.Results)))
		return nil
	},
}

// -- export pdf --

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Export as a paginated report with per-sample panels",
	RunE: func(cmd *cobra.Command, _ []string) error {
		entry, err := loadExportEntry(cmd)
		if err != nil {
			return err
		}

		renderer := export.HeatmapRenderer{Width: cfg.Export.SnapshotWidth}
		if err := export.ExportPDF(cmd.Context(), entry.Results, entry.Params, renderer, exportOut); err != nil {
			return err
		}
		zap.L().Info("pdf export complete", zap.String("path", exportOut), zap.Int("samples", len(entry.Results)))
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportOut, "out", "", "output file path (required)")
	exportCmd.PersistentFlags().StringVar(&exportHistory, "history", "", "history entry ID (default: most recent)")
	_ = exportCmd.MarkPersistentFlagRequired("out")

	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportXLSXCmd)
	exportCmd.AddCommand(exportPDFCmd)
	rootCmd.AddCommand(exportCmd)
}
