package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/variant-cli/internal/analysis"
	"github.com/sells-group/variant-cli/internal/model"
	"github.com/sells-group/variant-cli/internal/normalize"
	"github.com/sells-group/variant-cli/internal/store"
	"github.com/sells-group/variant-cli/pkg/aipredict"
	"github.com/sells-group/variant-cli/pkg/variantapi"
)

var (
	analyzeInput    string
	analyzeSamples  []string
	analyzeMinFreq  float64
	analyzeMinCov   int
	analyzeTemplate string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run variant analysis on a set of samples",
	Long:  "Normalizes sample input, submits it for variant analysis, enriches the results with AI pathogenicity predictions, and records the run in local history.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		kv, err := initKV()
		if err != nil {
			return err
		}
		defer kv.Close() //nolint:errcheck

		rows, err := collectRows()
		if err != nil {
			return err
		}

		params := model.AnalysisParameters{
			MinFrequency: analyzeMinFreq,
			MinCoverage:  analyzeMinCov,
		}
		if analyzeTemplate != "" {
			tpl := store.NewTemplates(kv).Find(ctx, analyzeTemplate)
			if tpl == nil {
				return eris.Errorf("template %q not found", analyzeTemplate)
			}
			store.Apply(*tpl, &params)
		}

		orch := newOrchestrator(kv)
		results, err := orch.Run(ctx, rows, params)
		if err != nil {
			return err
		}

		zap.L().Info("analysis complete",
			zap.Int("samples", len(results)),
			zap.Float64("min_frequency", params.MinFrequency),
			zap.Int("min_coverage", params.MinCoverage),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

// newOrchestrator wires the remote clients and history store.
func newOrchestrator(kv store.KV) *analysis.Orchestrator {
	variants := variantapi.NewClient(variantapi.WithBaseURL(cfg.API.BaseURL))

	predictOpts := []aipredict.Option{aipredict.WithBaseURL(cfg.PredictURL())}
	if cfg.API.PredictRate > 0 {
		predictOpts = append(predictOpts, aipredict.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.API.PredictRate), 1)))
	}
	predict := aipredict.NewClient(predictOpts...)

	return analysis.New(variants, predict, store.NewHistory(kv))
}

// collectRows gathers manual-entry rows from --sample flags or an imported
// file given with --input.
func collectRows() ([]normalize.Row, error) {
	if analyzeInput != "" {
		return rowsFromFile(analyzeInput)
	}

	var rows []normalize.Row
	for _, raw := range analyzeSamples {
		row, err := parseSampleFlag(raw)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rowsFromFile reads structured sample records from a CSV (header row) or
// JSON (array of objects) file and normalizes them.
func rowsFromFile(path string) ([]normalize.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open input file")
	}
	defer f.Close()

	var records []normalize.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		records, err = normalize.ReadRecordsJSON(f)
	default:
		records, err = normalize.ReadRecordsCSV(f)
	}
	if err != nil {
		return nil, err
	}

	samples := normalize.FromRecords(records)
	rows := make([]normalize.Row, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, normalize.ToRow(s))
	}
	return rows, nil
}

// parseSampleFlag parses "ID;MUT1,MUT2;location;date". Location and date
// are optional.
func parseSampleFlag(raw string) (normalize.Row, error) {
	parts := strings.Split(raw, ";")
	if len(parts) < 2 {
		return normalize.Row{}, eris.Errorf("invalid --sample %q: want ID;MUTATIONS[;LOCATION[;DATE]]", raw)
	}

	row := normalize.Row{
		SequenceID: strings.TrimSpace(parts[0]),
		Mutations:  strings.ReplaceAll(parts[1], ",", "\n"),
	}
	if len(parts) > 2 {
		row.Location = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		row.Date = strings.TrimSpace(parts[3])
	}
	return row, nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "CSV or JSON file of sample records")
	analyzeCmd.Flags().StringArrayVar(&analyzeSamples, "sample", nil, `sample as "ID;MUT1,MUT2;location;date" (repeatable)`)
	analyzeCmd.Flags().Float64Var(&analyzeMinFreq, "min-frequency", 0.01, "minimum variant frequency")
	analyzeCmd.Flags().IntVar(&analyzeMinCov, "min-coverage", 20, "minimum read coverage")
	analyzeCmd.Flags().StringVar(&analyzeTemplate, "template", "", "apply a saved parameter template")
	rootCmd.AddCommand(analyzeCmd)
}
