// Package export produces downloadable artifacts (CSV, spreadsheet, and a
// paginated PDF report) from one analysis run's results.
package export

import (
	"strconv"

	"github.com/sells-group/variant-cli/internal/model"
)

// resultColumns is the ordered column set shared by the CSV and spreadsheet
// exporters.
var resultColumns = []string{
	"Sample ID",
	"Mutation",
	"Frequency",
	"Impact",
	"Notes",
	"Risk Level",
	"Risk Description",
	"Recommendations",
}

// buildRows flattens results into the shared row set: one row per variant
// summary entry (risk columns blank), then one per risk assessment (variant
// columns blank). Absent values render as empty strings.
func buildRows(results []model.SampleResult) [][]string {
	var rows [][]string
	for _, sample := range results {
		for _, v := range sample.VariantSummary {
			rows = append(rows, []string{
				sample.SequenceID,
				v.Mutation,
				formatFloat(v.Frequency),
				v.Impact,
				v.Notes,
				"", "", "",
			})
		}
		for _, r := range sample.RiskAssessment {
			rows = append(rows, []string{
				sample.SequenceID,
				"", "", "", "",
				r.Level,
				r.Description,
				r.Recommendations,
			})
		}
	}
	return rows
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
