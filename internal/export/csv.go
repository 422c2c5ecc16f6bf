package export

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/variant-cli/internal/model"
)

// ExportCSV writes results as a comma-separated file. Every field is quoted
// unconditionally, matching what downstream spreadsheet imports expect from
// this report. An empty result set is a no-op: no file is created.
func ExportCSV(results []model.SampleResult, outputPath string) error {
	if len(results) == 0 {
		return nil
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "csv export: create file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeQuotedRow(w, resultColumns); err != nil {
		return eris.Wrap(err, "csv export: write header")
	}
	for _, row := range buildRows(results) {
		if err := writeQuotedRow(w, row); err != nil {
			return eris.Wrap(err, "csv export: write row")
		}
	}

	return eris.Wrap(w.Flush(), "csv export: flush")
}

// writeQuotedRow writes one row with every field wrapped in double quotes,
// doubling any embedded quotes.
func writeQuotedRow(w *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := w.WriteByte('"'); err != nil {
			return err
		}
		if _, err := w.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
			return err
		}
		if err := w.WriteByte('"'); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
