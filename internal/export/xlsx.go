package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/variant-cli/internal/model"
)

// sheetName is the single sheet the spreadsheet exporter writes.
const sheetName = "Results"

// ErrSpreadsheetUnavailable is returned when no spreadsheet-capable writer
// is registered with the pipeline.
var ErrSpreadsheetUnavailable = eris.New(
	"spreadsheet export unavailable: build with the github.com/tealeg/xlsx writer registered")

// SpreadsheetWriter writes the shared row set as a single-sheet workbook.
type SpreadsheetWriter interface {
	Write(results []model.SampleResult, outputPath string) error
}

// ExportSpreadsheet writes results through the registered writer. A nil
// writer reports the missing capability rather than panicking; an empty
// result set is a no-op.
func ExportSpreadsheet(w SpreadsheetWriter, results []model.SampleResult, outputPath string) error {
	if len(results) == 0 {
		return nil
	}
	if w == nil {
		return ErrSpreadsheetUnavailable
	}
	return w.Write(results, outputPath)
}

// XLSXWriter implements SpreadsheetWriter using tealeg/xlsx.
type XLSXWriter struct{}

func (XLSXWriter) Write(results []model.SampleResult, outputPath string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx export: add sheet")
	}

	addRow(sheet, resultColumns)
	for _, row := range buildRows(results) {
		addRow(sheet, row)
	}

	return eris.Wrap(f.Save(outputPath), "xlsx export: save")
}

func addRow(sheet *xlsx.Sheet, fields []string) {
	row := sheet.AddRow()
	for _, field := range fields {
		row.AddCell().SetString(field)
	}
}
