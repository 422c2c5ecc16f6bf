package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotisserie/eris"

	"github.com/sells-group/variant-cli/internal/model"
)

// summaryBreakY is the vertical cursor threshold that triggers a page break
// while writing the sample summary table.
const summaryBreakY = 500.0

// ExportPDF writes the paginated analysis report: a title page with the
// parameters used for the run and a sample summary table, then one page per
// sample embedding its rendered detail panel. Samples whose panel is absent
// are skipped; a renderer error aborts the export. An empty result set is a
// no-op: no file is created.
func ExportPDF(ctx context.Context, results []model.SampleResult, params model.AnalysisParameters, renderer SnapshotRenderer, outputPath string) error {
	if len(results) == 0 {
		return nil
	}

	pdf := gofpdf.New("P", "pt", "A3", "")
	pdf.AddPage()
	y := 30.0

	pdf.SetFont("Helvetica", "", 20)
	pdf.Text(40, y, "SARS-CoV-2 Variant Analysis Report")
	y += 30

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(40, y, "Generated: "+time.Now().Format("2006-01-02 15:04:05"))
	y += 20
	pdf.Text(40, y, "Analysis Parameters:")
	y += 18
	pdf.Text(60, y, fmt.Sprintf("- min_frequency: %g", params.MinFrequency))
	y += 16
	pdf.Text(60, y, fmt.Sprintf("- min_coverage: %d", params.MinCoverage))
	y += 22

	pdf.Text(40, y, "Sample Summary:")
	y += 18
	y = writeSummaryHeader(pdf, y)
	for _, sample := range results {
		pdf.Text(60, y, sample.SequenceID)
		pdf.Text(140, y, fmt.Sprintf("%d", len(sample.VariantSummary)))
		pdf.Text(200, y, sample.Location)
		pdf.Text(320, y, sample.Date)
		pdf.Text(420, y, sample.TopRiskLevel())
		y += 14
		if y > summaryBreakY {
			pdf.AddPage()
			y = 40
		}
	}

	if err := appendSnapshotPages(ctx, pdf, results, renderer); err != nil {
		return err
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return eris.Wrap(err, "pdf export: write file")
	}
	return nil
}

func writeSummaryHeader(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(60, y, "ID")
	pdf.Text(140, y, "Mut#")
	pdf.Text(200, y, "Location")
	pdf.Text(320, y, "Date")
	pdf.Text(420, y, "Main Risk")
	pdf.SetFont("Helvetica", "", 12)
	return y + 14
}

// appendSnapshotPages adds one page per sample with its panel image scaled
// to the page width, preserving aspect ratio. Captures run one at a time to
// bound memory and keep page order deterministic.
func appendSnapshotPages(ctx context.Context, pdf *gofpdf.Fpdf, results []model.SampleResult, renderer SnapshotRenderer) error {
	if renderer == nil {
		return nil
	}

	pageW, _ := pdf.GetPageSize()
	const margin = 20.0
	imgW := pageW - 2*margin

	for _, sample := range results {
		img, err := renderer.Render(ctx, sample)
		if err != nil {
			return eris.Wrapf(err, "pdf export: render snapshot %s", sample.SequenceID)
		}
		if img == nil {
			continue
		}

		name := "panel-" + sample.SequenceID
		info := pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img))
		if pdf.Err() {
			return eris.Wrapf(pdf.Error(), "pdf export: register snapshot %s", sample.SequenceID)
		}

		pdf.AddPage()
		imgH := info.Height() * imgW / info.Width()
		pdf.ImageOptions(name, margin, margin, imgW, imgH, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}
	return nil
}
