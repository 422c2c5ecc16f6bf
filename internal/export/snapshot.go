package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/rotisserie/eris"

	"github.com/sells-group/variant-cli/internal/model"
)

// SnapshotRenderer rasterizes one sample's detail panel to an image for the
// document report. Returning (nil, nil) means the panel is absent for that
// sample; the exporter skips it. An error aborts the export.
type SnapshotRenderer interface {
	Render(ctx context.Context, result model.SampleResult) ([]byte, error)
}

// HeatmapRenderer draws the per-sample mutation frequency heatmap panel as
// a PNG: one colored cell per variant summary entry, frequency mapped to
// color depth, with the risk findings listed underneath.
type HeatmapRenderer struct {
	Width int // panel width in pixels; 0 means the default
}

const (
	defaultPanelWidth = 900
	cellSize          = 64
	cellGap           = 8
	panelMargin       = 24
	lineHeight        = 18
)

func (r HeatmapRenderer) Render(_ context.Context, result model.SampleResult) ([]byte, error) {
	if len(result.VariantSummary) == 0 && len(result.RiskAssessment) == 0 {
		return nil, nil
	}

	width := r.Width
	if width <= 0 {
		width = defaultPanelWidth
	}

	perRow := (width - 2*panelMargin) / (cellSize + cellGap)
	if perRow < 1 {
		perRow = 1
	}
	gridRows := (len(result.VariantSummary) + perRow - 1) / perRow

	height := 2*panelMargin + 2*lineHeight + // title block
		gridRows*(cellSize+cellGap+lineHeight) +
		len(result.RiskAssessment)*lineHeight + lineHeight

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	y := float64(panelMargin)
	dc.SetRGB(0, 0, 0)
	dc.DrawString(fmt.Sprintf("Sample %s — variant heatmap", result.SequenceID), panelMargin, y+12)
	y += 2 * lineHeight

	for i, v := range result.VariantSummary {
		col := i % perRow
		row := i / perRow
		x := float64(panelMargin + col*(cellSize+cellGap))
		cy := y + float64(row*(cellSize+cellGap+lineHeight))

		red, green, blue := frequencyColor(v.Frequency)
		dc.SetRGB(red, green, blue)
		dc.DrawRectangle(x, cy, cellSize, cellSize)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.DrawString(v.Mutation, x, cy+cellSize+14)
	}
	y += float64(gridRows*(cellSize+cellGap+lineHeight)) + lineHeight

	for _, risk := range result.RiskAssessment {
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawString(fmt.Sprintf("[%s] %s", risk.Level, risk.Description), panelMargin, y)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, eris.Wrapf(err, "snapshot: encode panel for %s", result.SequenceID)
	}
	return buf.Bytes(), nil
}

// frequencyColor maps mutation frequency to color depth: low frequencies
// render pale, high frequencies saturate toward red.
func frequencyColor(freq float64) (r, g, b float64) {
	if freq < 0 {
		freq = 0
	}
	if freq > 1 {
		freq = 1
	}
	return 1, 1 - 0.8*freq, 1 - 0.9*freq
}
