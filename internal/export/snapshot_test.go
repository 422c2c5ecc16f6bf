package export

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/variant-cli/internal/model"
)

func TestHeatmapRenderer_ProducesPNG(t *testing.T) {
	t.Parallel()

	img, err := HeatmapRenderer{}.Render(context.Background(), sampleResults()[0])
	require.NoError(t, err)
	require.NotNil(t, img)

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, defaultPanelWidth, cfg.Width)
	assert.Positive(t, cfg.Height)
}

func TestHeatmapRenderer_EmptySampleAbsent(t *testing.T) {
	t.Parallel()

	img, err := HeatmapRenderer{}.Render(context.Background(), model.SampleResult{SequenceID: "EPI-009"})
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestFrequencyColor_Clamped(t *testing.T) {
	t.Parallel()

	r, g, b := frequencyColor(-1)
	assert.Equal(t, []float64{1, 1, 1}, []float64{r, g, b})

	r, g, b = frequencyColor(2)
	assert.InDelta(t, 1, r, 1e-9)
	assert.InDelta(t, 0.2, g, 1e-9)
	assert.InDelta(t, 0.1, b, 1e-9)
}
