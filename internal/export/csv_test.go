package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/variant-cli/internal/model"
)

func sampleResults() []model.SampleResult {
	return []model.SampleResult{
		{
			SequenceID: "EPI-001",
			VariantSummary: []model.VariantSummaryEntry{
				{Mutation: "S:D614G", Frequency: 0.95, Impact: "High", Notes: "major strains"},
				{Mutation: "N:R203K", Frequency: 0.4, Impact: "Low", Notes: ""},
			},
			RiskAssessment: []model.RiskAssessment{
				{Level: "High", Description: "2 high-impact mutations", Recommendations: "strengthen monitoring"},
			},
		},
	}
}

func TestExportCSV_RowShape(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportCSV(sampleResults(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	// Header plus 2 variant rows plus 1 risk row.
	require.Len(t, lines, 4)

	assert.Equal(t, `"Sample ID","Mutation","Frequency","Impact","Notes","Risk Level","Risk Description","Recommendations"`, lines[0])
	assert.Equal(t, `"EPI-001","S:D614G","0.95","High","major strains","","",""`, lines[1])

	// Risk row: variant columns blank, risk columns filled.
	assert.Equal(t, `"EPI-001","","","","","High","2 high-impact mutations","strengthen monitoring"`, lines[3])
}

func TestExportCSV_EveryFieldQuoted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportCSV(sampleResults(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, `"`), "line should start quoted: %s", line)
		assert.True(t, strings.HasSuffix(line, `"`), "line should end quoted: %s", line)
	}
}

func TestExportCSV_EmptyResultsNoFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportCSV(nil, path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExportCSV_EmbeddedQuotesEscaped(t *testing.T) {
	t.Parallel()

	results := []model.SampleResult{{
		SequenceID: "EPI-002",
		VariantSummary: []model.VariantSummaryEntry{
			{Mutation: "S:D614G", Notes: `so-called "founder" mutation`},
		},
	}}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportCSV(results, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"so-called ""founder"" mutation"`)
}
