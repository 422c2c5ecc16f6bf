package variantapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/variant-cli/internal/model"
)

func testRequest() AnalysisRequest {
	return AnalysisRequest{
		Data: []model.Sample{{
			SequenceID: "EPI-001",
			Mutations:  []string{"S:D614G"},
			Location:   "Berlin",
			Date:       "2024-03-01",
		}},
		Parameters: model.AnalysisParameters{MinFrequency: 0.01, MinCoverage: 20},
	}
}

func TestAnalyze_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze/variants", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req AnalysisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "variant_analysis", req.AnalysisType)
		assert.Equal(t, "EPI-001", req.Data[0].SequenceID)
		assert.InDelta(t, 0.01, req.Parameters.MinFrequency, 1e-9)

		json.NewEncoder(w).Encode(AnalysisResponse{
			Status: "success",
			Results: []model.SampleResult{{
				SequenceID: "EPI-001",
				VariantSummary: []model.VariantSummaryEntry{
					{Mutation: "S:D614G", Frequency: 0.95, Impact: "High", Notes: "major strains"},
				},
			}},
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Analyze(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "EPI-001", got.Results[0].SequenceID)
	assert.Equal(t, "High", got.Results[0].VariantSummary[0].Impact)
	assert.Nil(t, got.Results[0].VariantSummary[0].AIScore)
}

func TestAnalyze_DetailError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"analysis engine offline"}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Analyze(context.Background(), testRequest())

	var de *DetailError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusInternalServerError, de.StatusCode)
	assert.Equal(t, "analysis engine offline", de.Detail)
}

func TestAnalyze_StatusErrorWithoutDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream timeout`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Analyze(context.Background(), testRequest())

	require.Error(t, err)
	var de *DetailError
	assert.False(t, errors.As(err, &de))
	assert.Contains(t, err.Error(), "502")
}

func TestAnalyze_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Analyze(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestAnalyze_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Analyze(ctx, testRequest())
	require.Error(t, err)
}
