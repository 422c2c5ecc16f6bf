package aipredict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestPredict_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ai_predict", r.URL.Path)

		// The request body is the flat list of mutation codes.
		var mutations []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&mutations))
		assert.Equal(t, []string{"S:D614G", "S:N501Y"}, mutations)

		json.NewEncoder(w).Encode(PredictResponse{
			Results: []Prediction{
				{Mutation: "S:D614G", AIScore: 0.91, AILabel: "Deleterious", Method: "ML Model"},
				{Mutation: "S:N501Y", AIScore: 0.34, AILabel: "Benign", Method: "Rule-based"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Predict(context.Background(), []string{"S:D614G", "S:N501Y"})

	require.NoError(t, err)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "S:D614G", got.Results[0].Mutation)
	assert.InDelta(t, 0.91, got.Results[0].AIScore, 1e-9)
	assert.Equal(t, "Benign", got.Results[1].AILabel)
}

func TestPredict_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`model loading`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Predict(context.Background(), []string{"S:D614G"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestPredict_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Predict(context.Background(), []string{"S:D614G"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestPredict_RateLimiterCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PredictResponse{})
	}))
	defer srv.Close()

	// A zero-rate limiter never admits; the context deadline must win.
	client := NewClient(WithBaseURL(srv.URL), WithRateLimiter(rate.NewLimiter(0, 0)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Predict(ctx, []string{"S:D614G"})
	require.Error(t, err)
}
