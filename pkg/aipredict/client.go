// Package aipredict provides a client for the mutation pathogenicity
// prediction service.
package aipredict

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8000"

// Client scores mutations for pathogenicity.
type Client interface {
	// Predict scores the given mutation codes. The request body is the flat
	// list of codes; each response entry is keyed by its exact mutation
	// string.
	Predict(ctx context.Context, mutations []string) (*PredictResponse, error)
}

// PredictResponse is the response from POST /ai_predict.
type PredictResponse struct {
	Results []Prediction `json:"results"`
}

// Prediction is one scored mutation.
type Prediction struct {
	Mutation string  `json:"mutation"`
	AIScore  float64 `json:"ai_score"`
	AILabel  string  `json:"ai_label"`
	Method   string  `json:"method,omitempty"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default service base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimiter throttles prediction requests. The model inference
// endpoint is the slowest dependency in the chain and benefits from
// client-side pacing when replays are scripted.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a prediction service client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Predict(ctx context.Context, mutations []string) (*PredictResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "aipredict: rate limit wait")
		}
	}

	body, err := json.Marshal(mutations)
	if err != nil {
		return nil, eris.Wrap(err, "aipredict: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai_predict", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "aipredict: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "aipredict: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "aipredict: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("aipredict: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result PredictResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "aipredict: unmarshal response")
	}

	return &result, nil
}
