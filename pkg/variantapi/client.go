// Package variantapi provides a client for the variant analysis service.
package variantapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/variant-cli/internal/model"
)

const defaultBaseURL = "http://localhost:8000"

// AnalysisType is the only analysis mode the service accepts from this tool.
const AnalysisType = "variant_analysis"

// Client performs variant analysis requests.
type Client interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)
}

// AnalysisRequest is the request body for POST /analyze/variants.
type AnalysisRequest struct {
	Data         []model.Sample           `json:"data"`
	AnalysisType string                   `json:"analysis_type"`
	Parameters   model.AnalysisParameters `json:"parameters"`
}

// AnalysisResponse is the response from POST /analyze/variants.
// Results carry no AI enrichment; that is attached by a second call to the
// prediction service.
type AnalysisResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Results []model.SampleResult `json:"results"`
}

// DetailError carries the human-readable detail message the service attaches
// to error responses.
type DetailError struct {
	StatusCode int
	Detail     string
}

func (e *DetailError) Error() string {
	return e.Detail
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

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a variant analysis service client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
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

func (c *httpClient) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	if req.AnalysisType == "" {
		req.AnalysisType = AnalysisType
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "variantapi: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze/variants", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "variantapi: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "variantapi: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "variantapi: read response")
	}

	if resp.StatusCode != http.StatusOK {
		if detail := parseDetail(respBody); detail != "" {
			return nil, &DetailError{StatusCode: resp.StatusCode, Detail: detail}
		}
		return nil, eris.Errorf("variantapi: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result AnalysisResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "variantapi: unmarshal response")
	}

	return &result, nil
}

// parseDetail extracts the service's {"detail": "..."} error message, if any.
func parseDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
