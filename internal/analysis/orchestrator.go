// Package analysis sequences the two-stage variant analysis workflow:
// variant analysis against the remote service, then AI pathogenicity
// enrichment keyed by mutation code, merged into one result set.
package analysis

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/variant-cli/internal/model"
	"github.com/sells-group/variant-cli/internal/normalize"
	"github.com/sells-group/variant-cli/internal/store"
	"github.com/sells-group/variant-cli/pkg/aipredict"
	"github.com/sells-group/variant-cli/pkg/variantapi"
)

// Orchestrator drives one analysis run end to end. Runs are serialized: a
// second invocation blocks until the in-flight one completes.
type Orchestrator struct {
	mu       sync.Mutex
	variants variantapi.Client
	predict  aipredict.Client
	history  *store.HistoryStore
}

// New creates an orchestrator. history may be nil to disable run recording.
func New(variants variantapi.Client, predict aipredict.Client, history *store.HistoryStore) *Orchestrator {
	return &Orchestrator{
		variants: variants,
		predict:  predict,
		history:  history,
	}
}

// Run filters rows to valid samples, invokes the analysis service, enriches
// the results with pathogenicity predictions, and records the run in
// history. A failed enrichment stage does not discard the analysis results;
// they are returned unenriched and the failure is logged.
func (o *Orchestrator) Run(ctx context.Context, rows []normalize.Row, params model.AnalysisParameters) ([]model.SampleResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	samples := collectValid(normalize.FromRows(rows))
	if len(samples) == 0 {
		return nil, &ValidationError{Message: "no valid samples: each sample needs a sequence ID and at least one mutation"}
	}

	resp, err := o.variants.Analyze(ctx, variantapi.AnalysisRequest{
		Data:         samples,
		AnalysisType: variantapi.AnalysisType,
		Parameters:   params,
	})
	if err != nil {
		return nil, newServiceError(err)
	}
	results := resp.Results

	if err := o.enrich(ctx, results); err != nil {
		zap.L().Warn("analysis: enrichment failed, returning unenriched results", zap.Error(err))
	}

	if o.history != nil {
		// Best effort; a full store never blocks delivering results.
		if _, err := o.history.Save(ctx, samples, params, results); err != nil {
			zap.L().Warn("analysis: history save failed", zap.Error(err))
		}
	}

	return results, nil
}

// Replay re-runs a recorded entry with its exact samples and parameters.
// This is a live call; the results may differ from those stored.
func (o *Orchestrator) Replay(ctx context.Context, entry model.HistoryEntry) ([]model.SampleResult, error) {
	rows := make([]normalize.Row, 0, len(entry.Samples))
	for _, s := range entry.Samples {
		rows = append(rows, normalize.ToRow(s))
	}
	return o.Run(ctx, rows, entry.Params)
}

// enrich attaches ai_score/ai_label to every variant summary entry whose
// mutation code appears in the prediction response. The lookup is keyed by
// exact mutation string and is not sample-scoped: pathogenicity is a
// property of the mutation, so duplicate codes across samples receive
// identical values. Entries with no match are left unset.
func (o *Orchestrator) enrich(ctx context.Context, results []model.SampleResult) error {
	mutations := distinctMutations(results)
	if len(mutations) == 0 {
		return nil
	}

	resp, err := o.predict.Predict(ctx, mutations)
	if err != nil {
		return err
	}

	lookup := make(map[string]aipredict.Prediction, len(resp.Results))
	for _, p := range resp.Results {
		lookup[p.Mutation] = p
	}

	for i := range results {
		summary := results[i].VariantSummary
		for j := range summary {
			p, ok := lookup[summary[j].Mutation]
			if !ok {
				continue
			}
			score, label := p.AIScore, p.AILabel
			summary[j].AIScore = &score
			summary[j].AILabel = &label
		}
	}
	return nil
}

// collectValid keeps rows with a sequence ID and at least one mutation.
func collectValid(samples []model.Sample) []model.Sample {
	var valid []model.Sample
	for _, s := range samples {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	return valid
}

// distinctMutations collects the distinct mutation codes across all variant
// summaries, preserving first-seen order.
func distinctMutations(results []model.SampleResult) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range results {
		for _, v := range r.VariantSummary {
			if _, ok := seen[v.Mutation]; ok {
				continue
			}
			seen[v.Mutation] = struct{}{}
			out = append(out, v.Mutation)
		}
	}
	return out
}
